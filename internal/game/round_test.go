package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parisDeal() Deal {
	return Deal{
		DestinationID: 1,
		Clues:         []string{"Home to a famous iron lattice tower.", "The city of light."},
		Options:       OptionSet{"Tokyo", "Paris", "Cairo", "Lima"},
		Correct:       "Paris",
		FunFact:       "The Eiffel Tower grows in summer.",
		Trivia:        "Paris has only one stop sign.",
	}
}

func startedRound(t *testing.T) (*Round, *fakeTicker, *recorder) {
	t.Helper()
	clk := &fakeClock{}
	rec := newRecorder()
	r := NewRound(parisDeal(), clk, rec.listen)
	r.Start()
	ev := rec.next(t)
	require.Equal(t, EventStarted, ev.Kind)
	require.Equal(t, CountdownSeconds, ev.SecondsRemaining)
	return r, clk.last(t), rec
}

func advance(t *testing.T, tk *fakeTicker, rec *recorder, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.True(t, tk.Tick())
		require.Equal(t, EventTick, rec.nextKind(t, EventTick).Kind)
	}
}

func TestRound_StartsAwaiting(t *testing.T) {
	r, _, _ := startedRound(t)
	assert.Equal(t, StateAwaitingAnswer, r.State())
	assert.Equal(t, CountdownSeconds, r.SecondsRemaining())
	assert.Equal(t, OutcomeNone, r.Outcome())
	_, ok := r.Feedback()
	assert.False(t, ok)
	r.discard()
}

func TestRound_IncorrectGuessFreezesCountdown(t *testing.T) {
	r, tk, rec := startedRound(t)
	advance(t, tk, rec, 3)
	require.Equal(t, 7, r.SecondsRemaining())

	outcome, ok := r.Submit("Tokyo")
	require.True(t, ok)
	assert.Equal(t, OutcomeIncorrect, outcome)
	assert.Equal(t, StateResolved, r.State())

	ev := rec.nextKind(t, EventResolved)
	assert.Equal(t, OutcomeIncorrect, ev.Outcome)
	assert.Equal(t, 7, ev.SecondsRemaining)
	require.NotNil(t, ev.Feedback)
	assert.Equal(t, "Oops!", ev.Feedback.Headline)
	assert.Empty(t, ev.Feedback.CorrectCity)

	assert.True(t, tk.isStopped())
	assert.False(t, tk.Tick())
	assert.Equal(t, 7, r.SecondsRemaining())

	sel, has := r.Selected()
	assert.True(t, has)
	assert.Equal(t, "Tokyo", sel)
}

func TestRound_CorrectGuess(t *testing.T) {
	r, tk, rec := startedRound(t)
	outcome, ok := r.Submit("Paris")
	require.True(t, ok)
	assert.Equal(t, OutcomeCorrect, outcome)

	fb, ok := r.Feedback()
	require.True(t, ok)
	assert.Equal(t, "Nice one!", fb.Headline)
	assert.Equal(t, "The Eiffel Tower grows in summer.", fb.FunFact)
	assert.Equal(t, "Paris has only one stop sign.", fb.Trivia)
	assert.Equal(t, EventResolved, rec.nextKind(t, EventResolved).Kind)
	assert.True(t, tk.isStopped())
}

func TestRound_Timeout(t *testing.T) {
	r, tk, rec := startedRound(t)
	advance(t, tk, rec, CountdownSeconds)

	ev := rec.nextKind(t, EventResolved)
	assert.Equal(t, OutcomeTimeout, ev.Outcome)
	assert.Equal(t, 0, ev.SecondsRemaining)
	require.NotNil(t, ev.Feedback)
	assert.Equal(t, "Paris", ev.Feedback.CorrectCity)
	assert.Contains(t, ev.Feedback.Message(), "Paris")

	assert.Equal(t, StateResolved, r.State())
	assert.Eventually(t, tk.isStopped, time.Second, 5*time.Millisecond)

	_, ok := r.Submit("Paris")
	assert.False(t, ok, "late submission must be ignored")
	assert.Equal(t, OutcomeTimeout, r.Outcome())
}

func TestRound_SecondSubmitIgnored(t *testing.T) {
	r, _, rec := startedRound(t)
	_, ok := r.Submit("Cairo")
	require.True(t, ok)
	_, ok = r.Submit("Paris")
	assert.False(t, ok)
	assert.Equal(t, OutcomeIncorrect, r.Outcome())

	rec.nextKind(t, EventResolved)
	select {
	case ev := <-rec.events:
		t.Fatalf("unexpected event after resolution: %+v", ev)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestRound_SubmitBeforeStart(t *testing.T) {
	r := NewRound(parisDeal(), &fakeClock{}, nil)
	_, ok := r.Submit("Paris")
	assert.False(t, ok)
	assert.Equal(t, StateIdle, r.State())
}

func TestRound_StartTwiceKeepsOneCountdown(t *testing.T) {
	clk := &fakeClock{}
	r := NewRound(parisDeal(), clk, nil)
	r.Start()
	r.Start()
	assert.Equal(t, 1, clk.count())
	r.discard()
}

func TestRound_DiscardStopsCountdown(t *testing.T) {
	r, tk, rec := startedRound(t)
	advance(t, tk, rec, 2)
	r.discard()

	assert.Equal(t, StateDiscarded, r.State())
	assert.True(t, tk.isStopped())
	assert.Equal(t, EventDiscarded, rec.next(t).Kind)
	assert.Equal(t, 8, r.SecondsRemaining())
	_, ok := r.Submit("Paris")
	assert.False(t, ok)
}

func TestRound_DiscardKeepsResolvedOutcome(t *testing.T) {
	r, _, _ := startedRound(t)
	_, ok := r.Submit("Paris")
	require.True(t, ok)
	r.discard()
	assert.Equal(t, StateResolved, r.State())
	assert.Equal(t, OutcomeCorrect, r.Outcome())
}

func TestRound_TimeoutRacesSubmit(t *testing.T) {
	for i := 0; i < 50; i++ {
		clk := &fakeClock{}
		rec := newRecorder()
		resolutions := 0
		r := NewRound(parisDeal(), clk, rec.listen)
		r.onResolve = func(Outcome) { resolutions++ }
		r.Start()
		tk := clk.last(t)
		advance(t, tk, rec, CountdownSeconds-1)

		done := make(chan struct{})
		go func() {
			defer close(done)
			tk.Tick()
		}()
		r.Submit("Paris")
		<-done
		rec.nextKind(t, EventResolved)
		assert.Eventually(t, tk.isStopped, time.Second, time.Millisecond)

		assert.Equal(t, 1, resolutions)
		assert.Contains(t, []Outcome{OutcomeCorrect, OutcomeTimeout}, r.Outcome())
	}
}
