// internal/game/round.go
//
// Round state machine for a single clue-to-answer cycle.
//
// State transitions:
//   Idle            → AwaitingAnswer  Start(): countdown reset to CountdownSeconds and started.
//   AwaitingAnswer  → Resolved        Submit(): exact match against the correct city.
//   AwaitingAnswer  → Resolved        countdown reaches 0: OutcomeTimeout.
//   Idle/Awaiting   → Discarded       a newer round replaced this one.
//
// The countdown goroutine is owned by the round through a countdown handle and
// is fully stopped on every exit from AwaitingAnswer, so a stale tick can
// never touch a later round.

package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// CountdownSeconds is the length of the answer window.
	CountdownSeconds = 10
	// TickInterval is the time between countdown decrements.
	TickInterval = time.Second
)

// Round is the mutable unit of play.
type Round struct {
	ID string

	deal     Deal
	clock    Clock
	listener Listener
	// onResolve is invoked exactly once, before the resolved event is emitted.
	onResolve func(Outcome)

	mu               sync.Mutex
	state            State
	secondsRemaining int
	selected         string
	hasSelected      bool
	outcome          Outcome
	feedback         *Feedback
	timer            *countdown
}

// NewRound creates an Idle round for deal. A nil clock uses SystemClock.
func NewRound(deal Deal, clock Clock, listener Listener) *Round {
	if clock == nil {
		clock = SystemClock()
	}
	return &Round{
		ID:       uuid.NewString(),
		deal:     deal,
		clock:    clock,
		listener: listener,
		state:    StateIdle,
	}
}

// Start moves an Idle round to AwaitingAnswer and starts the countdown.
// Calling Start on a round that already left Idle does nothing.
func (r *Round) Start() {
	r.mu.Lock()
	if r.state != StateIdle {
		r.mu.Unlock()
		return
	}
	r.state = StateAwaitingAnswer
	r.secondsRemaining = CountdownSeconds
	r.mu.Unlock()

	r.emit(Event{Kind: EventStarted, SecondsRemaining: CountdownSeconds})

	r.mu.Lock()
	if r.state == StateAwaitingAnswer {
		r.timer = startCountdown(r.clock, TickInterval, r.tick)
	}
	r.mu.Unlock()
}

// Submit records the player's guess. ok is false when the round is not
// awaiting an answer (already resolved, discarded, not started, or out of
// time); such submissions change nothing.
func (r *Round) Submit(guess string) (outcome Outcome, ok bool) {
	r.mu.Lock()
	if r.state != StateAwaitingAnswer || r.secondsRemaining <= 0 {
		r.mu.Unlock()
		return OutcomeNone, false
	}
	r.selected, r.hasSelected = guess, true
	outcome = OutcomeIncorrect
	if guess == r.deal.Correct {
		outcome = OutcomeCorrect
	}
	ev := r.resolveLocked(outcome)
	timer := r.timer
	r.timer = nil
	r.mu.Unlock()

	if timer != nil {
		timer.cancel()
	}
	r.finish(ev)
	return outcome, true
}

// tick decrements the countdown. It reports whether the countdown should keep running.
func (r *Round) tick() bool {
	r.mu.Lock()
	if r.state != StateAwaitingAnswer {
		r.mu.Unlock()
		return false
	}
	r.secondsRemaining--
	tickEv := Event{Kind: EventTick, SecondsRemaining: r.secondsRemaining}
	var resolved *Event
	if r.secondsRemaining == 0 {
		// The goroutine running this tick exits on its own.
		r.timer = nil
		ev := r.resolveLocked(OutcomeTimeout)
		resolved = &ev
	}
	r.mu.Unlock()

	r.emit(tickEv)
	if resolved != nil {
		r.finish(*resolved)
		return false
	}
	return true
}

// discard abandons the round in favour of a newer one. Resolved rounds keep
// their outcome; any running countdown is stopped.
func (r *Round) discard() {
	r.mu.Lock()
	wasOpen := r.state == StateIdle || r.state == StateAwaitingAnswer
	if wasOpen {
		r.state = StateDiscarded
	}
	remaining := r.secondsRemaining
	timer := r.timer
	r.timer = nil
	r.mu.Unlock()

	if timer != nil {
		timer.cancel()
	}
	if wasOpen {
		r.emit(Event{Kind: EventDiscarded, SecondsRemaining: remaining})
	}
}

func (r *Round) resolveLocked(outcome Outcome) Event {
	r.state = StateResolved
	r.outcome = outcome
	fb := feedbackFor(r.deal, outcome)
	r.feedback = &fb
	return Event{Kind: EventResolved, SecondsRemaining: r.secondsRemaining, Outcome: outcome, Feedback: &fb}
}

func (r *Round) finish(ev Event) {
	if r.onResolve != nil {
		r.onResolve(ev.Outcome)
	}
	r.emit(ev)
}

func (r *Round) emit(ev Event) {
	if r.listener == nil {
		return
	}
	ev.RoundID = r.ID
	r.listener(ev)
}

// Deal returns the round's clues and options.
func (r *Round) Deal() Deal { return r.deal }

// State returns the current lifecycle state.
func (r *Round) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SecondsRemaining returns the countdown value.
func (r *Round) SecondsRemaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.secondsRemaining
}

// Outcome returns the recorded outcome, or OutcomeNone before resolution.
func (r *Round) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Selected returns the submitted guess, if any.
func (r *Round) Selected() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected, r.hasSelected
}

// Feedback returns the feedback once the round is resolved.
func (r *Round) Feedback() (Feedback, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.feedback == nil {
		return Feedback{}, false
	}
	return *r.feedback, true
}

// countdown is the owned handle of a round's tick goroutine.
type countdown struct {
	stop context.CancelFunc
	done chan struct{}
}

func startCountdown(clock Clock, interval time.Duration, tick func() bool) *countdown {
	ctx, stop := context.WithCancel(context.Background())
	c := &countdown{stop: stop, done: make(chan struct{})}
	t := clock.NewTicker(interval)
	go func() {
		defer close(c.done)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C():
				if !tick() {
					return
				}
			}
		}
	}()
	return c
}

// cancel stops the tick source and waits until the goroutine has exited.
// It must not be called from the countdown goroutine itself.
func (c *countdown) cancel() {
	c.stop()
	<-c.done
}
