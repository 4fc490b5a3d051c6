// internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - State / Outcome: round lifecycle and result.
//   - Deal: everything the presentation layer needs to show one round.
//   - Score: cumulative per-session counters.
//   - Event / Listener: transition notifications for the presentation layer.

package game

// State is the lifecycle position of a single round.
type State string

const (
	StateIdle           State = "idle"            // created, countdown not started
	StateAwaitingAnswer State = "awaiting_answer" // countdown running, no guess yet
	StateResolved       State = "resolved"        // outcome recorded; terminal for the round
	StateDiscarded      State = "discarded"       // abandoned by a newer round before resolving
)

// Outcome is the recorded result of a resolved round.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeTimeout   Outcome = "timeout" // scored as incorrect
)

// OptionSet holds the candidate answers shown for one round.
type OptionSet []string

// Contains reports whether city is one of the options.
func (o OptionSet) Contains(city string) bool {
	for _, c := range o {
		if c == city {
			return true
		}
	}
	return false
}

// Deal is one playable round as served by GET /api/destination.
type Deal struct {
	DestinationID int       `json:"-"`
	Clues         []string  `json:"clues"`
	Options       OptionSet `json:"options"`
	Correct       string    `json:"correct"`
	FunFact       string    `json:"funFact"`
	Trivia        string    `json:"trivia"`
}

// Score holds cumulative counters for a session.
type Score struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Total is the number of resolved rounds.
func (s Score) Total() int { return s.Correct + s.Incorrect }

// EventKind names a round transition.
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventTick      EventKind = "tick"
	EventResolved  EventKind = "resolved"
	EventDiscarded EventKind = "discarded"
)

// Event is emitted to the Listener on every round transition and tick.
type Event struct {
	RoundID          string
	Kind             EventKind
	SecondsRemaining int
	Outcome          Outcome   // set for EventResolved
	Feedback         *Feedback // set for EventResolved
}

// Listener receives round events. Tick and timeout events are delivered from
// the countdown goroutine, so a Listener must not block and must not call back
// into the Round or Session synchronously.
type Listener func(Event)
