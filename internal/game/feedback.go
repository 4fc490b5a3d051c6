package game

import "github.com/neo7812/Globetrotter/internal/destinations"

// Feedback is what the player sees once a round resolves.
type Feedback struct {
	Outcome  Outcome `json:"outcome"`
	Headline string  `json:"headline"`
	FunFact  string  `json:"funFact"`
	Trivia   string  `json:"trivia"`
	// CorrectCity is revealed only when the player ran out of time.
	CorrectCity string `json:"correctCity,omitempty"`
}

// Message is the one-line feedback text shown under the options.
func (f Feedback) Message() string {
	if f.Outcome == OutcomeTimeout {
		return f.Headline + " The answer was " + f.CorrectCity + ". " + f.FunFact
	}
	return f.Headline + " " + f.FunFact
}

func feedbackFor(deal Deal, outcome Outcome) Feedback {
	f := Feedback{
		Outcome: outcome,
		FunFact: deal.FunFact,
		Trivia:  deal.Trivia,
	}
	if f.FunFact == "" {
		f.FunFact = destinations.FunFactPlaceholder
	}
	if f.Trivia == "" {
		f.Trivia = destinations.TriviaPlaceholder
	}
	switch outcome {
	case OutcomeCorrect:
		f.Headline = "Nice one!"
	case OutcomeIncorrect:
		f.Headline = "Oops!"
	case OutcomeTimeout:
		f.Headline = "Time's up!"
		f.CorrectCity = deal.Correct
	}
	return f
}
