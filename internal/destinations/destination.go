// internal/destinations/destination.go
//
// Destination records as written by the offline dataset curator.
// Only a slice of each record is surfaced per round:
//   - the first ClueCount clues,
//   - the first fun fact (or FunFactPlaceholder),
//   - the first trivia line (or TriviaPlaceholder).

package destinations

const (
	// ClueCount is the number of clues shown to the player per round.
	ClueCount = 2

	FunFactPlaceholder = "No fun fact available."
	TriviaPlaceholder  = "No trivia available."
)

// Destination is one place the player must identify.
// City is the canonical answer label and is unique within a Store.
type Destination struct {
	ID      int      `json:"id" yaml:"id"`
	City    string   `json:"city" yaml:"city"`
	Country string   `json:"country" yaml:"country"`
	Clues   []string `json:"clues" yaml:"clues"`
	FunFact []string `json:"fun_fact" yaml:"fun_fact"`
	Trivia  []string `json:"trivia" yaml:"trivia"`
}

// VisibleClues returns a copy of the clues surfaced to the player.
func (d Destination) VisibleClues() []string {
	n := min(len(d.Clues), ClueCount)
	out := make([]string, n)
	copy(out, d.Clues[:n])
	return out
}

// FirstFunFact returns the first fun fact, or the placeholder if there is none.
func (d Destination) FirstFunFact() string {
	return firstOr(d.FunFact, FunFactPlaceholder)
}

// FirstTrivia returns the first trivia line, or the placeholder if there is none.
func (d Destination) FirstTrivia() string {
	return firstOr(d.Trivia, TriviaPlaceholder)
}

func firstOr(list []string, def string) string {
	if len(list) == 0 || list[0] == "" {
		return def
	}
	return list[0]
}
