// internal/terminal/presenter.go
//
// Line-oriented presentation layer for `globetrotter play`.
// Responsibilities:
//   - Show clues, numbered options and the live countdown.
//   - Turn typed input (1-4 or a city name) into submissions.
//   - Show feedback and the running score after each round.
//
// Round events arrive on the countdown goroutine; the listener only queues
// them and all printing happens on the Play goroutine.

package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/neo7812/Globetrotter/internal/game"
)

// Presenter drives a game.Session from a text stream.
type Presenter struct {
	out    io.Writer
	lines  chan string
	events chan game.Event
	// MaxRounds stops play after that many rounds; 0 means until the player quits.
	MaxRounds int
}

// New starts reading lines from in.
func New(in io.Reader, out io.Writer) *Presenter {
	p := &Presenter{
		out:    out,
		lines:  make(chan string),
		events: make(chan game.Event, 64),
	}
	go func() {
		defer close(p.lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			p.lines <- strings.TrimSpace(sc.Text())
		}
	}()
	return p
}

// Listener queues round events without blocking; ticks are dropped if the
// queue is full.
func (p *Presenter) Listener() game.Listener {
	return func(ev game.Event) {
		select {
		case p.events <- ev:
		default:
		}
	}
}

// Play runs rounds until the player quits, input ends, MaxRounds is reached
// or ctx is cancelled. It returns the final score.
func (p *Presenter) Play(ctx context.Context, s *game.Session) (game.Score, error) {
	defer s.Close()
	fmt.Fprintf(p.out, "Welcome to Globetrotter, %s! Type 1-4 or a city name, q to quit.\n", s.Username)

	for n := 1; p.MaxRounds == 0 || n <= p.MaxRounds; n++ {
		r, err := s.StartRound(ctx)
		if err != nil {
			return s.Score(), err
		}
		p.showRound(n, r.Deal())
		if quit := p.awaitAnswer(ctx, s, r); quit {
			break
		}
		if fb, ok := r.Feedback(); ok {
			p.showFeedback(fb, s.Score())
		}
		if p.MaxRounds != 0 && n == p.MaxRounds {
			break
		}
		if !p.promptNext(ctx) {
			break
		}
	}
	return s.Score(), nil
}

func (p *Presenter) showRound(n int, d game.Deal) {
	fmt.Fprintf(p.out, "\nRound %d\n", n)
	for _, c := range d.Clues {
		fmt.Fprintf(p.out, "  clue: %s\n", c)
	}
	for i, o := range d.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	fmt.Fprintf(p.out, "You have %d seconds.\n", game.CountdownSeconds)
}

// awaitAnswer blocks until r resolves. It reports whether the player asked
// to quit.
func (p *Presenter) awaitAnswer(ctx context.Context, s *game.Session, r *game.Round) (quit bool) {
	for {
		select {
		case <-ctx.Done():
			return true
		case line, ok := <-p.lines:
			if !ok || strings.EqualFold(line, "q") {
				return true
			}
			guess, valid := choose(r.Deal().Options, line)
			if !valid {
				fmt.Fprintf(p.out, "Pick 1-%d or type one of the cities.\n", len(r.Deal().Options))
				continue
			}
			if _, accepted, _ := s.Submit(guess); accepted {
				return false
			}
			// Too late: the timeout resolution is on its way.
		case ev := <-p.events:
			if ev.RoundID != r.ID {
				continue
			}
			switch ev.Kind {
			case game.EventTick:
				if ev.SecondsRemaining > 0 && (ev.SecondsRemaining <= 3 || ev.SecondsRemaining%5 == 0) {
					fmt.Fprintf(p.out, "  %ds left\n", ev.SecondsRemaining)
				}
			case game.EventResolved:
				return false
			}
		}
	}
}

func (p *Presenter) showFeedback(fb game.Feedback, score game.Score) {
	fmt.Fprintln(p.out, fb.Message())
	fmt.Fprintf(p.out, "Trivia: %s\n", fb.Trivia)
	fmt.Fprintf(p.out, "Score: Correct: %d | Incorrect: %d\n", score.Correct, score.Incorrect)
}

func (p *Presenter) promptNext(ctx context.Context) bool {
	fmt.Fprintln(p.out, "[Enter] next round, [q] quit")
	select {
	case <-ctx.Done():
		return false
	case line, ok := <-p.lines:
		return ok && !strings.EqualFold(line, "q")
	}
}

// choose maps a 1-based index or a case-insensitive city name to an option.
func choose(opts game.OptionSet, input string) (string, bool) {
	if i, err := strconv.Atoi(input); err == nil {
		if i >= 1 && i <= len(opts) {
			return opts[i-1], true
		}
		return "", false
	}
	for _, o := range opts {
		if strings.EqualFold(o, input) {
			return o, true
		}
	}
	return "", false
}
