// internal/game/session.go
//
// Session ties one player to a RoundSource.
// Responsibilities:
//   - Deal and start rounds, discarding any round that is still open.
//   - Route guesses to the current round.
//   - Keep the cumulative Score (one increment per resolved round).
//
// Locking: s.mu guards current and score only. It is never held while a
// round's countdown is being stopped, because the countdown goroutine takes
// s.mu itself when a round times out.

package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrNoRound is returned by Submit before the first round has been started.
var ErrNoRound = errors.New("no round in progress")

// Session is a single player's game.
type Session struct {
	Username string

	source   RoundSource
	clock    Clock
	listener Listener

	mu      sync.Mutex
	current *Round
	score   Score
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the countdown tick source.
func WithClock(c Clock) Option { return func(s *Session) { s.clock = c } }

// WithListener registers the presentation callback for round events.
func WithListener(l Listener) Option { return func(s *Session) { s.listener = l } }

// NewSession creates a session for username drawing rounds from source.
func NewSession(username string, source RoundSource, opts ...Option) *Session {
	s := &Session{Username: username, source: source, clock: SystemClock()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// StartRound discards the current round (if still open), fetches a new deal
// and starts its countdown. On a source error no new round is created and the
// previous one stays discarded.
func (s *Session) StartRound(ctx context.Context) (*Round, error) {
	s.mu.Lock()
	prev := s.current
	s.mu.Unlock()
	if prev != nil {
		prev.discard()
	}

	deal, err := s.source.NextDeal(ctx)
	if err != nil {
		log.Error().Err(err).Str("username", s.Username).Msg("load round failed")
		return nil, fmt.Errorf("load round: %w", err)
	}

	r := NewRound(deal, s.clock, s.listener)
	r.onResolve = s.record

	s.mu.Lock()
	stale := s.current
	s.current = r
	s.mu.Unlock()
	// A concurrent StartRound may have installed a round in the meantime.
	if stale != nil && stale != prev {
		stale.discard()
	}

	r.Start()
	log.Debug().Str("round", r.ID).Int("destination", deal.DestinationID).Msg("round started")
	return r, nil
}

// Submit forwards guess to the current round. ok is false when the round has
// already resolved or was discarded.
func (s *Session) Submit(guess string) (outcome Outcome, ok bool, err error) {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r == nil {
		return OutcomeNone, false, ErrNoRound
	}
	outcome, ok = r.Submit(guess)
	return outcome, ok, nil
}

// Current returns the most recently started round, or nil.
func (s *Session) Current() *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Score returns a snapshot of the cumulative score.
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Close discards the current round and stops its countdown.
func (s *Session) Close() {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r != nil {
		r.discard()
	}
}

func (s *Session) record(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o == OutcomeCorrect {
		s.score.Correct++
	} else {
		s.score.Incorrect++
	}
}
