package game

import (
	"context"
	"fmt"

	"github.com/neo7812/Globetrotter/internal/destinations"
)

// RoundSource yields the next playable deal. Dealer serves it from a local
// store; remote.Client fetches it over HTTP.
type RoundSource interface {
	NextDeal(ctx context.Context) (Deal, error)
}

// Dealer picks a uniformly random destination per call and builds its options.
// It keeps no per-caller state, so one Dealer can serve any number of sessions.
type Dealer struct {
	store *destinations.Store
	rnd   Rand
}

// NewDealer returns a Dealer over store. A nil rnd uses the process-wide source.
func NewDealer(store *destinations.Store, rnd Rand) *Dealer {
	if rnd == nil {
		rnd = defaultRand{}
	}
	return &Dealer{store: store, rnd: rnd}
}

// NextDeal selects a destination and samples its OptionSet.
func (d *Dealer) NextDeal(ctx context.Context) (Deal, error) {
	if err := ctx.Err(); err != nil {
		return Deal{}, err
	}
	if d.store == nil || d.store.Len() == 0 {
		return Deal{}, destinations.ErrEmptyStore
	}
	dest := d.store.At(d.rnd.IntN(d.store.Len()))
	opts, err := SampleWith(d.rnd, dest, d.store.All())
	if err != nil {
		return Deal{}, fmt.Errorf("sample options for %q: %w", dest.City, err)
	}
	return NewDeal(dest, opts), nil
}

// NewDeal projects a destination and its options into a Deal.
func NewDeal(d destinations.Destination, opts OptionSet) Deal {
	return Deal{
		DestinationID: d.ID,
		Clues:         d.VisibleClues(),
		Options:       opts,
		Correct:       d.City,
		FunFact:       d.FirstFunFact(),
		Trivia:        d.FirstTrivia(),
	}
}
