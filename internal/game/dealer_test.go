package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo7812/Globetrotter/internal/destinations"
)

func TestDealer_NextDeal(t *testing.T) {
	store, err := destinations.NewStore(fakePool(t, 12))
	require.NoError(t, err)
	d := NewDealer(store, rand.New(rand.NewPCG(3, 4)))

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		deal, err := d.NextDeal(context.Background())
		require.NoError(t, err)
		seen[deal.DestinationID] = true
		assert.True(t, deal.Options.Contains(deal.Correct))
		assert.Equal(t, "fun "+deal.Correct, deal.FunFact)
		assert.Equal(t, "trivia "+deal.Correct, deal.Trivia)
	}
	assert.Len(t, seen, store.Len(), "every destination should be dealt eventually")
}

func TestDealer_Errors(t *testing.T) {
	_, err := NewDealer(nil, nil).NextDeal(context.Background())
	assert.ErrorIs(t, err, destinations.ErrEmptyStore)

	small, err := destinations.NewStore([]destinations.Destination{dest(1, "Paris"), dest(2, "Tokyo")})
	require.NoError(t, err)
	_, err = NewDealer(small, nil).NextDeal(context.Background())
	var pe *InsufficientPoolError
	assert.True(t, errors.As(err, &pe))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewDealer(small, nil).NextDeal(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDeal_Placeholders(t *testing.T) {
	d := destinations.Destination{ID: 9, City: "Oslo", Clues: []string{"a", "b", "c"}}
	deal := NewDeal(d, OptionSet{"Oslo", "Lima", "Rome", "Cairo"})
	assert.Equal(t, []string{"a", "b"}, deal.Clues)
	assert.Equal(t, destinations.FunFactPlaceholder, deal.FunFact)
	assert.Equal(t, destinations.TriviaPlaceholder, deal.Trivia)
}
