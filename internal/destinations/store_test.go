package destinations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dest(id int, city string) Destination {
	return Destination{
		ID:      id,
		City:    city,
		Country: "Somewhere",
		Clues:   []string{city + " clue one", city + " clue two", city + " clue three"},
		FunFact: []string{city + " fun fact"},
		Trivia:  []string{city + " trivia"},
	}
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		name       string
		items      []Destination
		wantErr    error
		wantReason string
	}{
		{
			name:  "valid dataset",
			items: []Destination{dest(1, "Paris"), dest(2, "Tokyo")},
		},
		{
			name:    "empty dataset",
			items:   nil,
			wantErr: ErrEmptyStore,
		},
		{
			name:       "duplicate city",
			items:      []Destination{dest(1, "Paris"), dest(2, "Paris")},
			wantReason: `duplicate city "Paris"`,
		},
		{
			name:       "duplicate id",
			items:      []Destination{dest(1, "Paris"), dest(1, "Tokyo")},
			wantReason: "duplicate id",
		},
		{
			name:       "blank city",
			items:      []Destination{dest(1, "  ")},
			wantReason: "city is empty",
		},
		{
			name: "too few clues",
			items: []Destination{{
				ID: 1, City: "Lima", Clues: []string{"only one"},
			}},
			wantReason: "needs at least 2 clues, has 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStore(tt.items)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
			case tt.wantReason != "":
				var verr *ValidationError
				require.True(t, errors.As(err, &verr), "want *ValidationError, got %v", err)
				assert.Equal(t, tt.wantReason, verr.Reason)
			default:
				require.NoError(t, err)
				assert.Equal(t, len(tt.items), s.Len())
			}
		})
	}
}

func TestStoreIsolatedFromCaller(t *testing.T) {
	items := []Destination{dest(1, "Paris"), dest(2, "Tokyo")}
	s, err := NewStore(items)
	require.NoError(t, err)

	items[0].City = "Mutated"
	assert.Equal(t, "Paris", s.At(0).City)
	assert.Equal(t, "Tokyo", s.All()[1].City)
}

func TestDestinationSurfacedFields(t *testing.T) {
	d := dest(1, "Paris")
	assert.Equal(t, []string{"Paris clue one", "Paris clue two"}, d.VisibleClues())
	assert.Equal(t, "Paris fun fact", d.FirstFunFact())
	assert.Equal(t, "Paris trivia", d.FirstTrivia())

	bare := Destination{City: "Oslo", Clues: []string{"a", "b"}, FunFact: []string{""}}
	assert.Equal(t, FunFactPlaceholder, bare.FirstFunFact())
	assert.Equal(t, TriviaPlaceholder, bare.FirstTrivia())
}
