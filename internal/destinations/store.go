// internal/destinations/store.go
//
// Read-only, ordered collection of destinations loaded once at startup.
// Characteristics:
//   - Validated on construction (unique ids, unique cities, >= ClueCount clues).
//   - Never mutated afterwards, so concurrent readers need no locking.

package destinations

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyStore is returned when a dataset contains no destinations.
var ErrEmptyStore = errors.New("destinations: store is empty")

// ValidationError reports a dataset record the engine cannot play.
type ValidationError struct {
	Index  int
	ID     int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("destinations: record %d (id %d): %s", e.Index, e.ID, e.Reason)
}

// Store is an immutable list of destinations.
type Store struct {
	items []Destination
}

// NewStore validates items and wraps a private copy of them.
func NewStore(items []Destination) (*Store, error) {
	if len(items) == 0 {
		return nil, ErrEmptyStore
	}
	ids := make(map[int]struct{}, len(items))
	cities := make(map[string]struct{}, len(items))
	for i, d := range items {
		if strings.TrimSpace(d.City) == "" {
			return nil, &ValidationError{Index: i, ID: d.ID, Reason: "city is empty"}
		}
		if _, dup := cities[d.City]; dup {
			return nil, &ValidationError{Index: i, ID: d.ID, Reason: fmt.Sprintf("duplicate city %q", d.City)}
		}
		if _, dup := ids[d.ID]; dup {
			return nil, &ValidationError{Index: i, ID: d.ID, Reason: "duplicate id"}
		}
		if len(d.Clues) < ClueCount {
			return nil, &ValidationError{Index: i, ID: d.ID, Reason: fmt.Sprintf("needs at least %d clues, has %d", ClueCount, len(d.Clues))}
		}
		ids[d.ID] = struct{}{}
		cities[d.City] = struct{}{}
	}
	cp := make([]Destination, len(items))
	copy(cp, items)
	return &Store{items: cp}, nil
}

// Len reports the number of destinations.
func (s *Store) Len() int { return len(s.items) }

// At returns the i-th destination in dataset order.
func (s *Store) At(i int) Destination { return s.items[i] }

// All returns the destinations in dataset order.
// The returned slice is shared; callers must treat it as read-only.
func (s *Store) All() []Destination { return s.items }
