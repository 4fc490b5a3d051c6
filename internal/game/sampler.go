package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/neo7812/Globetrotter/internal/destinations"
)

// OptionCount is the size of every OptionSet.
const OptionCount = 4

// Rand is the randomness the sampler and dealer draw from.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// InsufficientPoolError means the pool cannot fill an OptionSet with distinct cities.
type InsufficientPoolError struct {
	Distinct int
	Required int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("option pool has %d distinct cities, need %d", e.Distinct, e.Required)
}

// Sample builds a shuffled OptionSet holding correct.City and OptionCount-1
// other distinct cities drawn uniformly from pool.
func Sample(correct destinations.Destination, pool []destinations.Destination) (OptionSet, error) {
	return SampleWith(defaultRand{}, correct, pool)
}

// SampleWith is Sample with an explicit randomness source.
func SampleWith(rnd Rand, correct destinations.Destination, pool []destinations.Destination) (OptionSet, error) {
	// Checked up front: with fewer distinct cities the rejection loop below
	// would never terminate.
	if n := distinctCities(correct, pool); n < OptionCount {
		return nil, &InsufficientPoolError{Distinct: n, Required: OptionCount}
	}

	opts := make(OptionSet, 0, OptionCount)
	seen := make(map[string]struct{}, OptionCount)
	opts = append(opts, correct.City)
	seen[correct.City] = struct{}{}
	for len(opts) < OptionCount {
		city := pool[rnd.IntN(len(pool))].City
		if _, dup := seen[city]; dup {
			continue
		}
		seen[city] = struct{}{}
		opts = append(opts, city)
	}
	shuffle(rnd, opts)
	return opts, nil
}

// shuffle is an in-place Fisher–Yates permutation.
func shuffle(rnd Rand, s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func distinctCities(correct destinations.Destination, pool []destinations.Destination) int {
	set := make(map[string]struct{}, len(pool)+1)
	set[correct.City] = struct{}{}
	for _, d := range pool {
		set[d.City] = struct{}{}
	}
	return len(set)
}
