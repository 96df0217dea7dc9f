package game

import (
	"math/rand"
	"time"
)

// Source is the random-number source the engine draws from.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// DiceRoller is a seedable Source.
type DiceRoller struct {
	rng *rand.Rand
}

// NewDiceRoller creates a roller. A zero seed picks one from the clock.
func NewDiceRoller(seed int64) *DiceRoller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DiceRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a uniform value in [0, 1).
func (dr *DiceRoller) Float64() float64 {
	return dr.rng.Float64()
}

// Intn returns a uniform value in [0, n).
func (dr *DiceRoller) Intn(n int) int {
	return dr.rng.Intn(n)
}

// Between returns a uniform value in [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance reports whether a single draw falls under p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
