package game

import "golang.org/x/exp/rand"

// Source supplies uniform values in [0, 1). Every random draw made by an
// Opponent or an Episode goes through one, so seeding it fixes the game.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed source seeded with seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}
