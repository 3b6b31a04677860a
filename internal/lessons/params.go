package lessons

import (
	"math/rand/v2"
	"slices"
)

// Pick returns one element of items chosen uniformly by r.
func Pick[T any](r *rand.Rand, items ...T) T {
	return items[r.IntN(len(items))]
}

// IntBetween returns an integer in [lo, hi].
func IntBetween(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// Shuffle returns a shuffled copy of items.
func Shuffle[T any](r *rand.Rand, items []T) []T {
	out := slices.Clone(items)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
