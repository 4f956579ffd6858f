// Package shuffle provides the deterministic, count-seeded permutation used
// when merging corpora into the global split files.
//
// The seed is derived from the number of items being shuffled, not from
// their content. Two inputs of equal length therefore receive the same
// permutation. That collision is accepted: the goal is to de-correlate
// corpus-contiguous blocks reproducibly, not to be unpredictable.
package shuffle

import "math/rand/v2"

// SeedFunc derives a generator seed from the number of items to shuffle.
type SeedFunc func(n int) uint64

// CountSeed seeds with the item count itself.
func CountSeed(n int) uint64 {
	return uint64(n)
}

// Shuffler permutes slices with a generator seeded by Seed. The zero value
// uses CountSeed.
type Shuffler struct {
	Seed SeedFunc
}

// Default returns the count-seeded shuffler.
func Default() Shuffler {
	return Shuffler{Seed: CountSeed}
}

func (s Shuffler) seed(n int) uint64 {
	if s.Seed == nil {
		return CountSeed(n)
	}
	return s.Seed(n)
}

// Shuffle permutes items in place. The permutation depends only on
// len(items) and the seed function.
func Shuffle[T any](s Shuffler, items []T) {
	if len(items) < 2 {
		return
	}
	seed := s.seed(len(items))
	rng := rand.New(rand.NewPCG(seed, seed^pcgStream))
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Permutation returns the index order Shuffle applies to n items.
func Permutation(s Shuffler, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	Shuffle(s, idx)
	return idx
}

// pcgStream selects the PCG stream; fixed so permutations never change
// between releases.
const pcgStream = 0x9e3779b97f4a7c15
