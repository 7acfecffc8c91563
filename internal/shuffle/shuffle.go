// Package shuffle produces uniformly random permutations of a sequence.
package shuffle

import (
	"math/rand"
	"time"

	"github.com/san-kum/sortviz/internal/trace"
)

// Shuffler is not safe for concurrent use; callers serialize access.
type Shuffler struct {
	rng *rand.Rand
}

// New returns a Shuffler seeded with seed, or with the current time when seed is 0.
func New(seed int64) *Shuffler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Shuffler{rng: rand.New(rand.NewSource(seed))}
}

// Shuffle returns a Fisher-Yates permutation of s. s itself is left untouched.
func (sh *Shuffler) Shuffle(s trace.Sequence) trace.Sequence {
	out := s.Clone()
	for i := len(out) - 1; i > 0; i-- {
		j := sh.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
