package oracle

import (
	"math/rand/v2"
)

// SelectionPolicy chooses one position among the occurrences of a byte value
// during encoding.
//
// The choice affects only the shape of the encoded output, never decode
// correctness: decoding resolves positions back to bytes without knowing how
// they were picked. Deterministic policies give reproducible blobs for
// testing; randomized policies spread picks across occurrences so repeated
// payload bytes do not produce repeated offsets.
type SelectionPolicy interface {
	// Pick returns one element of positions. The slice is never empty and
	// must not be modified.
	Pick(positions []uint32) uint32
}

// FirstOccurrence always picks the lowest position. This is the default
// policy: deterministic, reproducible, and the fastest.
type FirstOccurrence struct{}

var _ SelectionPolicy = FirstOccurrence{}

// NewFirstOccurrence creates the deterministic first-occurrence policy.
func NewFirstOccurrence() FirstOccurrence {
	return FirstOccurrence{}
}

// Pick returns the first (lowest) position.
func (FirstOccurrence) Pick(positions []uint32) uint32 {
	return positions[0]
}

// RandomOccurrence picks uniformly among all occurrences of a value,
// trading reproducibility for a less predictable blob: identical payload
// bytes map to varying offsets, so byte frequencies do not show through.
//
// Not safe for concurrent use by multiple goroutines sharing one instance.
type RandomOccurrence struct {
	rng *rand.Rand
}

var _ SelectionPolicy = (*RandomOccurrence)(nil)

// NewRandomOccurrence creates a randomized policy with its own PCG source.
func NewRandomOccurrence() *RandomOccurrence {
	return &RandomOccurrence{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NewSeededRandomOccurrence creates a randomized policy with a fixed seed,
// for reproducible tests.
func NewSeededRandomOccurrence(seed uint64) *RandomOccurrence {
	return &RandomOccurrence{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// Pick returns a uniformly random element of positions.
func (p *RandomOccurrence) Pick(positions []uint32) uint32 {
	return positions[p.rng.IntN(len(positions))]
}
