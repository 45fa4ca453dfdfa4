// Package oracle builds the byte-value-to-offset index over a reference
// buffer that both sides of a metasteg transcode share.
//
// The index maps each of the 256 byte values to the ascending list of
// positions where that value occurs in the reference. Encoding picks one
// position per payload byte through a pluggable SelectionPolicy; decoding
// never consults the index at all, it only resolves positions back to bytes,
// which is what makes the two sides interoperate regardless of policy.
//
// The index borrows nothing from the reference buffer and holds no state
// beyond the position lists; build it once per operation and discard it.
package oracle

import (
	"github.com/arloliu/metasteg/errs"
)

// Oracle is an immutable byte-value-to-offset index over a reference buffer.
//
// Every position in [0, reference length) appears in exactly one list, the
// one for the byte value at that position, in ascending order. A byte value
// absent from the reference has an empty list.
//
// Oracle is safe for concurrent use after New returns.
type Oracle struct {
	positions [256][]uint32
	refLen    int
}

// MaxReferenceLen is the largest reference buffer an Oracle can index.
// Positions are 32-bit, so references are limited to 4GiB-1.
const MaxReferenceLen = 1<<32 - 1

// New builds an Oracle over the given reference buffer in a single pass.
//
// The build is deterministic: repeated calls on the same buffer produce
// identical position lists in identical order. Runs in O(L) time and space
// for a reference of length L. An empty reference yields a valid Oracle
// whose lists are all empty.
//
// New copies nothing from the reference; the caller keeps ownership and must
// not need it mutated for the Oracle's lifetime (the Oracle stores positions,
// not bytes, so later mutation only causes stale lookups, not corruption).
//
// Panics if the reference exceeds MaxReferenceLen.
func New(reference []byte) *Oracle {
	if len(reference) > MaxReferenceLen {
		panic("oracle: reference buffer exceeds 4GiB-1")
	}

	o := &Oracle{refLen: len(reference)}

	// Count occurrences first so each list is allocated exactly once.
	var counts [256]int
	for _, b := range reference {
		counts[b]++
	}

	// One backing array for all lists keeps the index to two allocations
	// regardless of how many distinct values the reference contains.
	backing := make([]uint32, 0, len(reference))
	for v := range 256 {
		if counts[v] == 0 {
			continue
		}
		start := len(backing)
		backing = backing[:start+counts[v]]
		o.positions[v] = backing[start:start:len(backing)]
	}

	for i, b := range reference {
		o.positions[b] = append(o.positions[b], uint32(i)) //nolint:gosec
	}

	return o
}

// Positions returns the ascending positions at which value occurs in the
// reference buffer, possibly empty.
//
// The returned slice is shared with the Oracle and must not be modified.
func (o *Oracle) Positions(value byte) []uint32 {
	return o.positions[value]
}

// Contains reports whether value occurs at least once in the reference buffer.
func (o *Oracle) Contains(value byte) bool {
	return len(o.positions[value]) > 0
}

// ReferenceLen returns the length of the reference buffer the Oracle was
// built over.
func (o *Oracle) ReferenceLen() int {
	return o.refLen
}

// Pick selects one position at which value occurs, according to policy.
//
// Returns errs.ByteNotFoundError (matching errs.ErrByteNotFound) when the
// value has zero occurrences; this is deterministic for a given reference
// and will not succeed on retry.
func (o *Oracle) Pick(value byte, policy SelectionPolicy) (uint32, error) {
	positions := o.positions[value]
	if len(positions) == 0 {
		return 0, &errs.ByteNotFoundError{Byte: value, PayloadOffset: -1}
	}

	return policy.Pick(positions), nil
}
