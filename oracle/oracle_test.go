package oracle

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metasteg/errs"
)

func TestNew_PositionLists(t *testing.T) {
	// R = [0x41, 0x00, 0x41, 0xFF]: 0x41 -> [0, 2], 0x00 -> [1], 0xFF -> [3]
	reference := []byte{0x41, 0x00, 0x41, 0xFF}
	o := New(reference)

	require.Equal(t, []uint32{0, 2}, o.Positions(0x41))
	require.Equal(t, []uint32{1}, o.Positions(0x00))
	require.Equal(t, []uint32{3}, o.Positions(0xFF))
	require.Empty(t, o.Positions(0x10))
	require.Equal(t, 4, o.ReferenceLen())
}

func TestNew_Deterministic(t *testing.T) {
	reference := bytes.Repeat([]byte("the quick brown fox\x00\x01\x02"), 17)

	first := New(reference)
	second := New(reference)

	for v := 0; v < 256; v++ {
		require.Equal(t, first.Positions(byte(v)), second.Positions(byte(v)),
			"position list for value 0x%02x differs between builds", v)
	}
}

func TestNew_CoverageInvariant(t *testing.T) {
	// Every position in [0, L) must appear in exactly one list, under the
	// byte value at that position, in ascending order.
	reference := []byte("abracadabra\xff\x00\xff stegosaurus")
	o := New(reference)

	seen := make(map[uint32]bool, len(reference))
	total := 0
	for v := 0; v < 256; v++ {
		positions := o.Positions(byte(v))
		for i, pos := range positions {
			require.Less(t, int(pos), len(reference))
			require.Equal(t, byte(v), reference[pos])
			require.False(t, seen[pos], "position %d appears in more than one list", pos)
			seen[pos] = true
			if i > 0 {
				require.Greater(t, pos, positions[i-1], "positions for 0x%02x not ascending", v)
			}
		}
		total += len(positions)
	}

	require.Equal(t, len(reference), total)
}

func TestNew_EmptyReference(t *testing.T) {
	o := New(nil)

	require.Equal(t, 0, o.ReferenceLen())
	for v := 0; v < 256; v++ {
		require.Empty(t, o.Positions(byte(v)))
		require.False(t, o.Contains(byte(v)))
	}

	_, err := o.Pick(0x00, NewFirstOccurrence())
	require.ErrorIs(t, err, errs.ErrByteNotFound)
}

func TestOracle_Contains(t *testing.T) {
	o := New([]byte{0x41, 0x00})

	require.True(t, o.Contains(0x41))
	require.True(t, o.Contains(0x00))
	require.False(t, o.Contains(0xFF))
}

func TestOracle_Pick(t *testing.T) {
	o := New([]byte{0x41, 0x00, 0x41, 0xFF})

	pos, err := o.Pick(0x41, NewFirstOccurrence())
	require.NoError(t, err)
	require.Equal(t, uint32(0), pos)

	pos, err = o.Pick(0xFF, NewFirstOccurrence())
	require.NoError(t, err)
	require.Equal(t, uint32(3), pos)
}

func TestOracle_Pick_ByteNotFound(t *testing.T) {
	o := New([]byte{0x41, 0x00, 0x41, 0xFF})

	_, err := o.Pick(0x10, NewFirstOccurrence())
	require.ErrorIs(t, err, errs.ErrByteNotFound)

	var bnf *errs.ByteNotFoundError
	require.True(t, errors.As(err, &bnf))
	require.Equal(t, byte(0x10), bnf.Byte)
}
