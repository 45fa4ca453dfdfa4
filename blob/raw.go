package blob

import (
	"fmt"

	"github.com/arloliu/metasteg/endian"
	"github.com/arloliu/metasteg/errs"
	"github.com/arloliu/metasteg/internal/encoding"
	"github.com/arloliu/metasteg/oracle"
)

// The raw format is the cross-implementation interop constant: a headerless
// sequence of 4-byte little-endian unsigned offsets, one per payload byte.
// Anything that can serialize fixed-width integers can produce or consume it
// against the same reference buffer.

// EncodeRaw transforms a payload into the raw offset format against the
// given reference buffer.
//
// A nil policy defaults to oracle.FirstOccurrence. An empty payload encodes
// to an empty slice.
//
// Fails with an error matching errs.ErrByteNotFound, carrying the offending
// byte value and its payload offset, when a payload byte never occurs in the
// reference; no partial output is returned.
func EncodeRaw(payload, reference []byte, policy oracle.SelectionPolicy) ([]byte, error) {
	if policy == nil {
		policy = oracle.NewFirstOccurrence()
	}

	idx := oracle.New(reference)

	offsetEncoder := encoding.NewOffsetRawEncoder(endian.GetLittleEndianEngine())
	defer offsetEncoder.Finish()

	for k, b := range payload {
		pos, err := idx.Pick(b, policy)
		if err != nil {
			return nil, fmt.Errorf("encode failed: %w", &errs.ByteNotFoundError{Byte: b, PayloadOffset: k})
		}

		offsetEncoder.Write(pos)
	}

	// Copy out of the pooled buffer before Finish reclaims it.
	out := make([]byte, offsetEncoder.Size())
	copy(out, offsetEncoder.Bytes())

	return out, nil
}

// DecodeRaw resolves a raw offset blob against the reference buffer and
// returns the reconstructed payload.
//
// Fails with an error matching errs.ErrMalformedBlob when the blob length is
// not a multiple of the offset width, or errs.ErrOffsetOutOfRange when an
// offset points outside the reference.
func DecodeRaw(data, reference []byte) ([]byte, error) {
	count, err := encoding.CountOffsets(data)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	payload := make([]byte, count)
	refLen := uint64(len(reference))
	for i := range count {
		offset := encoding.OffsetAt(data, i, engine)
		if uint64(offset) >= refLen {
			return nil, &errs.OffsetRangeError{
				Offset:       offset,
				BlobOffset:   i,
				ReferenceLen: len(reference),
			}
		}

		payload[i] = reference[offset]
	}

	return payload, nil
}
