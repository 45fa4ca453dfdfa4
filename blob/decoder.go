package blob

import (
	"fmt"

	"github.com/arloliu/metasteg/compress"
	"github.com/arloliu/metasteg/endian"
	"github.com/arloliu/metasteg/errs"
	"github.com/arloliu/metasteg/internal/encoding"
	"github.com/arloliu/metasteg/internal/hash"
	"github.com/arloliu/metasteg/section"
)

// Decoder reconstructs a payload from a framed offset blob and the reference
// buffer it was encoded against.
//
// The decoder never needs to know which occurrence the encoder picked: it
// only resolves positions back to reference bytes, so blobs from any
// selection policy decode identically.
//
// Decoding against a different reference than the one used for encode is not
// detectable in general; offsets may resolve to wrong-but-valid bytes
// silently. The header checksum (when present) catches most such mistakes,
// but supplying the same reference remains the caller's responsibility.
//
// Note: The Decoder is NOT thread-safe. Each decoder instance should be used
// by a single goroutine at a time.
type Decoder struct {
	data   []byte
	engine endian.EndianEngine
	codec  compress.Codec
	header section.Header
}

// NewDecoder creates a Decoder for the given framed blob.
//
// The header is parsed and validated (magic number, reserved bits, offset
// width, compression type) immediately; the offset payload is not touched
// until Decode is called.
//
// Parameters:
//   - data: Framed blob byte slice (must contain a valid header)
//
// Returns:
//   - *Decoder: New decoder instance ready for decoding
//   - error: Header parsing or validation error
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Flag.GetCompression())
	if err != nil {
		return nil, err
	}

	return &Decoder{
		data:   data,
		engine: header.GetEndianEngine(),
		codec:  codec,
		header: header,
	}, nil
}

// Header returns the parsed blob header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// PayloadLen returns the length in bytes of the payload this blob decodes to.
func (d *Decoder) PayloadLen() int {
	return int(d.header.OffsetCount)
}

// Decode resolves every offset in the blob against the reference buffer and
// returns the reconstructed payload, preserving order.
//
// Decoding is all-or-nothing. It fails with:
//   - an error matching errs.ErrMalformedBlob when the decompressed payload
//     is not a whole number of offsets or disagrees with the header count
//   - an error matching errs.ErrOffsetOutOfRange (carrying the offset, its
//     position in the blob, and the reference length) when an offset points
//     outside the reference
//   - an error matching errs.ErrChecksumMismatch when the header carries a
//     checksum and the reconstructed payload does not hash to it
func (d *Decoder) Decode(reference []byte) ([]byte, error) {
	offsetData, err := d.codec.Decompress(d.data[section.HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress offset payload: %w", err)
	}

	count, err := encoding.CountOffsets(offsetData)
	if err != nil {
		return nil, err
	}

	if count != int(d.header.OffsetCount) {
		return nil, fmt.Errorf("%w: header claims %d offsets, payload holds %d",
			errs.ErrMalformedBlob, d.header.OffsetCount, count)
	}

	payload := make([]byte, count)
	refLen := uint64(len(reference)) //nolint:gosec
	for i := range count {
		offset := encoding.OffsetAt(offsetData, i, d.engine)
		if uint64(offset) >= refLen {
			return nil, &errs.OffsetRangeError{
				Offset:       offset,
				BlobOffset:   i,
				ReferenceLen: len(reference),
			}
		}

		payload[i] = reference[offset]
	}

	if d.header.Flag.HasChecksum() {
		if sum := hash.Checksum(payload); sum != d.header.Checksum {
			return nil, fmt.Errorf("%w: header 0x%016x, payload 0x%016x; wrong reference buffer?",
				errs.ErrChecksumMismatch, d.header.Checksum, sum)
		}
	}

	return payload, nil
}
