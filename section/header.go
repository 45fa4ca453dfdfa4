// Package section defines the fixed header of the framed blob format and its
// wire constants.
//
// Framed blob layout:
//
//	bytes 0-1:  Options (packed flags and magic number, always little-endian)
//	byte  2:    offset width (4 in v1)
//	byte  3:    compression type
//	bytes 4-7:  offset count (uint32, header byte order)
//	bytes 8-15: payload checksum (xxHash64, header byte order; 0 when disabled)
//
// The raw interop format has no header at all; this package only concerns
// the framed form.
package section

import (
	"github.com/arloliu/metasteg/endian"
	"github.com/arloliu/metasteg/errs"
)

// Header represents the fixed-size header section at the start of a framed
// blob.
type Header struct {
	// Flag is the packed field for flags, offset width, compression and
	// magic number. byte offset 0-3
	Flag Flag

	// OffsetCount is the number of offsets in the payload, which equals the
	// decoded payload length in bytes. byte offset 4-7
	OffsetCount uint32

	// Checksum is the xxHash64 of the decoded payload bytes, or 0 when the
	// checksum flag is clear. byte offset 8-15
	Checksum uint64
}

// NewHeader creates a new Header with default flags. The offset count and
// checksum are set when the encoder finishes.
func NewHeader() *Header {
	return &Header{
		Flag: NewFlag(),
	}
}

// GetEndianEngine returns the endian engine for the header's multi-byte
// fields and its offset payload.
func (h *Header) GetEndianEngine() endian.EndianEngine {
	return h.Flag.GetEndianEngine()
}

// Parse parses the header from a byte slice.
//
// Returns ErrInvalidHeaderSize if data is not exactly HeaderSize bytes, or a
// flag validation error.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Parse Options first to determine endianness (the Options field itself
	// is always little-endian)
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.OffsetWidth = data[2]
	h.Flag.Compression = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.OffsetCount = engine.Uint32(data[4:8])
	h.Checksum = engine.Uint64(data[8:16])

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.OffsetWidth
	b[3] = h.Flag.Compression

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[4:8], h.OffsetCount)
	engine.PutUint64(b[8:16], h.Checksum)

	return b
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Returns ErrInvalidHeaderSize when data holds fewer than HeaderSize bytes.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
