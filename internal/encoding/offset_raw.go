// Package encoding implements the fixed-width serialization of reference
// offsets shared by the raw and framed blob formats.
package encoding

import (
	"fmt"

	"github.com/arloliu/metasteg/endian"
	"github.com/arloliu/metasteg/errs"
	"github.com/arloliu/metasteg/internal/pool"
	"github.com/arloliu/metasteg/section"
)

// OffsetRawEncoder serializes reference offsets as fixed-width unsigned
// integers using direct buffer operations.
//
// Each offset occupies exactly section.OffsetWidth bytes in the byte order of
// the engine supplied at construction, with an amortized buffer growth
// strategy for repeated writes.
type OffsetRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

// NewOffsetRawEncoder creates a new offset encoder using the specified
// endian engine. The encoder draws its buffer from the shared pool; call
// Finish to return it.
func NewOffsetRawEncoder(engine endian.EndianEngine) *OffsetRawEncoder {
	return &OffsetRawEncoder{
		engine: engine,
		buf:    pool.GetBlobBuffer(),
	}
}

// Write encodes a single offset with amortized buffer growth.
//
// Panics if Finish() has been called (nil buffer).
func (e *OffsetRawEncoder) Write(offset uint32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.B = e.engine.AppendUint32(e.buf.B, offset)
}

// WriteSlice encodes a slice of offsets with a single buffer pre-allocation.
//
// Pre-grows the buffer by len(offsets) x section.OffsetWidth bytes, then
// writes each offset directly into the extended region, avoiding the
// per-element capacity checks of repeated Write calls.
//
// Panics if Finish() has been called (nil buffer).
func (e *OffsetRawEncoder) WriteSlice(offsets []uint32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	n := len(offsets)
	e.count += n

	if n == 0 {
		return
	}

	startIdx := e.buf.Len()
	e.buf.ExtendOrGrow(n * section.OffsetWidth)

	for i, off := range offsets {
		pos := startIdx + i*section.OffsetWidth
		e.engine.PutUint32(e.buf.Slice(pos, pos+section.OffsetWidth), off)
	}
}

// Bytes returns the serialized offsets accumulated so far.
//
// The returned slice references the internal buffer; it is valid until the
// next Write, WriteSlice or Finish call and must not be modified.
//
// Panics if Finish() has been called (nil buffer).
func (e *OffsetRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of offsets written.
func (e *OffsetRawEncoder) Len() int {
	return e.count
}

// Size returns the serialized size in bytes.
func (e *OffsetRawEncoder) Size() int {
	return e.count * section.OffsetWidth
}

// Finish returns the internal buffer to the pool. The encoder cannot be used
// afterwards.
func (e *OffsetRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutBlobBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// CountOffsets validates that data is a whole number of serialized offsets
// and returns that number.
//
// Returns errs.ErrMalformedBlob (with the actual length) when the byte
// length is not a multiple of section.OffsetWidth.
func CountOffsets(data []byte) (int, error) {
	if len(data)%section.OffsetWidth != 0 {
		return 0, fmt.Errorf("%w: length %d is not a multiple of offset width %d",
			errs.ErrMalformedBlob, len(data), section.OffsetWidth)
	}

	return len(data) / section.OffsetWidth, nil
}

// OffsetAt deserializes the i-th offset of data without bounds checking
// beyond the slice expression itself. Callers validate via CountOffsets
// first.
func OffsetAt(data []byte, i int, engine endian.EndianEngine) uint32 {
	pos := i * section.OffsetWidth
	return engine.Uint32(data[pos : pos+section.OffsetWidth])
}
