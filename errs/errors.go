// Package errs defines the sentinel and structured errors shared across the
// metasteg packages.
//
// Sentinel errors support errors.Is matching at API boundaries. The two
// structured types, ByteNotFoundError and OffsetRangeError, carry enough
// detail (byte value, payload offset, blob offset, reference bounds) for a
// caller to diagnose a failed transcode without re-running it; both match
// their sentinel via errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrByteNotFound indicates a payload byte value with zero occurrences in
	// the reference buffer. Deterministic for a given reference and payload;
	// retrying cannot succeed without changing the reference.
	ErrByteNotFound = errors.New("byte value not found in reference")

	// ErrOffsetOutOfRange indicates an encoded offset that points outside the
	// bounds of the reference buffer supplied to decode.
	ErrOffsetOutOfRange = errors.New("offset out of reference range")

	// ErrMalformedBlob indicates an offset payload whose byte length is not a
	// multiple of the offset width.
	ErrMalformedBlob = errors.New("malformed offset blob")

	// ErrInvalidHeaderSize indicates a framed blob shorter than its fixed header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber indicates a header whose magic bits do not match
	// any known blob format version.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderFlags indicates reserved header bits set, or an unknown
	// compression type in the header.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")

	// ErrInvalidOffsetWidth indicates a header offset width this version does
	// not support.
	ErrInvalidOffsetWidth = errors.New("invalid offset width")

	// ErrChecksumMismatch indicates a decoded payload whose checksum does not
	// match the one recorded in the header, usually a wrong reference buffer.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrEncoderFinished indicates a write to an encoder after Finish, or a
	// write after a failed Write poisoned the encoder.
	ErrEncoderFinished = errors.New("encoder already finished")
)

// ByteNotFoundError reports the exact payload byte that defeated an encode.
//
// PayloadOffset is -1 when the failure is raised by an oracle lookup that
// has no payload context.
type ByteNotFoundError struct {
	Byte          byte
	PayloadOffset int
}

func (e *ByteNotFoundError) Error() string {
	if e.PayloadOffset < 0 {
		return fmt.Sprintf("%v: byte 0x%02x", ErrByteNotFound, e.Byte)
	}

	return fmt.Sprintf("%v: byte 0x%02x at payload offset %d", ErrByteNotFound, e.Byte, e.PayloadOffset)
}

func (e *ByteNotFoundError) Unwrap() error {
	return ErrByteNotFound
}

// OffsetRangeError reports an out-of-bounds offset hit during decode.
//
// BlobOffset is the element index of the offending offset within the blob,
// not its byte position.
type OffsetRangeError struct {
	Offset       uint32
	BlobOffset   int
	ReferenceLen int
}

func (e *OffsetRangeError) Error() string {
	return fmt.Sprintf("%v: offset %d at blob offset %d, reference length %d",
		ErrOffsetOutOfRange, e.Offset, e.BlobOffset, e.ReferenceLen)
}

func (e *OffsetRangeError) Unwrap() error {
	return ErrOffsetOutOfRange
}
