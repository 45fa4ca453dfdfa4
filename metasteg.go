// Package metasteg transforms arbitrary payloads into offset blobs that are
// meaningless without a specific reference binary, and back.
//
// The scheme indexes every position of each byte value in a reference buffer
// (typically an image file), then replaces each payload byte with one
// position at which that byte value occurs. The resulting blob is a sequence
// of reference offsets: without the exact reference buffer it decodes to
// nothing useful, and with it, decoding is a plain position-to-byte lookup.
//
// This is obfuscation keyed on a shared binary, not encryption: anyone
// holding the reference can decode, and the scheme makes no integrity
// guarantees about the reference itself. Decoding against the wrong
// reference yields wrong-but-valid bytes; the framed format's payload
// checksum catches most such mistakes but correctness remains the caller's
// responsibility. A payload byte that never occurs in the reference is a
// hard encode failure, so rich references (photographs, compressed files)
// work best.
//
// # Basic Usage
//
// Encoding and decoding with the framed format:
//
//	import "github.com/arloliu/metasteg"
//
//	reference, _ := os.ReadFile("photo.jpg")
//	blob, err := metasteg.Encode(payload, reference)
//	if err != nil {
//	    // errors.Is(err, errs.ErrByteNotFound): pick a richer reference
//	}
//
//	decoded, err := metasteg.Decode(blob, reference)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob
// package, covering the common cases. For streaming encodes, custom
// selection policies, compression, and byte-order control, use the blob
// package directly; the oracle package exposes the underlying offset index.
package metasteg

import (
	"github.com/arloliu/metasteg/blob"
	"github.com/arloliu/metasteg/oracle"
)

// Encode transforms payload into a framed offset blob against the reference
// buffer, using library defaults: no compression, payload checksum enabled,
// deterministic first-occurrence selection.
//
// Additional options override the defaults.
func Encode(payload, reference []byte, opts ...blob.EncoderOption) ([]byte, error) {
	encoder, err := blob.NewEncoder(reference, opts...)
	if err != nil {
		return nil, err
	}

	if err := encoder.Write(payload); err != nil {
		return nil, err
	}

	return encoder.Finish()
}

// Decode reconstructs the payload from a framed offset blob and the same
// reference buffer used during encoding.
func Decode(data, reference []byte) ([]byte, error) {
	decoder, err := blob.NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(reference)
}

// EncodeRaw transforms payload into the headerless raw offset format
// (4-byte little-endian offsets, no compression, no checksum) with the
// deterministic first-occurrence policy.
func EncodeRaw(payload, reference []byte) ([]byte, error) {
	return blob.EncodeRaw(payload, reference, oracle.NewFirstOccurrence())
}

// DecodeRaw reconstructs the payload from a raw offset blob and the same
// reference buffer used during encoding.
func DecodeRaw(data, reference []byte) ([]byte, error) {
	return blob.DecodeRaw(data, reference)
}
