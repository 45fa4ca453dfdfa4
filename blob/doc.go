// Package blob implements the two wire forms of a metasteg offset blob and
// the transcoding between payload bytes and reference offsets.
//
// # Raw form
//
// The raw form is the interop constant: a headerless sequence of 4-byte
// little-endian unsigned offsets, one per payload byte. EncodeRaw and
// DecodeRaw produce and consume it directly.
//
// # Framed form
//
// The framed form prepends a fixed 16-byte header (magic number, offset
// width, compression type, offset count, optional xxHash64 payload checksum)
// and optionally compresses the offset payload. Encoder and Decoder handle
// it with functional options:
//
//	enc, _ := blob.NewEncoder(reference,
//	    blob.WithCompression(format.CompressionZstd),
//	    blob.WithSelectionPolicy(oracle.NewRandomOccurrence()),
//	)
//	_ = enc.Write(payload)
//	framed, _ := enc.Finish()
//
//	dec, _ := blob.NewDecoder(framed)
//	payload, _ := dec.Decode(reference)
//
// Both forms share the round-trip contract: for any reference R and payload
// P whose every byte occurs in R, decoding an encode of P against R yields P,
// regardless of the selection policy used on the encode side.
package blob
