package blob

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/metasteg/errs"
	"github.com/arloliu/metasteg/internal/encoding"
	"github.com/arloliu/metasteg/internal/hash"
	"github.com/arloliu/metasteg/internal/options"
	"github.com/arloliu/metasteg/oracle"
	"github.com/arloliu/metasteg/section"
)

// Encoder transforms payload bytes into a framed offset blob against a
// reference buffer.
//
// Each payload byte is replaced by one position at which that byte value
// occurs in the reference, chosen by the configured selection policy. The
// resulting offset sequence is order-preserving and 1:1 with the payload;
// Finish frames it with the fixed header and optional compression.
//
// Encoding is all-or-nothing: a payload byte with no occurrence in the
// reference fails the Write that carries it and poisons the encoder, so no
// partial blob can be produced.
//
// Note: The Encoder is NOT thread-safe. Each encoder instance should be used
// by a single goroutine at a time.
//
// Note: The Encoder is NOT reusable. After calling Finish, a new encoder must
// be created for further encoding.
type Encoder struct {
	*EncoderConfig

	oracle        *oracle.Oracle
	offsetEncoder *encoding.OffsetRawEncoder
	digest        *xxhash.Digest

	written  int   // payload bytes transcoded so far
	failed   error // first transcode failure; poisons the encoder
	finished bool
}

// NewEncoder creates an Encoder over the given reference buffer.
//
// The reference is indexed once, in a single pass; the caller keeps ownership
// of the slice and must not mutate it until Finish returns. An empty
// reference is valid but can only encode an empty payload.
//
// Parameters:
//   - reference: Reference buffer the payload is encoded against
//   - opts: Optional configuration (compression, checksum, endianness,
//     selection policy)
//
// Returns:
//   - *Encoder: New encoder instance ready for payload writes
//   - error: Configuration error if invalid options provided
func NewEncoder(reference []byte, opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()

	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	if err := config.setCodec(*config.header); err != nil {
		return nil, err
	}

	return &Encoder{
		EncoderConfig: config,
		oracle:        oracle.New(reference),
		offsetEncoder: encoding.NewOffsetRawEncoder(config.engine),
		digest:        hash.NewDigest(),
	}, nil
}

// Write transcodes payload bytes into offsets, preserving order.
//
// Large payloads may be split across multiple Write calls; the blob is
// identical to a single-call encode, and a caller wanting cancellation can
// check a signal between chunks.
//
// On the first payload byte absent from the reference, Write fails with an
// error matching errs.ErrByteNotFound that carries the byte value and its
// absolute payload offset, and the encoder refuses further use; offsets
// already produced are discarded by Finish.
func (e *Encoder) Write(payload []byte) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if e.failed != nil {
		return fmt.Errorf("%w: encoder poisoned by earlier failure: %w", errs.ErrEncoderFinished, e.failed)
	}

	if uint64(e.written)+uint64(len(payload)) > math.MaxUint32 {
		e.failed = fmt.Errorf("payload exceeds %d bytes", math.MaxUint32)
		return e.failed
	}

	for k, b := range payload {
		pos, err := e.oracle.Pick(b, e.policy)
		if err != nil {
			e.failed = &errs.ByteNotFoundError{Byte: b, PayloadOffset: e.written + k}
			return fmt.Errorf("encode failed: %w", e.failed)
		}

		e.offsetEncoder.Write(pos)
	}

	e.digest.Write(payload) //nolint:errcheck // xxhash.Digest.Write never fails
	e.written += len(payload)

	return nil
}

// Finish completes the encoding and returns the final framed blob.
//
// An empty payload yields a header-only blob with offset count zero. After
// calling Finish, the encoder cannot be reused.
func (e *Encoder) Finish() ([]byte, error) {
	defer func() {
		e.finished = true
		if e.offsetEncoder != nil {
			e.offsetEncoder.Finish()
			e.offsetEncoder = nil
		}
	}()

	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	if e.failed != nil {
		return nil, fmt.Errorf("encode failed: %w", e.failed)
	}

	// Clone header for immutability
	header := *e.header
	header.OffsetCount = uint32(e.written) //nolint:gosec
	if header.Flag.HasChecksum() {
		header.Checksum = e.digest.Sum64()
	}

	compressed, err := e.codec.Compress(e.offsetEncoder.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress offset payload: %w", err)
	}

	// Allocate the exact-size final blob; no pooled buffer since this is
	// returned to the caller.
	blob := make([]byte, section.HeaderSize+len(compressed))
	n := copy(blob, header.Bytes())
	copy(blob[n:], compressed)

	return blob, nil
}
