package blob

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metasteg/errs"
	"github.com/arloliu/metasteg/format"
	"github.com/arloliu/metasteg/section"
)

// encodeFramed is a test helper producing a framed blob with defaults.
func encodeFramed(t *testing.T, payload, reference []byte, opts ...EncoderOption) []byte {
	t.Helper()

	encoder, err := NewEncoder(reference, opts...)
	require.NoError(t, err)
	require.NoError(t, encoder.Write(payload))

	framed, err := encoder.Finish()
	require.NoError(t, err)

	return framed
}

func TestNewDecoder_TooShort(t *testing.T) {
	_, err := NewDecoder(nil)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	_, err = NewDecoder(make([]byte, section.HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestNewDecoder_InvalidMagic(t *testing.T) {
	_, err := NewDecoder(make([]byte, section.HeaderSize))
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestNewDecoder_InvalidFlags(t *testing.T) {
	header := section.NewHeader()
	data := header.Bytes()
	data[2] = 8 // unsupported offset width

	_, err := NewDecoder(data)
	require.ErrorIs(t, err, errs.ErrInvalidOffsetWidth)
}

func TestDecoder_OffsetOutOfRange(t *testing.T) {
	reference := []byte("abcdefgh")
	framed := encodeFramed(t, []byte("hhh"), reference)

	// Decoding against a truncated reference turns valid offsets into
	// out-of-range ones.
	decoder, err := NewDecoder(framed)
	require.NoError(t, err)
	_, err = decoder.Decode(reference[:4])
	require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)

	var ore *errs.OffsetRangeError
	require.True(t, errors.As(err, &ore))
	require.Equal(t, uint32(7), ore.Offset) // 'h' first occurs at position 7
	require.Equal(t, 0, ore.BlobOffset)
	require.Equal(t, 4, ore.ReferenceLen)
}

func TestDecoder_MalformedPayloadLength(t *testing.T) {
	header := section.NewHeader()
	header.Flag.SetChecksum(false)
	header.OffsetCount = 1

	// Three payload bytes cannot hold a whole 4-byte offset.
	framed := append(header.Bytes(), 0x01, 0x00, 0x00)

	decoder, err := NewDecoder(framed)
	require.NoError(t, err)

	_, err = decoder.Decode([]byte("reference"))
	require.ErrorIs(t, err, errs.ErrMalformedBlob)
}

func TestDecoder_OffsetCountMismatch(t *testing.T) {
	header := section.NewHeader()
	header.Flag.SetChecksum(false)
	header.OffsetCount = 3

	// Payload holds one offset, header claims three.
	framed := append(header.Bytes(), 0x00, 0x00, 0x00, 0x00)

	decoder, err := NewDecoder(framed)
	require.NoError(t, err)

	_, err = decoder.Decode([]byte("reference"))
	require.ErrorIs(t, err, errs.ErrMalformedBlob)
}

func TestDecoder_ChecksumCatchesWrongReference(t *testing.T) {
	reference := []byte("correct horse battery staple")
	wrongRef := []byte("Correct Horse Battery Staple")

	framed := encodeFramed(t, []byte("crab"), reference)

	decoder, err := NewDecoder(framed)
	require.NoError(t, err)

	// Same length, all offsets in range, different bytes: only the checksum
	// notices.
	_, err = decoder.Decode(wrongRef)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestDecoder_NoChecksumDecodesWrongReferenceSilently(t *testing.T) {
	// The documented limitation: without the checksum, a wrong reference of
	// sufficient length yields wrong-but-valid bytes with no error.
	reference := []byte("correct horse battery staple")
	wrongRef := []byte("Correct Horse Battery Staple")

	framed := encodeFramed(t, []byte("crab"), reference, WithChecksum(false))

	decoder, err := NewDecoder(framed)
	require.NoError(t, err)

	decoded, err := decoder.Decode(wrongRef)
	require.NoError(t, err)
	require.NotEqual(t, []byte("crab"), decoded)
	require.Len(t, decoded, 4)
}

func TestDecoder_CorruptedCompressedPayload(t *testing.T) {
	reference := testReference()
	framed := encodeFramed(t, []byte("payload"), reference,
		WithCompression(format.CompressionZstd))

	// Flip bytes inside the compressed payload.
	corrupted := make([]byte, len(framed))
	copy(corrupted, framed)
	for i := section.HeaderSize; i < len(corrupted); i++ {
		corrupted[i] ^= 0xA5
	}

	decoder, err := NewDecoder(corrupted)
	require.NoError(t, err)

	_, err = decoder.Decode(reference)
	require.Error(t, err)
}
