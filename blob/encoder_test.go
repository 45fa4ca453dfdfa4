package blob

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metasteg/errs"
	"github.com/arloliu/metasteg/format"
	"github.com/arloliu/metasteg/oracle"
	"github.com/arloliu/metasteg/section"
)

func testReference() []byte {
	// Covers all 256 byte values so any payload encodes.
	reference := make([]byte, 0, 1024)
	for i := 0; i < 4; i++ {
		for v := 0; v < 256; v++ {
			reference = append(reference, byte(v))
		}
	}

	return reference
}

func TestEncoder_RoundTrip(t *testing.T) {
	reference := testReference()
	payload := []byte("the magic words are squeamish ossifrage\x00\xff\x80")

	encoder, err := NewEncoder(reference)
	require.NoError(t, err)
	require.NoError(t, encoder.Write(payload))

	framed, err := encoder.Finish()
	require.NoError(t, err)
	require.Equal(t, section.HeaderSize+len(payload)*section.OffsetWidth, len(framed))

	decoder, err := NewDecoder(framed)
	require.NoError(t, err)
	require.Equal(t, len(payload), decoder.PayloadLen())

	decoded, err := decoder.Decode(reference)
	require.NoError(t, err)
	require.Equal(t, payload, decoded)
}

func TestEncoder_RoundTripAllCompressions(t *testing.T) {
	reference := testReference()
	payload := bytes.Repeat([]byte("offset blobs compress well "), 100)

	for _, comp := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(comp.String(), func(t *testing.T) {
			encoder, err := NewEncoder(reference, WithCompression(comp))
			require.NoError(t, err)
			require.NoError(t, encoder.Write(payload))

			framed, err := encoder.Finish()
			require.NoError(t, err)

			decoder, err := NewDecoder(framed)
			require.NoError(t, err)
			require.Equal(t, comp, decoder.Header().Flag.GetCompression())

			decoded, err := decoder.Decode(reference)
			require.NoError(t, err)
			require.Equal(t, payload, decoded)
		})
	}
}

func TestEncoder_RoundTripBigEndian(t *testing.T) {
	reference := testReference()
	payload := []byte("big endian payload")

	encoder, err := NewEncoder(reference, WithBigEndian())
	require.NoError(t, err)
	require.NoError(t, encoder.Write(payload))

	framed, err := encoder.Finish()
	require.NoError(t, err)

	decoder, err := NewDecoder(framed)
	require.NoError(t, err)
	require.True(t, decoder.Header().Flag.IsBigEndian())

	decoded, err := decoder.Decode(reference)
	require.NoError(t, err)
	require.Equal(t, payload, decoded)
}

func TestEncoder_RoundTripRandomPolicy(t *testing.T) {
	reference := testReference()
	payload := bytes.Repeat([]byte{0xAA}, 256)

	encoder, err := NewEncoder(reference,
		WithSelectionPolicy(oracle.NewSeededRandomOccurrence(7)))
	require.NoError(t, err)
	require.NoError(t, encoder.Write(payload))

	framed, err := encoder.Finish()
	require.NoError(t, err)

	decoder, err := NewDecoder(framed)
	require.NoError(t, err)

	decoded, err := decoder.Decode(reference)
	require.NoError(t, err)
	require.Equal(t, payload, decoded)
}

func TestEncoder_ChunkedWritesMatchSingleWrite(t *testing.T) {
	reference := testReference()
	payload := []byte("chunked writes produce the identical blob")

	single, err := NewEncoder(reference)
	require.NoError(t, err)
	require.NoError(t, single.Write(payload))
	want, err := single.Finish()
	require.NoError(t, err)

	chunked, err := NewEncoder(reference)
	require.NoError(t, err)
	for _, chunk := range [][]byte{payload[:7], payload[7:20], payload[20:]} {
		require.NoError(t, chunked.Write(chunk))
	}
	got, err := chunked.Finish()
	require.NoError(t, err)

	require.Equal(t, want, got)
}

func TestEncoder_EmptyPayload(t *testing.T) {
	reference := testReference()

	encoder, err := NewEncoder(reference)
	require.NoError(t, err)

	framed, err := encoder.Finish()
	require.NoError(t, err)
	require.Len(t, framed, section.HeaderSize)

	decoder, err := NewDecoder(framed)
	require.NoError(t, err)
	require.Equal(t, 0, decoder.PayloadLen())

	decoded, err := decoder.Decode(reference)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestEncoder_ByteNotFoundPoisons(t *testing.T) {
	reference := []byte("abc")

	encoder, err := NewEncoder(reference)
	require.NoError(t, err)
	require.NoError(t, encoder.Write([]byte("ab")))

	err = encoder.Write([]byte("aXc"))
	require.ErrorIs(t, err, errs.ErrByteNotFound)

	var bnf *errs.ByteNotFoundError
	require.True(t, errors.As(err, &bnf))
	require.Equal(t, byte('X'), bnf.Byte)
	// Offset is absolute across Write calls: 2 bytes already written + 1.
	require.Equal(t, 3, bnf.PayloadOffset)

	// All-or-nothing: the poisoned encoder refuses further writes and Finish.
	require.ErrorIs(t, encoder.Write([]byte("a")), errs.ErrEncoderFinished)
	_, err = encoder.Finish()
	require.ErrorIs(t, err, errs.ErrByteNotFound)
}

func TestEncoder_WriteAfterFinish(t *testing.T) {
	encoder, err := NewEncoder([]byte("abc"))
	require.NoError(t, err)

	_, err = encoder.Finish()
	require.NoError(t, err)

	require.ErrorIs(t, encoder.Write([]byte("a")), errs.ErrEncoderFinished)

	_, err = encoder.Finish()
	require.ErrorIs(t, err, errs.ErrEncoderFinished)
}

func TestNewEncoder_InvalidOptions(t *testing.T) {
	_, err := NewEncoder(nil, WithCompression(format.CompressionType(0x7F)))
	require.Error(t, err)

	_, err = NewEncoder(nil, WithSelectionPolicy(nil))
	require.Error(t, err)
}
