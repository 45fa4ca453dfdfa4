package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metasteg/format"
)

// offsetPayload builds a representative payload: repeated little-endian
// offsets, the shape codecs see in practice.
func offsetPayload(n int) []byte {
	data := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		off := uint32(i % 97)
		data = append(data, byte(off), byte(off>>8), byte(off>>16), byte(off>>24))
	}

	return data
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := offsetPayload(4096)

	for _, comp := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(comp.String(), func(t *testing.T) {
			codec, err := GetCodec(comp)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, restored))
		})
	}
}

func TestCodecs_CompressibleInput(t *testing.T) {
	// Offset payloads repeat positions heavily; every real codec should
	// shrink this one.
	payload := offsetPayload(8192)

	for _, comp := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(comp)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), "%s did not compress", comp)
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, comp := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(comp)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestNoOpCompressor_Passthrough(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte{1, 2, 3, 4}

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, restored)
}

func TestCreateCodec_Invalid(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0x7F), "offset payload")
	require.Error(t, err)
	require.Contains(t, err.Error(), "offset payload")
}

func TestGetCodec_Invalid(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
}
