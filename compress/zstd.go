package compress

// ZstdCompressor compresses offset payloads with Zstandard, the best ratio of
// the supported codecs. Offset payloads repeat reference positions heavily,
// so Zstd routinely shrinks them below the original payload size.
//
// Two implementations back this type, selected by build tags:
//   - cgo builds use valyala/gozstd (libzstd bindings)
//   - non-cgo builds use klauspost/compress/zstd (pure Go)
//
// Both produce standard Zstandard frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
