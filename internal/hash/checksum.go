package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of the given payload bytes.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NewDigest creates a streaming xxHash64 digest for incremental checksums.
func NewDigest() *xxhash.Digest {
	return xxhash.New()
}
