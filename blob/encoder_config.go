package blob

import (
	"fmt"

	"github.com/arloliu/metasteg/compress"
	"github.com/arloliu/metasteg/endian"
	"github.com/arloliu/metasteg/format"
	"github.com/arloliu/metasteg/internal/options"
	"github.com/arloliu/metasteg/oracle"
	"github.com/arloliu/metasteg/section"
)

// EncoderConfig handles encoder configuration and shared state.
//
// Concrete encoding logic lives in Encoder; this struct owns the header
// being built, the endian engine, the payload codec, and the selection
// policy, and exposes the setters the functional options drive.
type EncoderConfig struct {
	header *section.Header
	engine endian.EndianEngine
	codec  compress.Codec
	policy oracle.SelectionPolicy
}

// NewEncoderConfig creates an EncoderConfig with library defaults:
// little-endian, no compression, checksum enabled, first-occurrence policy.
func NewEncoderConfig() *EncoderConfig {
	header := section.NewHeader()

	return &EncoderConfig{
		header: header,
		engine: header.GetEndianEngine(),
		policy: oracle.NewFirstOccurrence(),
	}
}

// setCompression sets the offset payload compression type.
func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.header.Flag.SetCompression(comp)
		return nil
	default:
		return fmt.Errorf("invalid compression: %v", comp)
	}
}

// setEndianess sets the endianness option.
func (c *EncoderConfig) setEndianess(endiness endianness) {
	if endiness == bigEndianOpt {
		c.header.Flag.WithBigEndian()
	} else {
		// Default to little-endian
		c.header.Flag.WithLittleEndian()
	}

	// Update the engine after changing endianness
	c.engine = c.header.GetEndianEngine()
}

// setChecksum enables or disables the payload checksum.
func (c *EncoderConfig) setChecksum(enabled bool) {
	c.header.Flag.SetChecksum(enabled)
}

// setPolicy sets the selection policy used to pick among occurrences.
func (c *EncoderConfig) setPolicy(policy oracle.SelectionPolicy) error {
	if policy == nil {
		return fmt.Errorf("selection policy must not be nil")
	}
	c.policy = policy

	return nil
}

// setCodec initializes the compression codec from the header configuration.
func (c *EncoderConfig) setCodec(header section.Header) error {
	var err error

	c.codec, err = compress.CreateCodec(header.Flag.GetCompression(), "offset payload")
	if err != nil {
		return fmt.Errorf("failed to create payload codec: %w", err)
	}

	return nil
}

type endianness uint8

const (
	littleEndianOpt endianness = 0
	bigEndianOpt    endianness = 1
)

// EncoderOption is a functional option for configuring Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression configures compression for the offset payload.
// Available compression types: format.CompressionNone, format.CompressionZstd,
// format.CompressionS2, format.CompressionLZ4.
// Default is format.CompressionNone, which keeps the payload byte-identical
// to the raw interop form.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		return cfg.setCompression(comp)
	})
}

// WithChecksum enables or disables the xxHash64 payload checksum in the
// header. Default is enabled; decode verifies it, which catches most
// wrong-reference decodes.
func WithChecksum(enabled bool) EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.setChecksum(enabled)
	})
}

// WithLittleEndian sets little-endian byte order for header fields and
// offsets. This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.setEndianess(littleEndianOpt)
	})
}

// WithBigEndian sets big-endian byte order for header fields and offsets.
func WithBigEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.setEndianess(bigEndianOpt)
	})
}

// WithSelectionPolicy configures the policy that picks among multiple
// occurrences of a byte value during encoding. Default is
// oracle.FirstOccurrence; use oracle.NewRandomOccurrence() to spread picks
// across occurrences. The policy never affects decode.
func WithSelectionPolicy(policy oracle.SelectionPolicy) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		return cfg.setPolicy(policy)
	})
}
