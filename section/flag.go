package section

import (
	"github.com/arloliu/metasteg/endian"
	"github.com/arloliu/metasteg/errs"
	"github.com/arloliu/metasteg/format"
)

// Flag represents the packed flag fields at the start of the blob header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is the checksum flag, 0 means no payload checksum, 1 means the
	// header checksum field holds the xxHash64 of the decoded payload.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are a magic number identifying the blob format:
	//   - 0xEC10: framed offset blob format v1
	Options uint16

	// OffsetWidth is the serialized width of one offset in bytes.
	// Version 1 supports only OffsetWidth (4).
	OffsetWidth uint8

	// Compression indicates the compression applied to the offset payload.
	// Valid values: CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4
	Compression uint8
}

// NewFlag creates a Flag with default settings: v1 magic, checksum enabled,
// little-endian, 4-byte offsets, no compression.
func NewFlag() Flag {
	flag := Flag{
		Options:     MagicBlobV1Opt | ChecksumMask,
		OffsetWidth: OffsetWidth,
		Compression: uint8(format.CompressionNone),
	}
	flag.WithLittleEndian()

	return flag
}

// HasChecksum returns whether a payload checksum is present.
func (f Flag) HasChecksum() bool {
	return (f.Options & ChecksumMask) != 0
}

// SetChecksum enables or disables the payload checksum.
func (f *Flag) SetChecksum(enabled bool) {
	if enabled {
		f.Options |= ChecksumMask
	} else {
		f.Options &^= ChecksumMask
	}
}

// IsLittleEndian returns whether multi-byte header fields and offsets are
// little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether multi-byte header fields and offsets are
// big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number in the Options field is valid.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicBlobV1Opt
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// SetCompression sets the offset payload compression type.
func (f *Flag) SetCompression(compression format.CompressionType) {
	f.Compression = uint8(compression)
}

// GetCompression returns the offset payload compression type.
func (f Flag) GetCompression() format.CompressionType {
	return format.CompressionType(f.Compression)
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// Validate checks if the flag fields contain valid values.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagicNumber
	}

	// Check reserved bits are zero
	if (f.Options & ReservedBitsMask) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if f.OffsetWidth != OffsetWidth {
		return errs.ErrInvalidOffsetWidth
	}

	if _, ok := validCompressions[f.Compression]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
