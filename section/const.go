package section

const (
	// Bit masks for the packed Options field
	ChecksumMask     = 0x0001 // Mask for checksum bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicBlobV1Opt is the version 1 magic number for the framed blob format
	// (bits 4-15 of the Options field).
	MagicBlobV1Opt = 0xEC10
)

// Fixed sizes of the wire formats
const (
	// HeaderSize is the fixed framed-blob header size in bytes.
	HeaderSize = 16

	// OffsetWidth is the serialized width of one reference offset in bytes.
	// This is the versioned interop constant shared by the raw and framed
	// formats: 4-byte unsigned integers address references up to 4GiB-1.
	OffsetWidth = 4
)
