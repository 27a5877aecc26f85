// Package consts holds the ECMA-119 on-disk constants shared across the
// encoding, descriptor, and directory packages.
package consts

const (
	// SectorSize is the fixed logical block size this reader assumes,
	// regardless of what the Primary Volume Descriptor's LogicalBlockSize
	// field reports.
	SectorSize = 2048

	// SystemAreaSectors is the number of reserved sectors (0-15) preceding
	// the volume descriptor set.
	SystemAreaSectors = 16

	// StandardIdentifier is the fixed 5-byte tag present in every volume
	// descriptor.
	StandardIdentifier = "CD001"

	// VolumeDescriptorVersion is the fixed version byte for ECMA-119
	// Primary/Boot/Supplementary/Terminator descriptors.
	VolumeDescriptorVersion = 1

	// VolumeDescriptorHeaderSize is the size, in bytes, of the type+tag+version
	// prefix common to every volume descriptor.
	VolumeDescriptorHeaderSize = 7

	// ApplicationUseSize is the size of the Primary Volume Descriptor's
	// Application Use field.
	ApplicationUseSize = 512

	// Joliet escape sequences identifying UCS-2 levels 1, 2, and 3.
	JolietLevel1Escape = "%/@"
	JolietLevel2Escape = "%/C"
	JolietLevel3Escape = "%/E"

	// ElToritoBootSystemID is the boot system identifier of an El Torito
	// boot record. The descriptor parser does not compare against it: every
	// Boot Record keeps its identifier and payload unparsed.
	ElToritoBootSystemID = "EL TORITO SPECIFICATION"

	// DCharacters is the restricted ECMA-119 identifier alphabet. The
	// directory decoder does not enforce it; non-Joliet identifiers are
	// accepted as any valid UTF-8.
	DCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_"

	// Filler is the ECMA-119 padding byte used in fixed-width string fields.
	Filler = ' '
)
