// Package descriptor decodes ECMA-119 volume descriptors: the Primary,
// Boot Record, Supplementary/Joliet, and Set Terminator variants that make
// up the volume-descriptor set starting at LBA 16.
package descriptor

import (
	"github.com/rstms/iso9660ro/pkg/consts"
	"github.com/rstms/iso9660ro/pkg/isoerr"
)

// Type is the one-byte volume descriptor type code.
type Type byte

const (
	TypeBootRecord     Type = 0
	TypePrimary        Type = 1
	TypeSupplementary  Type = 2
	TypeSetTerminator  Type = 255
)

// Descriptor is the closed set of volume descriptors this reader
// recognises. At most one of the payload pointers is non-nil (a Set
// Terminator or an unrecognised type carries none), following spec's
// "prefer tagged unions over class hierarchies" guidance; the type code
// doubles as the discriminant so callers can switch on the Type field
// without a further type assertion in the common case.
type Descriptor struct {
	Type          Type
	Primary       *PrimaryVolumeDescriptor
	BootRecord    *BootRecordVolumeDescriptor
	Supplementary *SupplementaryVolumeDescriptor
}

// Parse reads the common 7-byte header (type, "CD001" tag, version) from a
// single 2048-byte block and dispatches to the type-specific decoder.
// Unrecognised type codes are reported via the Descriptor's Type field with
// all payload pointers nil; that is not an error (spec: "non-fatal").
func Parse(block []byte) (*Descriptor, error) {
	if len(block) < consts.SectorSize {
		return nil, isoerr.New(isoerr.ReadSize, "volume descriptor block too short")
	}

	t := Type(block[0])
	tag := string(block[1:6])
	if tag != consts.StandardIdentifier {
		return nil, isoerr.New(isoerr.InvalidFs, "volume descriptor: bad standard identifier tag")
	}

	switch t {
	case TypePrimary:
		pvd, err := parsePrimary(block)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Type: t, Primary: pvd}, nil
	case TypeSupplementary:
		svd, err := parseSupplementary(block)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Type: t, Supplementary: svd}, nil
	case TypeBootRecord:
		brd := parseBootRecord(block)
		return &Descriptor{Type: t, BootRecord: brd}, nil
	case TypeSetTerminator:
		return &Descriptor{Type: t}, nil
	default:
		return &Descriptor{Type: t}, nil
	}
}

// IsSetTerminator reports whether this descriptor ends the volume
// descriptor set.
func (d *Descriptor) IsSetTerminator() bool { return d.Type == TypeSetTerminator }
