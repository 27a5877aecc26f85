// Package directory decodes ECMA-119 directory records and walks directory
// extents, handling the block-boundary and identifier-decoding rules the
// two on-disk identifier dialects (plain ASCII d-characters and Joliet
// UCS-2) require.
package directory

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rstms/iso9660ro/pkg/isoencoding"
	"github.com/rstms/iso9660ro/pkg/isoerr"
)

// Tag selects how an extent's identifiers are decoded: 7-bit ASCII
// d-characters for a Primary-rooted directory, or big-endian UCS-2 for a
// Joliet-rooted one. It rides on every Iterator and Handle rather than
// being dispatched dynamically, keeping the decode path monomorphic.
type Tag int

const (
	ASCII Tag = iota
	Joliet
)

// Flags is the file-flags bitmap from byte 25 of the directory record.
type Flags byte

const (
	FlagHidden      Flags = 1 << 0
	FlagDirectory   Flags = 1 << 1
	FlagAssociated  Flags = 1 << 2
	FlagRecord      Flags = 1 << 3
	FlagProtection  Flags = 1 << 4
	FlagMultiExtent Flags = 1 << 7
)

func (f Flags) IsDirectory() bool { return f&FlagDirectory != 0 }
func (f Flags) IsHidden() bool    { return f&FlagHidden != 0 }
func (f Flags) IsMultiExtent() bool {
	return f&FlagMultiExtent != 0
}

// Entry is one decoded directory record, with its identifier already
// canonicalised per spec: "." / ".." for the dot entries, and for files the
// ";version" suffix stripped (defaulting to version 1) and a bare trailing
// dot removed when there is no extension.
type Entry struct {
	Length               byte
	ExtendedAttrLength    byte
	ExtentLBA             uint32
	ExtentLength          uint32
	RecordingTime         time.Time
	Flags                 Flags
	FileUnitSize          byte
	InterleaveGap         byte
	VolumeSequenceNumber  uint16
	Identifier            string
	Version               uint16
}

func (e *Entry) IsDirectory() bool { return e.Flags.IsDirectory() }

// minRecordSize is the fixed 33-byte prefix preceding the identifier.
const minRecordSize = 33

// DecodeEntry parses a single directory record from data, such as the root
// directory record embedded in a volume descriptor. It is exported for
// pkg/descriptor; directory extent traversal uses the unexported form via
// Iterator.
func DecodeEntry(data []byte, tag Tag) (*Entry, error) {
	return decodeEntry(data, tag)
}

// decodeEntry parses one directory record from data, which must hold at
// least the record's declared length (data[0]). tag selects the identifier
// dialect.
func decodeEntry(data []byte, tag Tag) (*Entry, error) {
	length := data[0]
	if length < minRecordSize {
		return nil, isoerr.New(isoerr.InvalidFs, "directory record length < 33")
	}
	if int(length) > len(data) {
		return nil, isoerr.New(isoerr.InvalidFs, "directory record crosses block boundary")
	}

	extentLBA, err := isoencoding.BothEndian32(data[2:10])
	if err != nil {
		return nil, err
	}
	extentLength, err := isoencoding.BothEndian32(data[10:18])
	if err != nil {
		return nil, err
	}
	recTime, err := isoencoding.RecordingDateTime(data[18:25])
	if err != nil {
		return nil, err
	}
	flags := Flags(data[25])
	fileUnitSize := data[26]
	interleaveGap := data[27]
	volSeq, err := isoencoding.BothEndian16(data[28:32])
	if err != nil {
		return nil, err
	}
	idLength := int(data[32])
	if 33+idLength > int(length) {
		return nil, isoerr.New(isoerr.InvalidFs, "directory record identifier exceeds record length")
	}
	idBytes := data[33 : 33+idLength]

	identifier, version, err := decodeIdentifier(idBytes, flags, tag)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Length:               length,
		ExtendedAttrLength:   data[1],
		ExtentLBA:            extentLBA,
		ExtentLength:         extentLength,
		RecordingTime:        recTime,
		Flags:                flags,
		FileUnitSize:         fileUnitSize,
		InterleaveGap:        interleaveGap,
		VolumeSequenceNumber: volSeq,
		Identifier:           identifier,
		Version:              version,
	}, nil
}

// decodeIdentifier applies the dot-entry rewrite, the ASCII/Joliet dialect
// decode, and for files the ";version" / trailing-dot canonicalisation.
func decodeIdentifier(idBytes []byte, flags Flags, tag Tag) (string, uint16, error) {
	if len(idBytes) == 1 {
		switch idBytes[0] {
		case 0x00:
			return ".", 1, nil
		case 0x01:
			return "..", 1, nil
		}
	}

	var raw string
	var err error
	if tag == Joliet {
		raw, err = isoencoding.DecodeUCS2BigEndian(idBytes)
		if err != nil {
			return "", 0, err
		}
	} else {
		raw = string(idBytes)
		if !utf8.ValidString(raw) {
			return "", 0, isoerr.New(isoerr.Utf8, "directory identifier is not valid UTF-8")
		}
	}

	if flags.IsDirectory() {
		return raw, 1, nil
	}

	return canonicalizeFileIdentifier(raw)
}

// canonicalizeFileIdentifier strips the ";version" suffix (defaulting to
// version 1 when absent) and a bare trailing dot when the remaining stem
// has no extension.
func canonicalizeFileIdentifier(raw string) (string, uint16, error) {
	name := raw
	version := uint16(1)

	if i := strings.LastIndexByte(name, ';'); i >= 0 {
		verStr := name[i+1:]
		name = name[:i]
		if verStr != "" {
			v, err := strconv.Atoi(verStr)
			if err != nil {
				return "", 0, isoerr.Wrap(isoerr.ParseInt, "file version suffix", err)
			}
			if v < 1 || v > 32767 {
				return "", 0, isoerr.New(isoerr.ParseInt, "file version out of range")
			}
			version = uint16(v)
		}
	}

	if strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}

	return name, version, nil
}
