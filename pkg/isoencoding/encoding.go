// Package isoencoding decodes the byte-level primitives ECMA-119 builds
// every larger structure from: both-endian integers, the two on-disk
// timestamp formats, UCS-2 identifiers, and fixed-width trimmed strings.
// It is decode-only; this reader never writes ISO 9660 structures.
package isoencoding

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/rstms/iso9660ro/pkg/helpers"
	"github.com/rstms/iso9660ro/pkg/isoerr"
)

// BothEndian16 reads a 4-byte both-endian field: little-endian uint16
// followed by its big-endian twin. The big-endian half is not validated
// against the little-endian half; real-world images occasionally disagree
// in the high bits and the little-endian half is authoritative.
func BothEndian16(data []byte) (uint16, error) {
	if len(data) < 4 {
		return 0, isoerr.New(isoerr.Parse, "both-endian16: short field")
	}
	return binary.LittleEndian.Uint16(data[0:2]), nil
}

// BothEndian32 reads an 8-byte both-endian field analogous to BothEndian16.
func BothEndian32(data []byte) (uint32, error) {
	if len(data) < 8 {
		return 0, isoerr.New(isoerr.Parse, "both-endian32: short field")
	}
	return binary.LittleEndian.Uint32(data[0:4]), nil
}

// RecordingDateTime decodes the 7-byte directory-record timestamp: year
// since 1900, month, day, hour, minute, second, and a signed count of
// 15-minute GMT offset units. An all-zero record, ECMA-119's "not
// specified" convention, yields the zero time.Time (IsZero reports true).
func RecordingDateTime(b []byte) (time.Time, error) {
	if len(b) < 7 {
		return time.Time{}, isoerr.New(isoerr.Parse, "recording date/time: short field")
	}
	allZero := true
	for _, v := range b[:7] {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return time.Time{}, nil
	}

	year := int(b[0]) + 1900
	month := time.Month(b[1])
	day := int(b[2])
	hour := int(b[3])
	minute := int(b[4])
	second := int(b[5])
	offset15 := int8(b[6])
	offsetSec := int(offset15) * 15 * 60

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, isoerr.New(isoerr.InvalidFs, "recording date/time: component out of range")
	}

	loc := time.FixedZone("", offsetSec)
	return time.Date(year, month, day, hour, minute, second, 0, loc), nil
}

// DateTimeASCII decodes the 17-byte volume-descriptor timestamp: four ASCII
// digit year, then two-digit month/day/hour/minute/second/hundredths, then
// a signed byte GMT offset in 15-minute units. Trailing whitespace in any
// numeric field is treated as zero, and an all-'0' field with a zero offset
// is the unspecified/zero time.
func DateTimeASCII(b []byte) (time.Time, error) {
	if len(b) < 17 {
		return time.Time{}, isoerr.New(isoerr.Parse, "ascii date/time: short field")
	}

	allZero := true
	for _, c := range b[:16] {
		if c != '0' {
			allZero = false
			break
		}
	}
	if allZero && b[16] == 0 {
		return time.Time{}, nil
	}

	field := func(s string) (int, error) {
		s = strings.TrimRight(s, " \x00")
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, isoerr.Wrap(isoerr.ParseInt, "ascii date/time field", err)
		}
		return n, nil
	}

	s := string(b[:16])
	year, err := field(s[0:4])
	if err != nil {
		return time.Time{}, err
	}
	month, err := field(s[4:6])
	if err != nil {
		return time.Time{}, err
	}
	day, err := field(s[6:8])
	if err != nil {
		return time.Time{}, err
	}
	hour, err := field(s[8:10])
	if err != nil {
		return time.Time{}, err
	}
	minute, err := field(s[10:12])
	if err != nil {
		return time.Time{}, err
	}
	second, err := field(s[12:14])
	if err != nil {
		return time.Time{}, err
	}
	hundredths, err := field(s[14:16])
	if err != nil {
		return time.Time{}, err
	}

	offset15 := int8(b[16])
	offsetSec := int(offset15) * 15 * 60
	loc := time.FixedZone("", offsetSec)

	if month == 0 || day == 0 {
		return time.Time{}, nil
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, hundredths*10_000_000, loc), nil
}

// DecodeUCS2BigEndian converts Joliet's big-endian UCS-2 identifier bytes
// into a Go string. An odd byte length is a structural error.
func DecodeUCS2BigEndian(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", isoerr.New(isoerr.InvalidFs, "joliet identifier: odd byte length")
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return string(utf16.Decode(units)), nil
}

// TrimmedASCII reads a fixed-width field and strips trailing padding.
func TrimmedASCII(data []byte) string {
	return helpers.TrimmedASCII(data)
}
