// Package helpers collects small byte/string utilities used by the
// encoding package.
package helpers

import "strings"

// PadString right-pads s with ASCII spaces to length, truncating if s is
// already longer. Nothing in this module calls it; the reader itself never
// writes ISO 9660 structures.
func PadString(s string, length int) []byte {
	b := make([]byte, length)
	copy(b, s)
	for i := len(s); i < length; i++ {
		b[i] = ' '
	}
	return b
}

// TrimmedASCII interprets data as ASCII and strips trailing spaces, the
// padding convention ECMA-119 uses for its fixed-width identifier fields.
func TrimmedASCII(data []byte) string {
	return strings.TrimRight(string(data), " ")
}
