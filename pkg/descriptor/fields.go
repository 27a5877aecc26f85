package descriptor

import "encoding/binary"

// leUint32 and beUint32 read the Type L / Type M path table location
// fields, which unlike most numeric fields in the descriptor are stored in
// a single byte order rather than both-endian.
func leUint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func beUint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
