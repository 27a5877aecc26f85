package descriptor

// BootRecordVolumeDescriptor preserves a Boot Record's payload without
// interpreting it; El Torito catalog parsing is out of scope (spec
// Non-goals), but the payload bytes are kept so a caller can hand them to
// something that does understand them.
type BootRecordVolumeDescriptor struct {
	BootSystemIdentifier string
	BootIdentifier       string
	BootSystemUse        [1977]byte
}

func parseBootRecord(block []byte) *BootRecordVolumeDescriptor {
	var payload [1977]byte
	copy(payload[:], block[71:2048])
	return &BootRecordVolumeDescriptor{
		BootSystemIdentifier: string(block[7:39]),
		BootIdentifier:       string(block[39:71]),
		BootSystemUse:        payload,
	}
}
