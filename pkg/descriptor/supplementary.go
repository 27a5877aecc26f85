package descriptor

import (
	"bytes"
	"time"

	"github.com/rstms/iso9660ro/pkg/consts"
	"github.com/rstms/iso9660ro/pkg/directory"
	"github.com/rstms/iso9660ro/pkg/isoencoding"
)

// SupplementaryVolumeDescriptor has the same shape as the Primary
// descriptor plus an escape-sequences field that, when it matches one of
// the Joliet UCS-2 level escapes, marks the volume's identifiers as Joliet
// rather than plain d-characters.
type SupplementaryVolumeDescriptor struct {
	VolumeFlags            byte
	SystemIdentifier       string
	VolumeIdentifier       string
	EscapeSequences        [32]byte
	VolumeSpaceSize        uint32
	VolumeSetSize          uint16
	VolumeSequenceNumber   uint16
	LogicalBlockSize       uint16
	PathTableSize          uint32
	TypeLPathTableLocation uint32
	TypeMPathTableLocation uint32
	RootDirectoryRecord    *directory.Entry
	VolumeSetIdentifier    string
	PublisherIdentifier    string
	DataPreparerIdentifier string
	ApplicationIdentifier  string
	CopyrightFileID        string
	AbstractFileID         string
	BibliographicFileID    string
	CreationTime           time.Time
	ModificationTime       time.Time
	ExpirationTime         time.Time
	EffectiveTime          time.Time
	FileStructureVersion   byte
}

// HasJoliet reports whether the escape-sequences field (bytes 88..120 of
// the descriptor block) identifies one of the three Joliet UCS-2 levels.
func (s *SupplementaryVolumeDescriptor) HasJoliet() bool {
	seq := s.EscapeSequences[:3]
	return bytes.Equal(seq, []byte(consts.JolietLevel1Escape)) ||
		bytes.Equal(seq, []byte(consts.JolietLevel2Escape)) ||
		bytes.Equal(seq, []byte(consts.JolietLevel3Escape))
}

func parseSupplementary(block []byte) (*SupplementaryVolumeDescriptor, error) {
	volumeSpaceSize, err := isoencoding.BothEndian32(block[80:88])
	if err != nil {
		return nil, err
	}
	volumeSetSize, err := isoencoding.BothEndian16(block[120:124])
	if err != nil {
		return nil, err
	}
	volumeSeq, err := isoencoding.BothEndian16(block[124:128])
	if err != nil {
		return nil, err
	}
	blockSize, err := isoencoding.BothEndian16(block[128:132])
	if err != nil {
		return nil, err
	}
	pathTableSize, err := isoencoding.BothEndian32(block[132:140])
	if err != nil {
		return nil, err
	}
	typeL := leUint32(block[140:144])
	typeM := beUint32(block[148:152])

	var escape [32]byte
	copy(escape[:], block[88:120])

	tag := directory.ASCII
	if hasJolietEscape(escape) {
		tag = directory.Joliet
	}
	root, err := directory.DecodeEntry(block[156:190], tag)
	if err != nil {
		return nil, err
	}

	creation, err := isoencoding.DateTimeASCII(block[813:830])
	if err != nil {
		return nil, err
	}
	modification, err := isoencoding.DateTimeASCII(block[830:847])
	if err != nil {
		return nil, err
	}
	expiration, err := isoencoding.DateTimeASCII(block[847:864])
	if err != nil {
		return nil, err
	}
	effective, err := isoencoding.DateTimeASCII(block[864:881])
	if err != nil {
		return nil, err
	}

	ident := func(b []byte) string {
		if tag == directory.Joliet {
			s, derr := isoencoding.DecodeUCS2BigEndian(b)
			if derr == nil {
				return s
			}
		}
		return isoencoding.TrimmedASCII(b)
	}

	return &SupplementaryVolumeDescriptor{
		VolumeFlags:            block[7],
		SystemIdentifier:       ident(block[8:40]),
		VolumeIdentifier:       ident(block[40:72]),
		EscapeSequences:        escape,
		VolumeSpaceSize:        volumeSpaceSize,
		VolumeSetSize:          volumeSetSize,
		VolumeSequenceNumber:   volumeSeq,
		LogicalBlockSize:       blockSize,
		PathTableSize:          pathTableSize,
		TypeLPathTableLocation: typeL,
		TypeMPathTableLocation: typeM,
		RootDirectoryRecord:    root,
		VolumeSetIdentifier:    ident(block[190:318]),
		PublisherIdentifier:    ident(block[318:446]),
		DataPreparerIdentifier: ident(block[446:574]),
		ApplicationIdentifier:  ident(block[574:702]),
		CopyrightFileID:        ident(block[702:739]),
		AbstractFileID:         ident(block[739:776]),
		BibliographicFileID:    ident(block[776:813]),
		CreationTime:           creation,
		ModificationTime:       modification,
		ExpirationTime:         expiration,
		EffectiveTime:          effective,
		FileStructureVersion:   block[881],
	}, nil
}

func hasJolietEscape(escape [32]byte) bool {
	seq := escape[:3]
	return bytes.Equal(seq, []byte(consts.JolietLevel1Escape)) ||
		bytes.Equal(seq, []byte(consts.JolietLevel2Escape)) ||
		bytes.Equal(seq, []byte(consts.JolietLevel3Escape))
}
