package descriptor

import (
	"time"

	"github.com/rstms/iso9660ro/pkg/directory"
	"github.com/rstms/iso9660ro/pkg/isoencoding"
)

// PrimaryVolumeDescriptor is the mandatory root metadata block at LBA 16.
type PrimaryVolumeDescriptor struct {
	SystemIdentifier       string
	VolumeIdentifier       string
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

func parsePrimary(block []byte) (*PrimaryVolumeDescriptor, error) {
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

	root, err := directory.DecodeEntry(block[156:190], directory.ASCII)
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

	return &PrimaryVolumeDescriptor{
		SystemIdentifier:       isoencoding.TrimmedASCII(block[8:40]),
		VolumeIdentifier:       isoencoding.TrimmedASCII(block[40:72]),
		VolumeSpaceSize:        volumeSpaceSize,
		VolumeSetSize:          volumeSetSize,
		VolumeSequenceNumber:   volumeSeq,
		LogicalBlockSize:       blockSize,
		PathTableSize:          pathTableSize,
		TypeLPathTableLocation: typeL,
		TypeMPathTableLocation: typeM,
		RootDirectoryRecord:    root,
		VolumeSetIdentifier:    isoencoding.TrimmedASCII(block[190:318]),
		PublisherIdentifier:    isoencoding.TrimmedASCII(block[318:446]),
		DataPreparerIdentifier: isoencoding.TrimmedASCII(block[446:574]),
		ApplicationIdentifier:  isoencoding.TrimmedASCII(block[574:702]),
		CopyrightFileID:        isoencoding.TrimmedASCII(block[702:739]),
		AbstractFileID:         isoencoding.TrimmedASCII(block[739:776]),
		BibliographicFileID:    isoencoding.TrimmedASCII(block[776:813]),
		CreationTime:           creation,
		ModificationTime:       modification,
		ExpirationTime:         expiration,
		EffectiveTime:          effective,
		FileStructureVersion:   block[881],
	}, nil
}
