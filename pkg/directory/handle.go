package directory

import (
	"github.com/rstms/iso9660ro/pkg/blockio"
	"github.com/rstms/iso9660ro/pkg/consts"
)

// Handle is a directory's identity: where its extent lives, how long it is,
// and which identifier dialect its records use. It owns a shared-reader
// reference rather than its own device handle, so every directory derived
// from one mount shares the same cursor.
type Handle struct {
	shared     *blockio.Shared
	identifier string
	startLBA   uint32
	length     uint32
	tag        Tag
}

// NewHandle builds a directory handle over the given extent.
func NewHandle(shared *blockio.Shared, identifier string, startLBA, length uint32, tag Tag) *Handle {
	return &Handle{shared: shared, identifier: identifier, startLBA: startLBA, length: length, tag: tag}
}

func (h *Handle) Identifier() string       { return h.identifier }
func (h *Handle) StartLBA() uint32         { return h.startLBA }
func (h *Handle) Length() uint32           { return h.length }
func (h *Handle) Tag() Tag                 { return h.tag }
func (h *Handle) Shared() *blockio.Shared { return h.shared }

// BlockCount is ceil(length / 2048).
func (h *Handle) BlockCount() uint32 {
	return (h.length + consts.SectorSize - 1) / consts.SectorSize
}

// Contents returns a fresh Iterator over this directory's entries. Calling
// it again after a previous Iterator is spent yields an independent walk
// from the start.
func (h *Handle) Contents() *Iterator {
	return newIterator(h.shared, h.startLBA, h.length, h.tag)
}

// Find advances a fresh Contents iterator until an entry's identifier
// equals name (case-sensitive; for Joliet, compared on decoded code
// points). A missing name is reported as (nil, nil): it is not an error.
func (h *Handle) Find(name string) (*Entry, error) {
	it := h.Contents()
	for it.Next() {
		if it.Entry().Identifier == name {
			return it.Entry(), nil
		}
	}
	if it.Err() != nil {
		return nil, it.Err()
	}
	return nil, nil
}
