// Package blockio provides the block-addressable reader capability every
// other package builds on: a 2048-byte-sector read primitive, and a
// pointer-shared handle that every directory/file derives from one
// underlying device while enforcing single-borrow access.
package blockio

import (
	"io"
	"sync"

	"github.com/rstms/iso9660ro/pkg/consts"
	"github.com/rstms/iso9660ro/pkg/isoerr"
)

// Reader is the capability the core requires of an injected block device:
// seek to an absolute byte offset, and read into a caller-owned buffer.
type Reader interface {
	io.Reader
	io.Seeker
}

// ReadBlock seeks to lba*2048 and fills buf completely from r. A short read
// is reported as isoerr.ReadSize, matching spec's "callers pass buffers
// whose length is a positive multiple of 2048" contract.
func ReadBlock(r Reader, buf []byte, lba uint32) error {
	if _, err := r.Seek(int64(lba)*consts.SectorSize, io.SeekStart); err != nil {
		return isoerr.Wrap(isoerr.Io, "seek to block", err)
	}
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return isoerr.ReadSizeErr(len(buf), n)
		}
		return isoerr.Wrap(isoerr.Io, "read block", err)
	}
	return nil
}

// Shared wraps a Reader behind a pointer that every directory/file handle
// copies cheaply (Go's GC already provides the "reference-counted owner"
// spec asks for), plus a single-entry borrow guard translating the original
// Rc<RefCell<T>> borrow-check into a Go idiom: a TryLock that panics on
// reentrant access rather than blocking, since the device is meant to be
// used strictly serially by one caller at a time.
type Shared struct {
	mu sync.Mutex
	r  Reader
}

// NewShared wraps reader in a Shared handle.
func NewShared(reader Reader) *Shared {
	return &Shared{r: reader}
}

// ReadBlock borrows the underlying reader for the duration of one block
// read. A reentrant call (the borrow already held) panics rather than
// deadlocks or silently serializes, per spec's single-threaded contract.
func (s *Shared) ReadBlock(buf []byte, lba uint32) error {
	if !s.mu.TryLock() {
		panic("blockio: reentrant borrow of shared reader")
	}
	defer s.mu.Unlock()
	return ReadBlock(s.r, buf, lba)
}
