package iso9660

import (
	"time"

	"github.com/rstms/iso9660ro/pkg/directory"
	"github.com/rstms/iso9660ro/pkg/blockio"
	"github.com/rstms/iso9660ro/pkg/filestream"
)

// Directory is a handle onto one directory's extent: its identifier,
// iteration, and block count. It owns a shared reference to the mount's
// device, not a private one.
type Directory struct {
	handle *directory.Handle
	record *directory.Entry
}

func (d *Directory) Identifier() string { return d.handle.Identifier() }

// BlockCount is ceil(extent length / 2048).
func (d *Directory) BlockCount() uint32 { return d.handle.BlockCount() }

// Contents returns a fresh iterator over this directory's entries.
func (d *Directory) Contents() *directory.Iterator { return d.handle.Contents() }

// Header returns the directory record that pointed to this directory (for
// the root, the root directory record embedded in the volume descriptor).
func (d *Directory) Header() *directory.Entry { return d.record }

// Entries returns a fresh EntryIterator producing Directory|File sum-typed
// children, letting a caller like a tree printer recurse without reaching
// into the lower-level directory package itself.
func (d *Directory) Entries() *EntryIterator {
	return &EntryIterator{it: d.handle.Contents(), tag: d.handle.Tag(), shared: d.handle.Shared()}
}

// EntryIterator wraps a directory.Iterator, building each Entry as
// Directory|File rather than a raw directory record.
type EntryIterator struct {
	it     *directory.Iterator
	tag    directory.Tag
	shared *blockio.Shared
}

func (ei *EntryIterator) Next() bool { return ei.it.Next() }
func (ei *EntryIterator) Err() error { return ei.it.Err() }

// Entry returns the entry decoded by the most recent successful Next.
func (ei *EntryIterator) Entry() *Entry {
	return buildEntry(ei.shared, ei.tag, ei.it.Entry())
}

// File is a handle onto one file's extent: identifier, version, and
// on-disk header, with Read opening a seekable byte stream over its bytes.
type File struct {
	shared     *blockio.Shared
	identifier string
	version    uint16
	header     *directory.Entry
}

func (f *File) Identifier() string       { return f.identifier }
func (f *File) Version() uint16          { return f.version }
func (f *File) Size() uint32             { return f.header.ExtentLength }
func (f *File) Time() time.Time          { return f.header.RecordingTime }
func (f *File) Header() *directory.Entry { return f.header }

// Read opens a fresh seekable stream over the file's bytes.
func (f *File) Read() *filestream.FileStream {
	return filestream.New(f.shared, f.header.ExtentLBA, f.header.ExtentLength)
}

// Entry is the closed Directory|File sum type Open resolves a path to.
// Exactly one of Directory or File is non-nil.
type Entry struct {
	Directory *Directory
	File      *File
}

func (e *Entry) IsDirectory() bool { return e.Directory != nil }

// Identifier returns the canonicalised on-disk name of whichever variant
// this entry holds.
func (e *Entry) Identifier() string {
	if e.Directory != nil {
		return e.Directory.Identifier()
	}
	return e.File.Identifier()
}

// Header returns the underlying directory record for whichever variant
// this entry holds.
func (e *Entry) Header() *directory.Entry {
	if e.Directory != nil {
		return e.Directory.Header()
	}
	return e.File.header
}
