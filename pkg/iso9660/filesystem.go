// Package iso9660 is the filesystem facade: mounting a block reader into
// volume descriptors and a root directory, and resolving slash-separated
// paths against it.
package iso9660

import (
	"strings"

	"github.com/rstms/iso9660ro/pkg/blockio"
	"github.com/rstms/iso9660ro/pkg/consts"
	"github.com/rstms/iso9660ro/pkg/descriptor"
	"github.com/rstms/iso9660ro/pkg/directory"
	"github.com/rstms/iso9660ro/pkg/isoerr"
	"github.com/rstms/iso9660ro/pkg/logging"
)

// Filesystem is a mounted ISO 9660 (optionally Joliet) image: one shared
// device reader plus the identifier dialect and root directory it settled
// on at mount time.
type Filesystem struct {
	shared *blockio.Shared
	tag    directory.Tag
	root   *Directory
	logger *logging.Logger
}

// Open mounts reader as an ISO 9660 image: it scans sectors 16.. for
// volume descriptors until the Set Terminator, retaining the last Primary
// and (when preferred and present) the first Joliet Supplementary, then
// builds the root directory handle from whichever descriptor was chosen.
func Open(reader blockio.Reader, opts ...Option) (*Filesystem, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	shared := blockio.NewShared(reader)
	buf := make([]byte, consts.SectorSize)

	var primary *descriptor.PrimaryVolumeDescriptor
	var joliet *descriptor.SupplementaryVolumeDescriptor

	lba := uint32(consts.SystemAreaSectors)
	count := 0

mountLoop:
	for {
		if count >= o.MountBound {
			return nil, isoerr.New(isoerr.InvalidFs, "volume descriptor set exceeds mount bound")
		}
		if err := shared.ReadBlock(buf, lba); err != nil {
			return nil, err
		}
		desc, err := descriptor.Parse(buf)
		if err != nil {
			return nil, err
		}
		count++

		switch desc.Type {
		case descriptor.TypePrimary:
			primary = desc.Primary
		case descriptor.TypeSupplementary:
			if desc.Supplementary.HasJoliet() && joliet == nil {
				joliet = desc.Supplementary
				o.Logger.Debug("found Joliet supplementary descriptor", "lba", lba)
			}
		case descriptor.TypeSetTerminator:
			break mountLoop
		}
		lba++
	}

	if primary == nil {
		return nil, isoerr.New(isoerr.InvalidFs, "Primary Volume Descriptor not found")
	}

	tag := directory.ASCII
	rootRecord := primary.RootDirectoryRecord
	if o.PreferJoliet && joliet != nil {
		tag = directory.Joliet
		rootRecord = joliet.RootDirectoryRecord
	}

	rootHandle := directory.NewHandle(shared, ".", rootRecord.ExtentLBA, rootRecord.ExtentLength, tag)
	root := &Directory{handle: rootHandle, record: rootRecord}

	o.Logger.Info("mounted image", "joliet", tag == directory.Joliet, "rootLBA", rootRecord.ExtentLBA)

	return &Filesystem{shared: shared, tag: tag, root: root, logger: o.Logger}, nil
}

// Root returns the mounted image's root directory handle.
func (fs *Filesystem) Root() *Directory { return fs.root }

// Open resolves a slash-separated path against the mounted image. Leading,
// trailing, and repeated slashes are silently normalised away by discarding
// empty path components. A missing path returns (nil, nil): it is not an
// error. Descending through a file component (not the last) also returns
// (nil, nil).
func (fs *Filesystem) Open(path string) (*Entry, error) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return &Entry{Directory: fs.root}, nil
	}

	current := fs.root
	for i, part := range parts {
		rec, err := current.handle.Find(part)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, nil
		}

		last := i == len(parts)-1
		if last {
			return fs.entryFromRecord(rec), nil
		}
		if !rec.IsDirectory() {
			return nil, nil
		}
		current = &Directory{
			handle: directory.NewHandle(fs.shared, rec.Identifier, rec.ExtentLBA, rec.ExtentLength, fs.tag),
			record: rec,
		}
	}
	return nil, nil
}

func (fs *Filesystem) entryFromRecord(rec *directory.Entry) *Entry {
	return buildEntry(fs.shared, fs.tag, rec)
}

// buildEntry wraps a decoded directory record as the Directory|File sum
// type, used both for path resolution and for Directory.Entries.
func buildEntry(shared *blockio.Shared, tag directory.Tag, rec *directory.Entry) *Entry {
	if rec.IsDirectory() {
		h := directory.NewHandle(shared, rec.Identifier, rec.ExtentLBA, rec.ExtentLength, tag)
		return &Entry{Directory: &Directory{handle: h, record: rec}}
	}
	return &Entry{File: &File{shared: shared, identifier: rec.Identifier, version: rec.Version, header: rec}}
}

// splitPath splits path on '/' and discards empty components, which
// normalises away leading slashes, trailing slashes, and runs of slashes.
func splitPath(path string) []string {
	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
