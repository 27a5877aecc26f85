package iso9660

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/rstms/iso9660ro/pkg/consts"
	"github.com/stretchr/testify/require"
)

// buildRecord encodes one directory record; mirrors pkg/directory's test
// helper since that one is unexported.
func buildRecord(idBytes []byte, isDir bool, extentLBA, extentLength uint32) []byte {
	idLen := len(idBytes)
	total := 33 + idLen
	if total%2 != 0 {
		total++
	}
	b := make([]byte, total)
	b[0] = byte(total)
	binary.LittleEndian.PutUint32(b[2:6], extentLBA)
	binary.BigEndian.PutUint32(b[6:10], extentLBA)
	binary.LittleEndian.PutUint32(b[10:14], extentLength)
	binary.BigEndian.PutUint32(b[14:18], extentLength)
	if isDir {
		b[25] = 2
	}
	binary.LittleEndian.PutUint16(b[28:30], 1)
	binary.BigEndian.PutUint16(b[30:32], 1)
	b[32] = byte(idLen)
	copy(b[33:33+idLen], idBytes)
	return b
}

func putBothEndian32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
	binary.BigEndian.PutUint32(b[off+4:off+8], v)
}

func putBothEndian16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
	binary.BigEndian.PutUint16(b[off+2:off+4], v)
}

// buildImage lays out a minimal but complete image: Primary Volume
// Descriptor at LBA 16, a Set Terminator at LBA 17, root directory at
// LBA 18 (self, parent, file "A.TXT", subdirectory "SUB"), the file's
// bytes at LBA 19, and SUB's own directory block at LBA 20 containing a
// file "B.TXT" whose bytes live at LBA 21.
func buildImage(t *testing.T) []byte {
	t.Helper()
	totalSectors := 22
	img := make([]byte, totalSectors*consts.SectorSize)

	block := func(lba int) []byte {
		return img[lba*consts.SectorSize : (lba+1)*consts.SectorSize]
	}

	// Primary Volume Descriptor at LBA 16.
	pvd := block(16)
	pvd[0] = 1
	copy(pvd[1:6], consts.StandardIdentifier)
	pvd[6] = 1
	copy(pvd[8:40], "SYSID")
	copy(pvd[40:72], "VOLID")
	putBothEndian32(pvd, 80, uint32(totalSectors))
	putBothEndian16(pvd, 128, consts.SectorSize)
	pvd[156] = 34
	putBothEndian32(pvd, 156+2, 18)
	putBothEndian32(pvd, 156+10, consts.SectorSize)
	pvd[156+25] = 2
	putBothEndian16(pvd, 156+28, 1)
	pvd[156+32] = 1
	pvd[156+33] = 0x00
	for i := 813; i < 881; i += 17 {
		copy(pvd[i:i+16], "0000000000000000")
	}

	// Set Terminator at LBA 17.
	term := block(17)
	term[0] = 255
	copy(term[1:6], consts.StandardIdentifier)
	term[6] = 1

	// Root directory at LBA 18.
	root := block(18)
	off := 0
	for _, rec := range [][]byte{
		buildRecord([]byte{0x00}, true, 18, consts.SectorSize),
		buildRecord([]byte{0x01}, true, 18, consts.SectorSize),
		buildRecord([]byte("A.TXT;1"), false, 19, 11),
		buildRecord([]byte("SUB"), true, 20, consts.SectorSize),
	} {
		copy(root[off:], rec)
		off += len(rec)
	}

	copy(block(19), []byte("hello world"))

	// SUB directory at LBA 20.
	sub := block(20)
	off = 0
	for _, rec := range [][]byte{
		buildRecord([]byte{0x00}, true, 20, consts.SectorSize),
		buildRecord([]byte{0x01}, true, 18, consts.SectorSize),
		buildRecord([]byte("B.TXT;1"), false, 21, 5),
	} {
		copy(sub[off:], rec)
		off += len(rec)
	}

	copy(block(21), []byte("bytes"))

	return img
}

func TestOpenMountsAndListsRoot(t *testing.T) {
	img := buildImage(t)
	fs, err := Open(bytes.NewReader(img))
	require.NoError(t, err)

	var names []string
	it := fs.Root().Contents()
	for it.Next() {
		names = append(names, it.Entry().Identifier)
	}
	require.NoError(t, it.Err())
	require.Equal(t, []string{".", "..", "A.TXT", "SUB"}, names)
}

func TestOpenResolvesNestedFile(t *testing.T) {
	img := buildImage(t)
	fs, err := Open(bytes.NewReader(img))
	require.NoError(t, err)

	entry, err := fs.Open("SUB/B.TXT")
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.False(t, entry.IsDirectory())
	require.Equal(t, "B.TXT", entry.File.Identifier())
	require.Equal(t, uint32(5), entry.File.Size())

	buf := make([]byte, 5)
	n, err := entry.File.Read().Read(buf)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "bytes", string(buf))
}

func TestOpenNormalisesPaths(t *testing.T) {
	img := buildImage(t)
	fs, err := Open(bytes.NewReader(img))
	require.NoError(t, err)

	variants := []string{"SUB/B.TXT", "///SUB/B.TXT", "SUB/B.TXT///", "SUB//B.TXT", "/SUB//B.TXT////"}
	var first *Entry
	for _, p := range variants {
		e, err := fs.Open(p)
		require.NoError(t, err)
		require.NotNil(t, e)
		if first == nil {
			first = e
		} else {
			require.Equal(t, first.Identifier(), e.Identifier())
		}
	}
}

func TestOpenMissingPathReturnsNil(t *testing.T) {
	img := buildImage(t)
	fs, err := Open(bytes.NewReader(img))
	require.NoError(t, err)

	e, err := fs.Open("no/such/file")
	require.NoError(t, err)
	require.Nil(t, e)
}

func TestOpenDescendingIntoFileFails(t *testing.T) {
	img := buildImage(t)
	fs, err := Open(bytes.NewReader(img))
	require.NoError(t, err)

	e, err := fs.Open("A.TXT/nope")
	require.NoError(t, err)
	require.Nil(t, e)
}

func TestOpenRootDirectoryEmptyPath(t *testing.T) {
	img := buildImage(t)
	fs, err := Open(bytes.NewReader(img))
	require.NoError(t, err)

	e, err := fs.Open("")
	require.NoError(t, err)
	require.True(t, e.IsDirectory())
	require.Equal(t, ".", e.Identifier())
}

func TestDirectoryEntriesRecurse(t *testing.T) {
	img := buildImage(t)
	fs, err := Open(bytes.NewReader(img))
	require.NoError(t, err)

	var names []string
	it := fs.Root().Entries()
	for it.Next() {
		e := it.Entry()
		if e.Identifier() == "." || e.Identifier() == ".." {
			continue
		}
		names = append(names, e.Identifier())
		if e.IsDirectory() {
			sub := e.Directory.Entries()
			for sub.Next() {
				se := sub.Entry()
				if se.Identifier() != "." && se.Identifier() != ".." {
					names = append(names, se.Identifier())
				}
			}
			require.NoError(t, sub.Err())
		}
	}
	require.NoError(t, it.Err())
	require.Equal(t, []string{"A.TXT", "SUB", "B.TXT"}, names)
}

func TestOpenMissingPrimaryIsInvalidFs(t *testing.T) {
	// A Set Terminator at LBA 16 with no Primary before it.
	img := make([]byte, 18*consts.SectorSize)
	term := img[16*consts.SectorSize : 17*consts.SectorSize]
	term[0] = 255
	copy(term[1:6], consts.StandardIdentifier)
	term[6] = 1
	_, err := Open(bytes.NewReader(img))
	require.Error(t, err)
	var isoErr *Error
	require.ErrorAs(t, err, &isoErr)
	require.Equal(t, KindInvalidFs, isoErr.Kind)
}
