// Package filestream provides a seekable byte reader over one ISO 9660
// file extent: byte offsets are translated to block-aligned device reads
// through a single 2048-byte cache, bounded by the extent's declared size.
package filestream

import (
	"io"

	"github.com/rstms/iso9660ro/pkg/blockio"
	"github.com/rstms/iso9660ro/pkg/consts"
)

// FileStream implements io.Reader and io.Seeker over a contiguous extent.
type FileStream struct {
	shared   *blockio.Shared
	startLBA uint32
	size     uint32
	cursor   int64

	cached   bool
	cacheLBA uint32
	buf      [consts.SectorSize]byte
}

// New builds a FileStream over the extent starting at startLBA and
// spanning size bytes.
func New(shared *blockio.Shared, startLBA, size uint32) *FileStream {
	return &FileStream{shared: shared, startLBA: startLBA, size: size}
}

// Size returns the extent's declared byte length.
func (f *FileStream) Size() uint32 { return f.size }

// Read fills p starting at the current cursor, bounded by the remaining
// file size, fetching each needed block through the single-entry cache.
// It returns (0, io.EOF) only once the cursor has reached the file size;
// a cursor already past the file size (from an over-shooting Seek) behaves
// the same way, per spec's "subsequent reads immediately return zero
// bytes" rule, but surfaces that as io.EOF to satisfy io.Reader.
func (f *FileStream) Read(p []byte) (int, error) {
	if f.cursor >= int64(f.size) {
		return 0, io.EOF
	}

	total := 0
	for total < len(p) && f.cursor < int64(f.size) {
		lba := f.startLBA + uint32(f.cursor/consts.SectorSize)
		if !f.cached || f.cacheLBA != lba {
			if err := f.shared.ReadBlock(f.buf[:], lba); err != nil {
				if total > 0 {
					return total, nil
				}
				return 0, err
			}
			f.cached = true
			f.cacheLBA = lba
		}

		blockOffset := int(f.cursor % consts.SectorSize)
		remainingInBlock := consts.SectorSize - blockOffset
		remainingInFile := int64(f.size) - f.cursor
		n := remainingInBlock
		if int64(n) > remainingInFile {
			n = int(remainingInFile)
		}
		if n > len(p)-total {
			n = len(p) - total
		}

		copy(p[total:total+n], f.buf[blockOffset:blockOffset+n])
		total += n
		f.cursor += int64(n)
	}
	return total, nil
}

// Seek computes a new logical offset. A negative result saturates to zero
// rather than erroring (spec's Open Question: noted as suspect but kept for
// compatibility with existing positive-seek callers). An offset beyond the
// file size is retained as-is; Read then immediately returns io.EOF. The
// single-block cache is never invalidated by Seek; it stays valid until a
// different block is actually requested by Read.
func (f *FileStream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.cursor + offset
	case io.SeekEnd:
		next = int64(f.size) + offset
	default:
		return 0, errInvalidWhence
	}
	if next < 0 {
		next = 0
	}
	f.cursor = next
	return f.cursor, nil
}

var errInvalidWhence = &seekError{"filestream: invalid whence"}

type seekError struct{ msg string }

func (e *seekError) Error() string { return e.msg }
