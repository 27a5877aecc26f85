package directory

import (
	"github.com/rstms/iso9660ro/pkg/blockio"
	"github.com/rstms/iso9660ro/pkg/consts"
	"github.com/rstms/iso9660ro/pkg/isoerr"
)

// Iterator walks one directory extent, producing entries across block
// boundaries in the bufio.Scanner / sql.Rows idiom: call Next until it
// returns false, then check Err. A spent Iterator is not restartable;
// obtain a fresh one from Handle.Contents.
type Iterator struct {
	shared      *blockio.Shared
	tag         Tag
	curLBA      uint32
	totalLength uint32
	consumed    uint32
	offset      int
	loaded      bool
	done        bool
	err         error
	cur         *Entry
	buf         [consts.SectorSize]byte
}

// newIterator builds an Iterator over the extent starting at startLBA and
// spanning length bytes.
func newIterator(shared *blockio.Shared, startLBA, length uint32, tag Tag) *Iterator {
	return &Iterator{shared: shared, tag: tag, curLBA: startLBA, totalLength: length}
}

// Next decodes the next directory record, returning false at extent end or
// on error (check Err to distinguish the two).
func (it *Iterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	for {
		if it.consumed >= it.totalLength {
			it.done = true
			return false
		}
		if !it.loaded {
			if err := it.shared.ReadBlock(it.buf[:], it.curLBA); err != nil {
				it.err = err
				return false
			}
			it.loaded = true
			it.offset = 0
		}

		if it.offset >= consts.SectorSize || it.buf[it.offset] == 0 {
			padding := consts.SectorSize - it.offset
			it.consumed += uint32(padding)
			it.curLBA++
			it.loaded = false
			continue
		}

		length := it.buf[it.offset]
		if length < minRecordSize {
			it.err = isoerr.New(isoerr.InvalidFs, "directory record length < 33")
			return false
		}
		end := it.offset + int(length)
		if end > consts.SectorSize {
			it.err = isoerr.New(isoerr.InvalidFs, "directory record crosses block boundary")
			return false
		}

		entry, err := decodeEntry(it.buf[it.offset:end], it.tag)
		if err != nil {
			it.err = err
			return false
		}
		it.cur = entry
		it.offset = end
		it.consumed += uint32(length)
		return true
	}
}

// Entry returns the record decoded by the most recent successful Next.
func (it *Iterator) Entry() *Entry { return it.cur }

// Err returns the error that stopped iteration, or nil at a clean end.
func (it *Iterator) Err() error { return it.err }
