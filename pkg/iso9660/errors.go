package iso9660

import "github.com/rstms/iso9660ro/pkg/isoerr"

// Error is the library's sum-typed error, re-exported from pkg/isoerr so
// lower-level packages can construct it without importing this facade.
type Error = isoerr.Error

// Kind identifies which arm of Error occurred.
type Kind = isoerr.Kind

const (
	KindIo        = isoerr.Io
	KindUtf8      = isoerr.Utf8
	KindInvalidFs = isoerr.InvalidFs
	KindParseInt  = isoerr.ParseInt
	KindReadSize  = isoerr.ReadSize
	KindParse     = isoerr.Parse
)
