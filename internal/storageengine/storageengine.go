// Package storageengine defines the narrow contract the log manager needs
// from its page-level collaborator. The log manager never touches a disk,
// a buffer pool, or a page format directly; everything durability-related
// beyond the log tail itself crosses this interface.
package storageengine

import "recoverylog/pkg/types"

// StorageEngine is implemented by whatever owns pages and the durable log
// file. internal/pagestore provides a concrete, testable implementation;
// production callers may swap in anything satisfying this contract.
type StorageEngine interface {
	// NextLSN allocates a strictly-greater LSN than any previously returned.
	NextLSN() (types.LSN, error)

	// GetLSN returns the current pageLSN for pageID as reflected on disk or
	// in the buffer pool.
	GetLSN(pageID types.PageID) (types.LSN, error)

	// PageWrite atomically updates pageID's contents at offset and sets its
	// pageLSN to newPageLSN. ok is false on engine failure; err carries the
	// cause when available.
	PageWrite(pageID types.PageID, offset types.Offset, data []byte, newPageLSN types.LSN) (ok bool, err error)

	// UpdateLog appends text verbatim to the durable log. It is durable by
	// the time UpdateLog returns.
	UpdateLog(text string) error

	// GetLog returns the entire durable log as serialized text.
	GetLog() (string, error)

	// FlushDirty writes every currently-dirty buffered page to disk. The
	// checkpoint path calls this before END_CKPT is made durable, so a fuzzy
	// checkpoint's snapshot reflects pages at least as fresh as the
	// checkpoint record.
	FlushDirty() error

	// StoreMaster persists lsn as the most recent BEGIN_CKPT LSN.
	StoreMaster(lsn types.LSN) error

	// GetMaster returns the most recently stored master LSN, or NullLSN if
	// none has ever been stored.
	GetMaster() (types.LSN, error)
}
