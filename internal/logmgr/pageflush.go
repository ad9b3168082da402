package logmgr

import "recoverylog/pkg/types"

// PageFlushed is called by the storage engine immediately before it writes
// pageID to disk. It flushes the tail through the page's current pageLSN to
// uphold the WAL invariant, then drops pageID from the dirty-page table.
//
// It does not take m.mu itself: the engine invokes it synchronously from
// inside PageWrite, which recovery's redo and undo passes call while already
// holding m.mu (see §5's single-operation-at-a-time model in logmgr.go).
// Locking here would deadlock against that reentrant call. Callers outside
// that recovery-driven path must not invoke PageFlushed concurrently with
// another LogManager operation.
func (m *LogManager) PageFlushed(pageID types.PageID) error {
	pageLSN, err := m.engine.GetLSN(pageID)
	if err != nil {
		return err
	}
	if err := m.flushLogTailTo(pageLSN); err != nil {
		return err
	}
	m.dirty.remove(pageID)
	return nil
}
