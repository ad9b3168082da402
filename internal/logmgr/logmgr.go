// Package logmgr implements the recovery log manager: write-ahead logging
// over a pluggable storage engine, the transaction and dirty-page tables,
// and ARIES-style analyze/redo/undo recovery.
//
// Every public method except PageFlushed takes the manager's mutex for its
// whole duration, matching the single-threaded-cooperative model of §5: only
// one log-manager operation executes at a time. PageFlushed does not lock,
// because the storage engine calls it synchronously from inside PageWrite
// while redo or undo already hold the mutex (see pageflush.go).
package logmgr

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"recoverylog/internal/record"
	"recoverylog/internal/storageengine"
)

// LogManager is the log manager. It owns no process-wide state: the
// storage-engine reference is injected and its lifetime is bounded by the
// manager's.
type LogManager struct {
	mu sync.Mutex

	engine storageengine.StorageEngine
	log    *logrus.Logger

	tail []record.Record

	txs    *txTable
	dirty  *dirtyPageTable
	toUndo *toUndoSet
}

// New constructs a LogManager with empty in-memory tables. Call
// SetStorageEngine before any other operation.
func New(log *logrus.Logger) *LogManager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogManager{
		log:    log,
		txs:    newTxTable(),
		dirty:  newDirtyPageTable(),
		toUndo: newToUndoSet(),
	}
}

// SetStorageEngine injects the page-level collaborator. Must be called
// before Write/Commit/Abort/Checkpoint/PageFlushed/Recover.
func (m *LogManager) SetStorageEngine(engine storageengine.StorageEngine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engine = engine
}

// append adds r to the log tail. The caller must hold m.mu and must have
// already established LSN ordering (r.LSN() greater than the tail's last).
func (m *LogManager) append(r record.Record) {
	m.tail = append(m.tail, r)
}

// combinedLog returns the durable log followed by the current tail, the
// view analyze/redo/undo/abort operate over.
func (m *LogManager) combinedLog() ([]record.Record, error) {
	durableText, err := m.engine.GetLog()
	if err != nil {
		return nil, err
	}
	durable, err := parseLog(durableText)
	if err != nil {
		return nil, err
	}
	combined := make([]record.Record, 0, len(durable)+len(m.tail))
	combined = append(combined, durable...)
	combined = append(combined, m.tail...)
	return combined, nil
}

// parseLog parses a newline-delimited durable log into records, skipping
// blank lines (trailing newline, empty log).
func parseLog(text string) ([]record.Record, error) {
	var out []record.Record
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			line := text[start:i]
			start = i + 1
			if line == "" {
				continue
			}
			r, err := record.Parse(line)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
			}
			out = append(out, r)
		}
	}
	return out, nil
}
