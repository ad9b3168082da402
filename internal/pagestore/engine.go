package pagestore

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"recoverylog/pkg/types"
)

// Engine is a concrete storageengine.StorageEngine: a paged heap file behind
// an LRU buffer pool, a durable append-only log file, and a one-integer
// master LSN file. It has no knowledge of transactions, undo, or recovery —
// those live entirely in internal/logmgr, which is injected with Engine
// through the narrow StorageEngine contract.
type Engine struct {
	disk   *diskFile
	buf    *bufferPool
	log    *logFile
	master *masterFile

	lsn atomic.Int64

	onPageFlush func(types.PageID) error
}

// Config controls where Engine keeps its files and how large its buffer
// pool is.
type Config struct {
	PageFilePath   string
	LogFilePath    string
	MasterFilePath string
	BufferPages    int
}

// Open creates or opens an Engine's backing files. BufferPages defaults to
// 64 if unset.
func Open(cfg Config) (*Engine, error) {
	if cfg.BufferPages <= 0 {
		cfg.BufferPages = 64
	}

	disk, err := openDiskFile(cfg.PageFilePath)
	if err != nil {
		return nil, err
	}
	log, err := openLogFile(cfg.LogFilePath)
	if err != nil {
		return nil, err
	}
	master, err := openMasterFile(cfg.MasterFilePath)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		disk:   disk,
		buf:    newBufferPool(disk, cfg.BufferPages),
		log:    log,
		master: master,
	}
	// Resume LSN allocation after the highest LSN already in the durable log.
	existing, err := log.readAll()
	if err != nil {
		return nil, err
	}
	maxLSN := int64(types.NullLSN)
	for _, line := range strings.Split(existing, "\n") {
		if f := strings.Fields(line); len(f) >= 2 {
			if v, err := strconv.ParseInt(f[1], 10, 64); err == nil && v > maxLSN {
				maxLSN = v
			}
		}
	}
	e.lsn.Store(maxLSN)
	return e, nil
}

// SetPageFlushHook registers the log manager's PageFlushed callback, invoked
// synchronously before any page write reaches disk, upholding WAL.
func (e *Engine) SetPageFlushHook(hook func(types.PageID) error) {
	e.onPageFlush = hook
}

// NextLSN implements storageengine.StorageEngine.
func (e *Engine) NextLSN() (types.LSN, error) {
	return types.LSN(e.lsn.Add(1)), nil
}

// GetLSN implements storageengine.StorageEngine.
func (e *Engine) GetLSN(pageID types.PageID) (types.LSN, error) {
	p, err := e.buf.fetch(pageID)
	if err != nil {
		return types.NullLSN, err
	}
	return p.LSN, nil
}

// PageWrite implements storageengine.StorageEngine: it mutates the page in
// the buffer pool and sets its pageLSN, then calls the registered page-flush
// hook (the log manager's WAL enforcement point, which reads the new
// pageLSN), then writes the page to disk and clears its dirty flag.
func (e *Engine) PageWrite(pageID types.PageID, offset types.Offset, data []byte, newPageLSN types.LSN) (bool, error) {
	p, err := e.buf.fetch(pageID)
	if err != nil {
		return false, err
	}

	p.writeAt(offset, data)
	p.LSN = newPageLSN

	if e.onPageFlush != nil {
		if err := e.onPageFlush(pageID); err != nil {
			return false, err
		}
	}

	if err := e.disk.writePage(p); err != nil {
		return false, err
	}
	p.Dirty = false
	return true, nil
}

// UpdateLog implements storageengine.StorageEngine.
func (e *Engine) UpdateLog(text string) error {
	return e.log.append(text)
}

// GetLog implements storageengine.StorageEngine.
func (e *Engine) GetLog() (string, error) {
	return e.log.readAll()
}

// StoreMaster implements storageengine.StorageEngine.
func (e *Engine) StoreMaster(lsn types.LSN) error {
	return e.master.store(lsn)
}

// GetMaster implements storageengine.StorageEngine.
func (e *Engine) GetMaster() (types.LSN, error) {
	return e.master.load()
}

// FlushDirty flushes every dirty buffered page to disk in parallel. The
// checkpoint path calls this before END_CKPT is made durable, so a fuzzy
// checkpoint's snapshot reflects pages that are at least as fresh as the
// checkpoint record.
func (e *Engine) FlushDirty() error {
	return e.buf.flushAll()
}

// RecentLogLines returns the last n non-blank lines of the durable log
// without reading the whole file, for diagnostics (see cmd/logdemo).
func (e *Engine) RecentLogLines(n int) ([]string, error) {
	return e.log.tailLines(n)
}

// Close releases the engine's backing files.
func (e *Engine) Close() error {
	if err := e.disk.close(); err != nil {
		return err
	}
	return e.log.close()
}

// masterFile persists a single integer LSN to its own small file.
type masterFile struct {
	path string
}

func openMasterFile(path string) (*masterFile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("0"), 0o644); err != nil {
			return nil, fmt.Errorf("init master file: %w", err)
		}
	}
	return &masterFile{path: path}, nil
}

func (m *masterFile) store(lsn types.LSN) error {
	if err := os.WriteFile(m.path, []byte(fmt.Sprintf("%d", int64(lsn))), 0o644); err != nil {
		return fmt.Errorf("store master lsn: %w", err)
	}
	return nil
}

func (m *masterFile) load() (types.LSN, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return types.NullLSN, fmt.Errorf("load master lsn: %w", err)
	}
	var v int64
	if _, err := fmt.Sscanf(string(data), "%d", &v); err != nil {
		return types.NullLSN, fmt.Errorf("parse master lsn: %w", err)
	}
	return types.LSN(v), nil
}
