// Package pagestore is a reference implementation of
// internal/storageengine.StorageEngine: a fixed-size paged heap file plus a
// durable append-only log file and a small LRU buffer pool. It gives the
// demo a real (if small) collaborator; the log manager's own tests use an
// in-memory fake engine instead.
package pagestore

import (
	"encoding/binary"

	"recoverylog/pkg/types"
)

const pageHeaderSize = 12 // PageID(4) + LSN(8)

// Page is a fixed-size in-memory page image. Byte layout: a small header
// (pageID, pageLSN) followed by raw payload bytes the log manager writes
// into directly via offsets — this store has no opinion on tuple format,
// per the spec's "concrete page payloads are out of scope" boundary.
type Page struct {
	ID      types.PageID
	LSN     types.LSN
	Dirty   bool
	Pinned  int
	Payload [types.PageSize - pageHeaderSize]byte
}

func newPage(id types.PageID) *Page {
	return &Page{ID: id}
}

// writeAt writes data at offset within the payload area.
func (p *Page) writeAt(offset types.Offset, data []byte) {
	copy(p.Payload[offset:], data)
	p.Dirty = true
}

func (p *Page) serialize() []byte {
	buf := make([]byte, types.PageSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.ID))
	binary.LittleEndian.PutUint64(buf[4:12], uint64(p.LSN))
	copy(buf[pageHeaderSize:], p.Payload[:])
	return buf
}

func (p *Page) deserialize(buf []byte) {
	p.ID = types.PageID(binary.LittleEndian.Uint32(buf[0:4]))
	p.LSN = types.LSN(binary.LittleEndian.Uint64(buf[4:12]))
	copy(p.Payload[:], buf[pageHeaderSize:])
}
