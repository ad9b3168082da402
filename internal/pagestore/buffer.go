package pagestore

import (
	"container/list"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"recoverylog/pkg/types"
)

// bufferPool caches pages in memory with LRU eviction, adapted from the
// teacher's BufferPool. It holds no knowledge of the log manager; the
// engine layer is what couples page flushes to PageFlushed.
type bufferPool struct {
	mu       sync.Mutex
	disk     *diskFile
	capacity int

	pages  map[types.PageID]*Page
	lru    *list.List
	lruPos map[types.PageID]*list.Element
}

func newBufferPool(disk *diskFile, capacity int) *bufferPool {
	return &bufferPool{
		disk:     disk,
		capacity: capacity,
		pages:    make(map[types.PageID]*Page),
		lru:      list.New(),
		lruPos:   make(map[types.PageID]*list.Element),
	}
}

func (bp *bufferPool) fetch(id types.PageID) (*Page, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if p, ok := bp.pages[id]; ok {
		bp.touch(id)
		return p, nil
	}

	p, err := bp.disk.readPage(id)
	if err != nil {
		return nil, err
	}
	if len(bp.pages) >= bp.capacity {
		if err := bp.evictOneLocked(); err != nil {
			return nil, fmt.Errorf("evict to make room for page %d: %w", id, err)
		}
	}
	bp.pages[id] = p
	bp.addLRU(id)
	return p, nil
}

func (bp *bufferPool) evictOneLocked() error {
	for e := bp.lru.Back(); e != nil; e = e.Prev() {
		id := e.Value.(types.PageID)
		p := bp.pages[id]
		if p.Pinned > 0 {
			continue
		}
		if p.Dirty {
			if err := bp.disk.writePage(p); err != nil {
				return err
			}
		}
		delete(bp.pages, id)
		bp.lru.Remove(e)
		delete(bp.lruPos, id)
		return nil
	}
	return fmt.Errorf("all %d buffered pages are pinned", len(bp.pages))
}

func (bp *bufferPool) addLRU(id types.PageID) {
	bp.lruPos[id] = bp.lru.PushFront(id)
}

func (bp *bufferPool) touch(id types.PageID) {
	if e, ok := bp.lruPos[id]; ok {
		bp.lru.MoveToFront(e)
	}
}

// dirtyPageIDs returns every currently-dirty page ID, for flushAll.
func (bp *bufferPool) dirtyPageIDs() []types.PageID {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	var out []types.PageID
	for id, p := range bp.pages {
		if p.Dirty {
			out = append(out, id)
		}
	}
	return out
}

func (bp *bufferPool) flushOne(id types.PageID) error {
	bp.mu.Lock()
	p, ok := bp.pages[id]
	bp.mu.Unlock()
	if !ok || !p.Dirty {
		return nil
	}

	if err := bp.disk.writePage(p); err != nil {
		return err
	}

	bp.mu.Lock()
	p.Dirty = false
	bp.mu.Unlock()
	return nil
}

// flushAll writes every currently-dirty page to disk, in parallel: page
// flushes are I/O-bound and independent of one another once each page's
// bytes are fixed, so an errgroup fans them out and surfaces the first
// failure instead of hand-rolled WaitGroup bookkeeping.
func (bp *bufferPool) flushAll() error {
	ids := bp.dirtyPageIDs()

	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			return bp.flushOne(id)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return bp.disk.sync()
}
