package logmgr

import "recoverylog/pkg/types"

// fakeEngine is a minimal in-memory StorageEngine used to exercise the log
// manager without any real disk I/O. It is not the reference
// implementation (see internal/pagestore for that); it exists purely to
// give these tests a collaborator to assert against.
type fakeEngine struct {
	lsn    types.LSN
	log    string
	master types.LSN

	pages    map[types.PageID][]byte
	pageLSNs map[types.PageID]types.LSN

	failNextPageWrite bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		pages:    make(map[types.PageID][]byte),
		pageLSNs: make(map[types.PageID]types.LSN),
	}
}

func (e *fakeEngine) NextLSN() (types.LSN, error) {
	e.lsn++
	return e.lsn, nil
}

func (e *fakeEngine) GetLSN(pageID types.PageID) (types.LSN, error) {
	return e.pageLSNs[pageID], nil
}

func (e *fakeEngine) PageWrite(pageID types.PageID, offset types.Offset, data []byte, newPageLSN types.LSN) (bool, error) {
	if e.failNextPageWrite {
		e.failNextPageWrite = false
		return false, nil
	}
	buf := e.pages[pageID]
	need := int(offset) + len(data)
	if need > len(buf) {
		grown := make([]byte, need)
		copy(grown, buf)
		buf = grown
	}
	copy(buf[offset:], data)
	e.pages[pageID] = buf
	e.pageLSNs[pageID] = newPageLSN
	return true, nil
}

func (e *fakeEngine) UpdateLog(text string) error {
	e.log += text
	return nil
}

func (e *fakeEngine) GetLog() (string, error) {
	return e.log, nil
}

func (e *fakeEngine) FlushDirty() error {
	return nil
}

func (e *fakeEngine) StoreMaster(lsn types.LSN) error {
	e.master = lsn
	return nil
}

func (e *fakeEngine) GetMaster() (types.LSN, error) {
	return e.master, nil
}

func (e *fakeEngine) pageString(pageID types.PageID) string {
	return string(e.pages[pageID])
}
