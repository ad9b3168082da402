package logmgr

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"recoverylog/pkg/types"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestManager(engine *fakeEngine) *LogManager {
	m := New(testLogger())
	m.SetStorageEngine(engine)
	return m
}

// forceFlush simulates whatever external pressure (buffer pool eviction,
// explicit force, checkpoint) made the tail durable before a crash. Tests
// use it to control exactly how much of a scenario survives the "crash".
func forceFlush(t *testing.T, m *LogManager) {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tail) == 0 {
		return
	}
	if err := m.flushLogTailTo(m.tail[len(m.tail)-1].LSN()); err != nil {
		t.Fatalf("forceFlush: %v", err)
	}
}

// recoverFresh builds a brand new LogManager sharing engine's durable state
// (as a real restart would) and runs Recover against it.
func recoverFresh(t *testing.T, engine *fakeEngine) *LogManager {
	t.Helper()
	m := newTestManager(engine)
	text, err := engine.GetLog()
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	if err := m.Recover(text); err != nil {
		t.Fatalf("Recover: %v", err)
	}
	return m
}

// Scenario 1: clean commit.
func TestCleanCommit(t *testing.T) {
	engine := newFakeEngine()
	m := newTestManager(engine)

	lsn, err := m.Write(1, 10, 0, []byte("A"), []byte("B"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if lsn != 1 {
		t.Fatalf("Write LSN = %d, want 1", lsn)
	}
	if err := m.Commit(1); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	recoverFresh(t, engine)

	if got := engine.pageString(10); got != "B" {
		t.Fatalf("page 10 = %q, want %q", got, "B")
	}
}

// Scenario 2: uncommitted crash.
func TestUncommittedCrash(t *testing.T) {
	engine := newFakeEngine()
	m := newTestManager(engine)

	if _, err := m.Write(1, 10, 0, []byte("A"), []byte("B")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	forceFlush(t, m) // simulate the UPDATE having reached durable storage

	recoverFresh(t, engine)

	if got := engine.pageString(10); got != "A" {
		t.Fatalf("page 10 = %q, want %q", got, "A")
	}
}

// Scenario 3 (recover . recover == recover): a second recovery pass over
// the same durable log, after a first pass already produced CLR/END
// records in its own tail, must converge on the same page state as the
// first pass.
func TestRecoverIsIdempotent(t *testing.T) {
	engine := newFakeEngine()
	m := newTestManager(engine)

	if _, err := m.Write(1, 10, 0, []byte("A"), []byte("B")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	forceFlush(t, m)

	recoverFresh(t, engine) // first recovery drives undo through to END

	if got := engine.pageString(10); got != "A" {
		t.Fatalf("page 10 after first recover = %q, want %q", got, "A")
	}

	// Re-running recovery must be idempotent.
	recoverFresh(t, engine)
	if got := engine.pageString(10); got != "A" {
		t.Fatalf("page 10 after second recover = %q, want %q", got, "A")
	}
}

// Scenario 4: abort a single transaction while another has already committed.
func TestAbortSingleTx(t *testing.T) {
	engine := newFakeEngine()
	m := newTestManager(engine)

	if _, err := m.Write(1, 10, 0, []byte("A"), []byte("B")); err != nil {
		t.Fatalf("Write T1: %v", err)
	}
	if _, err := m.Write(2, 10, 0, []byte("B"), []byte("C")); err != nil {
		t.Fatalf("Write T2: %v", err)
	}
	if err := m.Commit(1); err != nil {
		t.Fatalf("Commit T1: %v", err)
	}
	if err := m.Abort(2); err != nil {
		t.Fatalf("Abort T2: %v", err)
	}

	if got := engine.pageString(10); got != "B" {
		t.Fatalf("page 10 = %q, want %q", got, "B")
	}
	if _, ok := m.txs.status(2); ok {
		t.Fatalf("T2 still present in transaction table after abort+undo drained it")
	}
}

// Scenario 5: checkpoint then crash with no losers.
func TestCheckpointThenCrash(t *testing.T) {
	engine := newFakeEngine()
	m := newTestManager(engine)

	if _, err := m.Write(1, 10, 0, []byte("A"), []byte("B")); err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	if err := m.Checkpoint(); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}
	if _, err := m.Write(1, 10, 1, []byte("X"), []byte("Y")); err != nil {
		t.Fatalf("Write 2: %v", err)
	}
	if err := m.Commit(1); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	recoverFresh(t, engine)

	if got := engine.pageString(10); got != "BY" {
		t.Fatalf("page 10 = %q, want %q", got, "BY")
	}
}

// Scenario 6: WAL enforcement — every pageWrite observed by the engine must
// be preceded by every record with lsn <= the new pageLSN being durable.
func TestWALEnforcement(t *testing.T) {
	engine := &walCheckingEngine{fakeEngine: newFakeEngine(), t: t}
	m := newTestManager(engine.fakeEngine)
	m.engine = engine

	lsn, err := m.Write(1, 10, 0, []byte("A"), []byte("B"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Simulate the buffer pool applying the update to its in-memory copy of
	// the page (pageLSN now reflects lsn) without yet having written
	// anything to disk, then deciding to evict it.
	engine.pageLSNs[10] = lsn
	if err := m.PageFlushed(10); err != nil {
		t.Fatalf("PageFlushed: %v", err)
	}

	// Only now does the engine perform the real disk write; walCheckingEngine
	// asserts every record with lsn <= this call's newPageLSN is durable.
	if ok, err := engine.PageWrite(10, 0, []byte("B"), lsn); err != nil || !ok {
		t.Fatalf("PageWrite: ok=%v err=%v", ok, err)
	}
}

// walCheckingEngine wraps fakeEngine and asserts the WAL invariant on every
// PageWrite: every record with lsn <= newPageLSN must already be durable.
type walCheckingEngine struct {
	*fakeEngine
	t *testing.T
}

func (e *walCheckingEngine) PageWrite(pageID types.PageID, offset types.Offset, data []byte, newPageLSN types.LSN) (bool, error) {
	text, err := e.fakeEngine.GetLog()
	if err != nil {
		return false, err
	}
	recs, err := parseLog(text)
	if err != nil {
		e.t.Fatalf("parseLog: %v", err)
	}
	maxDurable := types.NullLSN
	for _, r := range recs {
		if r.LSN() > maxDurable {
			maxDurable = r.LSN()
		}
	}
	if maxDurable < newPageLSN {
		e.t.Fatalf("WAL violation: pageWrite with pageLSN %d but only %d durable", newPageLSN, maxDurable)
	}
	return e.fakeEngine.PageWrite(pageID, offset, data, newPageLSN)
}
