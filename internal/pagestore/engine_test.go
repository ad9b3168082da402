package pagestore

import (
	"path/filepath"
	"strconv"
	"testing"

	"recoverylog/pkg/types"
)

func openTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	e, err := Open(Config{
		PageFilePath:   filepath.Join(dir, "pages.db"),
		LogFilePath:    filepath.Join(dir, "log.db"),
		MasterFilePath: filepath.Join(dir, "master.db"),
		BufferPages:    4,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestEngineNextLSNIncreases(t *testing.T) {
	e := openTestEngine(t)

	prev := types.NullLSN
	for i := 0; i < 5; i++ {
		lsn, err := e.NextLSN()
		if err != nil {
			t.Fatalf("NextLSN: %v", err)
		}
		if lsn <= prev {
			t.Fatalf("NextLSN not strictly increasing: got %d after %d", lsn, prev)
		}
		prev = lsn
	}
}

func TestEnginePageWriteAndGetLSN(t *testing.T) {
	e := openTestEngine(t)

	ok, err := e.PageWrite(1, 0, []byte("hello"), 7)
	if err != nil || !ok {
		t.Fatalf("PageWrite: ok=%v err=%v", ok, err)
	}

	lsn, err := e.GetLSN(1)
	if err != nil {
		t.Fatalf("GetLSN: %v", err)
	}
	if lsn != 7 {
		t.Fatalf("GetLSN = %d, want 7", lsn)
	}
}

func TestEnginePageFlushHookCalledBeforeDiskWrite(t *testing.T) {
	e := openTestEngine(t)

	var hookLSN types.LSN
	var hookSeenBeforeDisk bool
	e.SetPageFlushHook(func(pageID types.PageID) error {
		lsn, err := e.GetLSN(pageID)
		if err != nil {
			return err
		}
		hookLSN = lsn
		hookSeenBeforeDisk = true
		return nil
	})

	if _, err := e.PageWrite(3, 0, []byte("x"), 9); err != nil {
		t.Fatalf("PageWrite: %v", err)
	}
	if !hookSeenBeforeDisk {
		t.Fatalf("flush hook was not invoked")
	}
	if hookLSN != 9 {
		t.Fatalf("hook observed pageLSN %d, want 9 (set before the disk write)", hookLSN)
	}
}

func TestEngineUpdateLogAndGetLog(t *testing.T) {
	e := openTestEngine(t)

	if err := e.UpdateLog("UPDATE 1 0 1 10 0 - -\n"); err != nil {
		t.Fatalf("UpdateLog: %v", err)
	}
	if err := e.UpdateLog("COMMIT 2 1 1\n"); err != nil {
		t.Fatalf("UpdateLog: %v", err)
	}

	text, err := e.GetLog()
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	want := "UPDATE 1 0 1 10 0 - -\nCOMMIT 2 1 1\n"
	if text != want {
		t.Fatalf("GetLog = %q, want %q", text, want)
	}
}

func TestEngineMasterLSNRoundTrip(t *testing.T) {
	e := openTestEngine(t)

	if _, err := e.GetMaster(); err != nil {
		t.Fatalf("GetMaster on fresh engine: %v", err)
	}
	if err := e.StoreMaster(42); err != nil {
		t.Fatalf("StoreMaster: %v", err)
	}
	got, err := e.GetMaster()
	if err != nil {
		t.Fatalf("GetMaster: %v", err)
	}
	if got != 42 {
		t.Fatalf("GetMaster = %d, want 42", got)
	}
}

func TestEngineRecentLogLines(t *testing.T) {
	e := openTestEngine(t)

	for i := 1; i <= 5; i++ {
		if err := e.UpdateLog("END " + strconv.Itoa(i) + " 0 1\n"); err != nil {
			t.Fatalf("UpdateLog: %v", err)
		}
	}

	lines, err := e.RecentLogLines(2)
	if err != nil {
		t.Fatalf("RecentLogLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("RecentLogLines returned %d lines, want 2", len(lines))
	}
	if lines[0] != "END 4 0 1" || lines[1] != "END 5 0 1" {
		t.Fatalf("RecentLogLines = %v, want last two lines in order", lines)
	}
}
