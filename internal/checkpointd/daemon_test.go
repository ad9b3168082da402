package checkpointd

import (
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type countingCheckpointer struct {
	calls atomic.Int64
	fail  bool
}

func (c *countingCheckpointer) Checkpoint() error {
	c.calls.Add(1)
	if c.fail {
		return errors.New("engine unresponsive")
	}
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDaemonTriggerRunsCheckpoint(t *testing.T) {
	mgr := &countingCheckpointer{}
	d := New(mgr, Config{Enabled: true, Interval: time.Hour}, testLogger())

	if err := d.Trigger(); err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if mgr.calls.Load() != 1 {
		t.Fatalf("Checkpoint called %d times, want 1", mgr.calls.Load())
	}
	if d.Snapshot().TotalCheckpoints != 1 {
		t.Fatalf("stats TotalCheckpoints = %d, want 1", d.Snapshot().TotalCheckpoints)
	}
}

func TestDaemonTriggerRecordsFailure(t *testing.T) {
	mgr := &countingCheckpointer{fail: true}
	d := New(mgr, Config{Enabled: true, Interval: time.Hour}, testLogger())

	if err := d.Trigger(); err == nil {
		t.Fatalf("Trigger: expected error")
	}
	if d.Snapshot().FailedCheckpoints != 1 {
		t.Fatalf("stats FailedCheckpoints = %d, want 1", d.Snapshot().FailedCheckpoints)
	}
}

func TestDaemonDisabledStartIsNoop(t *testing.T) {
	mgr := &countingCheckpointer{}
	d := New(mgr, Config{Enabled: false}, testLogger())

	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	d.Stop()
	if mgr.calls.Load() != 0 {
		t.Fatalf("Checkpoint should not have been called, got %d calls", mgr.calls.Load())
	}
}

func TestDaemonStartTicksAndStops(t *testing.T) {
	mgr := &countingCheckpointer{}
	d := New(mgr, Config{Enabled: true, Interval: 10 * time.Millisecond}, testLogger())

	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	d.Stop()

	if mgr.calls.Load() == 0 {
		t.Fatalf("expected at least one tick-driven checkpoint")
	}
}
