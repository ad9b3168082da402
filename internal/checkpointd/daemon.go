// Package checkpointd runs an optional background ticker that triggers
// periodic checkpoints, grounded on the pack's WAL checkpoint daemons: a
// start/stop goroutine with a time-based trigger and manual-trigger
// support. It adds no new concurrency model of its own — every tick just
// calls the same LogManager.Checkpoint the mutex already serializes.
package checkpointd

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Checkpointer is the subset of *logmgr.LogManager the daemon needs. Kept
// as an interface so the daemon can be tested without a real log manager.
type Checkpointer interface {
	Checkpoint() error
}

// Config controls the daemon's triggering behavior.
type Config struct {
	Interval time.Duration
	Enabled  bool
}

// DefaultConfig returns a sensible default.
func DefaultConfig() Config {
	return Config{Interval: 5 * time.Minute, Enabled: true}
}

// Stats tracks daemon activity for observability.
type Stats struct {
	TotalCheckpoints  int64
	FailedCheckpoints int64
	LastCorrelationID string
}

// Daemon periodically calls Checkpoint on a ticker until stopped.
type Daemon struct {
	mgr    Checkpointer
	config Config
	log    *logrus.Logger

	stop    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	total  atomic.Int64
	failed atomic.Int64
	lastID atomic.Value
}

// New constructs a Daemon. Call Start to begin ticking.
func New(mgr Checkpointer, config Config, log *logrus.Logger) *Daemon {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Daemon{mgr: mgr, config: config, log: log, stop: make(chan struct{})}
}

// Start begins the ticker loop. A no-op (not an error) if Enabled is false.
func (d *Daemon) Start() error {
	if !d.config.Enabled {
		d.log.Info("checkpoint daemon disabled")
		return nil
	}
	if !d.running.CompareAndSwap(false, true) {
		return nil
	}

	d.log.WithField("interval", d.config.Interval).Info("starting checkpoint daemon")
	d.wg.Add(1)
	go d.run()
	return nil
}

// Stop signals the loop to exit and waits for it to finish.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	close(d.stop)
	d.wg.Wait()
	d.running.Store(false)
	d.log.Info("checkpoint daemon stopped")
}

func (d *Daemon) run() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.trigger()
		}
	}
}

// Trigger runs a checkpoint immediately, outside the ticker's cadence.
func (d *Daemon) Trigger() error {
	return d.trigger()
}

func (d *Daemon) trigger() error {
	correlationID := uuid.New().String()
	d.lastID.Store(correlationID)
	entry := d.log.WithField("correlationID", correlationID)

	entry.Info("checkpoint starting")
	if err := d.mgr.Checkpoint(); err != nil {
		d.failed.Add(1)
		entry.WithError(err).Warn("checkpoint failed")
		return err
	}
	d.total.Add(1)
	entry.Info("checkpoint complete")
	return nil
}

// Snapshot returns the daemon's current stats.
func (d *Daemon) Snapshot() Stats {
	lastID, _ := d.lastID.Load().(string)
	return Stats{
		TotalCheckpoints:  d.total.Load(),
		FailedCheckpoints: d.failed.Load(),
		LastCorrelationID: lastID,
	}
}
