package logmgr

import (
	"recoverylog/internal/record"
	"recoverylog/pkg/types"
)

// Checkpoint writes a fuzzy checkpoint: BEGIN_CKPT, then END_CKPT carrying a
// by-value snapshot of the current transaction and dirty-page tables, flushes
// every dirty buffered page, flushes the tail through END_CKPT, and persists
// BEGIN_CKPT's LSN as the master LSN. Concurrent updates (in a future
// concurrent variant) remain correct because analyze replays forward from
// BEGIN_CKPT.
func (m *LogManager) Checkpoint() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	beginLSN, err := m.engine.NextLSN()
	if err != nil {
		return err
	}
	m.append(record.BeginCkptRecord{Lsn: beginLSN, Prev: types.NullLSN})

	endLSN, err := m.engine.NextLSN()
	if err != nil {
		return err
	}
	m.append(record.EndCkptRecord{
		Lsn:        endLSN,
		Prev:       beginLSN,
		TxTable:    m.txs.snapshot(),
		DirtyPages: m.dirty.snapshot(),
	})

	if err := m.engine.FlushDirty(); err != nil {
		return err
	}

	if err := m.flushLogTailTo(endLSN); err != nil {
		return err
	}

	if err := m.engine.StoreMaster(beginLSN); err != nil {
		return err
	}

	m.log.WithField("beginLSN", beginLSN).Info("checkpoint")
	return nil
}
