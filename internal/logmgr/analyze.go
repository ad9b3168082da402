package logmgr

import (
	"recoverylog/internal/record"
	"recoverylog/pkg/types"
)

// analyze rebuilds the transaction table and dirty-page table from the
// combined log. It scans backward to find the latest END_CKPT, seeds the
// tables from its snapshot (or empty tables if none exists), then scans
// forward from the matching BEGIN_CKPT to the end of the log, replaying
// every record's effect on the tables.
func (m *LogManager) analyze(log []record.Record) {
	m.txs = newTxTable()
	m.dirty = newDirtyPageTable()

	start := 0
	for i := len(log) - 1; i >= 0; i-- {
		ckpt, ok := log[i].(record.EndCkptRecord)
		if !ok {
			continue
		}
		m.txs.restore(ckpt.TxTable)
		m.dirty.restore(ckpt.DirtyPages)
		start = indexOfLSN(log, ckpt.PrevLSN()) // BEGIN_CKPT precedes END_CKPT
		if start < 0 {
			start = 0
		}
		break
	}

	for i := start; i < len(log); i++ {
		r := log[i]
		switch rec := r.(type) {
		case record.UpdateRecord:
			m.txs.setLastLSN(rec.Tx, rec.Lsn)
			m.dirty.insertIfAbsent(rec.PageID, rec.Lsn)
		case record.CLRRecord:
			m.txs.setLastLSN(rec.Tx, rec.Lsn)
			m.dirty.insertIfAbsent(rec.PageID, rec.Lsn)
		case record.CommitRecord:
			m.txs.setLastLSN(rec.Tx, rec.Lsn)
			m.txs.markCommitted(rec.Tx)
		case record.AbortRecord:
			m.txs.setLastLSN(rec.Tx, rec.Lsn)
		case record.EndRecord:
			m.txs.forgetTx(rec.Tx)
		}
	}
}

// indexOfLSN returns the index of the record with the given LSN, or -1.
func indexOfLSN(log []record.Record, lsn types.LSN) int {
	for i, r := range log {
		if r.LSN() == lsn {
			return i
		}
	}
	return -1
}
