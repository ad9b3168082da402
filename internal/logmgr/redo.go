package logmgr

import (
	"recoverylog/internal/record"
	"recoverylog/pkg/types"
)

// redo replays missing effects forward over the combined log, starting at
// the earliest recLSN in the dirty-page table (or the whole log if that
// table is empty). Returns false only on storage-engine failure, in which
// case the caller must abort recovery and retry later.
func (m *LogManager) redo(log []record.Record) (bool, error) {
	startLSN, ok := m.dirty.minRecLSN()
	if !ok {
		startLSN = 0
	}

	for _, r := range log {
		if r.LSN() < startLSN {
			continue
		}

		switch rec := r.(type) {
		case record.UpdateRecord:
			if err := m.redoPageRecord(rec.PageID, rec.Lsn, rec.Offset, rec.After); err != nil {
				return false, err
			}
		case record.CLRRecord:
			// A CLR's "after image" field holds the before-image of the
			// UPDATE it compensates for: the bytes to (re-)write.
			if err := m.redoPageRecord(rec.PageID, rec.Lsn, rec.Offset, rec.After); err != nil {
				return false, err
			}
		case record.CommitRecord:
			m.txs.setLastLSN(rec.Tx, rec.Lsn)
			m.txs.markCommitted(rec.Tx)
		case record.EndRecord:
			m.txs.forgetTx(rec.Tx)
		}
	}

	toClose := m.txs.committed()
	for _, tx := range toClose {
		endLSN, err := m.engine.NextLSN()
		if err != nil {
			return false, err
		}
		m.append(record.EndRecord{Lsn: endLSN, Prev: m.txs.getLastLSN(tx), Tx: tx})
	}
	for _, tx := range toClose {
		m.txs.forgetTx(tx)
	}

	return true, nil
}

// redoPageRecord re-applies a single page write if the dirty-page table and
// on-disk pageLSN both indicate the page does not yet reflect it.
func (m *LogManager) redoPageRecord(pageID types.PageID, lsn types.LSN, offset types.Offset, after []byte) error {
	recLSN, inTable := m.dirty.recLSN(pageID)
	if !inTable {
		return nil
	}
	if recLSN > lsn {
		return nil
	}

	onDisk, err := m.engine.GetLSN(pageID)
	if err != nil {
		return err
	}
	if onDisk >= lsn {
		return nil
	}

	ok, err := m.engine.PageWrite(pageID, offset, after, lsn)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEngineUnresponsive
	}
	return nil
}
