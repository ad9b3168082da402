package logmgr

import (
	"recoverylog/internal/record"
	"recoverylog/pkg/types"
)

// undo drives the ToUndo worklist over the combined log. When txID is nil
// this is recovery's full undo pass: every non-committed transaction in the
// table seeds ToUndo with its lastLSN. When txID is non-nil this is a
// single-transaction abort: only that transaction seeds ToUndo, and the
// ABORT record is written here (not by the caller) so its prevLSN correctly
// chains to the pre-abort tail.
//
// Per the CLR prevLSN/undoNextLSN fix (see DESIGN.md): CLR.prevLSN chains to
// the transaction's lastLSN at the moment of undo (which may itself be the
// ABORT record or a prior CLR); CLR.undoNextLSN carries the undone record's
// own prevLSN, so a re-run of recovery skips straight past it.
func (m *LogManager) undo(log []record.Record, txID *types.TxID) error {
	toUndo := newToUndoSet()

	if txID == nil {
		for _, tx := range m.txs.losers() {
			toUndo.insert(m.txs.getLastLSN(tx))
		}
	} else {
		tx := *txID
		if status, ok := m.txs.status(tx); ok && status != types.TxCommitted {
			toUndo.insert(m.txs.getLastLSN(tx))
		}

		abortLSN, err := m.engine.NextLSN()
		if err != nil {
			return err
		}
		m.append(record.AbortRecord{Lsn: abortLSN, Prev: m.txs.getLastLSN(tx), Tx: tx})
		m.txs.setLastLSN(tx, abortLSN)
	}

	for i := len(log) - 1; i >= 0 && !toUndo.empty(); i-- {
		r := log[i]
		if !toUndo.contains(r.LSN()) {
			continue
		}
		toUndo.remove(r.LSN())

		switch rec := r.(type) {
		case record.UpdateRecord:
			if err := m.undoUpdate(rec, toUndo); err != nil {
				return err
			}
		case record.CLRRecord:
			if err := m.undoCLR(rec, toUndo); err != nil {
				return err
			}
		default:
			// ABORT/COMMIT/END/checkpoint records are never inserted into
			// ToUndo; reaching here would indicate log corruption upstream,
			// but per the redo/undo contract we simply skip.
		}
	}

	if !toUndo.empty() {
		return ErrMissingPrevLSN
	}
	return nil
}

func (m *LogManager) undoUpdate(rec record.UpdateRecord, toUndo *toUndoSet) error {
	ok, err := m.engine.PageWrite(rec.PageID, rec.Offset, rec.Before, rec.Lsn)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEngineUnresponsive
	}

	clrLSN, err := m.engine.NextLSN()
	if err != nil {
		return err
	}
	m.append(record.CLRRecord{
		Lsn: clrLSN, Prev: m.txs.getLastLSN(rec.Tx), Tx: rec.Tx,
		PageID: rec.PageID, Offset: rec.Offset, After: rec.Before,
		UndoNext: rec.Prev,
	})
	m.txs.setLastLSN(rec.Tx, clrLSN)
	m.dirty.insertIfAbsent(rec.PageID, clrLSN)

	if rec.Prev == types.NullLSN {
		endLSN, err := m.engine.NextLSN()
		if err != nil {
			return err
		}
		m.append(record.EndRecord{Lsn: endLSN, Prev: clrLSN, Tx: rec.Tx})
		m.txs.forgetTx(rec.Tx)
		return nil
	}

	toUndo.insert(rec.Prev)
	return nil
}

func (m *LogManager) undoCLR(rec record.CLRRecord, toUndo *toUndoSet) error {
	if rec.UndoNext != types.NullLSN {
		toUndo.insert(rec.UndoNext)
		return nil
	}

	endLSN, err := m.engine.NextLSN()
	if err != nil {
		return err
	}
	m.append(record.EndRecord{Lsn: endLSN, Prev: m.txs.getLastLSN(rec.Tx), Tx: rec.Tx})
	m.txs.forgetTx(rec.Tx)
	return nil
}
