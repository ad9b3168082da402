package logmgr

import (
	"recoverylog/internal/record"
	"recoverylog/pkg/types"
)

// txEntry is one row of the transaction table.
type txEntry struct {
	lastLSN types.LSN
	status  types.TxStatus
}

// txTable is the in-memory transaction table: TxID -> {lastLSN, status}.
// Entries are created on first write and removed on END.
type txTable struct {
	rows map[types.TxID]txEntry
}

func newTxTable() *txTable {
	return &txTable{rows: make(map[types.TxID]txEntry)}
}

// getLastLSN returns the transaction's most recent LSN, or NullLSN if the
// transaction is not (or no longer) in the table.
func (t *txTable) getLastLSN(tx types.TxID) types.LSN {
	if e, ok := t.rows[tx]; ok {
		return e.lastLSN
	}
	return types.NullLSN
}

// status reports whether tx is present and its status.
func (t *txTable) status(tx types.TxID) (types.TxStatus, bool) {
	e, ok := t.rows[tx]
	return e.status, ok
}

// setLastLSN inserts a fresh {lsn, TxActive} row if tx is absent, else
// updates lastLSN only (status is untouched).
func (t *txTable) setLastLSN(tx types.TxID, lsn types.LSN) {
	e, ok := t.rows[tx]
	if !ok {
		t.rows[tx] = txEntry{lastLSN: lsn, status: types.TxActive}
		return
	}
	e.lastLSN = lsn
	t.rows[tx] = e
}

// markCommitted sets tx's status to TxCommitted. No-op if tx is absent.
func (t *txTable) markCommitted(tx types.TxID) {
	if e, ok := t.rows[tx]; ok {
		e.status = types.TxCommitted
		t.rows[tx] = e
	}
}

// forgetTx removes tx from the table entirely (on END).
func (t *txTable) forgetTx(tx types.TxID) {
	delete(t.rows, tx)
}

// losers returns the TxIDs currently in the table whose status is not
// TxCommitted, i.e. the candidates for undo.
func (t *txTable) losers() []types.TxID {
	var out []types.TxID
	for tx, e := range t.rows {
		if e.status != types.TxCommitted {
			out = append(out, tx)
		}
	}
	return out
}

// committed returns the TxIDs currently in the table with TxCommitted
// status, i.e. the ones redo must close out with an END record.
func (t *txTable) committed() []types.TxID {
	var out []types.TxID
	for tx, e := range t.rows {
		if e.status == types.TxCommitted {
			out = append(out, tx)
		}
	}
	return out
}

// snapshot captures the table by value for a checkpoint's END_CKPT record.
func (t *txTable) snapshot() []record.TxSnapshot {
	out := make([]record.TxSnapshot, 0, len(t.rows))
	for tx, e := range t.rows {
		out = append(out, record.TxSnapshot{Tx: tx, LastLSN: e.lastLSN, Status: e.status})
	}
	return out
}

// restore replaces the table's contents with a checkpoint snapshot.
func (t *txTable) restore(snap []record.TxSnapshot) {
	t.rows = make(map[types.TxID]txEntry, len(snap))
	for _, s := range snap {
		t.rows[s.Tx] = txEntry{lastLSN: s.LastLSN, status: s.Status}
	}
}

// dirtyPageTable is the in-memory dirty-page table: pageID -> recLSN.
// Insertion is first-writer-wins: an existing recLSN is never raised.
type dirtyPageTable struct {
	rows map[types.PageID]types.LSN
}

func newDirtyPageTable() *dirtyPageTable {
	return &dirtyPageTable{rows: make(map[types.PageID]types.LSN)}
}

// insertIfAbsent records pageID->lsn only if pageID is not already present.
func (d *dirtyPageTable) insertIfAbsent(page types.PageID, lsn types.LSN) {
	if _, ok := d.rows[page]; !ok {
		d.rows[page] = lsn
	}
}

func (d *dirtyPageTable) recLSN(page types.PageID) (types.LSN, bool) {
	lsn, ok := d.rows[page]
	return lsn, ok
}

func (d *dirtyPageTable) remove(page types.PageID) {
	delete(d.rows, page)
}

// minRecLSN returns the smallest recLSN across the table and true, or
// (0, false) if the table is empty.
func (d *dirtyPageTable) minRecLSN() (types.LSN, bool) {
	first := true
	var min types.LSN
	for _, lsn := range d.rows {
		if first || lsn < min {
			min = lsn
			first = false
		}
	}
	return min, !first
}

func (d *dirtyPageTable) snapshot() []record.DirtySnapshot {
	out := make([]record.DirtySnapshot, 0, len(d.rows))
	for page, lsn := range d.rows {
		out = append(out, record.DirtySnapshot{PageID: page, RecLSN: lsn})
	}
	return out
}

func (d *dirtyPageTable) restore(snap []record.DirtySnapshot) {
	d.rows = make(map[types.PageID]types.LSN, len(snap))
	for _, s := range snap {
		d.rows[s.PageID] = s.RecLSN
	}
}
