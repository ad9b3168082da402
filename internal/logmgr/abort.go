package logmgr

import "recoverylog/pkg/types"

// Abort rolls back txID: gathers the combined durable-plus-tail log and
// runs undo against just that transaction. An unknown txID is a no-op
// client error per §7, not a recovery concern — per the redesign's explicit
// "unknown transaction" decision (see DESIGN.md), it is never silently
// inserted into the transaction table.
func (m *LogManager) Abort(txID types.TxID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.txs.status(txID); !ok {
		m.log.WithField("txID", txID).Warn("abort of unknown transaction, ignoring")
		return nil
	}

	log, err := m.combinedLog()
	if err != nil {
		return err
	}

	tx := txID
	if err := m.undo(log, &tx); err != nil {
		return err
	}

	m.log.WithField("txID", txID).Info("abort")
	return nil
}
