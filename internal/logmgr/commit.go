package logmgr

import (
	"github.com/sirupsen/logrus"

	"recoverylog/internal/record"
	"recoverylog/pkg/types"
)

// Commit logs txID's decision to commit, flushes the log through the
// COMMIT record (the durability point), then appends an END record and
// removes txID from the transaction table. An unknown txID is a no-op
// client error, not a recovery concern.
func (m *LogManager) Commit(txID types.TxID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.txs.status(txID); !ok {
		m.log.WithField("txID", txID).Warn("commit of unknown transaction, ignoring")
		return nil
	}

	commitLSN, err := m.engine.NextLSN()
	if err != nil {
		return err
	}
	m.append(record.CommitRecord{Lsn: commitLSN, Prev: m.txs.getLastLSN(txID), Tx: txID})
	m.txs.setLastLSN(txID, commitLSN)

	if err := m.flushLogTailTo(commitLSN); err != nil {
		return err
	}

	endLSN, err := m.engine.NextLSN()
	if err != nil {
		return err
	}
	m.append(record.EndRecord{Lsn: endLSN, Prev: commitLSN, Tx: txID})
	m.txs.forgetTx(txID)

	m.log.WithFields(logrus.Fields{"txID": txID, "commitLSN": commitLSN, "endLSN": endLSN}).Info("commit")
	return nil
}
