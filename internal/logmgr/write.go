package logmgr

import (
	"github.com/sirupsen/logrus"

	"recoverylog/internal/record"
	"recoverylog/pkg/types"
)

// Write logs a logical page update: allocate an LSN, link it into txID's
// chain, append it to the tail, and track the page as dirty if it is not
// already. The caller (storage engine) must not write the page to disk
// before PageFlushed has flushed the log through the returned LSN.
func (m *LogManager) Write(txID types.TxID, pageID types.PageID, offset types.Offset, before, after []byte) (types.LSN, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lsn, err := m.engine.NextLSN()
	if err != nil {
		return types.NullLSN, err
	}

	m.dirty.insertIfAbsent(pageID, lsn)
	prev := m.txs.getLastLSN(txID)

	m.append(record.UpdateRecord{
		Lsn: lsn, Prev: prev, Tx: txID,
		PageID: pageID, Offset: offset,
		Before: before, After: after,
	})
	m.txs.setLastLSN(txID, lsn)

	m.log.WithFields(logrus.Fields{"txID": txID, "pageID": pageID, "lsn": lsn}).Debug("write")
	return lsn, nil
}
