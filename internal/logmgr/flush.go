package logmgr

import (
	"strings"

	"recoverylog/pkg/types"
)

// flushLogTailTo flushes the longest prefix of the tail whose last element's
// LSN is <= maxLSN, per REDESIGN FLAGS: don't require exact membership of
// maxLSN in the tail. No-op if the tail is empty or its first element
// already exceeds maxLSN. Caller must hold m.mu.
func (m *LogManager) flushLogTailTo(maxLSN types.LSN) error {
	if len(m.tail) == 0 || m.tail[0].LSN() > maxLSN {
		return nil
	}

	cut := 0
	for cut < len(m.tail) && m.tail[cut].LSN() <= maxLSN {
		cut++
	}

	lines := make([]string, cut)
	for i := 0; i < cut; i++ {
		lines[i] = m.tail[i].Serialize()
	}
	text := strings.Join(lines, "\n") + "\n"

	if err := m.engine.UpdateLog(text); err != nil {
		return err
	}

	m.tail = m.tail[cut:]
	return nil
}
