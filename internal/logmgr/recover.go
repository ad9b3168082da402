package logmgr

// Recover parses logText into records, then runs analyze, redo, and undo
// in sequence. If redo fails (engine unresponsive) recovery stops and
// returns an error; the caller is expected to retry with a fresh log read.
// Recovery is idempotent: re-running it after a partial or complete prior
// run converges on the same final state.
func (m *LogManager) Recover(logText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log, err := parseLog(logText)
	if err != nil {
		return err
	}

	m.analyze(log)

	ok, err := m.redo(log)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEngineUnresponsive
	}

	return m.undo(log, nil)
}
