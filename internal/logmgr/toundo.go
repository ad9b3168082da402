package logmgr

import "recoverylog/pkg/types"

// toUndoSet is the set of LSNs undo still has to process, one per loser
// transaction's current undo frontier. It is a plain map guarded by the
// caller's mutex, but is never ranged over while mutating: undo always
// collects the record to process first (contains), removes it, then adds
// whatever the processing step produces. This sidesteps the source's
// iterator-invalidation hazard of mutating a table while iterating it.
type toUndoSet struct {
	members map[types.LSN]struct{}
}

func newToUndoSet() *toUndoSet {
	return &toUndoSet{members: make(map[types.LSN]struct{})}
}

func (s *toUndoSet) insert(lsn types.LSN) {
	if lsn == types.NullLSN {
		return
	}
	s.members[lsn] = struct{}{}
}

func (s *toUndoSet) remove(lsn types.LSN) {
	delete(s.members, lsn)
}

func (s *toUndoSet) empty() bool {
	return len(s.members) == 0
}

func (s *toUndoSet) contains(lsn types.LSN) bool {
	_, ok := s.members[lsn]
	return ok
}

// max returns the greatest LSN currently in the set, for callers that want
// to drive a backward scan toward the next candidate. Returns false if the
// set is empty.
func (s *toUndoSet) max() (types.LSN, bool) {
	first := true
	var max types.LSN
	for lsn := range s.members {
		if first || lsn > max {
			max = lsn
			first = false
		}
	}
	return max, !first
}
