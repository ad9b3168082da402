package record

import "recoverylog/pkg/types"

// AbortRecord marks a transaction as decided-to-abort, triggering undo
// either immediately (runtime abort) or during recovery's undo phase.
type AbortRecord struct {
	Lsn, Prev types.LSN
	Tx        types.TxID
}

func (r AbortRecord) LSN() types.LSN     { return r.Lsn }
func (r AbortRecord) PrevLSN() types.LSN { return r.Prev }
func (r AbortRecord) TxID() types.TxID   { return r.Tx }
func (r AbortRecord) Kind() Kind         { return Abort }

func (r AbortRecord) Serialize() string {
	return join(Abort.String(), i64(int64(r.Lsn)), i64(int64(r.Prev)), i64(int64(r.Tx)))
}

func parseAbort(fields []string) (Record, error) {
	if err := requireFields(fields, 4, Abort); err != nil {
		return nil, err
	}
	lsn, err := parseLSN(fields[1])
	if err != nil {
		return nil, err
	}
	prev, err := parseLSN(fields[2])
	if err != nil {
		return nil, err
	}
	tx, err := parseTxID(fields[3])
	if err != nil {
		return nil, err
	}
	return AbortRecord{Lsn: lsn, Prev: prev, Tx: tx}, nil
}
