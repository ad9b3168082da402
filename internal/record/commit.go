package record

import "recoverylog/pkg/types"

// CommitRecord marks a transaction as decided-to-commit. The matching END
// record, written after commit-side cleanup, marks it fully finished.
type CommitRecord struct {
	Lsn, Prev types.LSN
	Tx        types.TxID
}

func (r CommitRecord) LSN() types.LSN     { return r.Lsn }
func (r CommitRecord) PrevLSN() types.LSN { return r.Prev }
func (r CommitRecord) TxID() types.TxID   { return r.Tx }
func (r CommitRecord) Kind() Kind         { return Commit }

func (r CommitRecord) Serialize() string {
	return join(Commit.String(), i64(int64(r.Lsn)), i64(int64(r.Prev)), i64(int64(r.Tx)))
}

func parseCommit(fields []string) (Record, error) {
	if err := requireFields(fields, 4, Commit); err != nil {
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
	return CommitRecord{Lsn: lsn, Prev: prev, Tx: tx}, nil
}
