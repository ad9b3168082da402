package record

import "recoverylog/pkg/types"

// EndRecord marks a transaction as fully finished (committed or aborted and
// undone) and removable from the transaction table.
type EndRecord struct {
	Lsn, Prev types.LSN
	Tx        types.TxID
}

func (r EndRecord) LSN() types.LSN     { return r.Lsn }
func (r EndRecord) PrevLSN() types.LSN { return r.Prev }
func (r EndRecord) TxID() types.TxID   { return r.Tx }
func (r EndRecord) Kind() Kind         { return End }

func (r EndRecord) Serialize() string {
	return join(End.String(), i64(int64(r.Lsn)), i64(int64(r.Prev)), i64(int64(r.Tx)))
}

func parseEnd(fields []string) (Record, error) {
	if err := requireFields(fields, 4, End); err != nil {
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
	return EndRecord{Lsn: lsn, Prev: prev, Tx: tx}, nil
}
