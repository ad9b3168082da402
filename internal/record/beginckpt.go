package record

import "recoverylog/pkg/types"

// BeginCkptRecord opens a fuzzy checkpoint. It carries no transaction
// identity of its own; prevLSN chains it into the log like any other record.
type BeginCkptRecord struct {
	Lsn, Prev types.LSN
}

func (r BeginCkptRecord) LSN() types.LSN     { return r.Lsn }
func (r BeginCkptRecord) PrevLSN() types.LSN { return r.Prev }
func (r BeginCkptRecord) TxID() types.TxID   { return types.NullTx }
func (r BeginCkptRecord) Kind() Kind         { return BeginCkpt }

func (r BeginCkptRecord) Serialize() string {
	return join(BeginCkpt.String(), i64(int64(r.Lsn)), i64(int64(r.Prev)))
}

func parseBeginCkpt(fields []string) (Record, error) {
	if err := requireFields(fields, 3, BeginCkpt); err != nil {
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
	return BeginCkptRecord{Lsn: lsn, Prev: prev}, nil
}
