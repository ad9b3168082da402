package record

import "recoverylog/pkg/types"

// CLRRecord (Compensation Log Record) is written while undoing an UPDATE. It
// is redo-only: recovery never undoes a CLR. undoNext names the next LSN
// still needing undo for this transaction, skipping the record it
// compensates for.
type CLRRecord struct {
	Lsn, Prev types.LSN
	Tx        types.TxID
	PageID    types.PageID
	Offset    types.Offset
	After     []byte
	UndoNext  types.LSN
}

func (r CLRRecord) LSN() types.LSN     { return r.Lsn }
func (r CLRRecord) PrevLSN() types.LSN { return r.Prev }
func (r CLRRecord) TxID() types.TxID   { return r.Tx }
func (r CLRRecord) Kind() Kind         { return CLR }

func (r CLRRecord) Serialize() string {
	return join(
		CLR.String(),
		i64(int64(r.Lsn)), i64(int64(r.Prev)), i64(int64(r.Tx)),
		i64(int64(r.PageID)), i64(int64(r.Offset)),
		encodeImage(r.After), i64(int64(r.UndoNext)),
	)
}

func parseCLR(fields []string) (Record, error) {
	if err := requireFields(fields, 8, CLR); err != nil {
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
	page, err := parsePageID(fields[4])
	if err != nil {
		return nil, err
	}
	off, err := parseOffset(fields[5])
	if err != nil {
		return nil, err
	}
	after, err := decodeImage(fields[6])
	if err != nil {
		return nil, err
	}
	undoNext, err := parseLSN(fields[7])
	if err != nil {
		return nil, err
	}
	return CLRRecord{Lsn: lsn, Prev: prev, Tx: tx, PageID: page, Offset: off, After: after, UndoNext: undoNext}, nil
}
