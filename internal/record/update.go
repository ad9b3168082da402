package record

import "recoverylog/pkg/types"

// UpdateRecord is a logical page write: afterImage is the new bytes,
// beforeImage the old bytes at pageID/offset, needed to undo.
type UpdateRecord struct {
	Lsn, Prev    types.LSN
	Tx           types.TxID
	PageID       types.PageID
	Offset       types.Offset
	Before, After []byte
}

func (r UpdateRecord) LSN() types.LSN     { return r.Lsn }
func (r UpdateRecord) PrevLSN() types.LSN { return r.Prev }
func (r UpdateRecord) TxID() types.TxID   { return r.Tx }
func (r UpdateRecord) Kind() Kind         { return Update }

func (r UpdateRecord) Serialize() string {
	return join(
		Update.String(),
		i64(int64(r.Lsn)), i64(int64(r.Prev)), i64(int64(r.Tx)),
		i64(int64(r.PageID)), i64(int64(r.Offset)),
		encodeImage(r.Before), encodeImage(r.After),
	)
}

func parseUpdate(fields []string) (Record, error) {
	if err := requireFields(fields, 8, Update); err != nil {
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
	before, err := decodeImage(fields[6])
	if err != nil {
		return nil, err
	}
	after, err := decodeImage(fields[7])
	if err != nil {
		return nil, err
	}
	return UpdateRecord{Lsn: lsn, Prev: prev, Tx: tx, PageID: page, Offset: off, Before: before, After: after}, nil
}
