package record

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"recoverylog/pkg/types"
)

// TxSnapshot is one transaction table row captured by a checkpoint.
type TxSnapshot struct {
	Tx      types.TxID
	LastLSN types.LSN
	Status  types.TxStatus
}

// DirtySnapshot is one dirty-page table row captured by a checkpoint.
type DirtySnapshot struct {
	PageID types.PageID
	RecLSN types.LSN
}

// EndCkptRecord closes a fuzzy checkpoint with a snapshot of the transaction
// table and dirty-page table as they stood when BEGIN_CKPT was logged (plus
// whatever changed while the snapshot was being taken - that's what makes it
// fuzzy). Snapshots are always serialized in sorted-key order so two
// Serialize() calls over the same maps never disagree.
type EndCkptRecord struct {
	Lsn, Prev  types.LSN
	TxTable    []TxSnapshot
	DirtyPages []DirtySnapshot
}

func (r EndCkptRecord) LSN() types.LSN     { return r.Lsn }
func (r EndCkptRecord) PrevLSN() types.LSN { return r.Prev }
func (r EndCkptRecord) TxID() types.TxID   { return types.NullTx }
func (r EndCkptRecord) Kind() Kind         { return EndCkpt }

func (r EndCkptRecord) Serialize() string {
	tx := make([]TxSnapshot, len(r.TxTable))
	copy(tx, r.TxTable)
	sort.Slice(tx, func(i, j int) bool { return tx[i].Tx < tx[j].Tx })

	dp := make([]DirtySnapshot, len(r.DirtyPages))
	copy(dp, r.DirtyPages)
	sort.Slice(dp, func(i, j int) bool { return dp[i].PageID < dp[j].PageID })

	fields := []string{
		EndCkpt.String(),
		i64(int64(r.Lsn)), i64(int64(r.Prev)),
		strconv.Itoa(len(tx)),
	}
	for _, e := range tx {
		fields = append(fields, fmt.Sprintf("%d:%d:%s", e.Tx, e.LastLSN, e.Status))
	}
	fields = append(fields, strconv.Itoa(len(dp)))
	for _, e := range dp {
		fields = append(fields, fmt.Sprintf("%d:%d", e.PageID, e.RecLSN))
	}
	return join(fields...)
}

func parseEndCkpt(fields []string) (Record, error) {
	if err := requireFields(fields, 4, EndCkpt); err != nil {
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

	idx := 3
	nTx, err := parseInt64(fields[idx])
	if err != nil {
		return nil, err
	}
	idx++
	if err := requireFields(fields, idx+int(nTx), EndCkpt); err != nil {
		return nil, err
	}
	txTable := make([]TxSnapshot, 0, nTx)
	for i := int64(0); i < nTx; i++ {
		parts := strings.SplitN(fields[idx], ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: bad tx snapshot entry %q", ErrMalformed, fields[idx])
		}
		txID, err := parseTxID(parts[0])
		if err != nil {
			return nil, err
		}
		lastLSN, err := parseLSN(parts[1])
		if err != nil {
			return nil, err
		}
		status, err := types.ParseTxStatus(parts[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		txTable = append(txTable, TxSnapshot{Tx: txID, LastLSN: lastLSN, Status: status})
		idx++
	}

	if err := requireFields(fields, idx+1, EndCkpt); err != nil {
		return nil, err
	}
	nDP, err := parseInt64(fields[idx])
	if err != nil {
		return nil, err
	}
	idx++
	if err := requireFields(fields, idx+int(nDP), EndCkpt); err != nil {
		return nil, err
	}
	dirtyPages := make([]DirtySnapshot, 0, nDP)
	for i := int64(0); i < nDP; i++ {
		parts := strings.SplitN(fields[idx], ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: bad dirty-page snapshot entry %q", ErrMalformed, fields[idx])
		}
		pageID, err := parsePageID(parts[0])
		if err != nil {
			return nil, err
		}
		recLSN, err := parseLSN(parts[1])
		if err != nil {
			return nil, err
		}
		dirtyPages = append(dirtyPages, DirtySnapshot{PageID: pageID, RecLSN: recLSN})
		idx++
	}

	return EndCkptRecord{Lsn: lsn, Prev: prev, TxTable: txTable, DirtyPages: dirtyPages}, nil
}
