package record

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"recoverylog/pkg/types"
)

func parseInt64(tok string) (int64, error) {
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad integer %q: %v", ErrMalformed, tok, err)
	}
	return v, nil
}

func parseLSN(tok string) (types.LSN, error) {
	v, err := parseInt64(tok)
	return types.LSN(v), err
}

func parseTxID(tok string) (types.TxID, error) {
	v, err := parseInt64(tok)
	return types.TxID(v), err
}

func parsePageID(tok string) (types.PageID, error) {
	v, err := parseInt64(tok)
	return types.PageID(v), err
}

func parseOffset(tok string) (types.Offset, error) {
	v, err := parseInt64(tok)
	return types.Offset(v), err
}

func encodeImage(b []byte) string {
	if len(b) == 0 {
		return "-"
	}
	return hex.EncodeToString(b)
}

func decodeImage(tok string) ([]byte, error) {
	if tok == "-" {
		return nil, nil
	}
	b, err := hex.DecodeString(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: bad image encoding: %v", ErrMalformed, err)
	}
	return b, nil
}

func requireFields(fields []string, n int, kind Kind) error {
	if len(fields) < n {
		return fmt.Errorf("%w: %s record needs %d fields, got %d", ErrMalformed, kind, n, len(fields))
	}
	return nil
}

func join(fields ...string) string {
	return strings.Join(fields, " ")
}

func i64(v int64) string {
	return strconv.FormatInt(v, 10)
}
