// Package record implements the log manager's closed variant of log record
// kinds: a tagged union with one concrete Go type per kind, a deterministic
// line-oriented text encoding, and a single exhaustive Parse entry point.
//
// Every variant carries the common header {lsn, prevLSN, txID, kind}, plus
// kind-specific fields (pageID/offset/images for UPDATE and CLR, the table
// snapshots for END_CKPT). Serialize/Parse round-trip every field exactly;
// format stability across versions is not a goal.
package record

import (
	"fmt"
	"strings"

	"recoverylog/pkg/types"
)

// Kind discriminates the log record variants.
type Kind int

const (
	Update Kind = iota
	CLR
	Commit
	Abort
	End
	BeginCkpt
	EndCkpt
)

func (k Kind) String() string {
	switch k {
	case Update:
		return "UPDATE"
	case CLR:
		return "CLR"
	case Commit:
		return "COMMIT"
	case Abort:
		return "ABORT"
	case End:
		return "END"
	case BeginCkpt:
		return "BEGIN_CKPT"
	case EndCkpt:
		return "END_CKPT"
	default:
		return "UNKNOWN"
	}
}

func parseKind(tok string) (Kind, error) {
	switch tok {
	case "UPDATE":
		return Update, nil
	case "CLR":
		return CLR, nil
	case "COMMIT":
		return Commit, nil
	case "ABORT":
		return Abort, nil
	case "END":
		return End, nil
	case "BEGIN_CKPT":
		return BeginCkpt, nil
	case "END_CKPT":
		return EndCkpt, nil
	default:
		return 0, fmt.Errorf("%w: unknown record kind %q", ErrMalformed, tok)
	}
}

// ErrMalformed is returned by Parse when a line cannot be decoded as a
// log record. Per the spec this is a fatal, log-is-corrupt condition.
var ErrMalformed = fmt.Errorf("malformed log record")

// Record is the common capability set every variant implements: read the
// header fields, serialize to one line. Kind-specific fields are reached by
// a type switch in callers (analyze/redo/undo), never by unchecked
// downcasting.
type Record interface {
	LSN() types.LSN
	PrevLSN() types.LSN
	TxID() types.TxID
	Kind() Kind
	Serialize() string
}

// Parse decodes one line of the durable log into its concrete Record type.
// It is the single place that dispatches on the kind tag; every caller that
// needs kind-specific fields does so via a type switch on the returned
// value, never a cast.
func Parse(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrMalformed)
	}

	kind, err := parseKind(fields[0])
	if err != nil {
		return nil, err
	}

	switch kind {
	case Update:
		return parseUpdate(fields)
	case CLR:
		return parseCLR(fields)
	case Commit:
		return parseCommit(fields)
	case Abort:
		return parseAbort(fields)
	case End:
		return parseEnd(fields)
	case BeginCkpt:
		return parseBeginCkpt(fields)
	case EndCkpt:
		return parseEndCkpt(fields)
	default:
		return nil, fmt.Errorf("%w: unhandled kind %v", ErrMalformed, kind)
	}
}
