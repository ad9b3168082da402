package logmgr

import "errors"

// ErrEngineUnresponsive is returned when the storage engine reports a failed
// page write (ok=false) during redo or undo. Recovery may be retried once the
// engine recovers.
var ErrEngineUnresponsive = errors.New("storage engine unresponsive")

// ErrMalformedRecord is returned when the durable log cannot be parsed.
// The log is corrupt; this is fatal.
var ErrMalformedRecord = errors.New("malformed log record")

// ErrMissingPrevLSN is returned when undo follows a prevLSN/undoNextLSN
// pointer to an LSN absent from the combined log. Indicates log corruption.
var ErrMissingPrevLSN = errors.New("prevLSN target missing from log")

// ErrUnknownTx names a transaction absent from the transaction table. No
// operation returns it: Commit and Abort on an unknown transaction log a
// warning and return nil.
var ErrUnknownTx = errors.New("unknown transaction")
