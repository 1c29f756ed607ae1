package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Kind classifies a storage failure by its SQLite result code.
type Kind int

const (
	// KindOther covers failures without a recognised SQLite code.
	KindOther Kind = iota
	// KindConstraint is a violated NOT NULL, UNIQUE or CHECK constraint.
	KindConstraint
	// KindBusy means another connection holds a lock on the file.
	KindBusy
	// KindCorrupt means the file is damaged or is not a database.
	KindCorrupt
	// KindUnavailable means the file cannot be opened, written or grown.
	KindUnavailable
)

// String returns the lower-case name used in log fields.
func (k Kind) String() string {
	switch k {
	case KindConstraint:
		return "constraint"
	case KindBusy:
		return "busy"
	case KindCorrupt:
		return "corrupt"
	case KindUnavailable:
		return "unavailable"
	}
	return "other"
}

// StorageError wraps a failure of the underlying database together with
// the statement that triggered it.
type StorageError struct {
	Op        string
	Statement string
	Params    []any
	Err       error
}

// Error reports the failed operation and its cause.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying database error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Kind inspects the wrapped error for a SQLite result code.
func (e *StorageError) Kind() Kind {
	var sqliteErr sqlite3.Error
	if !errors.As(e.Err, &sqliteErr) {
		return KindOther
	}
	switch sqliteErr.Code {
	case sqlite3.ErrConstraint:
		return KindConstraint
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return KindBusy
	case sqlite3.ErrCorrupt, sqlite3.ErrNotADB:
		return KindCorrupt
	case sqlite3.ErrCantOpen, sqlite3.ErrReadonly, sqlite3.ErrIoErr, sqlite3.ErrFull:
		return KindUnavailable
	}
	return KindOther
}
