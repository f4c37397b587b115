package models

import "errors"

// ErrDuplicateRecord is returned by the record store when the optional
// unique check-in index rejects an insert.
var ErrDuplicateRecord = errors.New("duplicate attendance record")
