package store

import "errors"

// Domain failure conditions. Handlers distinguish these with errors.Is;
// anything else coming out of a store is a persistence failure.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateMark     = errors.New("activity already marked for this day")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUnknownActivity   = errors.New("unknown activity type")
	ErrDeltaOutOfRange   = errors.New("delta out of range")
	ErrZeroDelta         = errors.New("delta must be nonzero")
	ErrEmptyField        = errors.New("required field is empty")
	ErrBadDate           = errors.New("malformed date")
)
