package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrEmptyLedger      = errors.New("fill ledger is empty")
	ErrNoAccountHistory = errors.New("daily account table is empty")
	ErrDuplicateKey     = errors.New("duplicate key violation")
	ErrInvalidID        = errors.New("invalid ID format")
)
