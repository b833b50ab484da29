package db

import "errors"

// Sentinel errors returned by store implementations. Services use these to
// distinguish a missing reference (a validation problem) from a transport or
// query failure.
var (
	ErrNotFound     = errors.New("record not found")
	ErrSwapResolved = errors.New("swap request already resolved")
)
