package domain

import "errors"

var (
	// ErrNotFound is returned by store lookups that match no row.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by store inserts that lose a natural-key race.
	// The reconciler resolves it by re-reading the existing row.
	ErrConflict = errors.New("natural key conflict")
)
