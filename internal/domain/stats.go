package domain

import "time"

// ReconcileStats counts rows touched (created or updated) during one batch.
// A second run over the identical batch reports the same counts: children
// are fully re-inserted and parents count as touched either way.
type ReconcileStats struct {
	Accounts   int
	Ads        int
	Images     int
	Parameters int

	Fetched   int
	Skipped   int
	Errors    int
	Published int
	Duration  time.Duration
}

// StoreCounts holds total row counts per entity, for the query surface.
type StoreCounts struct {
	Accounts   int64
	Ads        int64
	Images     int64
	Parameters int64
}
