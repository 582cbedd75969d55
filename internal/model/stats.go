package model

import "time"

// OwnerListingStats is the listing-side half of an owner's rollup.
type OwnerListingStats struct {
	ListingCount       int64 `db:"listing_count"`
	ActiveListingCount int64 `db:"active_listing_count"`
	TotalViews         int64 `db:"total_views"`
}

// MonthlyUnlocks is one calendar-month bucket of approved proofs,
// keyed by review timestamp.
type MonthlyUnlocks struct {
	Month time.Time `db:"month"`
	Count int64     `db:"unlock_count"`
}
