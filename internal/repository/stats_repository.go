package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

// StatsRepository is the read-only side of earnings: aggregations over
// approved proofs joined to the owner's listings. Nothing here mutates.
type StatsRepository struct {
	DB *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) OwnerListingStats(ctx context.Context, ownerID string) (model.OwnerListingStats, error) {
	var s model.OwnerListingStats
	err := r.DB.GetContext(ctx, &s, `
		SELECT
			COUNT(1)                                                          AS listing_count,
			COUNT(1) FILTER (WHERE status = 'open')                           AS active_listing_count,
			COALESCE(SUM(views), 0)                                           AS total_views
		FROM listings
		WHERE owner_id = $1 AND lifecycle = 'active'
	`, ownerID)
	if err != nil {
		return s, fmt.Errorf("StatsRepository.OwnerListingStats: %w", err)
	}
	return s, nil
}

// CountApprovedForOwner counts approved proofs against any listing the
// owner holds, deleted listings included so past earnings never shrink.
func (r *StatsRepository) CountApprovedForOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.DB.GetContext(ctx, &count, `
		SELECT COUNT(1)
		FROM payment_proofs p
		JOIN listings l ON l.id = p.listing_id
		WHERE l.owner_id = $1 AND p.status = 'approved'
	`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("StatsRepository.CountApprovedForOwner: %w", err)
	}
	return count, nil
}

// MonthlyApprovedForOwner buckets approved proofs by calendar month of
// the review timestamp. Earnings realize on approval, not submission.
func (r *StatsRepository) MonthlyApprovedForOwner(ctx context.Context, ownerID string, since time.Time) ([]model.MonthlyUnlocks, error) {
	var rows []model.MonthlyUnlocks
	err := r.DB.SelectContext(ctx, &rows, `
		SELECT date_trunc('month', p.reviewed_at) AS month, COUNT(1) AS unlock_count
		FROM payment_proofs p
		JOIN listings l ON l.id = p.listing_id
		WHERE l.owner_id = $1 AND p.status = 'approved' AND p.reviewed_at >= $2
		GROUP BY 1
		ORDER BY 1 DESC
	`, ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("StatsRepository.MonthlyApprovedForOwner: %w", err)
	}
	return rows, nil
}
