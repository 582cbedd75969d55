package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// UnlockRepository holds the materialized grant set: one row per
// (user, listing) a requester may see in full. Rows are appended on
// approval and never removed.
type UnlockRepository struct {
	DB *sqlx.DB
}

func NewUnlockRepository(db *sqlx.DB) *UnlockRepository {
	return &UnlockRepository{DB: db}
}

// Grant is idempotent: re-granting an existing pair is a no-op.
func (r *UnlockRepository) Grant(ctx context.Context, userID, listingID string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO listing_unlocks (user_id, listing_id, granted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, userID, listingID, at)
	if err != nil {
		return fmt.Errorf("UnlockRepository.Grant: %w", err)
	}
	return nil
}

func (r *UnlockRepository) Has(ctx context.Context, userID, listingID string) (bool, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `
		SELECT COUNT(1) FROM listing_unlocks WHERE user_id = $1 AND listing_id = $2
	`, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("UnlockRepository.Has: %w", err)
	}
	return count > 0, nil
}

func (r *UnlockRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.DB.SelectContext(ctx, &ids, `
		SELECT listing_id FROM listing_unlocks WHERE user_id = $1 ORDER BY granted_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("UnlockRepository.ListIDs: %w", err)
	}
	return ids, nil
}
