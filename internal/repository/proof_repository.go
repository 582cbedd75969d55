package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

// pendingProofIndex is the partial unique index over
// (requester_id, listing_id) WHERE status = 'pending'. It is what makes
// the no-duplicate-pending invariant hold under concurrent submissions.
const pendingProofIndex = "payment_proofs_pending_uniq"

type ProofRepository struct {
	DB *sqlx.DB
}

func NewProofRepository(db *sqlx.DB) *ProofRepository {
	return &ProofRepository{DB: db}
}

// Insert stores a new pending proof. A losing racer hits the partial
// unique index and gets the pending-exists conflict, not a raw pq error.
func (r *ProofRepository) Insert(ctx context.Context, p *model.ProofOfPayment) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO payment_proofs
            (id, requester_id, listing_id, amount, channel, reference, receipt_id,
             status, rejection_reason, reviewer_id, reviewed_at, submitted_at)
        VALUES
            (:id, :requester_id, :listing_id, :amount, :channel, :reference, :receipt_id,
             :status, :rejection_reason, :reviewer_id, :reviewed_at, :submitted_at)
    `, p)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == pendingProofIndex {
			return apperr.NewConflict(apperr.ConflictPendingExists)
		}
		return fmt.Errorf("ProofRepository.Insert: %w", err)
	}
	return nil
}

func (r *ProofRepository) GetByID(ctx context.Context, id string) (*model.ProofOfPayment, error) {
	var p model.ProofOfPayment
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM payment_proofs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("proof", id)
	}
	if err != nil {
		return nil, fmt.Errorf("ProofRepository.GetByID: %w", err)
	}
	return &p, nil
}

func (r *ProofRepository) HasPending(ctx context.Context, requesterID, listingID string) (bool, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `
		SELECT COUNT(1) FROM payment_proofs
		WHERE requester_id = $1 AND listing_id = $2 AND status = 'pending'
	`, requesterID, listingID)
	if err != nil {
		return false, fmt.Errorf("ProofRepository.HasPending: %w", err)
	}
	return count > 0, nil
}

func (r *ProofRepository) ListByRequester(ctx context.Context, requesterID string, f model.ProofFilter) ([]model.ProofOfPayment, error) {
	query := `SELECT * FROM payment_proofs WHERE requester_id = $1`
	args := []interface{}{requesterID}
	idx := 2

	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, f.Status)
		idx++
	}
	if f.ListingID != "" {
		query += fmt.Sprintf(" AND listing_id = $%d", idx)
		args = append(args, f.ListingID)
		idx++
	}
	query += fmt.Sprintf(" ORDER BY submitted_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, f.Limit, f.Offset)

	var proofs []model.ProofOfPayment
	if err := r.DB.SelectContext(ctx, &proofs, query, args...); err != nil {
		return nil, fmt.Errorf("ProofRepository.ListByRequester: %w", err)
	}
	return proofs, nil
}

func (r *ProofRepository) ListPending(ctx context.Context, f model.ProofFilter) ([]model.ProofOfPayment, error) {
	query := `SELECT * FROM payment_proofs WHERE status = 'pending'`
	args := []interface{}{}
	idx := 1

	if f.ListingID != "" {
		query += fmt.Sprintf(" AND listing_id = $%d", idx)
		args = append(args, f.ListingID)
		idx++
	}
	query += fmt.Sprintf(" ORDER BY submitted_at ASC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, f.Limit, f.Offset)

	var proofs []model.ProofOfPayment
	if err := r.DB.SelectContext(ctx, &proofs, query, args...); err != nil {
		return nil, fmt.Errorf("ProofRepository.ListPending: %w", err)
	}
	return proofs, nil
}

// Approve runs the pending→approved transition and the grant append in
// one transaction. The update is conditioned on status still being
// 'pending'; a second reviewer matches zero rows and gets ok=false.
func (r *ProofRepository) Approve(ctx context.Context, id, reviewerID string, at time.Time) (*model.ProofOfPayment, bool, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("ProofRepository.Approve begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE payment_proofs
		SET status = 'approved', reviewer_id = $1, reviewed_at = $2
		WHERE id = $3 AND status = 'pending'
	`, reviewerID, at, id)
	if err != nil {
		return nil, false, fmt.Errorf("ProofRepository.Approve update: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO listing_unlocks (user_id, listing_id, granted_at)
		SELECT requester_id, listing_id, $1 FROM payment_proofs WHERE id = $2
		ON CONFLICT DO NOTHING
	`, at, id)
	if err != nil {
		return nil, false, fmt.Errorf("ProofRepository.Approve grant: %w", err)
	}

	var p model.ProofOfPayment
	if err := tx.GetContext(ctx, &p, `SELECT * FROM payment_proofs WHERE id = $1`, id); err != nil {
		return nil, false, fmt.Errorf("ProofRepository.Approve reload: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("ProofRepository.Approve commit: %w", err)
	}
	return &p, true, nil
}

// Reject is the same compare-and-swap without a grant.
func (r *ProofRepository) Reject(ctx context.Context, id, reviewerID, reason string, at time.Time) (*model.ProofOfPayment, bool, error) {
	var p model.ProofOfPayment
	err := r.DB.GetContext(ctx, &p, `
		UPDATE payment_proofs
		SET status = 'rejected', reviewer_id = $1, reviewed_at = $2, rejection_reason = $3
		WHERE id = $4 AND status = 'pending'
		RETURNING *
	`, reviewerID, at, reason, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ProofRepository.Reject: %w", err)
	}
	return &p, true, nil
}
