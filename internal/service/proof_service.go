package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

const minReferenceLen = 6

// ProofStore is what the ledger and review service need from the proof
// table. *repository.ProofRepository satisfies it. Insert must enforce
// the single-pending invariant atomically and surface a losing racer as
// ConflictError(pending-exists); Approve and Reject are compare-and-swap
// on status='pending' with ok=false when the swap matches nothing.
type ProofStore interface {
	Insert(ctx context.Context, p *model.ProofOfPayment) error
	GetByID(ctx context.Context, id string) (*model.ProofOfPayment, error)
	HasPending(ctx context.Context, requesterID, listingID string) (bool, error)
	ListByRequester(ctx context.Context, requesterID string, f model.ProofFilter) ([]model.ProofOfPayment, error)
	ListPending(ctx context.Context, f model.ProofFilter) ([]model.ProofOfPayment, error)
	Approve(ctx context.Context, id, reviewerID string, at time.Time) (*model.ProofOfPayment, bool, error)
	Reject(ctx context.Context, id, reviewerID, reason string, at time.Time) (*model.ProofOfPayment, bool, error)
}

// SubmitInput is a requester's claim of having paid the access fee.
type SubmitInput struct {
	ListingID string
	Amount    int64
	Channel   string
	Reference string
	ReceiptID string
}

type ProofService struct {
	proofs   ProofStore
	listings ListingStore
	grants   GrantStore
	fee      int64
}

// NewProofService takes the fixed access fee as a parameter so the
// validation and the earnings side always agree on one number.
func NewProofService(proofs ProofStore, listings ListingStore, grants GrantStore, fee int64) *ProofService {
	return &ProofService{proofs: proofs, listings: listings, grants: grants, fee: fee}
}

// retryOnce retries op one time with backoff on storage failure.
// Business errors come back wrapped as Permanent and are not retried.
func retryOnce(ctx context.Context, op func() error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1), ctx)
	return backoff.Retry(op, b)
}

// Submit validates a claim and inserts it as pending. Order of checks:
// listing exists, not already unlocked, no pending claim, then field
// validation. The pending check here is a fast path; the insert itself
// is what guarantees it under races.
func (s *ProofService) Submit(ctx context.Context, requesterID string, in SubmitInput) (*model.ProofOfPayment, error) {
	if _, err := s.listings.GetByID(ctx, in.ListingID); err != nil {
		return nil, err
	}

	unlocked, err := s.grants.Has(ctx, requesterID, in.ListingID)
	if err != nil {
		return nil, fmt.Errorf("ProofService.Submit: %w", err)
	}
	if unlocked {
		return nil, apperr.NewConflict(apperr.ConflictAlreadyUnlocked)
	}

	pending, err := s.proofs.HasPending(ctx, requesterID, in.ListingID)
	if err != nil {
		return nil, fmt.Errorf("ProofService.Submit: %w", err)
	}
	if pending {
		return nil, apperr.NewConflict(apperr.ConflictPendingExists)
	}

	var v apperr.ValidationError
	if in.Amount != s.fee {
		v.Set("amount", fmt.Sprintf("must equal the access fee of %d", s.fee))
	}
	if !model.ValidChannel(in.Channel) {
		v.Set("channel", "must be one of bank_transfer, ussd, card_terminal")
	}
	if len(strings.TrimSpace(in.Reference)) < minReferenceLen {
		v.Set("reference", fmt.Sprintf("must be at least %d characters", minReferenceLen))
	}
	if strings.TrimSpace(in.ReceiptID) == "" {
		v.Set("receiptId", "is required")
	}
	if len(v.Fields) > 0 {
		return nil, &v
	}

	p := &model.ProofOfPayment{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		ListingID:   in.ListingID,
		Amount:      in.Amount,
		Channel:     in.Channel,
		Reference:   strings.TrimSpace(in.Reference),
		ReceiptID:   strings.TrimSpace(in.ReceiptID),
		Status:      model.ProofPending,
		SubmittedAt: time.Now().UTC(),
	}

	err = retryOnce(ctx, func() error {
		err := s.proofs.Insert(ctx, p)
		var conflict *apperr.ConflictError
		if errors.As(err, &conflict) {
			return backoff.Permanent(err)
		}
		return err
	})
	if err != nil {
		var conflict *apperr.ConflictError
		if errors.As(err, &conflict) {
			return nil, conflict
		}
		return nil, fmt.Errorf("ProofService.Submit: %w", err)
	}
	return p, nil
}

func (s *ProofService) Get(ctx context.Context, id string) (*model.ProofOfPayment, error) {
	return s.proofs.GetByID(ctx, id)
}

func (s *ProofService) ListMine(ctx context.Context, requesterID string, f model.ProofFilter) ([]model.ProofOfPayment, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.proofs.ListByRequester(ctx, requesterID, f)
}

func (s *ProofService) ListPending(ctx context.Context, f model.ProofFilter) ([]model.ProofOfPayment, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.proofs.ListPending(ctx, f)
}
