package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/notify"
)

// Review decisions.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

const minReasonLen = 10

// ReviewService runs the one transition a proof ever makes:
// pending → approved or pending → rejected. The write is conditioned on
// the status still being pending, so exactly one of two racing
// reviewers wins and the other observes already-reviewed.
type ReviewService struct {
	proofs   ProofStore
	notifier notify.Notifier
}

func NewReviewService(proofs ProofStore, notifier notify.Notifier) *ReviewService {
	return &ReviewService{proofs: proofs, notifier: notifier}
}

func (s *ReviewService) Review(ctx context.Context, reviewerID, proofID, decision, reason string) (*model.ProofOfPayment, error) {
	proof, err := s.proofs.GetByID(ctx, proofID)
	if err != nil {
		return nil, err
	}
	if proof.Status != model.ProofPending {
		return nil, apperr.NewConflict(apperr.ConflictAlreadyReviewed)
	}

	reason = strings.TrimSpace(reason)
	switch decision {
	case DecisionApprove:
	case DecisionReject:
		if len(reason) < minReasonLen {
			return nil, apperr.NewValidation("reason", fmt.Sprintf("rejection reason must be at least %d characters", minReasonLen))
		}
	default:
		return nil, apperr.NewValidation("decision", "must be approve or reject")
	}

	now := time.Now().UTC()
	var (
		updated *model.ProofOfPayment
		ok      bool
	)
	err = retryOnce(ctx, func() error {
		var opErr error
		if decision == DecisionApprove {
			updated, ok, opErr = s.proofs.Approve(ctx, proofID, reviewerID, now)
		} else {
			updated, ok, opErr = s.proofs.Reject(ctx, proofID, reviewerID, reason, now)
		}
		return opErr
	})
	if err != nil {
		return nil, fmt.Errorf("ReviewService.Review: %w", err)
	}
	if !ok {
		// The conditional update matched zero rows: someone else got
		// there first.
		return nil, apperr.NewConflict(apperr.ConflictAlreadyReviewed)
	}

	notify.Dispatch(s.notifier, notify.Event{
		ProofID:     updated.ID,
		ListingID:   updated.ListingID,
		RequesterID: updated.RequesterID,
		Approved:    decision == DecisionApprove,
		Reason:      reason,
	})

	return updated, nil
}
