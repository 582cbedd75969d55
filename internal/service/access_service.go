package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

// GrantStore is the materialized unlock set.
// *repository.UnlockRepository satisfies it.
type GrantStore interface {
	Grant(ctx context.Context, userID, listingID string, at time.Time) error
	Has(ctx context.Context, userID, listingID string) (bool, error)
	ListIDs(ctx context.Context, userID string) ([]string, error)
}

// AccessService is the single decision point for whether a caller sees
// a listing's private fields. Handlers never branch on unlock status
// themselves; they ask here.
type AccessService struct {
	grants GrantStore
}

func NewAccessService(grants GrantStore) *AccessService {
	return &AccessService{grants: grants}
}

func (s *AccessService) CanView(ctx context.Context, ident model.Identity, l *model.Listing) (bool, error) {
	if !ident.Known() {
		return false, nil
	}
	if ident.ID == l.OwnerID || ident.IsAdmin() {
		return true, nil
	}
	ok, err := s.grants.Has(ctx, ident.ID, l.ID)
	if err != nil {
		return false, fmt.Errorf("AccessService.CanView: %w", err)
	}
	return ok, nil
}

// ListingView returns the unlocked projection when CanView allows it,
// the public one otherwise, plus the flag callers surface as isUnlocked.
func (s *AccessService) ListingView(ctx context.Context, ident model.Identity, l *model.Listing) (interface{}, bool, error) {
	ok, err := s.CanView(ctx, ident, l)
	if err != nil {
		return nil, false, err
	}
	if ok {
		return l.Unlocked(), true, nil
	}
	return l.Public(), false, nil
}

// UnlockedListings is the "listings I can see fully" set for a requester.
func (s *AccessService) UnlockedListings(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.grants.ListIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("AccessService.UnlockedListings: %w", err)
	}
	return ids, nil
}
