package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

// fakeDB is the in-memory stand-in for Postgres. The per-store fake
// types below share it the way the real repositories share one
// *sqlx.DB; its single mutex gives the same atomicity the partial
// unique index and conditional updates give in SQL.
type fakeDB struct {
	mu       sync.Mutex
	listings map[string]model.Listing
	proofs   map[string]model.ProofOfPayment
	grants   map[string]map[string]bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		listings: map[string]model.Listing{},
		proofs:   map[string]model.ProofOfPayment{},
		grants:   map[string]map[string]bool{},
	}
}

func (db *fakeDB) addListing(ownerID string) string {
	db.mu.Lock()
	defer db.mu.Unlock()
	id := uuid.NewString()
	db.listings[id] = model.Listing{
		ID:            id,
		OwnerID:       ownerID,
		Title:         "Self-contained room near campus",
		Description:   "A decent self-contained room, ten minutes from the main gate.",
		Area:          "Effurun",
		Price:         150000,
		PreviewImages: []string{"img-1"},
		Address:       "12 Hidden Street",
		LandlordName:  "Mr. Okoro",
		LandlordPhone: "+2348000000000",
		Status:        model.ListingOpen,
		Lifecycle:     model.LifecycleActive,
		CreatedAt:     time.Now().UTC(),
	}
	return id
}

func (db *fakeDB) grantLocked(userID, listingID string) {
	if db.grants[userID] == nil {
		db.grants[userID] = map[string]bool{}
	}
	db.grants[userID][listingID] = true
}

type fakeListings struct{ db *fakeDB }

func (f *fakeListings) Create(_ context.Context, l *model.Listing) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.listings[l.ID] = *l
	return nil
}

func (f *fakeListings) GetByID(_ context.Context, id string) (*model.Listing, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	l, ok := f.db.listings[id]
	if !ok || l.Lifecycle != model.LifecycleActive {
		return nil, apperr.NewNotFound("listing", id)
	}
	cp := l
	return &cp, nil
}

func (f *fakeListings) GetFiltered(_ context.Context, flt model.ListingFilter) ([]model.Listing, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []model.Listing
	for _, l := range f.db.listings {
		if l.Lifecycle != model.LifecycleActive || l.Status != model.ListingOpen {
			continue
		}
		if flt.Area != "" && l.Area != flt.Area {
			continue
		}
		if flt.MinPrice > 0 && l.Price < flt.MinPrice {
			continue
		}
		if flt.MaxPrice > 0 && l.Price > flt.MaxPrice {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeListings) ListByOwner(_ context.Context, ownerID string) ([]model.Listing, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []model.Listing
	for _, l := range f.db.listings {
		if l.OwnerID == ownerID && l.Lifecycle == model.LifecycleActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListings) Update(_ context.Context, l *model.Listing) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cur, ok := f.db.listings[l.ID]
	if !ok || cur.Lifecycle != model.LifecycleActive {
		return apperr.NewNotFound("listing", l.ID)
	}
	f.db.listings[l.ID] = *l
	return nil
}

func (f *fakeListings) UpdateStatus(_ context.Context, id, status string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	l, ok := f.db.listings[id]
	if !ok || l.Lifecycle != model.LifecycleActive {
		return apperr.NewNotFound("listing", id)
	}
	l.Status = status
	f.db.listings[id] = l
	return nil
}

func (f *fakeListings) SoftDelete(_ context.Context, id string, at time.Time) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	l, ok := f.db.listings[id]
	if !ok || l.Lifecycle != model.LifecycleActive {
		return apperr.NewNotFound("listing", id)
	}
	l.Lifecycle = model.LifecycleDeleted
	l.DeletedAt = &at
	f.db.listings[id] = l
	return nil
}

func (f *fakeListings) IncrementViews(_ context.Context, id string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	l, ok := f.db.listings[id]
	if !ok {
		return apperr.NewNotFound("listing", id)
	}
	l.Views++
	f.db.listings[id] = l
	return nil
}

type fakeProofs struct{ db *fakeDB }

func (f *fakeProofs) Insert(_ context.Context, p *model.ProofOfPayment) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, existing := range f.db.proofs {
		if existing.RequesterID == p.RequesterID &&
			existing.ListingID == p.ListingID &&
			existing.Status == model.ProofPending {
			return apperr.NewConflict(apperr.ConflictPendingExists)
		}
	}
	f.db.proofs[p.ID] = *p
	return nil
}

func (f *fakeProofs) GetByID(_ context.Context, id string) (*model.ProofOfPayment, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.proofs[id]
	if !ok {
		return nil, apperr.NewNotFound("proof", id)
	}
	cp := p
	return &cp, nil
}

func (f *fakeProofs) HasPending(_ context.Context, requesterID, listingID string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, p := range f.db.proofs {
		if p.RequesterID == requesterID && p.ListingID == listingID && p.Status == model.ProofPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProofs) ListByRequester(_ context.Context, requesterID string, flt model.ProofFilter) ([]model.ProofOfPayment, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []model.ProofOfPayment
	for _, p := range f.db.proofs {
		if p.RequesterID != requesterID {
			continue
		}
		if flt.Status != "" && p.Status != flt.Status {
			continue
		}
		if flt.ListingID != "" && p.ListingID != flt.ListingID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProofs) ListPending(_ context.Context, flt model.ProofFilter) ([]model.ProofOfPayment, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []model.ProofOfPayment
	for _, p := range f.db.proofs {
		if p.Status != model.ProofPending {
			continue
		}
		if flt.ListingID != "" && p.ListingID != flt.ListingID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProofs) Approve(_ context.Context, id, reviewerID string, at time.Time) (*model.ProofOfPayment, bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.proofs[id]
	if !ok || p.Status != model.ProofPending {
		return nil, false, nil
	}
	p.Status = model.ProofApproved
	p.ReviewerID = &reviewerID
	reviewed := at
	p.ReviewedAt = &reviewed
	f.db.proofs[id] = p
	f.db.grantLocked(p.RequesterID, p.ListingID)

	cp := p
	return &cp, true, nil
}

func (f *fakeProofs) Reject(_ context.Context, id, reviewerID, reason string, at time.Time) (*model.ProofOfPayment, bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.proofs[id]
	if !ok || p.Status != model.ProofPending {
		return nil, false, nil
	}
	p.Status = model.ProofRejected
	p.ReviewerID = &reviewerID
	reviewed := at
	p.ReviewedAt = &reviewed
	p.RejectionReason = &reason
	f.db.proofs[id] = p

	cp := p
	return &cp, true, nil
}

type fakeGrants struct{ db *fakeDB }

func (f *fakeGrants) Grant(_ context.Context, userID, listingID string, _ time.Time) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.grantLocked(userID, listingID)
	return nil
}

func (f *fakeGrants) Has(_ context.Context, userID, listingID string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.db.grants[userID][listingID], nil
}

func (f *fakeGrants) ListIDs(_ context.Context, userID string) ([]string, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	ids := []string{}
	for id := range f.db.grants[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeStats struct{ db *fakeDB }

func (f *fakeStats) OwnerListingStats(_ context.Context, ownerID string) (model.OwnerListingStats, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var s model.OwnerListingStats
	for _, l := range f.db.listings {
		if l.OwnerID != ownerID || l.Lifecycle != model.LifecycleActive {
			continue
		}
		s.ListingCount++
		if l.Status == model.ListingOpen {
			s.ActiveListingCount++
		}
		s.TotalViews += l.Views
	}
	return s, nil
}

func (f *fakeStats) CountApprovedForOwner(_ context.Context, ownerID string) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var count int64
	for _, p := range f.db.proofs {
		if p.Status != model.ProofApproved {
			continue
		}
		if l, ok := f.db.listings[p.ListingID]; ok && l.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStats) MonthlyApprovedForOwner(_ context.Context, ownerID string, since time.Time) ([]model.MonthlyUnlocks, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	buckets := map[time.Time]int64{}
	for _, p := range f.db.proofs {
		if p.Status != model.ProofApproved || p.ReviewedAt == nil || p.ReviewedAt.Before(since) {
			continue
		}
		l, ok := f.db.listings[p.ListingID]
		if !ok || l.OwnerID != ownerID {
			continue
		}
		month := time.Date(p.ReviewedAt.Year(), p.ReviewedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		buckets[month]++
	}
	var out []model.MonthlyUnlocks
	for m, c := range buckets {
		out = append(out, model.MonthlyUnlocks{Month: m, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.After(out[j].Month) })
	return out, nil
}
