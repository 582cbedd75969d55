package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

const testFee = int64(1000)

func newProofService(db *fakeDB) *ProofService {
	return NewProofService(&fakeProofs{db}, &fakeListings{db}, &fakeGrants{db}, testFee)
}

func validClaim(listingID string) SubmitInput {
	return SubmitInput{
		ListingID: listingID,
		Amount:    testFee,
		Channel:   model.ChannelBankTransfer,
		Reference: "TXN12345",
		ReceiptID: "receipt-1",
	}
}

func TestProofService_Submit_Success(t *testing.T) {
	db := newFakeDB()
	listingID := db.addListing("owner-1")
	svc := newProofService(db)

	p, err := svc.Submit(context.Background(), "seeker-1", validClaim(listingID))
	require.NoError(t, err)
	assert.Equal(t, model.ProofPending, p.Status)
	assert.Equal(t, "seeker-1", p.RequesterID)
	assert.Equal(t, listingID, p.ListingID)
	assert.Equal(t, testFee, p.Amount)
	assert.NotEmpty(t, p.ID)
	assert.Nil(t, p.ReviewerID)
}

func TestProofService_Submit_ListingNotFound(t *testing.T) {
	db := newFakeDB()
	svc := newProofService(db)

	_, err := svc.Submit(context.Background(), "seeker-1", validClaim("no-such-listing"))
	var nf *apperr.NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestProofService_Submit_DeletedListingNotFound(t *testing.T) {
	db := newFakeDB()
	listingID := db.addListing("owner-1")
	listings := &fakeListings{db}
	require.NoError(t, listings.SoftDelete(context.Background(), listingID, time.Now().UTC()))
	svc := newProofService(db)

	_, err := svc.Submit(context.Background(), "seeker-1", validClaim(listingID))
	var nf *apperr.NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestProofService_Submit_AlreadyUnlocked(t *testing.T) {
	db := newFakeDB()
	listingID := db.addListing("owner-1")
	grants := &fakeGrants{db}
	require.NoError(t, grants.Grant(context.Background(), "seeker-1", listingID, time.Now().UTC()))
	svc := newProofService(db)

	_, err := svc.Submit(context.Background(), "seeker-1", validClaim(listingID))
	var conflict *apperr.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, apperr.ConflictAlreadyUnlocked, conflict.Reason)
}

func TestProofService_Submit_PendingExists(t *testing.T) {
	db := newFakeDB()
	listingID := db.addListing("owner-1")
	svc := newProofService(db)

	_, err := svc.Submit(context.Background(), "seeker-1", validClaim(listingID))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "seeker-1", validClaim(listingID))
	var conflict *apperr.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, apperr.ConflictPendingExists, conflict.Reason)
}

// Amount must equal the fee exactly; method and reference being valid
// does not save a wrong amount.
func TestProofService_Submit_AmountMustEqualFee(t *testing.T) {
	db := newFakeDB()
	listingID := db.addListing("owner-1")
	svc := newProofService(db)

	for _, amount := range []int64{0, 1, testFee - 1, testFee + 1, testFee * 2} {
		claim := validClaim(listingID)
		claim.Amount = amount
		_, err := svc.Submit(context.Background(), "seeker-1", claim)
		var v *apperr.ValidationError
		require.True(t, errors.As(err, &v), "amount %d must be rejected", amount)
		assert.Contains(t, v.Fields, "amount")
	}
}

func TestProofService_Submit_FieldValidation(t *testing.T) {
	db := newFakeDB()
	listingID := db.addListing("owner-1")
	svc := newProofService(db)

	tests := []struct {
		name   string
		mutate func(*SubmitInput)
		field  string
	}{
		{"bad channel", func(in *SubmitInput) { in.Channel = "cash" }, "channel"},
		{"short reference", func(in *SubmitInput) { in.Reference = "TX1" }, "reference"},
		{"missing receipt", func(in *SubmitInput) { in.ReceiptID = "  " }, "receiptId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := validClaim(listingID)
			tt.mutate(&claim)
			_, err := svc.Submit(context.Background(), "seeker-1", claim)
			var v *apperr.ValidationError
			require.True(t, errors.As(err, &v))
			assert.Contains(t, v.Fields, tt.field)
		})
	}
}

// Concurrent submissions for the same (requester, listing) must yield
// exactly one pending record; every loser sees pending-exists.
func TestProofService_Submit_NoDuplicatePendingUnderRace(t *testing.T) {
	db := newFakeDB()
	listingID := db.addListing("owner-1")
	svc := newProofService(db)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), "seeker-1", validClaim(listingID))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var conflict *apperr.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, apperr.ConflictPendingExists, conflict.Reason)
	}
	assert.Equal(t, 1, successes)

	pending, err := svc.ListMine(context.Background(), "seeker-1", model.ProofFilter{Status: model.ProofPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestProofService_ListMine_FiltersByStatus(t *testing.T) {
	db := newFakeDB()
	l1 := db.addListing("owner-1")
	l2 := db.addListing("owner-1")
	svc := newProofService(db)

	_, err := svc.Submit(context.Background(), "seeker-1", validClaim(l1))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "seeker-1", validClaim(l2))
	require.NoError(t, err)

	all, err := svc.ListMine(context.Background(), "seeker-1", model.ProofFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byListing, err := svc.ListMine(context.Background(), "seeker-1", model.ProofFilter{ListingID: l1})
	require.NoError(t, err)
	assert.Len(t, byListing, 1)

	none, err := svc.ListMine(context.Background(), "seeker-1", model.ProofFilter{Status: model.ProofApproved})
	require.NoError(t, err)
	assert.Len(t, none, 0)
}
