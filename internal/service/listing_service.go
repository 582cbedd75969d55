package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

// ListingStore is what the services need from the listing table.
// *repository.ListingRepository satisfies it.
type ListingStore interface {
	Create(ctx context.Context, l *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	GetFiltered(ctx context.Context, f model.ListingFilter) ([]model.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Listing, error)
	Update(ctx context.Context, l *model.Listing) error
	UpdateStatus(ctx context.Context, id, status string) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	IncrementViews(ctx context.Context, id string) error
}

// ListingInput is the attribute set an owner supplies on create and
// update. The private half goes straight into the concealed columns.
type ListingInput struct {
	Title         string
	Description   string
	Area          string
	Price         int64
	Amenities     []string
	PreviewImages []string
	Address       string
	DirectionsURL string
	LandlordName  string
	LandlordPhone string
}

type ListingService struct {
	listings ListingStore
}

func NewListingService(listings ListingStore) *ListingService {
	return &ListingService{listings: listings}
}

func validateListingInput(in ListingInput) error {
	var v apperr.ValidationError
	if n := len(strings.TrimSpace(in.Title)); n < 5 || n > 120 {
		v.Set("title", "must be between 5 and 120 characters")
	}
	if n := len(strings.TrimSpace(in.Description)); n < 20 || n > 5000 {
		v.Set("description", "must be between 20 and 5000 characters")
	}
	if strings.TrimSpace(in.Area) == "" {
		v.Set("area", "is required")
	}
	if in.Price <= 0 {
		v.Set("price", "must be positive")
	}
	if len(in.PreviewImages) == 0 {
		v.Set("previewImages", "at least one preview image is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		v.Set("address", "is required")
	}
	if strings.TrimSpace(in.LandlordPhone) == "" {
		v.Set("landlordPhone", "is required")
	}
	if len(v.Fields) > 0 {
		return &v
	}
	return nil
}

func (s *ListingService) Create(ctx context.Context, ownerID string, in ListingInput) (*model.Listing, error) {
	if err := validateListingInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	l := &model.Listing{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Area:          strings.TrimSpace(in.Area),
		Price:         in.Price,
		Amenities:     in.Amenities,
		PreviewImages: in.PreviewImages,
		Address:       strings.TrimSpace(in.Address),
		DirectionsURL: strings.TrimSpace(in.DirectionsURL),
		LandlordName:  strings.TrimSpace(in.LandlordName),
		LandlordPhone: strings.TrimSpace(in.LandlordPhone),
		Status:        model.ListingOpen,
		Lifecycle:     model.LifecycleActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("ListingService.Create: %w", err)
	}
	return l, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*model.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

func (s *ListingService) Browse(ctx context.Context, f model.ListingFilter) ([]model.Listing, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.listings.GetFiltered(ctx, f)
}

func (s *ListingService) ListByOwner(ctx context.Context, ownerID string) ([]model.Listing, error) {
	return s.listings.ListByOwner(ctx, ownerID)
}

// mustOwn loads the listing and checks the caller may mutate it.
func (s *ListingService) mustOwn(ctx context.Context, ident model.Identity, id string) (*model.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != ident.ID && !ident.IsAdmin() {
		return nil, apperr.NewAuthorization("only the owner or an admin may modify a listing")
	}
	return l, nil
}

func (s *ListingService) Update(ctx context.Context, ident model.Identity, id string, in ListingInput) (*model.Listing, error) {
	l, err := s.mustOwn(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	if err := validateListingInput(in); err != nil {
		return nil, err
	}

	l.Title = strings.TrimSpace(in.Title)
	l.Description = strings.TrimSpace(in.Description)
	l.Area = strings.TrimSpace(in.Area)
	l.Price = in.Price
	l.Amenities = in.Amenities
	l.PreviewImages = in.PreviewImages
	l.Address = strings.TrimSpace(in.Address)
	l.DirectionsURL = strings.TrimSpace(in.DirectionsURL)
	l.LandlordName = strings.TrimSpace(in.LandlordName)
	l.LandlordPhone = strings.TrimSpace(in.LandlordPhone)
	l.UpdatedAt = time.Now().UTC()

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("ListingService.Update: %w", err)
	}
	return l, nil
}

// SetStatus flips a listing between open and closed. Reversible.
func (s *ListingService) SetStatus(ctx context.Context, ident model.Identity, id, status string) error {
	if status != model.ListingOpen && status != model.ListingClosed {
		return apperr.NewValidation("status", "must be open or closed")
	}
	if _, err := s.mustOwn(ctx, ident, id); err != nil {
		return err
	}
	if err := s.listings.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("ListingService.SetStatus: %w", err)
	}
	return nil
}

func (s *ListingService) Delete(ctx context.Context, ident model.Identity, id string) error {
	if _, err := s.mustOwn(ctx, ident, id); err != nil {
		return err
	}
	if err := s.listings.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("ListingService.Delete: %w", err)
	}
	return nil
}

// RecordView bumps the view counter. Display metric only, so a failed
// or lost increment is logged and swallowed.
func (s *ListingService) RecordView(ctx context.Context, id string) {
	if err := s.listings.IncrementViews(ctx, id); err != nil {
		log.Printf("ListingService.RecordView: %v", err)
	}
}
