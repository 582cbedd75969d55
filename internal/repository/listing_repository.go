package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

type ListingRepository struct {
	DB *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{DB: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *model.Listing) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO listings
            (id, owner_id, title, description, area, price, amenities, preview_images,
             address, directions_url, landlord_name, landlord_phone,
             status, views, lifecycle, created_at, updated_at)
        VALUES
            (:id, :owner_id, :title, :description, :area, :price, :amenities, :preview_images,
             :address, :directions_url, :landlord_name, :landlord_phone,
             :status, :views, :lifecycle, :created_at, :updated_at)
    `, l)
	if err != nil {
		return fmt.Errorf("ListingRepository.Create: %w", err)
	}
	return nil
}

// GetByID loads one listing. Soft-deleted rows are invisible here like
// everywhere else.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	var l model.Listing
	err := r.DB.GetContext(ctx, &l, `
		SELECT * FROM listings WHERE id = $1 AND lifecycle = 'active'
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("listing", id)
	}
	if err != nil {
		return nil, fmt.Errorf("ListingRepository.GetByID: %w", err)
	}
	return &l, nil
}

// GetFiltered returns open, active listings for the public browse page.
func (r *ListingRepository) GetFiltered(ctx context.Context, f model.ListingFilter) ([]model.Listing, error) {
	query := `SELECT * FROM listings WHERE lifecycle = 'active' AND status = 'open'`
	args := []interface{}{}
	idx := 1

	if f.Area != "" {
		query += fmt.Sprintf(" AND area = $%d", idx)
		args = append(args, f.Area)
		idx++
	}
	if f.MinPrice > 0 {
		query += fmt.Sprintf(" AND price >= $%d", idx)
		args = append(args, f.MinPrice)
		idx++
	}
	if f.MaxPrice > 0 {
		query += fmt.Sprintf(" AND price <= $%d", idx)
		args = append(args, f.MaxPrice)
		idx++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, f.Limit, f.Offset)

	var listings []model.Listing
	if err := r.DB.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("ListingRepository.GetFiltered: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.DB.SelectContext(ctx, &listings, `
		SELECT * FROM listings
		WHERE owner_id = $1 AND lifecycle = 'active'
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListingRepository.ListByOwner: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *model.Listing) error {
	res, err := r.DB.NamedExecContext(ctx, `
        UPDATE listings SET
            title          = :title,
            description    = :description,
            area           = :area,
            price          = :price,
            amenities      = :amenities,
            preview_images = :preview_images,
            address        = :address,
            directions_url = :directions_url,
            landlord_name  = :landlord_name,
            landlord_phone = :landlord_phone,
            updated_at     = :updated_at
        WHERE id = :id AND lifecycle = 'active'
    `, l)
	if err != nil {
		return fmt.Errorf("ListingRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NewNotFound("listing", l.ID)
	}
	return nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE listings SET status = $1, updated_at = now()
		WHERE id = $2 AND lifecycle = 'active'
	`, status, id)
	if err != nil {
		return fmt.Errorf("ListingRepository.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NewNotFound("listing", id)
	}
	return nil
}

// SoftDelete flags the row instead of removing it so historical proofs
// keep their listing reference.
func (r *ListingRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE listings SET lifecycle = 'deleted', deleted_at = $1, updated_at = $1
		WHERE id = $2 AND lifecycle = 'active'
	`, at, id)
	if err != nil {
		return fmt.Errorf("ListingRepository.SoftDelete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NewNotFound("listing", id)
	}
	return nil
}

// IncrementViews bumps the display counter. Lost increments under
// races are tolerated; no row lock is taken.
func (r *ListingRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE listings SET views = views + 1 WHERE id = $1 AND lifecycle = 'active'
	`, id)
	if err != nil {
		return fmt.Errorf("ListingRepository.IncrementViews: %w", err)
	}
	return nil
}
