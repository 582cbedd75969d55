package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

// StatsStore is the read-only aggregation surface.
// *repository.StatsRepository satisfies it.
type StatsStore interface {
	OwnerListingStats(ctx context.Context, ownerID string) (model.OwnerListingStats, error)
	CountApprovedForOwner(ctx context.Context, ownerID string) (int64, error)
	MonthlyApprovedForOwner(ctx context.Context, ownerID string, since time.Time) ([]model.MonthlyUnlocks, error)
}

type EarningsSummary struct {
	ListingCount         int64   `json:"listingCount"`
	ActiveListingCount   int64   `json:"activeListingCount"`
	TotalViews           int64   `json:"totalViews"`
	TotalApprovedUnlocks int64   `json:"totalApprovedUnlocks"`
	TotalEarnings        int64   `json:"totalEarnings"`
	ConversionRate       float64 `json:"conversionRate"`
}

type MonthlyEarnings struct {
	Period      string `json:"period"`
	UnlockCount int64  `json:"unlockCount"`
	Amount      int64  `json:"amount"`
}

// StatsService derives owner earnings from the proof ledger. Earnings
// are never stored: approved count times the fixed fee, computed on
// read, so a stored total can never drift from the ledger.
type StatsService struct {
	stats StatsStore
	fee   int64
}

func NewStatsService(stats StatsStore, fee int64) *StatsService {
	return &StatsService{stats: stats, fee: fee}
}

func (s *StatsService) StatsFor(ctx context.Context, ownerID string) (*EarningsSummary, error) {
	ls, err := s.stats.OwnerListingStats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("StatsService.StatsFor: %w", err)
	}
	unlocks, err := s.stats.CountApprovedForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("StatsService.StatsFor: %w", err)
	}

	rate := 0.0
	if ls.TotalViews > 0 {
		rate = float64(unlocks) / float64(ls.TotalViews)
	}

	return &EarningsSummary{
		ListingCount:         ls.ListingCount,
		ActiveListingCount:   ls.ActiveListingCount,
		TotalViews:           ls.TotalViews,
		TotalApprovedUnlocks: unlocks,
		TotalEarnings:        unlocks * s.fee,
		ConversionRate:       rate,
	}, nil
}

// MonthlyEarnings buckets approvals by calendar month of the review
// timestamp, newest first, covering the past monthsBack months.
func (s *StatsService) MonthlyEarnings(ctx context.Context, ownerID string, monthsBack int) ([]MonthlyEarnings, error) {
	if monthsBack <= 0 {
		monthsBack = 6
	}
	if monthsBack > 24 {
		monthsBack = 24
	}

	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthsBack - 1), 0)

	rows, err := s.stats.MonthlyApprovedForOwner(ctx, ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("StatsService.MonthlyEarnings: %w", err)
	}

	out := make([]MonthlyEarnings, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonthlyEarnings{
			Period:      r.Month.Format("2006-01"),
			UnlockCount: r.Count,
			Amount:      r.Count * s.fee,
		})
	}
	return out, nil
}
