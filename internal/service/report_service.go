package service

import (
	"context"
	"time"

	"campuskart/internal/domain"
	"campuskart/internal/dto"
	"campuskart/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService derives the realized/pipeline profit views. Pure reads over
// committed settlement rows — calling twice with no intervening writes yields
// identical results, and empty periods report zeroes rather than erroring.
type ReportService interface {
	DailyProfit(ctx context.Context, filter dto.DailyProfitFilter) (*dto.DailyProfitResponse, error)
	TopProducts(ctx context.Context, filter dto.TopProductsFilter) (*dto.TopProductsResponse, error)
}

type reportService struct {
	repo repository.ReportRepository
	loc  *time.Location
}

// NewReportService buckets days in loc (the configured civil time zone) so
// reports stay correct regardless of the server's locale.
func NewReportService(repo repository.ReportRepository, loc *time.Location) ReportService {
	return &reportService{repo: repo, loc: loc}
}

func (s *reportService) DailyProfit(ctx context.Context, filter dto.DailyProfitFilter) (*dto.DailyProfitResponse, error) {
	mode := filter.Mode
	if mode == "" {
		mode = dto.ModeRealized
	}
	if mode != dto.ModeRealized && mode != dto.ModePipeline {
		return nil, domain.NewValidation("mode must be %q or %q", dto.ModeRealized, dto.ModePipeline)
	}

	var day time.Time
	if filter.Date == "" {
		now := time.Now().In(s.loc)
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", filter.Date, s.loc)
		if err != nil {
			return nil, domain.NewValidation("invalid date %q, want YYYY-MM-DD", filter.Date)
		}
		day = parsed
	}
	start, end := day, day.AddDate(0, 0, 1)

	agg, err := s.repo.ProfitBetween(ctx, start, end, mode == dto.ModeRealized)
	if err != nil {
		return nil, err
	}

	profit := agg.RevenueCents - agg.COGSCents
	margin := decimal.Zero
	if agg.RevenueCents > 0 {
		margin = decimal.NewFromInt(profit).
			Div(decimal.NewFromInt(agg.RevenueCents)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return &dto.DailyProfitResponse{
		Date:         day.Format("2006-01-02"),
		Mode:         mode,
		OrdersCount:  agg.OrdersCount,
		RevenueCents: agg.RevenueCents,
		COGSCents:    agg.COGSCents,
		ProfitCents:  profit,
		MarginPct:    margin,
	}, nil
}

func (s *reportService) TopProducts(ctx context.Context, filter dto.TopProductsFilter) (*dto.TopProductsResponse, error) {
	mode := filter.Mode
	if mode == "" {
		mode = dto.ModeRealized
	}
	if mode != dto.ModeRealized && mode != dto.ModePipeline {
		return nil, domain.NewValidation("mode must be %q or %q", dto.ModeRealized, dto.ModePipeline)
	}
	windowDays := filter.WindowDays
	if windowDays < 1 {
		windowDays = 7
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	// Trailing window of whole civil days, today included.
	now := time.Now().In(s.loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -windowDays)

	rows, err := s.repo.TopProductsBetween(ctx, start, end, mode == dto.ModeRealized, limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.TopProductRow, 0, len(rows))
	for _, row := range rows {
		data = append(data, dto.TopProductRow{
			ProductID:    row.ProductID,
			Name:         row.Name,
			QtySold:      row.QtySold,
			RevenueCents: row.RevenueCents,
			COGSCents:    row.COGSCents,
			ProfitCents:  row.ProfitCents,
		})
	}
	return &dto.TopProductsResponse{WindowDays: windowDays, Mode: mode, Data: data}, nil
}
