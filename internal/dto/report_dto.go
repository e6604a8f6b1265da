package dto

import "github.com/shopspring/decimal"

// Report modes. Pipeline counts every non-cancelled order of the period;
// realized additionally requires the latest payment to be paid.
const (
	ModeRealized = "realized"
	ModePipeline = "pipeline"
)

// DailyProfitFilter is bound from GET /v1/admin/reports/daily.
type DailyProfitFilter struct {
	Date string `form:"date"`                        // YYYY-MM-DD in the report zone; empty = today
	Mode string `form:"mode,default=realized" validate:"oneof=realized pipeline"`
}

// TopProductsFilter is bound from GET /v1/admin/reports/top-products.
type TopProductsFilter struct {
	WindowDays int    `form:"window_days,default=7" validate:"min=1,max=365"`
	Mode       string `form:"mode,default=realized" validate:"oneof=realized pipeline"`
	Limit      int    `form:"limit,default=10"      validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// DailyProfitResponse aggregates one civil day. Revenue excludes the delivery
// fee so it stays comparable with COGS, matching the dashboard cards.
type DailyProfitResponse struct {
	Date         string          `json:"date"`
	Mode         string          `json:"mode"`
	OrdersCount  int64           `json:"orders_count"`
	RevenueCents int64           `json:"revenue_cents"`
	COGSCents    int64           `json:"cogs_cents"`
	ProfitCents  int64           `json:"profit_cents"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
}

type TopProductRow struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	QtySold      int64  `json:"qty_sold"`
	RevenueCents int64  `json:"revenue_cents"`
	COGSCents    int64  `json:"cogs_cents"`
	ProfitCents  int64  `json:"profit_cents"`
}

type TopProductsResponse struct {
	WindowDays int             `json:"window_days"`
	Mode       string          `json:"mode"`
	Data       []TopProductRow `json:"data"`
}
