package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name       string `json:"name"        validate:"required,min=2,max=120"`
	Category   string `json:"category"    validate:"max=60"`
	PriceCents int64  `json:"price_cents" validate:"required,min=1"`
	CostCents  int64  `json:"cost_cents"  validate:"min=0"`
	PhotoURL   string `json:"photo_url"   validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name       string `json:"name"        validate:"omitempty,min=2,max=120"`
	Category   string `json:"category"    validate:"omitempty,max=60"`
	PriceCents *int64 `json:"price_cents" validate:"omitempty,min=1"`
	CostCents  *int64 `json:"cost_cents"  validate:"omitempty,min=0"`
	PhotoURL   *string `json:"photo_url"`
}

// AdjustStockRequest is a manual admin correction — the only stock mutation
// allowed outside the ledger and the settlement engine.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=5"`
}

// ProductFilter is bound from the query string of product list endpoints.
type ProductFilter struct {
	Category string `form:"category"`
	Name     string `form:"name"`
	Active   string `form:"active"` // "false" = inactive, "all" = everything, default active only
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	CostCents  int64  `json:"cost_cents"`
	StockQty   int    `json:"stock_qty"`
	IsActive   bool   `json:"is_active"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// StorefrontCategory groups active products for the public catalog.
type StorefrontCategory struct {
	Category string            `json:"category"`
	Products []ProductResponse `json:"products"`
}
