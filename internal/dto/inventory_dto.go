package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type BatchItemRequest struct {
	ProductID     string `json:"product_id"      validate:"required,uuid"`
	Qty           int    `json:"qty"             validate:"required,min=1"`
	UnitCostCents int64  `json:"unit_cost_cents" validate:"min=0"`
}

// ReceiveBatchRequest records one inventory reception: a batch exploded into
// per-product cost lots, applied all-or-nothing.
type ReceiveBatchRequest struct {
	Note  string             `json:"note"  validate:"max=500"`
	Items []BatchItemRequest `json:"items" validate:"required,min=1,dive"`
}

// BatchFilter is bound from the query string of GET /v1/admin/inventory/batches.
type BatchFilter struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReceiveBatchResponse struct {
	BatchID   string `json:"batch_id"`
	BatchCode string `json:"batch_code"`
}

type LotResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	QtyReceived   int    `json:"qty_received"`
	QtyRemaining  int    `json:"qty_remaining"`
	UnitCostCents int64  `json:"unit_cost_cents"`
	CreatedAt     string `json:"created_at"`
}

type BatchResponse struct {
	ID        string        `json:"id"`
	BatchCode string        `json:"batch_code"`
	Note      string        `json:"note,omitempty"`
	Lots      []LotResponse `json:"lots"`
	CreatedAt string        `json:"created_at"`
}

type BatchListResponse struct {
	Data  []BatchResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
