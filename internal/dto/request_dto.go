package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateServiceRequest struct {
	Kind         string `json:"kind"          validate:"required,oneof=printing gcash_cash_in gcash_cash_out delivery"`
	CustomerName string `json:"customer_name" validate:"required,min=2"`
	Contact      string `json:"contact"       validate:"required,min=5"`
	Details      string `json:"details"       validate:"max=1000"`
	AmountCents  int64  `json:"amount_cents"  validate:"min=0"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed rejected"`
}

// ServiceRequestFilter is bound from GET /v1/admin/requests.
type ServiceRequestFilter struct {
	Kind   string `form:"kind"   validate:"omitempty,oneof=printing gcash_cash_in gcash_cash_out delivery"`
	Status string `form:"status" validate:"omitempty,oneof=pending processing completed rejected"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ServiceRequestResponse struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	CustomerName string `json:"customer_name"`
	Contact      string `json:"contact"`
	Details      string `json:"details,omitempty"`
	AmountCents  int64  `json:"amount_cents"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type ServiceRequestListResponse struct {
	Data  []ServiceRequestResponse `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}
