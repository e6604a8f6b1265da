package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Qty       int    `json:"qty"        validate:"required,min=1"`
}

// PlaceOrderRequest is the checkout payload. OrderCode is optional — the
// storefront may supply its own short code; when absent the engine generates
// one. Prices and delivery fee are never taken from the client.
type PlaceOrderRequest struct {
	OrderCode        string             `json:"order_code"        validate:"omitempty,min=4,max=20,alphanum"`
	CustomerName     string             `json:"customer_name"     validate:"required,min=2"`
	Contact          string             `json:"contact"           validate:"required,min=5"`
	Fulfillment      string             `json:"fulfillment"       validate:"required,oneof=pickup delivery"`
	PickupLocation   string             `json:"pickup_location"   validate:"omitempty,max=200"`
	DeliveryLocation string             `json:"delivery_location" validate:"omitempty,max=200"`
	PaymentMethod    string             `json:"payment_method"    validate:"required,oneof=gcash cod"`
	ReferenceNumber  string             `json:"reference_number"  validate:"omitempty,max=40"`
	ProofURL         string             `json:"proof_url"         validate:"omitempty,url"`
	Items            []OrderItemRequest `json:"items"             validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed preparing ready out_for_delivery completed cancelled"`
}

type VerifyPaymentRequest struct {
	Status string `json:"status" validate:"required,oneof=paid rejected"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// OrderFilter is bound from the query string of GET /v1/admin/orders.
type OrderFilter struct {
	Date    string `form:"date"`    // YYYY-MM-DD in the report time zone; empty = all
	Status  string `form:"status"`  // pending | confirmed | ... | all (default all)
	Payment string `form:"payment"` // pending | paid | rejected
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Qty            int    `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	UnitCostCents  int64  `json:"unit_cost_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}

type PaymentResponse struct {
	ID              string `json:"id"`
	Method          string `json:"method"`
	AmountCents     int64  `json:"amount_cents"`
	Status          string `json:"status"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	ProofURL        string `json:"proof_url,omitempty"`
	PaidAt          string `json:"paid_at,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type OrderResponse struct {
	ID               string              `json:"id"`
	OrderCode        string              `json:"order_code"`
	CustomerName     string              `json:"customer_name"`
	Contact          string              `json:"contact"`
	Fulfillment      string              `json:"fulfillment"`
	PickupLocation   string              `json:"pickup_location,omitempty"`
	DeliveryLocation string              `json:"delivery_location,omitempty"`
	PaymentMethod    string              `json:"payment_method"`
	SubtotalCents    int64               `json:"subtotal_cents"`
	DeliveryFeeCents int64               `json:"delivery_fee_cents"`
	TotalCents       int64               `json:"total_cents"`
	Status           string              `json:"status"`
	Items            []OrderItemResponse `json:"items"`
	Payments         []PaymentResponse   `json:"payments"`
	CreatedAt        string              `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
