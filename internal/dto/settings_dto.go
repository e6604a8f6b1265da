package dto

// UpdateSettingsRequest replaces values within one settings group.
// Keys not present in the map are left untouched.
type UpdateSettingsRequest struct {
	Values map[string]string `json:"values" validate:"required,min=1"`
}

type SettingsResponse struct {
	Group  string            `json:"group"`
	Values map[string]string `json:"values"`
}

// CheckoutSettings are the typed checkout knobs read by the settlement engine.
type CheckoutSettings struct {
	DeliveryFeeCents int64 `json:"delivery_fee_cents"`
	// GCashAutoPaid marks GCash checkouts with an uploaded proof as paid
	// immediately instead of waiting for manual verification.
	GCashAutoPaid bool `json:"gcash_auto_paid"`
	CheckoutOpen  bool `json:"checkout_open"`
}

// GCashSettings describe the operator's receiving account shown at checkout.
type GCashSettings struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

// DeliverySettings drive the off-campus delivery request board.
type DeliverySettings struct {
	BaseFeeCents int64  `json:"base_fee_cents"`
	Coverage     string `json:"coverage"`
}
