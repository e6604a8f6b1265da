package model

import "time"

// Setting groups.
const (
	SettingsCheckout = "checkout"
	SettingsGCash    = "gcash"
	SettingsDelivery = "delivery"
)

// Setting is one admin-editable configuration value, grouped by the logical
// area it belongs to. Values are stored as strings; the settings service
// exposes typed accessors per group and hot-reloads its cache on write, so
// admins can change behavior without a deploy.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Group     string `gorm:"column:group_name;type:varchar(20);not null;index"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
