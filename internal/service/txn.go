package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(db) with the bare handle when transactions are unavailable
// (stub repositories in unit tests return a nil DB).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
