package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate applies SELECT ... FOR UPDATE row locking on postgres.
// The sqlite driver used in tests is single-writer and rejects the clause,
// so it is skipped there; the guarded stock decrement still prevents
// overselling on that backend.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
