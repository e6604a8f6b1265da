package infra

import (
	"fmt"

	"campuskart/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate. The schema is greenfield, so AutoMigrate owns it; the two
// indexes AutoMigrate cannot express are applied afterwards.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table. Separated from NewDatabase so the
// test harness can run it against other dialects.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.InventoryBatch{},
		&model.InventoryLot{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderItemAllocation{},
		&model.Payment{},
		&model.AdminUser{},
		&model.Setting{},
		&model.ServiceRequest{},
		&model.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial index keeping FIFO scans cheap once old lots drain to zero.
	// Postgres only; other dialects fall back to the plain composite index
	// AutoMigrate already created.
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(
			`CREATE INDEX IF NOT EXISTS idx_lots_open
			 ON inventory_lots (product_id, created_at, id)
			 WHERE qty_remaining > 0`,
		).Error; err != nil {
			return fmt.Errorf("open-lots index: %w", err)
		}
	}
	return nil
}
