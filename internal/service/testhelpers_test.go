package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"campuskart/internal/infra"
	"campuskart/internal/model"
	"campuskart/internal/notify"
	"campuskart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database for one test. A
// single connection keeps every GORM transaction on the same memory store,
// and the random DSN suffix keeps -count>1 runs from sharing a store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), uuid.NewString()[:8])
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.Migrate(db))
	return db
}

// testStack wires the full service graph over one test database, with a
// no-op notifier in place of redis.
type testStack struct {
	db        *gorm.DB
	products  ProductService
	inventory InventoryService
	orders    OrderService
	reports   ReportService
	settings  SettingsService
	requests  RequestService
}

func newTestStack(t *testing.T, loc *time.Location) *testStack {
	t.Helper()
	db := newTestDB(t)
	notifier := notify.New(nil)

	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reportRepo := repository.NewReportRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	settings := NewSettingsService(settingRepo, notifier)
	inventory := NewInventoryService(inventoryRepo, productRepo, notifier)

	return &testStack{
		db:        db,
		products:  NewProductService(productRepo, auditRepo, notifier),
		inventory: inventory,
		orders:    NewOrderService(orderRepo, productRepo, inventory, settings, auditRepo, notifier, loc),
		reports:   NewReportService(reportRepo, loc),
		settings:  settings,
		requests:  NewRequestService(requestRepo, notifier),
	}
}

func createProduct(t *testing.T, db *gorm.DB, name string, priceCents, costCents int64) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:       name,
		Category:   "Snacks",
		PriceCents: priceCents,
		CostCents:  costCents,
		IsActive:   true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// addLot inserts one cost lot with an explicit creation time so FIFO order
// is deterministic, and keeps the product aggregate in sync.
func addLot(t *testing.T, db *gorm.DB, productID uuid.UUID, qty int, unitCostCents int64, createdAt time.Time) uuid.UUID {
	t.Helper()
	batch := model.InventoryBatch{BatchCode: "B-TEST-" + uuid.NewString()[:8]}
	require.NoError(t, db.Create(&batch).Error)

	lot := model.InventoryLot{
		BatchID:       batch.ID,
		ProductID:     productID,
		QtyReceived:   qty,
		QtyRemaining:  qty,
		UnitCostCents: unitCostCents,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(&lot).Error)

	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", productID).
		UpdateColumn("stock_qty", gorm.Expr("stock_qty + ?", qty)).Error)
	return lot.ID
}

func lotRemaining(t *testing.T, db *gorm.DB, lotID uuid.UUID) int {
	t.Helper()
	var lot model.InventoryLot
	require.NoError(t, db.First(&lot, "id = ?", lotID).Error)
	return lot.QtyRemaining
}

func productStock(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()
	var p model.Product
	require.NoError(t, db.First(&p, "id = ?", productID).Error)
	return p.StockQty
}

// sumLotRemaining checks the standing invariant that the cached aggregate
// equals the lot ledger.
func sumLotRemaining(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()
	sum, err := repository.NewInventoryRepository(db).SumRemaining(ctxb(), productID)
	require.NoError(t, err)
	return sum
}

func ctxb() context.Context { return context.Background() }
