package service

import (
	"testing"
	"time"

	"campuskart/internal/domain"
	"campuskart/internal/dto"
	"campuskart/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductDefaultsCategory(t *testing.T) {
	s := newTestStack(t, time.Local)

	resp, err := s.products.Create(ctxb(), dto.CreateProductRequest{
		Name:       "Bottled Water",
		PriceCents: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, "Uncategorized", resp.Category)
	assert.True(t, resp.IsActive)
	assert.Zero(t, resp.StockQty)
}

func TestAdjustStockGuardsNegative(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 200, 0)
	addLot(t, s.db, coffee.ID, 5, 100, time.Now().Add(-time.Hour))

	resp, err := s.products.AdjustStock(ctxb(), coffee.ID, dto.AdjustStockRequest{Delta: -2, Reason: "spoiled units"}, "tester")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.StockQty)

	_, err = s.products.AdjustStock(ctxb(), coffee.ID, dto.AdjustStockRequest{Delta: -10, Reason: "recount gone wrong"}, "tester")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 3, productStock(t, s.db, coffee.ID))

	// Corrections land in the audit trail.
	var audits int64
	require.NoError(t, s.db.Model(&model.AuditLog{}).
		Where("action = ?", "product.stock_adjust").Count(&audits).Error)
	assert.Equal(t, int64(1), audits)
}

func TestDeactivateHidesFromStorefront(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 200, 0)
	createProduct(t, s.db, "Chips", 2500, 1200)

	require.NoError(t, s.products.Deactivate(ctxb(), coffee.ID))

	cats, err := s.products.Storefront(ctxb())
	require.NoError(t, err)
	for _, cat := range cats {
		for _, p := range cat.Products {
			assert.NotEqual(t, coffee.ID.String(), p.ID)
		}
	}

	require.NoError(t, s.products.Reactivate(ctxb(), coffee.ID))
	got, err := s.products.GetByID(ctxb(), coffee.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestStorefrontGroupsByCategory(t *testing.T) {
	s := newTestStack(t, time.Local)
	for _, spec := range []struct {
		name, category string
	}{
		{"Iced Coffee", "Drinks"},
		{"Milk Tea", "Drinks"},
		{"Chips", "Snacks"},
	} {
		p := createProduct(t, s.db, spec.name, 2000, 800)
		require.NoError(t, s.db.Model(p).UpdateColumn("category", spec.category).Error)
	}

	cats, err := s.products.Storefront(ctxb())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Drinks", cats[0].Category)
	assert.Len(t, cats[0].Products, 2)
	assert.Equal(t, "Snacks", cats[1].Category)
	assert.Len(t, cats[1].Products, 1)
}

func TestGetProductNotFound(t *testing.T) {
	s := newTestStack(t, time.Local)
	_, err := s.products.GetByID(ctxb(), uuid.New())
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}
