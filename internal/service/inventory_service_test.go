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

func TestReceiveBatchCreatesLotsAndStock(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 8000, 3000)
	chips := createProduct(t, s.db, "Chips", 2500, 1200)

	resp, err := s.inventory.ReceiveBatch(ctxb(), dto.ReceiveBatchRequest{
		Note: "weekly restock",
		Items: []dto.BatchItemRequest{
			{ProductID: coffee.ID.String(), Qty: 10, UnitCostCents: 3200},
			{ProductID: chips.ID.String(), Qty: 24, UnitCostCents: 1100},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BatchCode)

	assert.Equal(t, 10, productStock(t, s.db, coffee.ID))
	assert.Equal(t, 24, productStock(t, s.db, chips.ID))

	batch, err := s.inventory.GetBatch(ctxb(), uuid.MustParse(resp.BatchID))
	require.NoError(t, err)
	require.Len(t, batch.Lots, 2)
	assert.Equal(t, "weekly restock", batch.Note)
	for _, lot := range batch.Lots {
		assert.Equal(t, lot.QtyReceived, lot.QtyRemaining)
	}
}

func TestReceiveBatchRejectsWholeBatchOnBadItem(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 8000, 3000)

	_, err := s.inventory.ReceiveBatch(ctxb(), dto.ReceiveBatchRequest{
		Items: []dto.BatchItemRequest{
			{ProductID: coffee.ID.String(), Qty: 10, UnitCostCents: 3200},
			{ProductID: uuid.NewString(), Qty: 5, UnitCostCents: 100},
		},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	// The valid item must not have been applied.
	assert.Equal(t, 0, productStock(t, s.db, coffee.ID))
	var count int64
	require.NoError(t, s.db.Model(&model.InventoryBatch{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReceiveBatchRejectsNonPositiveQty(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 8000, 3000)

	_, err := s.inventory.ReceiveBatch(ctxb(), dto.ReceiveBatchRequest{
		Items: []dto.BatchItemRequest{{ProductID: coffee.ID.String(), Qty: 0, UnitCostCents: 100}},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestAllocateConsumesLotsOldestFirst(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 8000, 3000)

	base := time.Now().Add(-48 * time.Hour)
	oldLot := addLot(t, s.db, coffee.ID, 5, 100, base)
	newLot := addLot(t, s.db, coffee.ID, 5, 200, base.Add(time.Hour))

	allocs, err := s.inventory.AllocateTx(s.db, coffee, uuid.New(), uuid.New(), 7)
	require.NoError(t, err)
	require.Len(t, allocs, 2)

	assert.Equal(t, oldLot, *allocs[0].LotID)
	assert.Equal(t, 5, allocs[0].Qty)
	assert.Equal(t, int64(100), allocs[0].UnitCostCents)

	assert.Equal(t, newLot, *allocs[1].LotID)
	assert.Equal(t, 2, allocs[1].Qty)
	assert.Equal(t, int64(200), allocs[1].UnitCostCents)

	assert.Equal(t, 0, lotRemaining(t, s.db, oldLot))
	assert.Equal(t, 3, lotRemaining(t, s.db, newLot))

	// (5*100 + 2*200) / 7 = 128.57 → 129
	assert.Equal(t, int64(129), weightedUnitCost(allocs, 7))
}

func TestAllocateFallsBackForUnreceivedProduct(t *testing.T) {
	s := newTestStack(t, time.Local)
	legacy := createProduct(t, s.db, "Legacy Candy", 1000, 450)

	allocs, err := s.inventory.AllocateTx(s.db, legacy, uuid.New(), uuid.New(), 3)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Nil(t, allocs[0].LotID)
	assert.Equal(t, 3, allocs[0].Qty)
	assert.Equal(t, int64(450), allocs[0].UnitCostCents)
}

func TestAllocateFailsWhenLedgerShort(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 8000, 3000)
	addLot(t, s.db, coffee.ID, 2, 100, time.Now().Add(-time.Hour))

	_, err := s.inventory.AllocateTx(s.db, coffee, uuid.New(), uuid.New(), 5)
	var ic *domain.InventoryInconsistencyError
	require.ErrorAs(t, err, &ic)
	assert.Equal(t, 5, ic.Needed)
	assert.Equal(t, 2, ic.Covered)
}

func TestRestoreAllocationsSkipsFallback(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 8000, 3000)
	lotID := addLot(t, s.db, coffee.ID, 5, 100, time.Now().Add(-time.Hour))

	allocs, err := s.inventory.AllocateTx(s.db, coffee, uuid.New(), uuid.New(), 4)
	require.NoError(t, err)
	require.Equal(t, 1, lotRemaining(t, s.db, lotID))

	// A fallback allocation mixed in must not touch any lot.
	allocs = append(allocs, model.OrderItemAllocation{ProductID: coffee.ID, LotID: nil, Qty: 2, UnitCostCents: 300})
	require.NoError(t, s.inventory.RestoreAllocationsTx(s.db, allocs))
	assert.Equal(t, 5, lotRemaining(t, s.db, lotID))
}

func TestWeightedUnitCostRoundsHalfUp(t *testing.T) {
	allocs := []model.OrderItemAllocation{
		{Qty: 3, UnitCostCents: 100},
		{Qty: 1, UnitCostCents: 250},
	}
	// (300 + 250) / 4 = 137.5 → 138
	assert.Equal(t, int64(138), weightedUnitCost(allocs, 4))
	assert.Equal(t, int64(0), weightedUnitCost(nil, 0))
}
