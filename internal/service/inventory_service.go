package service

import (
	"context"
	"errors"
	"time"

	"campuskart/internal/domain"
	"campuskart/internal/dto"
	"campuskart/internal/model"
	"campuskart/internal/notify"
	"campuskart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryService owns the batch ledger and the FIFO allocator.
type InventoryService interface {
	// ReceiveBatch records one stock reception atomically: batch row, one
	// cost lot per item, and the aggregate stock increments. Any invalid
	// item rejects the whole batch.
	ReceiveBatch(ctx context.Context, req dto.ReceiveBatchRequest) (*dto.ReceiveBatchResponse, error)
	ListBatches(ctx context.Context, filter dto.BatchFilter) (*dto.BatchListResponse, error)
	GetBatch(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error)

	// AllocateTx consumes the product's lots oldest-first inside the
	// caller's settlement transaction and returns the allocation rows
	// (not yet persisted). Runs exactly once per order item.
	AllocateTx(tx *gorm.DB, product *model.Product, orderID, orderItemID uuid.UUID, qty int) ([]model.OrderItemAllocation, error)
	// RestoreAllocationsTx reverses lot consumption on cancellation.
	RestoreAllocationsTx(tx *gorm.DB, allocs []model.OrderItemAllocation) error
}

type inventoryService struct {
	repo        repository.InventoryRepository
	productRepo repository.ProductRepository
	notifier    *notify.Notifier
}

func NewInventoryService(repo repository.InventoryRepository, productRepo repository.ProductRepository, notifier *notify.Notifier) InventoryService {
	return &inventoryService{repo: repo, productRepo: productRepo, notifier: notifier}
}

// ── ReceiveBatch ──────────────────────────────────────────────────────────────

func (s *inventoryService) ReceiveBatch(ctx context.Context, req dto.ReceiveBatchRequest) (*dto.ReceiveBatchResponse, error) {
	if len(req.Items) == 0 {
		return nil, domain.NewValidation("batch must contain at least one item")
	}

	// Resolve and validate every product before touching the ledger.
	type resolvedItem struct {
		productID uuid.UUID
		qty       int
		unitCost  int64
	}
	resolved := make([]resolvedItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Qty <= 0 {
			return nil, domain.NewValidation("item %d: qty must be positive", i+1)
		}
		if item.UnitCostCents < 0 {
			return nil, domain.NewValidation("item %d: unit cost must not be negative", i+1)
		}
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, domain.NewValidation("item %d: invalid product id %q", i+1, item.ProductID)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, domain.NewValidation("item %d: unknown product %s", i+1, item.ProductID)
		}
		if !p.IsActive {
			return nil, domain.NewValidation("item %d: product %q is inactive", i+1, p.Name)
		}
		resolved = append(resolved, resolvedItem{productID: pid, qty: item.Qty, unitCost: item.UnitCostCents})
	}

	batch := &model.InventoryBatch{
		BatchCode: newBatchCode(time.Now()),
		Note:      req.Note,
	}
	for _, item := range resolved {
		batch.Lots = append(batch.Lots, model.InventoryLot{
			ProductID:     item.productID,
			QtyReceived:   item.qty,
			QtyRemaining:  item.qty,
			UnitCostCents: item.unitCost,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateBatchTx(tx, batch); err != nil {
			return err
		}
		for _, item := range resolved {
			if err := s.productRepo.IncrementStockTx(tx, item.productID, item.qty); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifier.Publish(ctx, notify.TopicInventory)
	s.notifier.Publish(ctx, notify.TopicProducts)

	return &dto.ReceiveBatchResponse{
		BatchID:   batch.ID.String(),
		BatchCode: batch.BatchCode,
	}, nil
}

// ── FIFO allocation ───────────────────────────────────────────────────────────

// AllocateTx greedily consumes the oldest open lots. Shortfall policy:
//   - product was never received through the ledger (zero lots ever):
//     allocate the whole quantity at the product's default cost with a nil
//     lot id, so legacy products keep selling;
//   - lots exist but do not cover the need: the cached stock_qty lied about
//     availability — fail with InventoryInconsistencyError so the enclosing
//     transaction rolls back instead of under-allocating silently.
func (s *inventoryService) AllocateTx(tx *gorm.DB, product *model.Product, orderID, orderItemID uuid.UUID, qty int) ([]model.OrderItemAllocation, error) {
	lots, err := s.repo.OpenLotsTx(tx, product.ID)
	if err != nil {
		return nil, err
	}

	var allocs []model.OrderItemAllocation
	remaining := qty
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		take := lot.QtyRemaining
		if take > remaining {
			take = remaining
		}
		if err := s.repo.AddLotRemainingTx(tx, lot.ID, -take); err != nil {
			return nil, err
		}
		lotID := lot.ID
		allocs = append(allocs, model.OrderItemAllocation{
			OrderID:       orderID,
			OrderItemID:   orderItemID,
			ProductID:     product.ID,
			LotID:         &lotID,
			Qty:           take,
			UnitCostCents: lot.UnitCostCents,
		})
		remaining -= take
	}

	if remaining > 0 {
		everReceived, err := s.repo.CountLotsTx(tx, product.ID)
		if err != nil {
			return nil, err
		}
		if everReceived > 0 {
			return nil, &domain.InventoryInconsistencyError{
				ProductID: product.ID,
				Needed:    qty,
				Covered:   qty - remaining,
			}
		}
		// Default-cost fallback, flagged by the nil lot id.
		allocs = append(allocs, model.OrderItemAllocation{
			OrderID:       orderID,
			OrderItemID:   orderItemID,
			ProductID:     product.ID,
			LotID:         nil,
			Qty:           remaining,
			UnitCostCents: product.CostCents,
		})
	}

	return allocs, nil
}

// RestoreAllocationsTx gives consumed quantities back to their lots.
// Fallback allocations (nil lot) have nothing to restore on the lot side —
// the caller re-increments the product aggregate for every allocation.
func (s *inventoryService) RestoreAllocationsTx(tx *gorm.DB, allocs []model.OrderItemAllocation) error {
	for _, a := range allocs {
		if a.LotID == nil {
			continue
		}
		if err := s.repo.AddLotRemainingTx(tx, *a.LotID, a.Qty); err != nil {
			return err
		}
	}
	return nil
}

// weightedUnitCost derives an item's effective unit cost as the
// quantity-weighted average of its allocation costs, rounded to whole cents.
func weightedUnitCost(allocs []model.OrderItemAllocation, qty int) int64 {
	if qty == 0 {
		return 0
	}
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(decimal.NewFromInt(a.UnitCostCents).Mul(decimal.NewFromInt(int64(a.Qty))))
	}
	return total.Div(decimal.NewFromInt(int64(qty))).Round(0).IntPart()
}

// ── Read side ─────────────────────────────────────────────────────────────────

func (s *inventoryService) ListBatches(ctx context.Context, filter dto.BatchFilter) (*dto.BatchListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	batches, total, err := s.repo.ListBatches(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		items = append(items, *batchToResponse(&batches[i]))
	}
	return &dto.BatchListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) GetBatch(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error) {
	batch, err := s.repo.FindBatchByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("batch", id.String())
		}
		return nil, err
	}
	return batchToResponse(batch), nil
}

func batchToResponse(b *model.InventoryBatch) *dto.BatchResponse {
	lots := make([]dto.LotResponse, 0, len(b.Lots))
	for _, lot := range b.Lots {
		name := ""
		if lot.Product != nil {
			name = lot.Product.Name
		}
		lots = append(lots, dto.LotResponse{
			ID:            lot.ID.String(),
			ProductID:     lot.ProductID.String(),
			ProductName:   name,
			QtyReceived:   lot.QtyReceived,
			QtyRemaining:  lot.QtyRemaining,
			UnitCostCents: lot.UnitCostCents,
			CreatedAt:     lot.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.BatchResponse{
		ID:        b.ID.String(),
		BatchCode: b.BatchCode,
		Note:      b.Note,
		Lots:      lots,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
