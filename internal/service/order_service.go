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
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OrderService orchestrates order settlement: stock validation, order and
// item creation, FIFO allocation, aggregate stock updates and payment state.
type OrderService interface {
	PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*dto.OrderResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)

	// UpdateStatus enforces the forward-or-cancel state machine.
	UpdateStatus(ctx context.Context, id uuid.UUID, status, actor string) (*dto.OrderResponse, error)
	// VerifyPayment transitions the latest payment attempt. It never touches
	// the order status; admin flows compose the two primitives.
	VerifyPayment(ctx context.Context, id uuid.UUID, status, actor string) (*dto.OrderResponse, error)
	// CancelOrder releases consumed lots and the aggregate stock.
	CancelOrder(ctx context.Context, id uuid.UUID, reason, actor string) error
	// DeleteOrder hard-deletes the order tree, leaving only an audit entry.
	DeleteOrder(ctx context.Context, id uuid.UUID, actor string) error
}

type orderService struct {
	repo        repository.OrderRepository
	productRepo repository.ProductRepository
	inventory   InventoryService
	settings    SettingsService
	auditRepo   repository.AuditRepository
	notifier    *notify.Notifier
	loc         *time.Location
}

func NewOrderService(
	repo repository.OrderRepository,
	productRepo repository.ProductRepository,
	inventory InventoryService,
	settings SettingsService,
	auditRepo repository.AuditRepository,
	notifier *notify.Notifier,
	loc *time.Location,
) OrderService {
	return &orderService{
		repo:        repo,
		productRepo: productRepo,
		inventory:   inventory,
		settings:    settings,
		auditRepo:   auditRepo,
		notifier:    notifier,
		loc:         loc,
	}
}

// ── PlaceOrder ────────────────────────────────────────────────────────────────
// One ACID transaction:
//  1. guarded stock decrement per item (two orders racing for the last unit
//     cannot both pass)
//  2. FIFO lot allocation per item, weighted cost onto the item
//  3. order + items + allocation rows
//  4. initial payment row (pending, or paid when the method is pre-verified
//     by proof upload per the checkout settings)

func (s *orderService) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	checkout, err := s.settings.Checkout(ctx)
	if err != nil {
		return nil, err
	}
	if !checkout.CheckoutOpen {
		return nil, domain.NewValidation("checkout is currently closed")
	}
	if len(req.Items) == 0 {
		return nil, domain.NewValidation("order needs at least one item")
	}
	if req.Fulfillment == model.FulfillmentDelivery && req.DeliveryLocation == "" {
		return nil, domain.NewValidation("delivery orders need a delivery location")
	}

	// Resolve products and compute totals (pre-flight, outside the tx).
	type resolvedItem struct {
		product *model.Product
		qty     int
	}
	resolved := make([]resolvedItem, 0, len(req.Items))
	var subtotal int64
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, domain.NewValidation("invalid product id %q", item.ProductID)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, domain.NewNotFound("product", item.ProductID)
		}
		if !p.IsActive {
			return nil, domain.NewValidation("product %q is no longer available", p.Name)
		}
		if p.StockQty < item.Qty {
			return nil, &domain.OutOfStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   item.Qty,
				Available:   p.StockQty,
			}
		}
		subtotal += int64(item.Qty) * p.PriceCents
		resolved = append(resolved, resolvedItem{product: p, qty: item.Qty})
	}

	var deliveryFee int64
	if req.Fulfillment == model.FulfillmentDelivery {
		deliveryFee = checkout.DeliveryFeeCents
	}

	code, err := s.resolveOrderCode(ctx, req.OrderCode)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:               uuid.New(),
		OrderCode:        code,
		CustomerName:     req.CustomerName,
		Contact:          req.Contact,
		Fulfillment:      req.Fulfillment,
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		PaymentMethod:    req.PaymentMethod,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: deliveryFee,
		TotalCents:       subtotal + deliveryFee,
		Status:           model.OrderPending,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var allAllocs []model.OrderItemAllocation

		for _, r := range resolved {
			// Guarded decrement: zero rows updated means a concurrent order
			// took the remaining units after our pre-flight read.
			rows, err := s.productRepo.DecrementStockGuardedTx(tx, r.product.ID, r.qty)
			if err != nil {
				return err
			}
			if rows == 0 {
				current, ferr := s.productRepo.FindByIDTx(tx, r.product.ID)
				available := 0
				if ferr == nil {
					available = current.StockQty
				}
				return &domain.OutOfStockError{
					ProductID:   r.product.ID,
					ProductName: r.product.Name,
					Requested:   r.qty,
					Available:   available,
				}
			}

			item := model.OrderItem{
				ID:               uuid.New(),
				OrderID:          order.ID,
				ProductID:        r.product.ID,
				NameSnapshot:     r.product.Name,
				CategorySnapshot: r.product.Category,
				Qty:              r.qty,
				UnitPriceCents:   r.product.PriceCents,
				LineTotalCents:   int64(r.qty) * r.product.PriceCents,
			}

			allocs, err := s.inventory.AllocateTx(tx, r.product, order.ID, item.ID, r.qty)
			if err != nil {
				return err
			}
			item.UnitCostCents = weightedUnitCost(allocs, r.qty)
			order.Items = append(order.Items, item)
			allAllocs = append(allAllocs, allocs...)
		}

		// Initial payment: pending, or paid immediately when a GCash proof
		// upload is treated as pre-verified.
		payment := model.Payment{
			OrderID:         order.ID,
			Method:          req.PaymentMethod,
			AmountCents:     order.TotalCents,
			Status:          model.PaymentPending,
			ReferenceNumber: req.ReferenceNumber,
			ProofURL:        req.ProofURL,
		}
		if req.PaymentMethod == model.MethodGCash && req.ProofURL != "" && checkout.GCashAutoPaid {
			now := time.Now()
			payment.Status = model.PaymentPaid
			payment.PaidAt = &now
		}
		order.Payments = append(order.Payments, payment)

		if err := s.repo.CreateTx(tx, order); err != nil {
			// A checkout racing for the same client-supplied code can slip
			// past the availability check and lose on the unique index.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewValidation("order code %q is already taken", order.OrderCode)
			}
			return err
		}
		for i := range allAllocs {
			if err := s.repo.CreateAllocationTx(tx, &allAllocs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		var inc *domain.InventoryInconsistencyError
		if errors.As(txErr, &inc) {
			// Stock accounting is broken for this product — needs an operator.
			log.Error().
				Str("product_id", inc.ProductID.String()).
				Int("needed", inc.Needed).
				Int("covered", inc.Covered).
				Msg("lot ledger does not cover cached stock")
		}
		return nil, txErr
	}

	s.notifier.Publish(ctx, notify.TopicOrders)
	s.notifier.Publish(ctx, notify.TopicPayments)
	s.notifier.Publish(ctx, notify.TopicProducts)

	return orderToResponse(order), nil
}

// resolveOrderCode accepts a client-supplied code when free, otherwise
// generates one, retrying on the unlikely collision.
func (s *orderService) resolveOrderCode(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		exists, err := s.repo.CodeExists(ctx, requested)
		if err != nil {
			return "", err
		}
		if exists {
			return "", domain.NewValidation("order code %q is already taken", requested)
		}
		return requested, nil
	}
	for i := 0; i < 5; i++ {
		code := newOrderCode()
		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique order code")
}

// ── Status state machine ──────────────────────────────────────────────────────

var statusRank = map[string]int{
	model.OrderPending:        0,
	model.OrderConfirmed:      1,
	model.OrderPreparing:      2,
	model.OrderReady:          3,
	model.OrderOutForDelivery: 4,
	model.OrderCompleted:      5,
}

func isTerminal(status string) bool {
	return status == model.OrderCompleted || status == model.OrderCancelled
}

// validTransition allows forward moves and cancellation of non-terminal
// orders; everything else is rejected. Backward jumps were possible in the
// old admin UI and are deliberately ruled out here.
func validTransition(order *model.Order, to string) error {
	from := order.Status
	if to == model.OrderCancelled {
		if isTerminal(from) {
			return &domain.InvalidTransitionError{Entity: "order", From: from, To: to}
		}
		return nil
	}
	if to == model.OrderOutForDelivery && order.Fulfillment != model.FulfillmentDelivery {
		return &domain.InvalidTransitionError{Entity: "order", From: from, To: to}
	}
	fromRank, ok1 := statusRank[from]
	toRank, ok2 := statusRank[to]
	if !ok1 || !ok2 || toRank <= fromRank {
		return &domain.InvalidTransitionError{Entity: "order", From: from, To: to}
	}
	return nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status, actor string) (*dto.OrderResponse, error) {
	if status == model.OrderCancelled {
		// Cancellation releases stock; it has its own path.
		return nil, domain.NewValidation("use the cancel operation to cancel an order")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return domain.NewNotFound("order", id.String())
		}
		if err := validTransition(order, status); err != nil {
			return err
		}
		if err := s.repo.UpdateStatusTx(tx, id, status); err != nil {
			return err
		}
		return s.auditRepo.CreateTx(tx, &model.AuditLog{
			Actor:    actor,
			Action:   "order.status",
			Entity:   "order",
			EntityID: id.String(),
			Detail:   order.Status + " -> " + status,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifier.Publish(ctx, notify.TopicOrders)
	return s.GetByID(ctx, id)
}

// ── VerifyPayment ─────────────────────────────────────────────────────────────

func (s *orderService) VerifyPayment(ctx context.Context, id uuid.UUID, status, actor string) (*dto.OrderResponse, error) {
	if status != model.PaymentPaid && status != model.PaymentRejected {
		return nil, domain.NewValidation("payment status must be %q or %q", model.PaymentPaid, model.PaymentRejected)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDTx(tx, id); err != nil {
			return domain.NewNotFound("order", id.String())
		}
		payment, err := s.repo.LatestPaymentTx(tx, id)
		if err != nil {
			return domain.NewNotFound("payment for order", id.String())
		}
		if payment.Status != model.PaymentPending {
			return &domain.InvalidTransitionError{Entity: "payment", From: payment.Status, To: status}
		}
		payment.Status = status
		if status == model.PaymentPaid {
			now := time.Now()
			payment.PaidAt = &now
		}
		if err := s.repo.UpdatePaymentTx(tx, payment); err != nil {
			return err
		}
		return s.auditRepo.CreateTx(tx, &model.AuditLog{
			Actor:    actor,
			Action:   "payment.verify",
			Entity:   "order",
			EntityID: id.String(),
			Detail:   "payment " + payment.ID.String() + " -> " + status,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifier.Publish(ctx, notify.TopicPayments)
	return s.GetByID(ctx, id)
}

// ── CancelOrder ───────────────────────────────────────────────────────────────
// The source system never restored stock on cancellation; doing so here is a
// correctness fix, not a porting choice. Every allocation re-increments the
// product aggregate, and lot-backed allocations also restore qty_remaining.

func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID, reason, actor string) error {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return domain.NewNotFound("order", id.String())
		}
		if isTerminal(order.Status) {
			return &domain.InvalidTransitionError{Entity: "order", From: order.Status, To: model.OrderCancelled}
		}

		allocs, err := s.repo.AllocationsByOrderTx(tx, id)
		if err != nil {
			return err
		}
		if err := s.inventory.RestoreAllocationsTx(tx, allocs); err != nil {
			return err
		}
		for _, a := range allocs {
			if err := s.productRepo.IncrementStockTx(tx, a.ProductID, a.Qty); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateStatusTx(tx, id, model.OrderCancelled); err != nil {
			return err
		}
		return s.auditRepo.CreateTx(tx, &model.AuditLog{
			Actor:    actor,
			Action:   "order.cancel",
			Entity:   "order",
			EntityID: id.String(),
			Detail:   reason,
		})
	})
	if txErr != nil {
		return txErr
	}

	s.notifier.Publish(ctx, notify.TopicOrders)
	s.notifier.Publish(ctx, notify.TopicProducts)
	return nil
}

// ── DeleteOrder ───────────────────────────────────────────────────────────────
// Hard delete, as the admin board expects. Stock is NOT restored — removing
// a fulfilled order is bookkeeping, cancellation is the stock-restoring path.
// The audit entry is the only trace left.

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID, actor string) error {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return domain.NewNotFound("order", id.String())
		}
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.auditRepo.CreateTx(tx, &model.AuditLog{
			Actor:    actor,
			Action:   "order.delete",
			Entity:   "order",
			EntityID: id.String(),
			Detail:   "order " + order.OrderCode + " hard-deleted",
		})
	})
	if txErr != nil {
		return txErr
	}

	s.notifier.Publish(ctx, notify.TopicOrders)
	return nil
}

// ── Read side ─────────────────────────────────────────────────────────────────

func (s *orderService) GetByCode(ctx context.Context, code string) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("order", code)
		}
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("order", id.String())
		}
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	// Date filtering buckets by the configured civil day, not server local time.
	var dayStart, dayEnd *time.Time
	if filter.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", filter.Date, s.loc)
		if err != nil {
			return nil, domain.NewValidation("invalid date %q, want YYYY-MM-DD", filter.Date)
		}
		end := day.AddDate(0, 0, 1)
		dayStart, dayEnd = &day, &end
	}

	orders, total, err := s.repo.List(ctx, filter, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:      item.ProductID.String(),
			Name:           item.NameSnapshot,
			Category:       item.CategorySnapshot,
			Qty:            item.Qty,
			UnitPriceCents: item.UnitPriceCents,
			UnitCostCents:  item.UnitCostCents,
			LineTotalCents: item.LineTotalCents,
		})
	}
	payments := make([]dto.PaymentResponse, 0, len(o.Payments))
	for _, p := range o.Payments {
		paidAt := ""
		if p.PaidAt != nil {
			paidAt = p.PaidAt.Format(time.RFC3339)
		}
		payments = append(payments, dto.PaymentResponse{
			ID:              p.ID.String(),
			Method:          p.Method,
			AmountCents:     p.AmountCents,
			Status:          p.Status,
			ReferenceNumber: p.ReferenceNumber,
			ProofURL:        p.ProofURL,
			PaidAt:          paidAt,
			CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.OrderResponse{
		ID:               o.ID.String(),
		OrderCode:        o.OrderCode,
		CustomerName:     o.CustomerName,
		Contact:          o.Contact,
		Fulfillment:      o.Fulfillment,
		PickupLocation:   o.PickupLocation,
		DeliveryLocation: o.DeliveryLocation,
		PaymentMethod:    o.PaymentMethod,
		SubtotalCents:    o.SubtotalCents,
		DeliveryFeeCents: o.DeliveryFeeCents,
		TotalCents:       o.TotalCents,
		Status:           o.Status,
		Items:            items,
		Payments:         payments,
		CreatedAt:        o.CreatedAt.Format(time.RFC3339),
	}
}
