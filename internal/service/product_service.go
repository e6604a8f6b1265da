package service

import (
	"context"
	"errors"

	"campuskart/internal/domain"
	"campuskart/internal/dto"
	"campuskart/internal/model"
	"campuskart/internal/notify"
	"campuskart/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService is the catalog CRUD plus the storefront read view.
// Stock moves through the ledger and the settlement engine; the only direct
// mutation allowed here is a manual admin correction, which is audited.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest, actor string) (*dto.ProductResponse, error)

	// Storefront groups active products by category with live stock.
	Storefront(ctx context.Context) ([]dto.StorefrontCategory, error)
}

type productService struct {
	repo      repository.ProductRepository
	auditRepo repository.AuditRepository
	notifier  *notify.Notifier
}

func NewProductService(repo repository.ProductRepository, auditRepo repository.AuditRepository, notifier *notify.Notifier) ProductService {
	return &productService{repo: repo, auditRepo: auditRepo, notifier: notifier}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	category := req.Category
	if category == "" {
		category = "Uncategorized"
	}
	p := &model.Product{
		Name:       req.Name,
		Category:   category,
		PriceCents: req.PriceCents,
		CostCents:  req.CostCents,
		PhotoURL:   req.PhotoURL,
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.TopicProducts)
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("product", id.String())
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewNotFound("product", id.String())
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if req.PriceCents != nil {
		p.PriceCents = *req.PriceCents
	}
	if req.CostCents != nil {
		p.CostCents = *req.CostCents
	}
	if req.PhotoURL != nil {
		p.PhotoURL = *req.PhotoURL
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.TopicProducts)
	return productToResponse(p), nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.NewNotFound("product", id.String())
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.notifier.Publish(ctx, notify.TopicProducts)
	return nil
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.NewNotFound("product", id.String())
	}
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return err
	}
	s.notifier.Publish(ctx, notify.TopicProducts)
	return nil
}

func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest, actor string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewNotFound("product", id.String())
	}
	if p.StockQty+req.Delta < 0 {
		return nil, domain.NewValidation("correction would leave %q with negative stock", p.Name)
	}
	if err := s.repo.AdjustStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	_ = s.auditRepo.Create(ctx, &model.AuditLog{
		Actor:    actor,
		Action:   "product.stock_adjust",
		Entity:   "product",
		EntityID: id.String(),
		Detail:   req.Reason,
	})
	s.notifier.Publish(ctx, notify.TopicProducts)
	return s.GetByID(ctx, id)
}

func (s *productService) Storefront(ctx context.Context) ([]dto.StorefrontCategory, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	// Repo returns category-then-name order; fold into grouped sections.
	var out []dto.StorefrontCategory
	for i := range products {
		resp := *productToResponse(&products[i])
		if len(out) == 0 || out[len(out)-1].Category != resp.Category {
			out = append(out, dto.StorefrontCategory{Category: resp.Category})
		}
		out[len(out)-1].Products = append(out[len(out)-1].Products, resp)
	}
	return out, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Category:   p.Category,
		PriceCents: p.PriceCents,
		CostCents:  p.CostCents,
		StockQty:   p.StockQty,
		IsActive:   p.IsActive,
		PhotoURL:   p.PhotoURL,
	}
}
