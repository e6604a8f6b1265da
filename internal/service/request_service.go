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
	"gorm.io/gorm"
)

// RequestService backs the manual-fulfillment boards (printing, GCash
// cash-in/out, off-campus delivery). Write a row, show a row — the operator
// drives everything else by hand.
type RequestService interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceRequestResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceRequestResponse, error)
	List(ctx context.Context, filter dto.ServiceRequestFilter) (*dto.ServiceRequestListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.ServiceRequestResponse, error)
}

type requestService struct {
	repo     repository.RequestRepository
	notifier *notify.Notifier
}

func NewRequestService(repo repository.RequestRepository, notifier *notify.Notifier) RequestService {
	return &requestService{repo: repo, notifier: notifier}
}

func (s *requestService) Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceRequestResponse, error) {
	sr := &model.ServiceRequest{
		Kind:         req.Kind,
		CustomerName: req.CustomerName,
		Contact:      req.Contact,
		Details:      req.Details,
		AmountCents:  req.AmountCents,
		Status:       model.RequestPending,
	}
	if err := s.repo.Create(ctx, sr); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.TopicRequests)
	return requestToResponse(sr), nil
}

func (s *requestService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceRequestResponse, error) {
	sr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("request", id.String())
		}
		return nil, err
	}
	return requestToResponse(sr), nil
}

func (s *requestService) List(ctx context.Context, filter dto.ServiceRequestFilter) (*dto.ServiceRequestListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, *requestToResponse(&requests[i]))
	}
	return &dto.ServiceRequestListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *requestService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.ServiceRequestResponse, error) {
	sr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewNotFound("request", id.String())
	}
	if sr.Status == model.RequestCompleted || sr.Status == model.RequestRejected {
		return nil, &domain.InvalidTransitionError{Entity: "request", From: sr.Status, To: status}
	}
	sr.Status = status
	if err := s.repo.Update(ctx, sr); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.TopicRequests)
	return requestToResponse(sr), nil
}

func requestToResponse(sr *model.ServiceRequest) *dto.ServiceRequestResponse {
	return &dto.ServiceRequestResponse{
		ID:           sr.ID.String(),
		Kind:         sr.Kind,
		CustomerName: sr.CustomerName,
		Contact:      sr.Contact,
		Details:      sr.Details,
		AmountCents:  sr.AmountCents,
		Status:       sr.Status,
		CreatedAt:    sr.CreatedAt.Format(time.RFC3339),
	}
}
