package service

import (
	"context"
	"strconv"
	"sync"

	"campuskart/internal/domain"
	"campuskart/internal/dto"
	"campuskart/internal/model"
	"campuskart/internal/notify"
	"campuskart/internal/repository"
)

// SettingsService exposes the admin-editable configuration groups. Values
// live in the DB so admins change behavior without a deploy; reads are served
// from an in-process cache invalidated on every write.
type SettingsService interface {
	GetGroup(ctx context.Context, group string) (*dto.SettingsResponse, error)
	UpdateGroup(ctx context.Context, group string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)

	// Typed accessors used by the engine.
	Checkout(ctx context.Context) (*dto.CheckoutSettings, error)
	GCash(ctx context.Context) (*dto.GCashSettings, error)
	Delivery(ctx context.Context) (*dto.DeliverySettings, error)
}

type settingsService struct {
	repo     repository.SettingRepository
	notifier *notify.Notifier

	mu    sync.RWMutex
	cache map[string]map[string]string // group -> key -> value
}

func NewSettingsService(repo repository.SettingRepository, notifier *notify.Notifier) SettingsService {
	return &settingsService{
		repo:     repo,
		notifier: notifier,
		cache:    make(map[string]map[string]string),
	}
}

var validGroups = map[string]bool{
	model.SettingsCheckout: true,
	model.SettingsGCash:    true,
	model.SettingsDelivery: true,
}

func (s *settingsService) groupValues(ctx context.Context, group string) (map[string]string, error) {
	s.mu.RLock()
	cached, ok := s.cache[group]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	rows, err := s.repo.GetGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	s.mu.Lock()
	s.cache[group] = values
	s.mu.Unlock()
	return values, nil
}

func (s *settingsService) GetGroup(ctx context.Context, group string) (*dto.SettingsResponse, error) {
	if !validGroups[group] {
		return nil, domain.NewNotFound("settings group", group)
	}
	values, err := s.groupValues(ctx, group)
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{Group: group, Values: values}, nil
}

func (s *settingsService) UpdateGroup(ctx context.Context, group string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if !validGroups[group] {
		return nil, domain.NewNotFound("settings group", group)
	}
	for key, value := range req.Values {
		if err := s.repo.Upsert(ctx, &model.Setting{Key: group + "." + key, Group: group, Value: value}); err != nil {
			return nil, err
		}
	}

	// Hot reload: drop the cached group so the next read sees fresh values.
	s.mu.Lock()
	delete(s.cache, group)
	s.mu.Unlock()

	s.notifier.Publish(ctx, notify.TopicSettings)
	return s.GetGroup(ctx, group)
}

// value reads one key from a group with a default. Keys are stored
// namespaced ("checkout.delivery_fee_cents").
func (s *settingsService) value(ctx context.Context, group, key, fallback string) string {
	values, err := s.groupValues(ctx, group)
	if err != nil {
		return fallback
	}
	if v, ok := values[group+"."+key]; ok {
		return v
	}
	return fallback
}

func (s *settingsService) Checkout(ctx context.Context) (*dto.CheckoutSettings, error) {
	fee, _ := strconv.ParseInt(s.value(ctx, model.SettingsCheckout, "delivery_fee_cents", "2000"), 10, 64)
	autoPaid, _ := strconv.ParseBool(s.value(ctx, model.SettingsCheckout, "gcash_auto_paid", "false"))
	open, _ := strconv.ParseBool(s.value(ctx, model.SettingsCheckout, "checkout_open", "true"))
	return &dto.CheckoutSettings{
		DeliveryFeeCents: fee,
		GCashAutoPaid:    autoPaid,
		CheckoutOpen:     open,
	}, nil
}

func (s *settingsService) GCash(ctx context.Context) (*dto.GCashSettings, error) {
	return &dto.GCashSettings{
		AccountName:   s.value(ctx, model.SettingsGCash, "account_name", ""),
		AccountNumber: s.value(ctx, model.SettingsGCash, "account_number", ""),
	}, nil
}

func (s *settingsService) Delivery(ctx context.Context) (*dto.DeliverySettings, error) {
	fee, _ := strconv.ParseInt(s.value(ctx, model.SettingsDelivery, "base_fee_cents", "2000"), 10, 64)
	return &dto.DeliverySettings{
		BaseFeeCents: fee,
		Coverage:     s.value(ctx, model.SettingsDelivery, "coverage", ""),
	}, nil
}
