package service

import (
	"testing"
	"time"

	"campuskart/internal/domain"
	"campuskart/internal/dto"
	"campuskart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutSettingsDefaults(t *testing.T) {
	s := newTestStack(t, time.Local)

	checkout, err := s.settings.Checkout(ctxb())
	require.NoError(t, err)
	assert.Equal(t, int64(2000), checkout.DeliveryFeeCents)
	assert.False(t, checkout.GCashAutoPaid)
	assert.True(t, checkout.CheckoutOpen)
}

func TestUpdateGroupHotReloads(t *testing.T) {
	s := newTestStack(t, time.Local)

	// Warm the cache with the defaults first.
	_, err := s.settings.Checkout(ctxb())
	require.NoError(t, err)

	_, err = s.settings.UpdateGroup(ctxb(), model.SettingsCheckout, dto.UpdateSettingsRequest{
		Values: map[string]string{"delivery_fee_cents": "3500"},
	})
	require.NoError(t, err)

	checkout, err := s.settings.Checkout(ctxb())
	require.NoError(t, err)
	assert.Equal(t, int64(3500), checkout.DeliveryFeeCents)

	// Keys are stored namespaced by group.
	var row model.Setting
	require.NoError(t, s.db.First(&row, "key = ?", "checkout.delivery_fee_cents").Error)
	assert.Equal(t, model.SettingsCheckout, row.Group)
	assert.Equal(t, "3500", row.Value)
}

func TestUpdateGroupUpsertsExistingKey(t *testing.T) {
	s := newTestStack(t, time.Local)

	for _, fee := range []string{"1000", "1500"} {
		_, err := s.settings.UpdateGroup(ctxb(), model.SettingsCheckout, dto.UpdateSettingsRequest{
			Values: map[string]string{"delivery_fee_cents": fee},
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, s.db.Model(&model.Setting{}).
		Where("key = ?", "checkout.delivery_fee_cents").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	checkout, err := s.settings.Checkout(ctxb())
	require.NoError(t, err)
	assert.Equal(t, int64(1500), checkout.DeliveryFeeCents)
}

func TestUnknownSettingsGroupRejected(t *testing.T) {
	s := newTestStack(t, time.Local)

	_, err := s.settings.GetGroup(ctxb(), "smtp")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = s.settings.UpdateGroup(ctxb(), "smtp", dto.UpdateSettingsRequest{Values: map[string]string{"host": "x"}})
	require.ErrorAs(t, err, &nf)
}
