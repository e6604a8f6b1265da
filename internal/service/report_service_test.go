package service

import (
	"testing"
	"time"

	"campuskart/internal/dto"
	"campuskart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyProfitRealizedVsPipeline(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 200, 0)
	addLot(t, s.db, coffee.ID, 5, 100, time.Now().Add(-time.Hour))

	resp, err := s.orders.PlaceOrder(ctxb(), pickupOrder(coffee.ID.String(), 3))
	require.NoError(t, err)

	// Payment still pending: the order is pipeline, not realized.
	realized, err := s.reports.DailyProfit(ctxb(), dto.DailyProfitFilter{Mode: dto.ModeRealized})
	require.NoError(t, err)
	assert.Zero(t, realized.OrdersCount)
	assert.Zero(t, realized.RevenueCents)

	pipeline, err := s.reports.DailyProfit(ctxb(), dto.DailyProfitFilter{Mode: dto.ModePipeline})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pipeline.OrdersCount)
	assert.Equal(t, int64(600), pipeline.RevenueCents)
	assert.Equal(t, int64(300), pipeline.COGSCents)
	assert.Equal(t, int64(300), pipeline.ProfitCents)
	assert.True(t, pipeline.MarginPct.Equal(decimal.NewFromInt(50)))

	// Mark paid: the order becomes realized.
	_, err = s.orders.VerifyPayment(ctxb(), uuid.MustParse(resp.ID), model.PaymentPaid, "tester")
	require.NoError(t, err)

	realized, err = s.reports.DailyProfit(ctxb(), dto.DailyProfitFilter{Mode: dto.ModeRealized})
	require.NoError(t, err)
	assert.Equal(t, int64(1), realized.OrdersCount)
	assert.Equal(t, int64(600), realized.RevenueCents)
	assert.Equal(t, int64(300), realized.COGSCents)
	assert.Equal(t, int64(300), realized.ProfitCents)
}

func TestDailyProfitExcludesCancelledAndDeliveryFee(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 200, 0)
	addLot(t, s.db, coffee.ID, 10, 100, time.Now().Add(-time.Hour))

	// Delivery order: the fee inflates the total but not the revenue.
	req := pickupOrder(coffee.ID.String(), 2)
	req.Fulfillment = model.FulfillmentDelivery
	req.DeliveryLocation = "Dorm C"
	_, err := s.orders.PlaceOrder(ctxb(), req)
	require.NoError(t, err)

	cancelled, err := s.orders.PlaceOrder(ctxb(), pickupOrder(coffee.ID.String(), 4))
	require.NoError(t, err)
	require.NoError(t, s.orders.CancelOrder(ctxb(), uuid.MustParse(cancelled.ID), "changed mind", "tester"))

	pipeline, err := s.reports.DailyProfit(ctxb(), dto.DailyProfitFilter{Mode: dto.ModePipeline})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pipeline.OrdersCount)
	assert.Equal(t, int64(400), pipeline.RevenueCents) // fee excluded, cancelled excluded
	assert.Equal(t, int64(200), pipeline.COGSCents)
}

func TestDailyProfitEmptyDayReportsZeroes(t *testing.T) {
	s := newTestStack(t, time.Local)

	resp, err := s.reports.DailyProfit(ctxb(), dto.DailyProfitFilter{Date: "2026-01-15", Mode: dto.ModeRealized})
	require.NoError(t, err)
	assert.Zero(t, resp.OrdersCount)
	assert.Zero(t, resp.RevenueCents)
	assert.Zero(t, resp.COGSCents)
	assert.Zero(t, resp.ProfitCents)
	assert.True(t, resp.MarginPct.IsZero())
}

func TestDailyProfitIsIdempotent(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 200, 0)
	addLot(t, s.db, coffee.ID, 5, 100, time.Now().Add(-time.Hour))
	_, err := s.orders.PlaceOrder(ctxb(), pickupOrder(coffee.ID.String(), 2))
	require.NoError(t, err)

	first, err := s.reports.DailyProfit(ctxb(), dto.DailyProfitFilter{Mode: dto.ModePipeline})
	require.NoError(t, err)
	second, err := s.reports.DailyProfit(ctxb(), dto.DailyProfitFilter{Mode: dto.ModePipeline})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDailyProfitBucketsByConfiguredZone(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	s := newTestStack(t, manila)

	coffee := createProduct(t, s.db, "Iced Coffee", 200, 0)
	addLot(t, s.db, coffee.ID, 5, 100, time.Date(2026, 2, 20, 12, 0, 0, 0, manila))

	resp, err := s.orders.PlaceOrder(ctxb(), pickupOrder(coffee.ID.String(), 3))
	require.NoError(t, err)

	// 02:00 March 1 in Manila is still February 28 in UTC. The report must
	// follow the civil day, not the server clock.
	lateNight := time.Date(2026, 3, 1, 2, 0, 0, 0, manila)
	require.NoError(t, s.db.Model(&model.Order{}).Where("id = ?", resp.ID).
		UpdateColumn("created_at", lateNight).Error)

	mar1, err := s.reports.DailyProfit(ctxb(), dto.DailyProfitFilter{Date: "2026-03-01", Mode: dto.ModePipeline})
	require.NoError(t, err)
	assert.Equal(t, int64(600), mar1.RevenueCents)

	feb28, err := s.reports.DailyProfit(ctxb(), dto.DailyProfitFilter{Date: "2026-02-28", Mode: dto.ModePipeline})
	require.NoError(t, err)
	assert.Zero(t, feb28.RevenueCents)
}

func TestTopProductsRanksByProfit(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 200, 0)
	sandwich := createProduct(t, s.db, "Sandwich", 500, 0)
	addLot(t, s.db, coffee.ID, 10, 100, time.Now().Add(-time.Hour))
	addLot(t, s.db, sandwich.ID, 10, 150, time.Now().Add(-time.Hour))

	// Sandwich: 2 * (500-150) = 700 profit. Coffee: 3 * (200-100) = 300.
	_, err := s.orders.PlaceOrder(ctxb(), pickupOrder(sandwich.ID.String(), 2))
	require.NoError(t, err)
	_, err = s.orders.PlaceOrder(ctxb(), pickupOrder(coffee.ID.String(), 3))
	require.NoError(t, err)

	resp, err := s.reports.TopProducts(ctxb(), dto.TopProductsFilter{WindowDays: 7, Mode: dto.ModePipeline, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)

	assert.Equal(t, "Sandwich", resp.Data[0].Name)
	assert.Equal(t, int64(700), resp.Data[0].ProfitCents)
	assert.Equal(t, int64(1000), resp.Data[0].RevenueCents)
	assert.Equal(t, int64(2), resp.Data[0].QtySold)

	assert.Equal(t, "Iced Coffee", resp.Data[1].Name)
	assert.Equal(t, int64(300), resp.Data[1].ProfitCents)
	assert.Equal(t, int64(600), resp.Data[1].RevenueCents)
}

func TestTopProductsRealizedRequiresPaidPayment(t *testing.T) {
	s := newTestStack(t, time.Local)
	coffee := createProduct(t, s.db, "Iced Coffee", 200, 0)
	addLot(t, s.db, coffee.ID, 10, 100, time.Now().Add(-time.Hour))

	resp, err := s.orders.PlaceOrder(ctxb(), pickupOrder(coffee.ID.String(), 2))
	require.NoError(t, err)

	rows, err := s.reports.TopProducts(ctxb(), dto.TopProductsFilter{WindowDays: 7, Mode: dto.ModeRealized, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, rows.Data)

	_, err = s.orders.VerifyPayment(ctxb(), uuid.MustParse(resp.ID), model.PaymentPaid, "tester")
	require.NoError(t, err)

	rows, err = s.reports.TopProducts(ctxb(), dto.TopProductsFilter{WindowDays: 7, Mode: dto.ModeRealized, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows.Data, 1)
	assert.Equal(t, int64(400), rows.Data[0].RevenueCents)
}
