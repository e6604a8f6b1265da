package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ProfitAggregate is the raw rollup behind the daily profit card.
type ProfitAggregate struct {
	OrdersCount  int64
	RevenueCents int64
	COGSCents    int64
}

// TopProductAggregate is one ranked row of the top-products report.
type TopProductAggregate struct {
	ProductID    string
	Name         string
	QtySold      int64
	RevenueCents int64
	COGSCents    int64
	ProfitCents  int64
}

// ReportRepository serves the read-only profit views. All queries run over
// committed order items; revenue is the item line totals (delivery fee
// excluded) and COGS the allocator-derived item costs.
type ReportRepository interface {
	ProfitBetween(ctx context.Context, start, end time.Time, realized bool) (*ProfitAggregate, error)
	TopProductsBetween(ctx context.Context, start, end time.Time, realized bool, limit int) ([]TopProductAggregate, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

// realizedClause filters to orders whose latest payment attempt is paid.
// Written as plain SQL that both postgres and sqlite accept.
const realizedClause = `EXISTS (
	SELECT 1 FROM payments p
	WHERE p.order_id = o.id AND p.status = 'paid'
	  AND p.created_at = (SELECT MAX(p2.created_at) FROM payments p2 WHERE p2.order_id = o.id)
)`

func (r *reportRepo) ProfitBetween(ctx context.Context, start, end time.Time, realized bool) (*ProfitAggregate, error) {
	var row struct {
		OrdersCount  *int64
		RevenueCents *int64
		COGSCents    *int64
	}

	q := r.db.WithContext(ctx).
		Table("orders o").
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Where("o.status <> ?", "cancelled").
		Where("o.created_at >= ? AND o.created_at < ?", start, end)
	if realized {
		q = q.Where(realizedClause)
	}

	err := q.Select(
		"COUNT(DISTINCT o.id) AS orders_count, " +
			"SUM(oi.line_total_cents) AS revenue_cents, " +
			"SUM(oi.qty * oi.unit_cost_cents) AS cogs_cents").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	// Empty result sets aggregate to NULL — report zeroes, never an error.
	agg := &ProfitAggregate{}
	if row.OrdersCount != nil {
		agg.OrdersCount = *row.OrdersCount
	}
	if row.RevenueCents != nil {
		agg.RevenueCents = *row.RevenueCents
	}
	if row.COGSCents != nil {
		agg.COGSCents = *row.COGSCents
	}
	return agg, nil
}

func (r *reportRepo) TopProductsBetween(ctx context.Context, start, end time.Time, realized bool, limit int) ([]TopProductAggregate, error) {
	var rows []TopProductAggregate

	q := r.db.WithContext(ctx).
		Table("order_items oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.status <> ?", "cancelled").
		Where("o.created_at >= ? AND o.created_at < ?", start, end)
	if realized {
		q = q.Where(realizedClause)
	}

	err := q.Select(
		"oi.product_id AS product_id, " +
			"MAX(oi.name_snapshot) AS name, " +
			"SUM(oi.qty) AS qty_sold, " +
			"SUM(oi.line_total_cents) AS revenue_cents, " +
			"SUM(oi.qty * oi.unit_cost_cents) AS cogs_cents, " +
			"SUM(oi.line_total_cents) - SUM(oi.qty * oi.unit_cost_cents) AS profit_cents").
		Group("oi.product_id").
		Order("profit_cents DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
