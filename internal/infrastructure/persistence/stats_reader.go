package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/application/report"
	"github.com/pyasti/backend/internal/domain/ordering"
	"github.com/pyasti/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStatsReader implements report.StatsReader over the orders, products
// and users tables. Order items live in a jsonb column, so the product
// ranking unnests them with jsonb_array_elements.
type GormStatsReader struct {
	db *gorm.DB
}

// NewGormStatsReader creates a new GormStatsReader
func NewGormStatsReader(db *gorm.DB) *GormStatsReader {
	return &GormStatsReader{db: db}
}

// CountOrders counts non-cancelled orders created in the range
func (r *GormStatsReader) CountOrders(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) (int64, error) {
	var count int64
	err := r.scopedOrders(ctx, from, to, sellerID).Count(&count).Error
	return count, err
}

// TotalSales sums order totals for non-cancelled orders in the range
func (r *GormStatsReader) TotalSales(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.scopedOrders(ctx, from, to, sellerID).
		Select("COALESCE(SUM(total_price), 0) as total").
		Scan(&result).Error
	return result.Total, err
}

// DailySales returns per-day order counts and revenue in the range
func (r *GormStatsReader) DailySales(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) ([]report.DailySale, error) {
	type dailyResult struct {
		Date       time.Time
		OrderCount int64
		TotalSales decimal.Decimal
	}

	var results []dailyResult
	err := r.scopedOrders(ctx, from, to, sellerID).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as order_count,
			COALESCE(SUM(total_price), 0) as total_sales
		`).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	sales := make([]report.DailySale, len(results))
	for i, row := range results {
		sales[i] = report.DailySale{
			Date:       row.Date.Format("2006-01-02"),
			OrderCount: row.OrderCount,
			TotalSales: row.TotalSales,
		}
	}
	return sales, nil
}

// TopProducts ranks products by units sold across order item snapshots
func (r *GormStatsReader) TopProducts(ctx context.Context, from, to time.Time, limit int, sellerID *uuid.UUID) ([]report.TopProduct, error) {
	type topResult struct {
		ProductID uuid.UUID
		Name      string
		UnitsSold int64
		Revenue   decimal.Decimal
	}

	query := r.db.WithContext(ctx).
		Table("orders, jsonb_array_elements(orders.items) AS item").
		Select(`
			(item->>'productId')::uuid as product_id,
			MAX(item->>'name') as name,
			COALESCE(SUM((item->>'quantity')::int), 0) as units_sold,
			COALESCE(SUM((item->>'quantity')::int * (item->>'price')::numeric), 0) as revenue
		`).
		Where("orders.created_at BETWEEN ? AND ?", from, to).
		Where("orders.status <> ?", ordering.OrderStatusCancelled)
	if sellerID != nil {
		query = query.Where("orders.seller_id = ?", *sellerID)
	}

	var results []topResult
	err := query.
		Group("product_id").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	top := make([]report.TopProduct, len(results))
	for i, row := range results {
		top[i] = report.TopProduct{
			ProductID: row.ProductID,
			Name:      row.Name,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue,
		}
	}
	return top, nil
}

// CountProducts counts listed products, optionally scoped to a seller
func (r *GormStatsReader) CountProducts(ctx context.Context, sellerID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if sellerID != nil {
		query = query.Where("seller_id = ?", *sellerID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountUsers counts all registered accounts
func (r *GormStatsReader) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error
	return count, err
}

func (r *GormStatsReader) scopedOrders(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("created_at BETWEEN ? AND ?", from, to).
		Where("status <> ?", ordering.OrderStatusCancelled)
	if sellerID != nil {
		query = query.Where("seller_id = ?", *sellerID)
	}
	return query
}

// Ensure GormStatsReader implements StatsReader
var _ report.StatsReader = (*GormStatsReader)(nil)
