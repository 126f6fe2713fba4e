package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DailySale is one day's aggregated order revenue
type DailySale struct {
	Date       string          `json:"date"`
	OrderCount int64           `json:"orderCount"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// TopProduct is one product ranked by units sold in the range
type TopProduct struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	UnitsSold int64           `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Summary aggregates storefront activity over a date range
type Summary struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	OrdersCount   int64           `json:"ordersCount"`
	ProductsCount int64           `json:"productsCount"`
	UsersCount    int64           `json:"usersCount"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	DailySales    []DailySale     `json:"dailySales"`
	TopProducts   []TopProduct    `json:"topProducts"`
}

// StatsReader is the persistence-side read model for summaries.
// A nil sellerID aggregates across the whole storefront.
type StatsReader interface {
	CountOrders(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) (int64, error)
	TotalSales(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) (decimal.Decimal, error)
	DailySales(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) ([]DailySale, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int, sellerID *uuid.UUID) ([]TopProduct, error)
	CountProducts(ctx context.Context, sellerID *uuid.UUID) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
}

// SummaryService builds sales dashboards for admins and sellers
type SummaryService struct {
	stats  StatsReader
	logger *zap.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(stats StatsReader, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		stats:  stats,
		logger: logger.Named("report"),
	}
}

const topProductsLimit = 5

// AdminSummary aggregates the whole storefront. Admin only.
func (s *SummaryService) AdminSummary(ctx context.Context, role identity.Role, from, to time.Time) (*Summary, error) {
	if role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}
	return s.buildSummary(ctx, from, to, nil, true)
}

// SellerSummary aggregates one seller's activity. Requires the seller role.
func (s *SummaryService) SellerSummary(ctx context.Context, sellerID uuid.UUID, role identity.Role, from, to time.Time) (*Summary, error) {
	if sellerID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	if role != identity.RoleSeller {
		return nil, shared.ErrForbidden
	}
	return s.buildSummary(ctx, from, to, &sellerID, false)
}

func (s *SummaryService) buildSummary(ctx context.Context, from, to time.Time, sellerID *uuid.UUID, includeUsers bool) (*Summary, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End of date range must be after its start")
	}

	summary := &Summary{From: from, To: to}

	var err error
	if summary.OrdersCount, err = s.stats.CountOrders(ctx, from, to, sellerID); err != nil {
		return nil, err
	}
	if summary.TotalSales, err = s.stats.TotalSales(ctx, from, to, sellerID); err != nil {
		return nil, err
	}
	if summary.DailySales, err = s.stats.DailySales(ctx, from, to, sellerID); err != nil {
		return nil, err
	}
	if summary.TopProducts, err = s.stats.TopProducts(ctx, from, to, topProductsLimit, sellerID); err != nil {
		return nil, err
	}
	if summary.ProductsCount, err = s.stats.CountProducts(ctx, sellerID); err != nil {
		return nil, err
	}
	if includeUsers {
		if summary.UsersCount, err = s.stats.CountUsers(ctx); err != nil {
			return nil, err
		}
	}

	return summary, nil
}
