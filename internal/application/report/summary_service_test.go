package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStatsReader struct {
	mock.Mock
}

func (m *MockStatsReader) CountOrders(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, from, to, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsReader) TotalSales(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, sellerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStatsReader) DailySales(ctx context.Context, from, to time.Time, sellerID *uuid.UUID) ([]DailySale, error) {
	args := m.Called(ctx, from, to, sellerID)
	return args.Get(0).([]DailySale), args.Error(1)
}

func (m *MockStatsReader) TopProducts(ctx context.Context, from, to time.Time, limit int, sellerID *uuid.UUID) ([]TopProduct, error) {
	args := m.Called(ctx, from, to, limit, sellerID)
	return args.Get(0).([]TopProduct), args.Error(1)
}

func (m *MockStatsReader) CountProducts(ctx context.Context, sellerID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsReader) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func dateRange() (time.Time, time.Time) {
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	return to.AddDate(0, -1, 0), to
}

func TestAdminSummary(t *testing.T) {
	stats := new(MockStatsReader)
	from, to := dateRange()

	stats.On("CountOrders", mock.Anything, from, to, (*uuid.UUID)(nil)).Return(int64(12), nil)
	stats.On("TotalSales", mock.Anything, from, to, (*uuid.UUID)(nil)).Return(decimal.NewFromFloat(1234.56), nil)
	stats.On("DailySales", mock.Anything, from, to, (*uuid.UUID)(nil)).Return([]DailySale{{Date: "2025-06-01", OrderCount: 2, TotalSales: decimal.NewFromInt(100)}}, nil)
	stats.On("TopProducts", mock.Anything, from, to, topProductsLimit, (*uuid.UUID)(nil)).Return([]TopProduct{}, nil)
	stats.On("CountProducts", mock.Anything, (*uuid.UUID)(nil)).Return(int64(40), nil)
	stats.On("CountUsers", mock.Anything).Return(int64(7), nil)

	service := NewSummaryService(stats, zap.NewNop())
	summary, err := service.AdminSummary(context.Background(), identity.RoleAdmin, from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(12), summary.OrdersCount)
	assert.Equal(t, int64(7), summary.UsersCount)
	assert.True(t, summary.TotalSales.Equal(decimal.NewFromFloat(1234.56)))
	assert.Len(t, summary.DailySales, 1)
}

func TestAdminSummaryForbiddenForNonAdmin(t *testing.T) {
	service := NewSummaryService(new(MockStatsReader), zap.NewNop())
	from, to := dateRange()

	_, err := service.AdminSummary(context.Background(), identity.RoleSeller, from, to)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestSellerSummaryRequiresSellerRole(t *testing.T) {
	service := NewSummaryService(new(MockStatsReader), zap.NewNop())
	from, to := dateRange()

	_, err := service.SellerSummary(context.Background(), uuid.New(), identity.RoleBuyer, from, to)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = service.SellerSummary(context.Background(), uuid.Nil, identity.RoleSeller, from, to)
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestSellerSummaryScopesToSeller(t *testing.T) {
	stats := new(MockStatsReader)
	from, to := dateRange()
	sellerID := uuid.New()

	stats.On("CountOrders", mock.Anything, from, to, &sellerID).Return(int64(3), nil)
	stats.On("TotalSales", mock.Anything, from, to, &sellerID).Return(decimal.NewFromInt(300), nil)
	stats.On("DailySales", mock.Anything, from, to, &sellerID).Return([]DailySale{}, nil)
	stats.On("TopProducts", mock.Anything, from, to, topProductsLimit, &sellerID).Return([]TopProduct{}, nil)
	stats.On("CountProducts", mock.Anything, &sellerID).Return(int64(5), nil)

	service := NewSummaryService(stats, zap.NewNop())
	summary, err := service.SellerSummary(context.Background(), sellerID, identity.RoleSeller, from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.OrdersCount)
	assert.Equal(t, int64(0), summary.UsersCount)
	stats.AssertNotCalled(t, "CountUsers")
}

func TestSummaryRejectsInvertedRange(t *testing.T) {
	service := NewSummaryService(new(MockStatsReader), zap.NewNop())
	from, to := dateRange()

	_, err := service.AdminSummary(context.Background(), identity.RoleAdmin, to, from)
	assert.Error(t, err)
}
