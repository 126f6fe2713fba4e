package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), EUR)
		require.NoError(t, err)
		assert.Equal(t, EUR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyDZD(t *testing.T) {
	m := NewMoneyDZD(decimal.NewFromFloat(50.00))
	assert.Equal(t, DZD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestZero(t *testing.T) {
	m := Zero(USD)
	assert.True(t, m.IsZero())
	assert.Equal(t, USD, m.Currency())
}

func TestMoneyIsPositiveNegativeZero(t *testing.T) {
	positive := NewMoneyDZD(decimal.NewFromInt(100))
	negative := NewMoneyDZD(decimal.NewFromInt(-100))
	zero := Zero(DZD)

	assert.True(t, positive.IsPositive())
	assert.False(t, positive.IsNegative())

	assert.False(t, negative.IsPositive())
	assert.True(t, negative.IsNegative())

	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())
	assert.True(t, zero.IsZero())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		m1 := NewMoneyDZD(decimal.NewFromFloat(100.50))
		m2 := NewMoneyDZD(decimal.NewFromFloat(50.25))
		result, err := m1.Add(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromFloat(150.75)))
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		m1 := NewMoneyDZD(decimal.NewFromInt(100))
		m2, _ := NewMoney(decimal.NewFromInt(50), USD)
		_, err := m1.Add(m2)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoneyRound2(t *testing.T) {
	assert.Equal(t, "10.01", NewMoneyDZD(decimal.NewFromFloat(10.005)).Round2().StringFixed(2))
	assert.Equal(t, "10.00", NewMoneyDZD(decimal.NewFromFloat(10.004)).Round2().StringFixed(2))
}

func TestMoneyEquals(t *testing.T) {
	assert.True(t, NewMoneyDZD(decimal.NewFromInt(10)).Equals(NewMoneyDZD(decimal.NewFromFloat(10.0))))
	assert.False(t, NewMoneyDZD(decimal.NewFromInt(10)).Equals(Zero(DZD)))
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyDZD(decimal.NewFromFloat(1234.5))
	assert.Equal(t, "1234.50 DZD", m.String())
	assert.Equal(t, "1234.50", m.StringFixed(2))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyDZD(decimal.NewFromFloat(99.90))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.9","currency":"DZD"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("42.50"))
	assert.Equal(t, DZD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(42.50)))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
}
