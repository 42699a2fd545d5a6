package order_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/order"
)

func TestTotal(t *testing.T) {
	items := []entity.OrderItem{
		{ProductID: "a", Quantity: 10, UnitPrice: decimal.RequireFromString("5.0")},
		{ProductID: "b", Quantity: 3, UnitPrice: decimal.RequireFromString("0.1")},
	}
	assert.True(t, decimal.RequireFromString("50.3").Equal(order.Total(items)),
		"el total debe ser exacto, sin deriva de punto flotante")
	assert.True(t, order.Total(nil).IsZero())
}

func TestGenerateNumber_Formato(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 5, 0, time.Local)
	po := order.GenerateNumber(entity.OrderKindPurchase, now)
	so := order.GenerateNumber(entity.OrderKindSales, now)

	assert.Regexp(t, regexp.MustCompile(`^PO20240315143005[A-Z0-9]{4}$`), po)
	assert.Regexp(t, regexp.MustCompile(`^SO20240315143005[A-Z0-9]{4}$`), so)
}

func TestGenerateNumber_SufijoAlfanumerico(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 5, 0, time.Local)
	letters := 0
	for range 200 {
		n := order.GenerateNumber(entity.OrderKindPurchase, now)
		require.Len(t, n, 20)
		for _, c := range n[16:] {
			if c > 'F' {
				letters++
			}
		}
	}
	assert.Positive(t, letters, "el sufijo usa el alfabeto completo, no solo hexadecimal")
}

func TestCheckApprove(t *testing.T) {
	require.NoError(t, order.CheckApprove(entity.OrderStatusPending))

	for _, st := range []string{entity.OrderStatusDraft, entity.OrderStatusApproved, entity.OrderStatusCancelled, entity.OrderStatusCompleted} {
		err := order.CheckApprove(st)
		require.Error(t, err, st)
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition), st)
	}
}

func TestIsValidStatus_PorClase(t *testing.T) {
	assert.True(t, order.IsValidStatus(entity.OrderKindPurchase, entity.OrderStatusOrdered))
	assert.False(t, order.IsValidStatus(entity.OrderKindPurchase, entity.OrderStatusShipped))
	assert.True(t, order.IsValidStatus(entity.OrderKindSales, entity.OrderStatusShipped))
	assert.False(t, order.IsValidStatus(entity.OrderKindSales, entity.OrderStatusPartialReceived))
	assert.False(t, order.IsValidStatus(entity.OrderKindSales, "草稿"))
}
