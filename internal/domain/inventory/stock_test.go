package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/inventory"
)

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name    string
		current int
		delta   int
		want    int
		wantErr bool
	}{
		{"entrada sobre cero", 0, 10, 10, false},
		{"salida exacta deja cero", 10, -10, 0, false},
		{"salida parcial", 10, -6, 4, false},
		{"salida mayor al stock", 0, -5, 0, true},
		{"ajuste negativo excesivo", 3, -4, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.ApplyDelta(tt.current, tt.delta)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
				var stockErr *domain.InsufficientStockError
				require.True(t, errors.As(err, &stockErr))
				assert.Equal(t, tt.current, stockErr.Current)
				assert.Equal(t, -tt.delta, stockErr.Requested)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsufficientStockError_MensajeIncluyeStockActual(t *testing.T) {
	_, err := inventory.ApplyDelta(0, -5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock actual: 0")
}
