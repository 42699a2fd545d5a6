package order

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// Total = Σ cantidad × precio unitario de las líneas.
func Total(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
