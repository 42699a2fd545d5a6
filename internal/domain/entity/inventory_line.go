package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWarehouse bodega asignada cuando la línea no indica ninguna.
const DefaultWarehouse = "principal"

// InventoryLine representa el stock de un producto en una combinación bodega/lote/ubicación.
// Quantity nunca es negativa; solo el libro de inventario (ledger) la modifica.
type InventoryLine struct {
	ID          string
	ProductID   string
	Warehouse   string
	BatchNumber string
	Quantity    int
	UnitPrice   decimal.Decimal
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
