package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryRequest entrada para abrir una línea de inventario.
type CreateInventoryRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Warehouse   string          `json:"warehouse" validate:"omitempty,max=100"`
	BatchNumber string          `json:"batch_number"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Location    string          `json:"location"`
}

// UpdateInventoryRequest edición directa de una línea. Un cambio de quantity queda como ADJUST en el libro.
type UpdateInventoryRequest struct {
	Warehouse   *string          `json:"warehouse" validate:"omitempty,max=100"`
	BatchNumber *string          `json:"batch_number"`
	Quantity    *int             `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Location    *string          `json:"location"`
}

// InventoryListRequest filtros de GET /api/inventory/.
type InventoryListRequest struct {
	ProductID string `query:"product_id"`
	Warehouse string `query:"warehouse"`
	PageRequest
}

// InventoryResponse salida de una línea con el nombre y código del producto resueltos.
type InventoryResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	ProductCode string          `json:"product_code,omitempty"`
	Warehouse   string          `json:"warehouse"`
	BatchNumber string          `json:"batch_number,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Location    string          `json:"location,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockMovementRequest body de POST /api/inventory/in y /api/inventory/out.
type StockMovementRequest struct {
	InventoryID    string `json:"inventory_id" validate:"required"`
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
	BatchNumber    string `json:"batch_number"`
	RelatedOrderID string `json:"related_order_id"`
	Operator       string `json:"operator"`
	Remark         string `json:"remark"`
}

// TransactionListRequest filtros de GET /api/inventory/records/.
// Si Cursor viene informado se pagina por cursor y skip se ignora.
type TransactionListRequest struct {
	ProductID     string `query:"product_id"`
	OperationType string `query:"operation_type" validate:"omitempty,oneof=IN OUT ADJUST RETURN"`
	Cursor        string `query:"cursor"`
	PageRequest
}

// TransactionResponse salida de un movimiento del libro.
type TransactionResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	InventoryID    string    `json:"inventory_id"`
	OperationType  string    `json:"operation_type"`
	Quantity       int       `json:"quantity"`
	BatchNumber    string    `json:"batch_number,omitempty"`
	RelatedOrderID string    `json:"related_order_id,omitempty"`
	Operator       string    `json:"operator,omitempty"`
	Remark         string    `json:"remark,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionPage página del libro más el cursor de continuación (vacío si no hay más).
type TransactionPage struct {
	Items      []TransactionResponse
	NextCursor string
}
