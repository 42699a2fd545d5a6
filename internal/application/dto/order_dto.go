package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden en la entrada. product_name se ignora: se resuelve del catálogo.
type OrderItemRequest struct {
	ProductID         string          `json:"product_id" validate:"required"`
	Quantity          int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	FulfilledQuantity int             `json:"fulfilled_quantity" validate:"min=0"`
	Remark            string          `json:"remark"`
}

// CreateOrderRequest entrada para crear una orden de compra (supplier_id) o de venta (customer_id).
type CreateOrderRequest struct {
	SupplierID      string             `json:"supplier_id"`
	CustomerID      string             `json:"customer_id"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ExpectedDate    *time.Time         `json:"expected_date"`
	ShippingAddress string             `json:"shipping_address"`
	Remark          string             `json:"remark"`
}

// UpdateOrderRequest entrada parcial de una orden.
type UpdateOrderRequest struct {
	SupplierID      *string             `json:"supplier_id"`
	CustomerID      *string             `json:"customer_id"`
	Items           *[]OrderItemRequest `json:"items" validate:"omitempty,dive"`
	Status          *string             `json:"status"`
	ExpectedDate    *time.Time          `json:"expected_date"`
	ShippingAddress *string             `json:"shipping_address"`
	Remark          *string             `json:"remark"`
}

// OrderListRequest filtros de GET /api/purchases/ y /api/sales/.
type OrderListRequest struct {
	Status     string `query:"status"`
	SupplierID string `query:"supplier_id"`
	CustomerID string `query:"customer_id"`
	PageRequest
}

// OrderItemResponse línea de una orden en la salida.
type OrderItemResponse struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name,omitempty"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	FulfilledQuantity int             `json:"fulfilled_quantity"`
	Remark            string          `json:"remark,omitempty"`
}

// OrderResponse salida de una orden. Compras exponen supplier_*, ventas customer_* y shipping_address.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	SupplierID      string              `json:"supplier_id,omitempty"`
	SupplierName    string              `json:"supplier_name,omitempty"`
	CustomerID      string              `json:"customer_id,omitempty"`
	CustomerName    string              `json:"customer_name,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	OrderDate       time.Time           `json:"order_date"`
	ExpectedDate    *time.Time          `json:"expected_date"`
	ShippingAddress string              `json:"shipping_address,omitempty"`
	Remark          string              `json:"remark,omitempty"`
	CreatedBy       string              `json:"created_by,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
