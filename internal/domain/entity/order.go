package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de orden. Compra y venta comparten estructura y difieren en el rol de la contraparte.
const (
	OrderKindPurchase = "purchase"
	OrderKindSales    = "sales"
)

// Estados de órdenes (compra y venta).
const (
	OrderStatusDraft           = "DRAFT"            // borrador
	OrderStatusPending         = "PENDING"          // pendiente de aprobación
	OrderStatusApproved        = "APPROVED"         // aprobada
	OrderStatusOrdered         = "ORDERED"          // compra: pedida al proveedor
	OrderStatusPartialReceived = "PARTIAL_RECEIVED" // compra: recibida parcialmente
	OrderStatusProcessing      = "PROCESSING"       // venta: en preparación
	OrderStatusPartialShipped  = "PARTIAL_SHIPPED"  // venta: despachada parcialmente
	OrderStatusShipped         = "SHIPPED"          // venta: despachada
	OrderStatusCompleted       = "COMPLETED"
	OrderStatusCancelled       = "CANCELLED"
)

// OrderItem línea de una orden. ProductName es una copia tomada al escribir la orden.
type OrderItem struct {
	ProductID         string
	ProductName       string
	Quantity          int
	UnitPrice         decimal.Decimal
	FulfilledQuantity int // recibido (compra) o despachado (venta)
	Remark            string
}

// Order cabecera + líneas de una orden de compra o de venta.
// PartnerName es una copia del nombre de la contraparte, no un join vivo.
type Order struct {
	ID              string
	Kind            string
	OrderNumber     string
	PartnerID       string
	PartnerName     string
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	Status          string
	OrderDate       time.Time
	ExpectedDate    *time.Time
	ShippingAddress string // solo ventas
	Remark          string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
