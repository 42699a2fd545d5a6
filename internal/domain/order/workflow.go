// Package order contiene las reglas puras de las órdenes de compra y venta:
// estados válidos por clase, aprobación, cálculo de totales y numeración.
package order

import (
	"fmt"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

var purchaseStatuses = []string{
	entity.OrderStatusDraft,
	entity.OrderStatusPending,
	entity.OrderStatusApproved,
	entity.OrderStatusOrdered,
	entity.OrderStatusPartialReceived,
	entity.OrderStatusCompleted,
	entity.OrderStatusCancelled,
}

var salesStatuses = []string{
	entity.OrderStatusDraft,
	entity.OrderStatusPending,
	entity.OrderStatusApproved,
	entity.OrderStatusProcessing,
	entity.OrderStatusPartialShipped,
	entity.OrderStatusShipped,
	entity.OrderStatusCompleted,
	entity.OrderStatusCancelled,
}

// IsValidKind indica si kind es purchase o sales.
func IsValidKind(kind string) bool {
	return kind == entity.OrderKindPurchase || kind == entity.OrderKindSales
}

// Statuses devuelve los estados admitidos para la clase de orden, en orden de flujo.
func Statuses(kind string) []string {
	if kind == entity.OrderKindSales {
		return salesStatuses
	}
	return purchaseStatuses
}

// IsValidStatus indica si status pertenece al flujo de la clase de orden.
func IsValidStatus(kind, status string) bool {
	for _, s := range Statuses(kind) {
		if s == status {
			return true
		}
	}
	return false
}

// CheckApprove valida la única transición con guarda explícita: PENDING -> APPROVED.
func CheckApprove(current string) error {
	if current != entity.OrderStatusPending {
		return fmt.Errorf("%w: solo se pueden aprobar órdenes en estado %s (estado actual: %s)",
			domain.ErrInvalidTransition, entity.OrderStatusPending, current)
	}
	return nil
}
