package entity

import "time"

// Tipos de operación del libro de inventario.
const (
	OperationIN     = "IN"     // entrada
	OperationOUT    = "OUT"    // salida
	OperationADJUST = "ADJUST" // ajuste por edición directa de la línea
	OperationRETURN = "RETURN" // devolución
)

// InventoryTransaction registro inmutable de un movimiento de stock sobre una línea.
// Quantity es el delta con signo: positivo en IN/RETURN, negativo en OUT, cualquiera en ADJUST.
type InventoryTransaction struct {
	ID             string
	ProductID      string
	InventoryID    string
	Type           string
	Quantity       int
	BatchNumber    string
	RelatedOrderID string
	Operator       string
	Remark         string
	CreatedAt      time.Time
}

// IsValidOperationType indica si t pertenece al enumerado de operaciones.
func IsValidOperationType(t string) bool {
	switch t {
	case OperationIN, OperationOUT, OperationADJUST, OperationRETURN:
		return true
	}
	return false
}
