package entity

import "time"

// Tipos de producto del catálogo.
const (
	ProductTypeProtein          = "PROTEIN"           // proteína
	ProductTypeAntigen          = "ANTIGEN"           // antígeno
	ProductTypeAntibody         = "ANTIBODY"          // anticuerpo
	ProductTypeSynthesisService = "SYNTHESIS_SERVICE" // servicio de síntesis
	ProductTypeReagent          = "REAGENT"           // reactivo
	ProductTypeOther            = "OTHER"
)

// DefaultProductUnit unidad de medida cuando el cliente no envía ninguna.
const DefaultProductUnit = "unidad"

// Product representa un producto del catálogo (proteínas, antígenos, anticuerpos, servicios).
// El stock no vive aquí: se maneja por línea de inventario (InventoryLine).
type Product struct {
	ID                string
	Code              string // código único (product_code)
	Name              string
	Type              string
	Specification     string
	Unit              string
	Description       string
	StorageConditions string
	ShelfLifeDays     *int // vida útil en días; nil si no aplica
	Category          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsValidProductType indica si t pertenece al enumerado de tipos de producto.
func IsValidProductType(t string) bool {
	switch t {
	case ProductTypeProtein, ProductTypeAntigen, ProductTypeAntibody,
		ProductTypeSynthesisService, ProductTypeReagent, ProductTypeOther:
		return true
	}
	return false
}
