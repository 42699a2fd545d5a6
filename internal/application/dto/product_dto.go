package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=200"`
	ProductCode       string `json:"product_code" validate:"required,min=1,max=100"`
	ProductType       string `json:"product_type" validate:"required,oneof=PROTEIN ANTIGEN ANTIBODY SYNTHESIS_SERVICE REAGENT OTHER"`
	Specification     string `json:"specification"`
	Unit              string `json:"unit" validate:"omitempty,max=50"`
	Description       string `json:"description"`
	StorageConditions string `json:"storage_conditions"`
	ShelfLife         *int   `json:"shelf_life" validate:"omitempty,min=0"`
	Category          string `json:"category"`
}

// UpdateProductRequest entrada parcial; solo se aplican los campos no nulos. El código no se modifica.
type UpdateProductRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=200"`
	ProductType       *string `json:"product_type" validate:"omitempty,oneof=PROTEIN ANTIGEN ANTIBODY SYNTHESIS_SERVICE REAGENT OTHER"`
	Specification     *string `json:"specification"`
	Unit              *string `json:"unit" validate:"omitempty,max=50"`
	Description       *string `json:"description"`
	StorageConditions *string `json:"storage_conditions"`
	ShelfLife         *int    `json:"shelf_life" validate:"omitempty,min=0"`
	Category          *string `json:"category"`
}

// ProductListRequest filtros de GET /api/products/.
type ProductListRequest struct {
	ProductType string `query:"product_type" validate:"omitempty,oneof=PROTEIN ANTIGEN ANTIBODY SYNTHESIS_SERVICE REAGENT OTHER"`
	Category    string `query:"category"`
	Search      string `query:"search"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	ProductCode       string    `json:"product_code"`
	ProductType       string    `json:"product_type"`
	Specification     string    `json:"specification,omitempty"`
	Unit              string    `json:"unit"`
	Description       string    `json:"description,omitempty"`
	StorageConditions string    `json:"storage_conditions,omitempty"`
	ShelfLife         *int      `json:"shelf_life"`
	Category          string    `json:"category,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
