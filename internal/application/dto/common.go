package dto

import "github.com/shopspring/decimal"

func init() {
	// Precios y totales viajan como números JSON (no strings) para el front.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultLimit tamaño de página cuando el cliente no envía limit.
const DefaultLimit = 100

// MaxLimit tope de elementos por página.
const MaxLimit = 1000

// PageRequest paginación skip/limit para listados.
type PageRequest struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0,max=1000"`
}

// DefaultPage aplica valores por defecto si Limit/Skip son cero o negativos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// InfoResponse salida de GET /api.
type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Docs    string `json:"docs,omitempty"`
}

// HealthResponse salida de los endpoints de salud.
type HealthResponse struct {
	Status string `json:"status"`
}
