package inventory

import "github.com/jhoicas/bioinventario-api/internal/domain"

// ApplyDelta devuelve la nueva cantidad de una línea tras aplicar delta.
// Una cantidad resultante negativa se rechaza con *domain.InsufficientStockError.
func ApplyDelta(current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, &domain.InsufficientStockError{Current: current, Requested: -delta}
	}
	return next, nil
}
