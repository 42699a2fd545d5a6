package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// NumberPrefix devuelve PO para compras y SO para ventas.
func NumberPrefix(kind string) string {
	if kind == entity.OrderKindSales {
		return "SO"
	}
	return "PO"
}

// numberAlphabet caracteres del sufijo aleatorio.
const numberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateNumber arma el número visible de la orden: prefijo + fecha/hora al segundo + 4 caracteres [A-Z0-9].
// Ej: PO20240315143005K9Z2. No se verifica unicidad aquí; la garantiza el índice único del store.
func GenerateNumber(kind string, now time.Time) string {
	return NumberPrefix(kind) + now.Format("20060102150405") + randomSuffix(4)
}

func randomSuffix(n int) string {
	src := uuid.New()
	out := make([]byte, n)
	for i := range out {
		out[i] = numberAlphabet[int(src[i])%len(numberAlphabet)]
	}
	return string(out)
}
