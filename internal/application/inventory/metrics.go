package inventory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	movementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bioinventario",
		Subsystem: "ledger",
		Name:      "movements_total",
		Help:      "Movimientos registrados en el libro de inventario por tipo de operación.",
	}, []string{"operation"})

	movedUnitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bioinventario",
		Subsystem: "ledger",
		Name:      "moved_units_total",
		Help:      "Unidades movidas (valor absoluto del delta) por tipo de operación.",
	}, []string{"operation"})

	insufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bioinventario",
		Subsystem: "ledger",
		Name:      "insufficient_stock_total",
		Help:      "Salidas rechazadas por stock insuficiente.",
	})
)

func observeMovement(operation string, delta int) {
	if delta < 0 {
		delta = -delta
	}
	movementsTotal.WithLabelValues(operation).Inc()
	movedUnitsTotal.WithLabelValues(operation).Add(float64(delta))
}
