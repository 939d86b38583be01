package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess         = "success"
	ResultValidationError = "validation_error"
	ResultDatabaseError   = "database_error"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	mutations *prometheus.CounterVec
}

// New registers the collectors on registerer, or on the default registry when nil.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_mutations_total",
		Help: "Invoice create, update and delete calls by result.",
	}, []string{"action", "result"})
	registerer.MustRegister(mutations)

	return &Metrics{mutations: mutations}
}

// ObserveMutation counts one mutation; safe on a nil receiver.
func (m *Metrics) ObserveMutation(action, result string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(action, result).Inc()
}
