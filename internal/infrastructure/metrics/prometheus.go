// Package metrics expone contadores Prometheus de las operaciones de cola y pago.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/nextcut-api/internal/application/ports"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus registra sus colectores en un registry propio (sin estado global).
type Prometheus struct {
	registry        *prometheus.Registry
	queueOperations *prometheus.CounterVec
	payments        *prometheus.CounterVec
}

// NewPrometheus crea el registry con los contadores de dominio y los colectores de Go y proceso.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		queueOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nextcut",
			Name:      "queue_operations_total",
			Help:      "Operaciones de cola por tipo y resultado",
		}, []string{"operation", "status"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nextcut",
			Name:      "payment_verifications_total",
			Help:      "Verificaciones de pago por resultado",
		}, []string{"result"}),
	}
	reg.MustRegister(
		p.queueOperations,
		p.payments,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) QueueOperation(operation, status string) {
	p.queueOperations.WithLabelValues(operation, status).Inc()
}

func (p *Prometheus) PaymentVerification(result string) {
	p.payments.WithLabelValues(result).Inc()
}

// Handler sirve /metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry expone el registry (tests).
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
