package event

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsHandler counts sale events and the value flowing through them
type MetricsHandler struct {
	events      *prometheus.CounterVec
	saleAmounts *prometheus.HistogramVec
}

func NewMetricsHandler(reg prometheus.Registerer) *MetricsHandler {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "developerstore",
		Subsystem: "sales",
		Name:      "events_total",
		Help:      "Total number of published sale events.",
	}, []string{"event"})
	amounts := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "developerstore",
		Subsystem: "sales",
		Name:      "sale_total_amount",
		Help:      "Sale totals at creation and modification.",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"event"})

	reg.MustRegister(events, amounts)
	return &MetricsHandler{events: events, saleAmounts: amounts}
}

func (h *MetricsHandler) Name() string { return "metrics" }

func (h *MetricsHandler) Handle(_ context.Context, e Event) error {
	h.events.WithLabelValues(e.Name()).Inc()

	switch ev := e.(type) {
	case *SaleCreated:
		h.saleAmounts.WithLabelValues(ev.Name()).Observe(ev.TotalAmount.InexactFloat64())
	case *SaleModified:
		h.saleAmounts.WithLabelValues(ev.Name()).Observe(ev.TotalAmount.InexactFloat64())
	}
	return nil
}
