package checkout

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/junaidrashid-git/charm-studio-api/models"
)

// Metrics counts checkout activity for /metrics.
type Metrics struct {
	ordersPlaced  prometheus.Counter
	charmsOrdered prometheus.Counter
	failures      *prometheus.CounterVec
}

// NewMetrics registers the checkout counters on reg. A nil reg leaves them
// unregistered, which tests use.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "charm_studio",
			Name:      "orders_placed_total",
			Help:      "Orders persisted at checkout.",
		}),
		charmsOrdered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "charm_studio",
			Name:      "charms_ordered_total",
			Help:      "Charm instances included in placed orders.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "charm_studio",
			Name:      "order_failures_total",
			Help:      "Rejected or failed order submissions by reason.",
		}, []string{"reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.ordersPlaced, m.charmsOrdered, m.failures)
	}
	return m
}

func (m *Metrics) placed(order *models.Order) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
	for _, l := range order.Lines {
		m.charmsOrdered.Add(float64(len(l.Items)))
	}
}

func (m *Metrics) failed(reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(reason).Inc()
}
