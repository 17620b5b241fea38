package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderFlowMetrics records counters and timings for the cart-to-order pipeline.
type OrderFlowMetrics struct {
	checkoutDuration *prometheus.HistogramVec
	ordersSubmitted  *prometheus.CounterVec
	checkoutFailures *prometheus.CounterVec
	statusChanges    *prometheus.CounterVec
}

// NewOrderFlowMetrics registers the order flow metrics on the provided registerer.
func NewOrderFlowMetrics(reg prometheus.Registerer) *OrderFlowMetrics {
	if reg == nil {
		return &OrderFlowMetrics{}
	}
	checkoutDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	ordersSubmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Orders successfully assembled and persisted.",
	}, []string{"university"})
	checkoutFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkout submissions rejected before an order was created.",
	}, []string{"reason"})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Order status transitions applied by restaurant owners.",
	}, []string{"status"})
	reg.MustRegister(checkoutDuration, ordersSubmitted, checkoutFailures, statusChanges)
	return &OrderFlowMetrics{
		checkoutDuration: checkoutDuration,
		ordersSubmitted:  ordersSubmitted,
		checkoutFailures: checkoutFailures,
		statusChanges:    statusChanges,
	}
}

// ObserveCheckout records how long a checkout attempt took.
func (m *OrderFlowMetrics) ObserveCheckout(outcome string, duration time.Duration) {
	if m == nil || m.checkoutDuration == nil {
		return
	}
	m.checkoutDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncOrderSubmitted increments the submitted-orders counter.
func (m *OrderFlowMetrics) IncOrderSubmitted(university string) {
	if m == nil || m.ordersSubmitted == nil {
		return
	}
	m.ordersSubmitted.WithLabelValues(normalizeLabel(university)).Inc()
}

// IncCheckoutFailure increments the failure counter for the given reason.
func (m *OrderFlowMetrics) IncCheckoutFailure(reason string) {
	if m == nil || m.checkoutFailures == nil {
		return
	}
	m.checkoutFailures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncStatusChange increments the transition counter for the target status.
func (m *OrderFlowMetrics) IncStatusChange(status string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(status)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
