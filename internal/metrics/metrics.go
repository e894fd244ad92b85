package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	paymentsInitializedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_initialized_total",
			Help: "Total number of payment sessions initialized with the gateway",
		},
	)

	paymentsReconciledTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_reconciled_total",
			Help: "Total number of payment status updates applied, by path and resulting status",
		},
		[]string{"path", "status"},
	)

	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of authenticated webhook events received, by event type",
		},
		[]string{"event"},
	)

	webhookRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_rejected_total",
			Help: "Total number of webhook deliveries rejected for a bad signature",
		},
	)

	unknownOrderUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "unknown_order_updates_total",
			Help: "Total number of payment updates referencing an order that does not exist",
		},
	)
)

func init() {
	prometheus.MustRegister(paymentsInitializedTotal)
	prometheus.MustRegister(paymentsReconciledTotal)
	prometheus.MustRegister(webhookEventsTotal)
	prometheus.MustRegister(webhookRejectedTotal)
	prometheus.MustRegister(unknownOrderUpdatesTotal)
}

func RecordPaymentInitialized() {
	paymentsInitializedTotal.Inc()
}

func RecordPaymentReconciled(path, status string) {
	paymentsReconciledTotal.WithLabelValues(path, status).Inc()
}

func RecordWebhookEvent(event string) {
	webhookEventsTotal.WithLabelValues(event).Inc()
}

func RecordWebhookRejected() {
	webhookRejectedTotal.Inc()
}

func RecordUnknownOrderUpdate() {
	unknownOrderUpdatesTotal.Inc()
}
