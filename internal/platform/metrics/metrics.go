package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Business holds the domain counters exported next to the HTTP metrics.
// A nil *Business is valid and records nothing.
type Business struct {
	paymentsRecorded     *prometheus.CounterVec
	amountCollected      prometheus.Counter
	webhookConfirmations *prometheus.CounterVec
	occupancyRejections  *prometheus.CounterVec
}

// NewBusiness creates the domain counters and registers them with reg.
func NewBusiness(reg prometheus.Registerer) *Business {
	b := &Business{
		paymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm",
			Name:      "payments_recorded_total",
			Help:      "Payment events recorded, by method.",
		}, []string{"method"}),
		amountCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pm",
			Name:      "rent_collected_total",
			Help:      "Sum of recorded payment amounts in currency units.",
		}),
		webhookConfirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm",
			Name:      "webhook_confirmations_total",
			Help:      "Gateway confirmations by outcome (applied, duplicate).",
		}, []string{"outcome"}),
		occupancyRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm",
			Name:      "occupancy_rejections_total",
			Help:      "Writes rejected by the occupancy rules, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(b.paymentsRecorded, b.amountCollected, b.webhookConfirmations, b.occupancyRejections)
	return b
}

// PaymentRecorded counts one payment event of amount units.
func (b *Business) PaymentRecorded(method string, amount float64) {
	if b == nil {
		return
	}
	b.paymentsRecorded.WithLabelValues(method).Inc()
	b.amountCollected.Add(amount)
}

// WebhookConfirmation counts a processed gateway confirmation.
func (b *Business) WebhookConfirmation(duplicate bool) {
	if b == nil {
		return
	}
	outcome := "applied"
	if duplicate {
		outcome = "duplicate"
	}
	b.webhookConfirmations.WithLabelValues(outcome).Inc()
}

// OccupancyRejected counts a write refused with reason (capacity_exceeded, house_occupied).
func (b *Business) OccupancyRejected(reason string) {
	if b == nil {
		return
	}
	b.occupancyRejections.WithLabelValues(reason).Inc()
}
