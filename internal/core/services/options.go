package services

import (
	"time"

	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/platform/metrics"
)

// Option is a functional option shared by the service constructors.
type Option func(*serviceOptions)

type serviceOptions struct {
	now     func() time.Time
	metrics *metrics.Business
}

// WithClock overrides the time source; tests pin it.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) {
		o.now = now
	}
}

// WithMetrics records business counters on m.
func WithMetrics(m *metrics.Business) Option {
	return func(o *serviceOptions) {
		o.metrics = m
	}
}

func applyOptions(options []Option) serviceOptions {
	var o serviceOptions
	for _, option := range options {
		option(&o)
	}
	return o
}

// PaymentSettings carries the configured payment defaults.
type PaymentSettings struct {
	GracePeriodDays int
	PhoneRegion     string
}

// PaymentIntegrations are the optional collaborators of the payment service.
// Nil members disable the feature they back.
type PaymentIntegrations struct {
	Notifier portssvc.Notifier
	Gateway  portssvc.PaymentGateway
	Cache    portssvc.ProcessedReferenceCache
}
