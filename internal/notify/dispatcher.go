package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/SscSPs/property_management_app/internal/core/ports/services"
)

const defaultSendTimeout = 30 * time.Second

// Dispatcher delivers notifications in the background so that callers never
// wait on the mail server. Delivery failures are logged and dropped.
type Dispatcher struct {
	next    services.Notifier
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

var _ services.Notifier = (*Dispatcher)(nil)

// NewDispatcher wraps next. A non-positive timeout selects 30 seconds.
func NewDispatcher(next services.Notifier, logger *slog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Dispatcher{next: next, logger: logger, timeout: timeout}
}

// NotifyPaymentRecorded schedules delivery and returns immediately.
func (d *Dispatcher) NotifyPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error {
	// Detach from the request so delivery survives the response.
	sendCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(sendCtx, d.timeout)
		defer cancel()

		if err := d.next.NotifyPaymentRecorded(ctx, event); err != nil {
			d.logger.Warn("Payment notification failed",
				slog.String("tenant_id", event.TenantID),
				slog.String("payment_id", event.PaymentID),
				slog.String("error", err.Error()),
			)
		}
	}()
	return nil
}

// Wait blocks until every scheduled delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
