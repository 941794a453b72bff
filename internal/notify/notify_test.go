package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/smtp"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func paidEvent() domain.PaymentRecordedEvent {
	return domain.PaymentRecordedEvent{
		PaymentID:   "p-1",
		TenantID:    "t-1",
		TenantName:  "Jane Wanjiru",
		TenantEmail: "jane@example.com",
		Month:       3,
		AmountPaid:  decimal.NewFromInt(800),
		Remaining:   decimal.Zero,
		Paid:        true,
		Method:      domain.MethodCash,
		RecordedAt:  time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC),
	}
}

func TestMessageBody(t *testing.T) {
	assert.Equal(t,
		"Dear Jane Wanjiru,\n\nYour rent payment for the month of March has been received. Thank you for your payment.",
		MessageBody(paidEvent()))

	partial := paidEvent()
	partial.Paid = false
	partial.AmountPaid = decimal.NewFromInt(700)
	partial.Remaining = decimal.NewFromInt(800)
	assert.Equal(t,
		"Dear Jane Wanjiru,\n\nWe have received 700.00 towards your rent for the month of March. 800.00 remains outstanding.",
		MessageBody(partial))
}

func TestEmailNotifierSends(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com", Username: "rent", Password: "pw", From: "rent@example.com"}, discardLogger())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	n.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		assert.NotNil(t, a)
		return nil
	}

	require.NoError(t, n.NotifyPaymentRecorded(context.Background(), paidEvent()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "rent@example.com", gotFrom)
	assert.Equal(t, []string{"jane@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Rent Payment\r\n")
	assert.Contains(t, string(gotMsg), "month of March has been received")
}

func TestEmailNotifierSkipsTenantsWithoutEmail(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com"}, discardLogger())
	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("no mail expected")
		return nil
	}

	event := paidEvent()
	event.TenantEmail = ""
	assert.NoError(t, n.NotifyPaymentRecorded(context.Background(), event))
}

func TestEmailNotifierWrapsSendError(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com", Port: 25}, discardLogger())
	boom := errors.New("connection refused")
	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := n.NotifyPaymentRecorded(context.Background(), paidEvent())
	assert.ErrorIs(t, err, boom)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.PaymentRecordedEvent
	err    error
	ctxErr error
}

func (r *recordingNotifier) NotifyPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.ctxErr = ctx.Err()
	return r.err
}

func TestDispatcherOutlivesCallerContext(t *testing.T) {
	next := &recordingNotifier{}
	d := NewDispatcher(next, discardLogger(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.NotifyPaymentRecorded(ctx, paidEvent()))
	cancel()
	d.Wait()

	require.Len(t, next.events, 1)
	assert.Equal(t, "p-1", next.events[0].PaymentID)
	assert.NoError(t, next.ctxErr)
}

func TestDispatcherSwallowsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	d := NewDispatcher(&recordingNotifier{err: errors.New("smtp down")}, logger, 0)

	assert.NoError(t, d.NotifyPaymentRecorded(context.Background(), paidEvent()))
	d.Wait()
	assert.Contains(t, buf.String(), "Payment notification failed")
	assert.Contains(t, buf.String(), "smtp down")
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, n.NotifyPaymentRecorded(context.Background(), paidEvent()))
	assert.Contains(t, buf.String(), `"payment_id":"p-1"`)
	assert.Contains(t, buf.String(), "Thank you for your payment.")
}
