package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/utils"
)

const paymentSubject = "Rent Payment"

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier mails the tenant when a payment was recorded.
type EmailNotifier struct {
	cfg      SMTPConfig
	logger   *slog.Logger
	sendMail sendMailFunc
}

var _ services.Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier creates a notifier that sends through cfg.Host.
func NewEmailNotifier(cfg SMTPConfig, logger *slog.Logger) *EmailNotifier {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &EmailNotifier{cfg: cfg, logger: logger, sendMail: smtp.SendMail}
}

// NotifyPaymentRecorded sends the receipt. Tenants without an e-mail address are skipped.
func (n *EmailNotifier) NotifyPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error {
	if event.TenantEmail == "" {
		n.logger.Debug("Tenant has no e-mail address, skipping notification", slog.String("tenant_id", event.TenantID))
		return nil
	}

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	if err := n.sendMail(addr, auth, n.cfg.From, []string{event.TenantEmail}, buildMessage(n.cfg.From, event)); err != nil {
		return fmt.Errorf("failed to send payment e-mail to tenant %s: %w", event.TenantID, err)
	}

	n.logger.Info("Payment e-mail sent", slog.String("tenant_id", event.TenantID), slog.String("payment_id", event.PaymentID))
	return nil
}

// MessageBody is the text a tenant receives for a recorded payment.
func MessageBody(event domain.PaymentRecordedEvent) string {
	month := domain.Payment{Month: event.Month}.MonthName()
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", event.TenantName)
	if event.Paid {
		fmt.Fprintf(&b, "Your rent payment for the month of %s has been received. Thank you for your payment.", month)
	} else {
		fmt.Fprintf(&b, "We have received %s towards your rent for the month of %s. %s remains outstanding.",
			utils.FormatMoney(event.AmountPaid), month, utils.FormatMoney(event.Remaining))
	}
	return b.String()
}

func buildMessage(from string, event domain.PaymentRecordedEvent) []byte {
	headers := []string{
		"From: " + from,
		"To: " + event.TenantEmail,
		"Subject: " + paymentSubject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + strings.ReplaceAll(MessageBody(event), "\n", "\r\n") + "\r\n")
}

// LogNotifier writes the notification to the log instead of sending it.
type LogNotifier struct {
	logger *slog.Logger
}

var _ services.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyPaymentRecorded(_ context.Context, event domain.PaymentRecordedEvent) error {
	n.logger.Info("Payment notification",
		slog.String("tenant_id", event.TenantID),
		slog.String("payment_id", event.PaymentID),
		slog.String("method", string(event.Method)),
		slog.String("amount_paid", event.AmountPaid.String()),
		slog.Bool("paid", event.Paid),
		slog.String("message", MessageBody(event)),
	)
	return nil
}
