package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/config"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(
	`From: {{.From}}
To: {{.To}}
Subject: Thank you for your donation ({{.Ref}})
MIME-Version: 1.0
Content-Type: text/plain; charset=UTF-8

Dear {{.Name}},

We have received your donation of {{.Amount}}.

Donation reference: {{.Ref}}
Transaction reference: {{.TransactionRef}}

Thank you for your support.
`))

type receipt struct {
	From           string
	To             string
	Name           string
	Ref            string
	Amount         string
	TransactionRef string
}

// SMTPNotifier mails a receipt to the donor once a donation succeeds.
type SMTPNotifier struct {
	addr    string
	host    string
	from    string
	auth    smtp.Auth
	timeout time.Duration
	logger  *slog.Logger
}

func NewSMTPNotifier(cfg config.NotifierConfig, logger *slog.Logger) *SMTPNotifier {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	return &SMTPNotifier{
		addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		host:    cfg.Host,
		from:    cfg.From,
		auth:    auth,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (n *SMTPNotifier) NotifyDonationSucceeded(ctx context.Context, donation *domain.Donation) error {
	to := strings.TrimSpace(donation.Donor.Email)
	if to == "" {
		n.logger.Warn("no donor email, skipping receipt", "donation_ref", donation.DonationRef)
		return nil
	}

	msg, err := buildReceipt(n.from, donation)
	if err != nil {
		return err
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	if err := n.send(ctx, to, msg); err != nil {
		return fmt.Errorf("send receipt for %s: %w", donation.DonationRef, err)
	}

	n.logger.Info("donation receipt sent", "donation_ref", donation.DonationRef)
	return nil
}

func (n *SMTPNotifier) send(ctx context.Context, to string, msg []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", n.addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: n.host}); err != nil {
			return err
		}
	}
	if n.auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(n.auth); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(n.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func buildReceipt(from string, d *domain.Donation) ([]byte, error) {
	txRef := domain.UnassignedProcessorRef
	if d.ProcessorTransactionRef != nil {
		txRef = *d.ProcessorTransactionRef
	}

	var buf bytes.Buffer
	err := receiptTemplate.Execute(&buf, receipt{
		From:           headerSafe(from),
		To:             headerSafe(d.Donor.Email),
		Name:           d.Donor.Name,
		Ref:            headerSafe(d.DonationRef),
		Amount:         d.Amount.String(),
		TransactionRef: txRef,
	})
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return bytes.ReplaceAll(buf.Bytes(), []byte("\n"), []byte("\r\n")), nil
}

// headerSafe strips line breaks so donor input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
