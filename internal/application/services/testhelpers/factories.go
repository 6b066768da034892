package testhelpers

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/application/services"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// DefaultInitiateCommand returns a valid initiate command for testing
func DefaultInitiateCommand() services.InitiateCommand {
	return services.InitiateCommand{
		Name:    "Asha Rao",
		Email:   "asha@example.org",
		Phone:   "9876543210",
		Amount:  "100",
		Message: "Keep up the good work",
	}
}

// NewPendingDonation builds a PENDING donation with unique references and,
// when token is not empty, a payment link carrying that polling token.
func NewPendingDonation(t *testing.T, amount string, token string) *domain.Donation {
	t.Helper()

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	d, err := domain.NewDonation("DON"+suffix, "ORD"+suffix, domain.MustAmount(amount), domain.Donor{
		Name:  "Asha Rao",
		Email: "asha@example.org",
		Phone: "9876543210",
	})
	require.NoError(t, err)

	if token != "" {
		require.NoError(t, d.AttachPaymentLink(domain.PaymentLink{
			PaymentURL:          "https://pay.example/checkout?token=" + token,
			ProcessorInternalID: "INT-" + suffix,
			TransactionToken:    token,
			Raw:                 json.RawMessage(`{"success":true}`),
		}))
	}
	return d
}

// Backdate moves a donation's creation time into the past.
func Backdate(d *domain.Donation, age time.Duration) *domain.Donation {
	d.CreatedAt = d.CreatedAt.Add(-age)
	d.UpdatedAt = d.CreatedAt
	return d
}

// DefaultPaymentLink is what a healthy processor returns for orderID.
func DefaultPaymentLink(orderID string) *application.PaymentLinkResponse {
	return &application.PaymentLinkResponse{
		PaymentURL:          "https://pay.example/checkout?token=tok-" + orderID,
		ProcessorInternalID: "INT-" + orderID,
		TransactionToken:    "tok-" + orderID,
		Raw:                 json.RawMessage(`{"success":true,"data":{"transaction_id":"INT-` + orderID + `"}}`),
	}
}

// FixedReferences hands out the same references every time.
type FixedReferences struct {
	Ref   string
	Order string
}

func (f FixedReferences) DonationRef() string { return f.Ref }
func (f FixedReferences) OrderID() string     { return f.Order }

// DiscardLogger swallows everything the code under test logs.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
