package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

// Credentials identify the merchant against the processor's token endpoint.
type Credentials struct {
	Username   string
	Password   string
	MerchantID string
}

type TokenResponse struct {
	Token string
	// ExpiresAt is zero when the processor did not say.
	ExpiresAt time.Time
	Raw       json.RawMessage
}

type PaymentLinkRequest struct {
	OrderID       string
	Amount        domain.Amount
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Description   string
}

type PaymentLinkResponse struct {
	PaymentURL          string
	ProcessorInternalID string
	// TransactionToken is empty when it could not be read from PaymentURL.
	TransactionToken string
	Raw              json.RawMessage
}

type TransactionStatusResponse struct {
	Status                  domain.PaymentStatus
	ProcessorTransactionRef string
	Raw                     json.RawMessage
}

// StatusQuerier is the slice of the processor API used for reconciliation.
type StatusQuerier interface {
	QueryTransactionStatus(ctx context.Context, transactionToken string) (*TransactionStatusResponse, error)
}

// PaymentClient is the port for the external payment processor.
type PaymentClient interface {
	StatusQuerier
	RequestToken(ctx context.Context, creds Credentials) (*TokenResponse, error)
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest, token string) (*PaymentLinkResponse, error)
}

// TokenProvider hands out a valid processor bearer token.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// DonationRepository is the port for persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	FindByRef(ctx context.Context, donationRef string) (*domain.Donation, error)
	FindByOrderID(ctx context.Context, orderID string) (*domain.Donation, error)
	AttachPaymentLink(ctx context.Context, donationRef string, link domain.PaymentLink) error
	// Settle applies s only if the stored donation is still PENDING. It returns
	// the donation as stored after the call and whether this call made the change.
	Settle(ctx context.Context, donationRef string, s domain.Settlement) (*domain.Donation, bool, error)
	FindStalePending(ctx context.Context, f domain.StalePendingFilter) ([]*domain.Donation, error)
	// SchedulePoll records a background poll that left the donation PENDING.
	SchedulePoll(ctx context.Context, donationRef string, next time.Time) error
}

// Notifier tells the donor their donation went through.
type Notifier interface {
	NotifyDonationSucceeded(ctx context.Context, donation *domain.Donation) error
}

// CallbackArchive keeps a copy of every raw callback body for audit.
type CallbackArchive interface {
	Archive(ctx context.Context, orderID, contentType string, body []byte) error
}
