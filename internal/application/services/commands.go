package services

import (
	"encoding/json"
	"strings"

	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

type InitiateCommand struct {
	Name    string `validate:"required,max=100"`
	Email   string `validate:"required,email,max=254"`
	Phone   string `validate:"required,numeric,len=10"`
	Amount  string `validate:"required,positive_amount"`
	Message string `validate:"max=500"`
}

func (c InitiateCommand) normalized() InitiateCommand {
	phone := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(c.Phone))
	return InitiateCommand{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   phone,
		Amount:  strings.TrimSpace(c.Amount),
		Message: strings.TrimSpace(c.Message),
	}
}

type InitiateResult struct {
	PaymentURL  string
	DonationRef string
	OrderID     string
}

// CallbackPayload is the processor's notification after the donor leaves the
// hosted page. Every field is untrusted.
type CallbackPayload struct {
	OrderID             string
	Status              string
	StatusCode          string
	Amount              string
	TransactionRef      string
	ProcessorInternalID string
	CardType            string
	CardMask            string
	Notes               string

	// Raw is the payload as stored on the donation.
	Raw json.RawMessage
	// Body and ContentType are the request as received, for the archive.
	Body        []byte
	ContentType string
}

type CallbackResult struct {
	Donation *domain.Donation
	// Replayed is true when the donation had already settled before this callback.
	Replayed       bool
	AmountMismatch bool
}

type VerifyResult struct {
	Donation        *domain.Donation
	ProcessorStatus json.RawMessage
	Updated         bool
}
