// Package domain encodes a donation entity and its payment lifecycle
package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the current state of a donation in its lifecycle
type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusSuccess PaymentStatus = "SUCCESS"
	StatusFailed  PaymentStatus = "FAILED"
)

// UnassignedProcessorRef is recorded when a donation settles without any
// reference from the processor (e.g. the payment link was never created).
const UnassignedProcessorRef = "UNASSIGNED"

// IsTerminal reports whether no further transition is allowed from s.
func (s PaymentStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// LegacyStatus is the value mirrored into the old `status` column for
// readers that predate payment_status.
func (s PaymentStatus) LegacyStatus() string {
	switch s {
	case StatusSuccess:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

type Donor struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type Donation struct {
	ID          uuid.UUID
	DonationRef string
	OrderID     string
	Amount      Amount
	Donor       Donor

	PaymentStatus           PaymentStatus
	ProcessorTransactionRef *string
	ProcessorInternalID     *string
	TransactionToken        *string
	PaymentURL              *string
	RawResponse             json.RawMessage

	// PollAttempts counts background status polls that left the donation
	// PENDING; NextPollAt is when the next one is due.
	PollAttempts int
	NextPollAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	SettledAt *time.Time
}

// StalePendingFilter selects PENDING donations the reconciler should poll.
// DueBy excludes donations whose NextPollAt is later; a zero MaxAttempts
// means no cap.
type StalePendingFilter struct {
	CreatedBefore time.Time
	DueBy         time.Time
	MaxAttempts   int
	Limit         int
}

// Matches applies the filter to one donation.
func (f StalePendingFilter) Matches(d *Donation) bool {
	if !d.IsPending() || !d.CanPoll() || !d.CreatedAt.Before(f.CreatedBefore) {
		return false
	}
	if f.MaxAttempts > 0 && d.PollAttempts >= f.MaxAttempts {
		return false
	}
	return d.NextPollAt == nil || !d.NextPollAt.After(f.DueBy)
}

// PaymentLink is what the processor hands back when a hosted page is created.
type PaymentLink struct {
	PaymentURL          string
	ProcessorInternalID string
	TransactionToken    string
	Raw                 json.RawMessage
}

// Settlement describes the single PENDING -> terminal transition of a donation.
type Settlement struct {
	Status                  PaymentStatus
	ProcessorTransactionRef string
	RawKey                  string
	Raw                     json.RawMessage
	SettledAt               time.Time
}

func NewDonation(donationRef, orderID string, amount Amount, donor Donor) (*Donation, error) {
	if donationRef == "" {
		return nil, errors.New("donation reference is required")
	}
	if orderID == "" {
		return nil, errors.New("order ID is required")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if donor.Name == "" {
		return nil, errors.New("donor name is required")
	}

	now := time.Now().UTC()
	return &Donation{
		ID:            uuid.New(),
		DonationRef:   donationRef,
		OrderID:       orderID,
		Amount:        amount,
		Donor:         donor,
		PaymentStatus: StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (d *Donation) IsPending() bool {
	return d.PaymentStatus == StatusPending
}

// CanPoll reports whether a status query can be made for this donation.
func (d *Donation) CanPoll() bool {
	return d.TransactionToken != nil && *d.TransactionToken != ""
}

// AttachPaymentLink records processor linkage. Only PENDING donations accept it.
func (d *Donation) AttachPaymentLink(link PaymentLink) error {
	if !d.IsPending() {
		return NewInvalidTransitionError(d.PaymentStatus, d.PaymentStatus)
	}
	if link.ProcessorInternalID != "" {
		d.ProcessorInternalID = &link.ProcessorInternalID
	}
	if link.TransactionToken != "" {
		d.TransactionToken = &link.TransactionToken
	}
	if link.PaymentURL != "" {
		d.PaymentURL = &link.PaymentURL
	}
	d.RawResponse = MergeRaw(d.RawResponse, "link", link.Raw)
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// Settle applies the one allowed transition: PENDING -> SUCCESS or PENDING -> FAILED.
func (d *Donation) Settle(s Settlement) error {
	if !s.Status.IsTerminal() {
		return NewInvalidTransitionError(d.PaymentStatus, s.Status)
	}
	if !d.IsPending() {
		return NewInvalidTransitionError(d.PaymentStatus, s.Status)
	}

	ref := s.ProcessorTransactionRef
	if ref == "" {
		ref = UnassignedProcessorRef
	}
	settledAt := s.SettledAt
	if settledAt.IsZero() {
		settledAt = time.Now().UTC()
	}

	d.PaymentStatus = s.Status
	d.ProcessorTransactionRef = &ref
	d.RawResponse = MergeRaw(d.RawResponse, s.RawKey, s.Raw)
	d.SettledAt = &settledAt
	d.UpdatedAt = settledAt
	return nil
}

// SchedulePoll records a background poll that did not settle the donation and
// defers the next one until next.
func (d *Donation) SchedulePoll(next time.Time) error {
	if !d.IsPending() {
		return NewInvalidTransitionError(d.PaymentStatus, d.PaymentStatus)
	}
	d.PollAttempts++
	d.NextPollAt = &next
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// SettlementRef picks the reference to record for a settlement: the one the
// processor sent, else the processor's internal id, else UnassignedProcessorRef.
func (d *Donation) SettlementRef(fromProcessor string) string {
	if fromProcessor != "" {
		return fromProcessor
	}
	if d.ProcessorInternalID != nil && *d.ProcessorInternalID != "" {
		return *d.ProcessorInternalID
	}
	return UnassignedProcessorRef
}

// Reconstitute - Special constructor for loading from DB
func Reconstitute(
	id uuid.UUID, donationRef, orderID string,
	amount Amount, donor Donor,
	status PaymentStatus,
	processorTransactionRef, processorInternalID, transactionToken, paymentURL *string,
	raw json.RawMessage,
	pollAttempts int, nextPollAt *time.Time,
	createdAt, updatedAt time.Time, settledAt *time.Time,
) *Donation {
	return &Donation{
		ID:                      id,
		DonationRef:             donationRef,
		OrderID:                 orderID,
		Amount:                  amount,
		Donor:                   donor,
		PaymentStatus:           status,
		ProcessorTransactionRef: processorTransactionRef,
		ProcessorInternalID:     processorInternalID,
		TransactionToken:        transactionToken,
		PaymentURL:              paymentURL,
		RawResponse:             raw,
		PollAttempts:            pollAttempts,
		NextPollAt:              nextPollAt,
		CreatedAt:               createdAt,
		UpdatedAt:               updatedAt,
		SettledAt:               settledAt,
	}
}
