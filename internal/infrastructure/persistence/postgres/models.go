package postgres

import (
	"time"

	"github.com/google/uuid"
)

// DonationModel mirrors a row of the donations table.
type DonationModel struct {
	ID           uuid.UUID
	DonationRef  string
	OrderID      string
	Amount       string
	DonorName    string
	DonorEmail   string
	DonorPhone   string
	DonorMessage *string

	PaymentStatus           string
	LegacyStatus            string
	ProcessorTransactionRef *string
	ProcessorInternalID     *string
	TransactionToken        *string
	PaymentURL              *string
	RawResponse             []byte
	PollAttempts            int
	NextPollAt              *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	SettledAt *time.Time
}

// scanTargets returns pointers in donationColumns order.
func (m *DonationModel) scanTargets() []any {
	return []any{
		&m.ID, &m.DonationRef, &m.OrderID, &m.Amount,
		&m.DonorName, &m.DonorEmail, &m.DonorPhone, &m.DonorMessage,
		&m.PaymentStatus, &m.ProcessorTransactionRef, &m.ProcessorInternalID,
		&m.TransactionToken, &m.PaymentURL, &m.RawResponse,
		&m.PollAttempts, &m.NextPollAt,
		&m.CreatedAt, &m.UpdatedAt, &m.SettledAt,
	}
}
