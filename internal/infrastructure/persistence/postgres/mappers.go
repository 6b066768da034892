package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

// toDomainModel: maps db model to domain entity
func toDomainModel(m DonationModel) (*domain.Donation, error) {
	amount, err := domain.ParseAmount(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("donation %s has invalid stored amount %q: %w", m.DonationRef, m.Amount, err)
	}

	var message string
	if m.DonorMessage != nil {
		message = *m.DonorMessage
	}

	var raw json.RawMessage
	if len(m.RawResponse) > 0 {
		raw = json.RawMessage(m.RawResponse)
	}

	return domain.Reconstitute(
		m.ID,
		m.DonationRef,
		m.OrderID,
		amount,
		domain.Donor{
			Name:    m.DonorName,
			Email:   m.DonorEmail,
			Phone:   m.DonorPhone,
			Message: message,
		},
		domain.PaymentStatus(m.PaymentStatus),
		m.ProcessorTransactionRef,
		m.ProcessorInternalID,
		m.TransactionToken,
		m.PaymentURL,
		raw,
		m.PollAttempts,
		m.NextPollAt,
		m.CreatedAt,
		m.UpdatedAt,
		m.SettledAt,
	), nil
}

// toDBModel: maps domain entity to db model
func toDBModel(d *domain.Donation) *DonationModel {
	var raw []byte
	if len(d.RawResponse) > 0 {
		raw = d.RawResponse
	}
	return &DonationModel{
		ID:                      d.ID,
		DonationRef:             d.DonationRef,
		OrderID:                 d.OrderID,
		Amount:                  d.Amount.String(),
		DonorName:               d.Donor.Name,
		DonorEmail:              d.Donor.Email,
		DonorPhone:              d.Donor.Phone,
		DonorMessage:            nullable(d.Donor.Message),
		PaymentStatus:           string(d.PaymentStatus),
		LegacyStatus:            d.PaymentStatus.LegacyStatus(),
		ProcessorTransactionRef: d.ProcessorTransactionRef,
		ProcessorInternalID:     d.ProcessorInternalID,
		TransactionToken:        d.TransactionToken,
		PaymentURL:              d.PaymentURL,
		RawResponse:             raw,
		PollAttempts:            d.PollAttempts,
		NextPollAt:              d.NextPollAt,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
		SettledAt:               d.SettledAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
