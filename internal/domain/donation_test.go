package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDonation(t *testing.T) *domain.Donation {
	t.Helper()
	d, err := domain.NewDonation("DON-1", "ORD-1", domain.MustAmount("100"), domain.Donor{
		Name:  "Asha Rao",
		Email: "asha@example.org",
		Phone: "9876543210",
	})
	require.NoError(t, err)
	return d
}

func TestNewDonation(t *testing.T) {
	t.Run("creates pending donation", func(t *testing.T) {
		d := createTestDonation(t)

		assert.Equal(t, "DON-1", d.DonationRef)
		assert.Equal(t, "ORD-1", d.OrderID)
		assert.Equal(t, domain.StatusPending, d.PaymentStatus)
		assert.Nil(t, d.ProcessorTransactionRef)
		assert.Nil(t, d.TransactionToken)
		assert.NotZero(t, d.CreatedAt)
	})

	t.Run("rejects empty reference", func(t *testing.T) {
		_, err := domain.NewDonation("", "ORD-1", domain.MustAmount("1"), domain.Donor{Name: "x"})
		assert.ErrorContains(t, err, "donation reference is required")
	})

	t.Run("rejects empty order id", func(t *testing.T) {
		_, err := domain.NewDonation("DON-1", "", domain.MustAmount("1"), domain.Donor{Name: "x"})
		assert.ErrorContains(t, err, "order ID is required")
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := domain.NewDonation("DON-1", "ORD-1", domain.Amount{}, domain.Donor{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestParseAmount(t *testing.T) {
	a, err := domain.ParseAmount(" 250.5 ")
	require.NoError(t, err)
	assert.Equal(t, "250.50", a.String())

	_, err = domain.ParseAmount("-3")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = domain.ParseAmount("ten")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	trailing, err := domain.ParseAmount("12.500")
	require.NoError(t, err)
	assert.Equal(t, "12.50", trailing.String())

	largest, err := domain.ParseAmount("9999999999.99")
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", largest.String())

	for _, tc := range []struct {
		in   string
		want *domain.DomainError
	}{
		{"0.001", domain.ErrAmountPrecision},
		{"1.005", domain.ErrAmountPrecision},
		{"10000000000", domain.ErrAmountTooLarge},
		{"99999999999999", domain.ErrAmountTooLarge},
	} {
		_, err := domain.ParseAmount(tc.in)
		assert.Same(t, tc.want, err, tc.in)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, tc.in)
	}

	assert.True(t, domain.MustAmount("1").Equal(domain.MustAmount("1.00")))
	assert.False(t, domain.MustAmount("100").Equal(domain.MustAmount("50")))
}

func TestDonation_Settle(t *testing.T) {
	t.Run("PENDING -> SUCCESS records reference", func(t *testing.T) {
		d := createTestDonation(t)

		err := d.Settle(domain.Settlement{
			Status:                  domain.StatusSuccess,
			ProcessorTransactionRef: "BANK-9",
			RawKey:                  "callback",
			Raw:                     json.RawMessage(`{"order_id":"ORD-1"}`),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusSuccess, d.PaymentStatus)
		require.NotNil(t, d.ProcessorTransactionRef)
		assert.Equal(t, "BANK-9", *d.ProcessorTransactionRef)
		assert.NotNil(t, d.SettledAt)
		assert.JSONEq(t, `{"callback":{"order_id":"ORD-1"}}`, string(d.RawResponse))
	})

	t.Run("PENDING -> FAILED without reference uses placeholder", func(t *testing.T) {
		d := createTestDonation(t)

		require.NoError(t, d.Settle(domain.Settlement{Status: domain.StatusFailed}))

		assert.Equal(t, domain.UnassignedProcessorRef, *d.ProcessorTransactionRef)
	})

	t.Run("terminal states reject every transition", func(t *testing.T) {
		for _, from := range []domain.PaymentStatus{domain.StatusSuccess, domain.StatusFailed} {
			for _, to := range []domain.PaymentStatus{domain.StatusSuccess, domain.StatusFailed, domain.StatusPending} {
				d := createTestDonation(t)
				require.NoError(t, d.Settle(domain.Settlement{Status: from, ProcessorTransactionRef: "R"}))

				err := d.Settle(domain.Settlement{Status: to, ProcessorTransactionRef: "OTHER"})

				assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "%s -> %s", from, to)
				assert.Equal(t, from, d.PaymentStatus)
				assert.Equal(t, "R", *d.ProcessorTransactionRef)
			}
		}
	})

	t.Run("PENDING -> PENDING is not a settlement", func(t *testing.T) {
		d := createTestDonation(t)

		err := d.Settle(domain.Settlement{Status: domain.StatusPending})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Nil(t, d.ProcessorTransactionRef)
	})
}

func TestDonation_AttachPaymentLink(t *testing.T) {
	d := createTestDonation(t)

	err := d.AttachPaymentLink(domain.PaymentLink{
		PaymentURL:          "https://pay.example/checkout?token=tok-1",
		ProcessorInternalID: "INT-7",
		TransactionToken:    "tok-1",
		Raw:                 json.RawMessage(`{"success":true}`),
	})

	require.NoError(t, err)
	assert.True(t, d.CanPoll())
	assert.Equal(t, "INT-7", *d.ProcessorInternalID)
	assert.Equal(t, "INT-7", d.SettlementRef(""))
	assert.Equal(t, "BANK", d.SettlementRef("BANK"))

	require.NoError(t, d.Settle(domain.Settlement{Status: domain.StatusFailed, ProcessorTransactionRef: "x"}))
	err = d.AttachPaymentLink(domain.PaymentLink{PaymentURL: "https://other"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMergeRaw_KeepsExistingKeys(t *testing.T) {
	raw := domain.MergeRaw(nil, "link", json.RawMessage(`{"id":1}`))
	raw = domain.MergeRaw(raw, "callback", json.RawMessage(`{"status":"1"}`))
	raw = domain.MergeRaw(raw, "note", json.RawMessage(`not json`))

	assert.JSONEq(t, `{"link":{"id":1},"callback":{"status":"1"},"note":"not json"}`, string(raw))
}

func TestPaymentStatus_LegacyStatus(t *testing.T) {
	assert.Equal(t, "pending", domain.StatusPending.LegacyStatus())
	assert.Equal(t, "completed", domain.StatusSuccess.LegacyStatus())
	assert.Equal(t, "failed", domain.StatusFailed.LegacyStatus())
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.True(t, domain.StatusFailed.IsTerminal())
}

func TestStalePendingFilter_Matches(t *testing.T) {
	now := time.Now()
	filter := domain.StalePendingFilter{CreatedBefore: now, DueBy: now, MaxAttempts: 2}

	newPollable := func() *domain.Donation {
		d := createTestDonation(t)
		d.CreatedAt = now.Add(-time.Hour)
		require.NoError(t, d.AttachPaymentLink(domain.PaymentLink{TransactionToken: "tok"}))
		return d
	}

	assert.True(t, filter.Matches(newPollable()))

	noToken := createTestDonation(t)
	noToken.CreatedAt = now.Add(-time.Hour)
	assert.False(t, filter.Matches(noToken))

	scheduled := newPollable()
	require.NoError(t, scheduled.SchedulePoll(now.Add(time.Minute)))
	assert.Equal(t, 1, scheduled.PollAttempts)
	assert.False(t, filter.Matches(scheduled))

	due := newPollable()
	require.NoError(t, due.SchedulePoll(now))
	assert.True(t, filter.Matches(due))

	exhausted := newPollable()
	require.NoError(t, exhausted.SchedulePoll(now))
	require.NoError(t, exhausted.SchedulePoll(now))
	assert.False(t, filter.Matches(exhausted))

	settled := newPollable()
	require.NoError(t, settled.Settle(domain.Settlement{Status: domain.StatusFailed}))
	assert.False(t, filter.Matches(settled))
	assert.ErrorIs(t, settled.SchedulePoll(now), domain.ErrInvalidTransition)
}
