package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/domain"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
)

const donationColumns = `
	id, donation_ref, order_id, amount::text,
	donor_name, donor_email, donor_phone, donor_message,
	payment_status, processor_transaction_ref, processor_internal_id,
	transaction_token, payment_url, raw_response,
	poll_attempts, next_poll_at,
	created_at, updated_at, settled_at`

// mergeRaw folds a {"key": payload} object into raw_response without
// dropping keys written by earlier steps.
const mergeRaw = `
	CASE
		WHEN raw_response IS NULL THEN '{}'::jsonb
		WHEN jsonb_typeof(raw_response) = 'object' THEN raw_response
		ELSE jsonb_build_object('legacy', raw_response)
	END`

type DonationRepository struct {
	q persistence.Executor
}

func NewDonationRepository(q persistence.Executor) *DonationRepository {
	return &DonationRepository{q: q}
}

func (r *DonationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	query := `
		INSERT INTO donations (
			id, donation_ref, order_id, amount,
			donor_name, donor_email, donor_phone, donor_message,
			payment_status, status, raw_response, created_at, updated_at
		) VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	m := toDBModel(donation)
	_, err := r.q.Exec(ctx, query,
		m.ID,
		m.DonationRef,
		m.OrderID,
		m.Amount,
		m.DonorName,
		m.DonorEmail,
		m.DonorPhone,
		m.DonorMessage,
		m.PaymentStatus,
		m.LegacyStatus,
		m.RawResponse,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if persistence.IsUniqueViolation(err) {
			return domain.NewDuplicateReferenceError(donation.DonationRef, err)
		}
		return fmt.Errorf("failed to create donation: %w", err)
	}

	return nil
}

// FindByRef retrieves a donation by its public reference
func (r *DonationRepository) FindByRef(ctx context.Context, donationRef string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE donation_ref = $1`

	d, err := scanDonation(r.q.QueryRow(ctx, query, donationRef))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewDonationNotFoundError(donationRef)
	}
	return d, err
}

// FindByOrderID retrieves a donation by the order id sent to the processor
func (r *DonationRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE order_id = $1`

	d, err := scanDonation(r.q.QueryRow(ctx, query, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewDonationNotFoundError(orderID)
	}
	return d, err
}

func (r *DonationRepository) AttachPaymentLink(ctx context.Context, donationRef string, link domain.PaymentLink) error {
	query := `
		UPDATE donations
		SET processor_internal_id = $2,
			transaction_token = $3,
			payment_url = $4,
			raw_response = ` + mergeRaw + ` || COALESCE($5::jsonb, '{}'::jsonb),
			updated_at = $6
		WHERE donation_ref = $1 AND payment_status = 'PENDING'
	`

	tag, err := r.q.Exec(ctx, query,
		donationRef,
		nullable(link.ProcessorInternalID),
		nullable(link.TransactionToken),
		nullable(link.PaymentURL),
		[]byte(domain.RawEntry("link", link.Raw)),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to attach payment link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		current, err := r.FindByRef(ctx, donationRef)
		if err != nil {
			return err
		}
		return domain.NewInvalidTransitionError(current.PaymentStatus, current.PaymentStatus)
	}
	return nil
}

// Settle moves a PENDING donation to a terminal status in one conditional
// UPDATE. When another writer got there first nothing is written and the
// stored donation is returned with applied=false.
func (r *DonationRepository) Settle(ctx context.Context, donationRef string, s domain.Settlement) (*domain.Donation, bool, error) {
	if !s.Status.IsTerminal() {
		return nil, false, domain.NewInvalidTransitionError(domain.StatusPending, s.Status)
	}

	ref := s.ProcessorTransactionRef
	if ref == "" {
		ref = domain.UnassignedProcessorRef
	}
	settledAt := s.SettledAt
	if settledAt.IsZero() {
		settledAt = time.Now().UTC()
	}

	query := `
		UPDATE donations
		SET payment_status = $2,
			status = $3,
			processor_transaction_ref = $4,
			raw_response = ` + mergeRaw + ` || COALESCE($5::jsonb, '{}'::jsonb),
			settled_at = $6,
			updated_at = $6
		WHERE donation_ref = $1 AND payment_status = 'PENDING'
		RETURNING ` + donationColumns

	d, err := scanDonation(r.q.QueryRow(ctx, query,
		donationRef,
		string(s.Status),
		s.Status.LegacyStatus(),
		ref,
		[]byte(domain.RawEntry(s.RawKey, s.Raw)),
		settledAt,
	))
	if err == nil {
		return d, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to settle donation: %w", err)
	}

	current, err := r.FindByRef(ctx, donationRef)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

// FindStalePending finds pollable PENDING donations created before the cutoff
// whose next poll is due, least recently scheduled first so that donations
// the processor keeps reporting as pending do not hold up the rest.
func (r *DonationRepository) FindStalePending(ctx context.Context, f domain.StalePendingFilter) ([]*domain.Donation, error) {
	query := `
		SELECT ` + donationColumns + `
		FROM donations
		WHERE payment_status = 'PENDING'
		  AND transaction_token IS NOT NULL
		  AND transaction_token <> ''
		  AND created_at < $1
		  AND (next_poll_at IS NULL OR next_poll_at <= $2)
		  AND ($3 <= 0 OR poll_attempts < $3)
		ORDER BY next_poll_at ASC NULLS FIRST, created_at ASC
		LIMIT $4
	`

	rows, err := r.q.Query(ctx, query, f.CreatedBefore, f.DueBy, f.MaxAttempts, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("query stale pending donations: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Donation, error) {
		return scanDonation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan stale pending donations: %w", err)
	}
	return results, nil
}

// SchedulePoll counts a background poll that left the donation PENDING and
// sets when the next one is due. Settled donations are left alone.
func (r *DonationRepository) SchedulePoll(ctx context.Context, donationRef string, next time.Time) error {
	query := `
		UPDATE donations
		SET poll_attempts = poll_attempts + 1,
			next_poll_at = $2,
			updated_at = $3
		WHERE donation_ref = $1 AND payment_status = 'PENDING'
	`

	if _, err := r.q.Exec(ctx, query, donationRef, next, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to schedule donation poll: %w", err)
	}
	return nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var m DonationModel
	if err := row.Scan(m.scanTargets()...); err != nil {
		return nil, err
	}
	return toDomainModel(m)
}
