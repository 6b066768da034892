package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

// VerifyService reconciles a donation against the processor's status endpoint.
// The interactive path and the background reconciler use separate instances
// so only the latter retries.
type VerifyService struct {
	repo     application.DonationRepository
	status   application.StatusQuerier
	notifier application.Notifier
	logger   *slog.Logger
}

func NewVerifyService(
	repo application.DonationRepository,
	status application.StatusQuerier,
	notifier application.Notifier,
	logger *slog.Logger,
) *VerifyService {
	return &VerifyService{
		repo:     repo,
		status:   status,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *VerifyService) Verify(ctx context.Context, donationRef string) (*VerifyResult, error) {
	donation, err := s.repo.FindByRef(ctx, donationRef)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}

	if !donation.CanPoll() {
		return nil, application.NewUnverifiableError(donationRef)
	}

	resp, err := s.status.QueryTransactionStatus(ctx, *donation.TransactionToken)
	if err != nil {
		s.logger.Error("processor status query failed",
			"donation_ref", donationRef,
			"error", err,
		)
		return nil, application.NewProcessorUnavailableError(donationRef, err)
	}

	result := &VerifyResult{Donation: donation, ProcessorStatus: resp.Raw}

	if !donation.IsPending() || resp.Status == domain.StatusPending {
		return result, nil
	}

	settled, applied, err := settleAndNotify(ctx, s.repo, s.notifier, s.logger, donationRef, domain.Settlement{
		Status:                  resp.Status,
		ProcessorTransactionRef: donation.SettlementRef(resp.ProcessorTransactionRef),
		RawKey:                  "status_query",
		Raw:                     resp.Raw,
		SettledAt:               time.Now().UTC(),
	})
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	result.Donation = settled
	result.Updated = applied
	return result, nil
}
