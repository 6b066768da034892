package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

type CallbackService struct {
	repo     application.DonationRepository
	notifier application.Notifier
	archive  application.CallbackArchive
	logger   *slog.Logger
}

// NewCallbackService wires callback handling. archive may be nil.
func NewCallbackService(
	repo application.DonationRepository,
	notifier application.Notifier,
	archive application.CallbackArchive,
	logger *slog.Logger,
) *CallbackService {
	return &CallbackService{
		repo:     repo,
		notifier: notifier,
		archive:  archive,
		logger:   logger,
	}
}

func (s *CallbackService) HandleCallback(ctx context.Context, payload CallbackPayload) (*CallbackResult, error) {
	orderID := strings.TrimSpace(payload.OrderID)
	if orderID == "" {
		s.logger.Warn("callback without order id")
		return nil, application.NewInvalidCallbackError("order_id is required")
	}

	donation, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			s.logger.Warn("callback for unknown order", "order_id", orderID)
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}

	// Only bodies for orders we issued are archived.
	s.archiveBody(ctx, orderID, payload)

	if !donation.IsPending() {
		s.logger.Info("callback replay for settled donation",
			"donation_ref", donation.DonationRef,
			"status", donation.PaymentStatus,
		)
		return &CallbackResult{Donation: donation, Replayed: true}, nil
	}

	status := MapCallbackStatus(payload.StatusCode, payload.Status)

	mismatch := false
	if declared := strings.TrimSpace(payload.Amount); declared != "" {
		amount, err := domain.ParseAmount(declared)
		if err != nil || !amount.Equal(donation.Amount) {
			mismatch = true
			s.logger.Warn("callback amount does not match donation",
				"security_event", "amount_mismatch",
				"donation_ref", donation.DonationRef,
				"order_id", orderID,
				"expected", donation.Amount.String(),
				"declared", declared,
				"reported_status", status,
			)
			status = domain.StatusFailed
		}
	}

	processorRef := strings.TrimSpace(payload.TransactionRef)
	if processorRef == "" {
		processorRef = strings.TrimSpace(payload.ProcessorInternalID)
	}

	settled, applied, err := settleAndNotify(ctx, s.repo, s.notifier, s.logger, donation.DonationRef, domain.Settlement{
		Status:                  status,
		ProcessorTransactionRef: donation.SettlementRef(processorRef),
		RawKey:                  "callback",
		Raw:                     payload.Raw,
		SettledAt:               time.Now().UTC(),
	})
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	return &CallbackResult{
		Donation:       settled,
		Replayed:       !applied,
		AmountMismatch: mismatch && applied,
	}, nil
}

func (s *CallbackService) archiveBody(ctx context.Context, orderID string, payload CallbackPayload) {
	if s.archive == nil || len(payload.Body) == 0 {
		return
	}
	if err := s.archive.Archive(ctx, orderID, payload.ContentType, payload.Body); err != nil {
		s.logger.Warn("failed to archive callback",
			"order_id", orderID,
			"error", err,
		)
	}
}
