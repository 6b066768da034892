package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"
)

const donationDescription = "Donation"

type InitiateService struct {
	repo      application.DonationRepository
	client    application.PaymentClient
	tokens    application.TokenProvider
	refs      ReferenceGenerator
	maxAmount decimal.Decimal
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewInitiateService builds the intake path. A zero maxAmount disables the cap.
func NewInitiateService(
	repo application.DonationRepository,
	client application.PaymentClient,
	tokens application.TokenProvider,
	refs ReferenceGenerator,
	maxAmount decimal.Decimal,
	logger *slog.Logger,
) *InitiateService {
	return &InitiateService{
		repo:      repo,
		client:    client,
		tokens:    tokens,
		refs:      refs,
		maxAmount: maxAmount,
		validate:  newValidator(),
		logger:    logger,
	}
}

func (s *InitiateService) Initiate(ctx context.Context, cmd InitiateCommand) (*InitiateResult, error) {
	cmd = cmd.normalized()

	if problems := s.validateCommand(cmd); len(problems) > 0 {
		return nil, application.NewValidationError(problems)
	}

	amount, err := domain.ParseAmount(cmd.Amount)
	if err != nil {
		return nil, application.NewValidationError([]string{amountViolation(cmd.Amount)})
	}

	donation, err := domain.NewDonation(s.refs.DonationRef(), s.refs.OrderID(), amount, domain.Donor{
		Name:    cmd.Name,
		Email:   cmd.Email,
		Phone:   cmd.Phone,
		Message: cmd.Message,
	})
	if err != nil {
		return nil, application.NewValidationError([]string{err.Error()})
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		if errors.Is(err, domain.ErrDuplicateReference) {
			s.logger.Warn("donation reference collision",
				"donation_ref", donation.DonationRef,
				"order_id", donation.OrderID,
			)
			return nil, application.NewDuplicateReferenceError(err)
		}
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("donation created",
		"donation_ref", donation.DonationRef,
		"order_id", donation.OrderID,
		"amount", donation.Amount.String(),
	)

	link, err := s.requestPaymentLink(ctx, donation)
	if err != nil {
		return nil, s.failInitiation(ctx, donation, err)
	}

	if link.TransactionToken == "" {
		s.logger.Warn("payment url carries no transaction token, donation cannot be verified",
			"donation_ref", donation.DonationRef,
		)
	}

	err = s.repo.AttachPaymentLink(ctx, donation.DonationRef, domain.PaymentLink{
		PaymentURL:          link.PaymentURL,
		ProcessorInternalID: link.ProcessorInternalID,
		TransactionToken:    link.TransactionToken,
		Raw:                 link.Raw,
	})
	if err != nil {
		// The hosted page exists but the donation has no token to poll it by.
		s.logger.Error("failed to record payment link",
			"ops_event", "unrecorded_payment_link",
			"donation_ref", donation.DonationRef,
			"order_id", donation.OrderID,
			"processor_internal_id", link.ProcessorInternalID,
			"transaction_token", link.TransactionToken,
			"error", err,
		)
		ref := link.ProcessorInternalID
		if ref == "" {
			ref = domain.UnassignedProcessorRef
		}
		s.markFailed(ctx, donation, ref, map[string]string{
			"error":                 err.Error(),
			"payment_url":           link.PaymentURL,
			"processor_internal_id": link.ProcessorInternalID,
			"transaction_token":     link.TransactionToken,
		})
		svcErr := application.NewInternalError(err)
		svcErr.DonationRef = donation.DonationRef
		return nil, svcErr
	}

	return &InitiateResult{
		PaymentURL:  link.PaymentURL,
		DonationRef: donation.DonationRef,
		OrderID:     donation.OrderID,
	}, nil
}

func (s *InitiateService) validateCommand(cmd InitiateCommand) []string {
	var problems []string
	if err := s.validate.Struct(cmd); err != nil {
		problems = violations(err)
	}

	if s.maxAmount.IsPositive() {
		if amount, err := domain.ParseAmount(cmd.Amount); err == nil && amount.Decimal().GreaterThan(s.maxAmount) {
			problems = append(problems, "amount must not exceed "+s.maxAmount.StringFixed(2))
		}
	}
	return problems
}

func (s *InitiateService) requestPaymentLink(ctx context.Context, donation *domain.Donation) (*application.PaymentLinkResponse, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	link, err := s.client.CreatePaymentLink(ctx, application.PaymentLinkRequest{
		OrderID:       donation.OrderID,
		Amount:        donation.Amount,
		CustomerName:  donation.Donor.Name,
		CustomerEmail: donation.Donor.Email,
		CustomerPhone: donation.Donor.Phone,
		Description:   donationDescription,
	}, token)
	if err != nil {
		if procErr, ok := application.IsProcessorError(err); ok && procErr.IsUnauthorized() {
			s.tokens.Invalidate()
		}
		return nil, err
	}
	return link, nil
}

// failInitiation closes a donation whose payment link could not be created so
// it never lingers as PENDING.
func (s *InitiateService) failInitiation(ctx context.Context, donation *domain.Donation, cause error) error {
	s.logger.Error("payment link creation failed",
		"donation_ref", donation.DonationRef,
		"order_id", donation.OrderID,
		"error", cause,
	)

	s.markFailed(ctx, donation, domain.UnassignedProcessorRef, map[string]string{"error": cause.Error()})

	return application.NewProcessorUnavailableError(donation.DonationRef, cause)
}

// markFailed settles an initiation that cannot complete, keeping details under
// link_error.
func (s *InitiateService) markFailed(ctx context.Context, donation *domain.Donation, ref string, details map[string]string) {
	raw, _ := json.Marshal(details)

	// The request context may already be done when the processor timed out.
	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	_, _, err := s.repo.Settle(settleCtx, donation.DonationRef, domain.Settlement{
		Status:                  domain.StatusFailed,
		ProcessorTransactionRef: ref,
		RawKey:                  "link_error",
		Raw:                     raw,
	})
	if err != nil {
		s.logger.Error("failed to mark donation as failed",
			"donation_ref", donation.DonationRef,
			"error", err,
		)
	}
}
