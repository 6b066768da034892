package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
	"github.com/go-playground/validator"
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("positive_amount", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseAmount(fl.Field().String())
		return err == nil
	})
	return v
}

// violations renders validator errors as one message per field.
func violations(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out = append(out, field+" is required")
		case "email":
			out = append(out, field+" must be a valid email address")
		case "numeric", "len":
			out = append(out, field+" must be a 10-digit number")
		case "positive_amount":
			out = append(out, amountViolation(fe.Value()))
		case "max":
			out = append(out, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			out = append(out, field+" is invalid")
		}
	}
	return out
}

// amountViolation reports why ParseAmount rejected the submitted value.
func amountViolation(value interface{}) string {
	s, _ := value.(string)
	_, err := domain.ParseAmount(s)
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return domain.ErrInvalidAmount.Message
}

var successCallbackStatuses = map[string]bool{
	"1":        true,
	"success":  true,
	"approved": true,
	"captured": true,
	"paid":     true,
}

// MapCallbackStatus reads the processor's reported outcome. Only explicit
// success values count as SUCCESS; a callback never leaves a donation PENDING.
func MapCallbackStatus(statusCode, status string) domain.PaymentStatus {
	for _, v := range []string{statusCode, status} {
		if successCallbackStatuses[strings.ToLower(strings.TrimSpace(v))] {
			return domain.StatusSuccess
		}
	}
	return domain.StatusFailed
}

// settleAndNotify performs the conditional PENDING -> terminal update and sends
// the receipt when this call is the one that moved the donation to SUCCESS.
func settleAndNotify(
	ctx context.Context,
	repo application.DonationRepository,
	notifier application.Notifier,
	logger *slog.Logger,
	donationRef string,
	s domain.Settlement,
) (*domain.Donation, bool, error) {
	settled, applied, err := repo.Settle(ctx, donationRef, s)
	if err != nil {
		return nil, false, err
	}

	if !applied {
		logger.Info("donation already settled",
			"donation_ref", donationRef,
			"status", settled.PaymentStatus,
			"source", s.RawKey,
		)
		return settled, false, nil
	}

	logger.Info("donation settled",
		"donation_ref", donationRef,
		"order_id", settled.OrderID,
		"status", settled.PaymentStatus,
		"source", s.RawKey,
	)

	if settled.PaymentStatus == domain.StatusSuccess && notifier != nil {
		if err := notifier.NotifyDonationSucceeded(ctx, settled); err != nil {
			logger.Error("failed to send donation receipt",
				"donation_ref", donationRef,
				"error", err,
			)
		}
	}

	return settled, true, nil
}
