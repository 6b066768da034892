package notification

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

// LogNotifier records successful donations in the log instead of mailing anyone.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyDonationSucceeded(_ context.Context, d *domain.Donation) error {
	n.logger.Info("donation succeeded",
		"donation_ref", d.DonationRef,
		"amount", d.Amount.String(),
	)
	return nil
}
