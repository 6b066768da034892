package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/application/services"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

// DonationVerifier is the orchestrator operation the sweep runs per donation.
type DonationVerifier interface {
	Verify(ctx context.Context, donationRef string) (*services.VerifyResult, error)
}

// maxPollDelay caps the backoff between polls of one donation.
const maxPollDelay = 24 * time.Hour

// Reconciler periodically verifies donations that have stayed PENDING longer
// than staleAfter, for donors who never came back through the callback.
// A poll that leaves a donation PENDING pushes its next poll back
// exponentially; after maxAttempts polls the sweep leaves it to the manual
// verify endpoint.
type Reconciler struct {
	repo        application.DonationRepository
	verifier    DonationVerifier
	interval    time.Duration
	batchSize   int
	staleAfter  time.Duration
	maxAttempts int
	now         func() time.Time
	logger      *slog.Logger
}

func NewReconciler(
	repo application.DonationRepository,
	verifier DonationVerifier,
	interval time.Duration,
	batchSize int,
	staleAfter time.Duration,
	maxAttempts int,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		repo:        repo,
		verifier:    verifier,
		interval:    interval,
		batchSize:   batchSize,
		staleAfter:  staleAfter,
		maxAttempts: maxAttempts,
		now:         time.Now,
		logger:      logger,
	}
}

// Start runs sweeps until ctx is cancelled. A non-positive interval disables it.
func (r *Reconciler) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("background reconciler disabled")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("starting background reconciler",
		"interval", r.interval,
		"batch_size", r.batchSize,
		"stale_after", r.staleAfter,
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping background reconciler")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single sweep and reports how many donations it settled.
func (r *Reconciler) RunOnce(ctx context.Context) int {
	now := r.now()

	pending, err := r.repo.FindStalePending(ctx, domain.StalePendingFilter{
		CreatedBefore: now.Add(-r.staleAfter),
		DueBy:         now,
		MaxAttempts:   r.maxAttempts,
		Limit:         r.batchSize,
	})
	if err != nil {
		r.logger.Error("failed to fetch stale pending donations", "error", err)
		return 0
	}
	if len(pending) == 0 {
		return 0
	}

	r.logger.Info("reconciling stale donations", "count", len(pending))

	settled := 0
	for _, d := range pending {
		if ctx.Err() != nil {
			return settled
		}

		result, err := r.verifier.Verify(ctx, d.DonationRef)
		if err != nil {
			r.logger.Error("reconciliation failed for donation",
				"donation_ref", d.DonationRef,
				"category", application.CategorizeError(err),
				"error", err,
			)
			r.schedulePoll(ctx, d)
			continue
		}

		if result.Donation.IsPending() {
			r.schedulePoll(ctx, d)
			continue
		}

		if result.Updated {
			settled++
			r.logger.Info("reconciled donation",
				"donation_ref", d.DonationRef,
				"status", result.Donation.PaymentStatus,
			)
		}
	}
	return settled
}

func (r *Reconciler) schedulePoll(ctx context.Context, d *domain.Donation) {
	delay := r.pollDelay(d.PollAttempts)
	if err := r.repo.SchedulePoll(ctx, d.DonationRef, r.now().Add(delay)); err != nil {
		r.logger.Error("failed to schedule next poll",
			"donation_ref", d.DonationRef,
			"error", err,
		)
		return
	}

	if r.maxAttempts > 0 && d.PollAttempts+1 >= r.maxAttempts {
		r.logger.Warn("donation still pending after final reconciliation attempt",
			"donation_ref", d.DonationRef,
			"order_id", d.OrderID,
			"attempts", d.PollAttempts+1,
		)
	}
}

// pollDelay doubles the sweep interval per earlier attempt.
func (r *Reconciler) pollDelay(attempts int) time.Duration {
	if attempts > 16 {
		return maxPollDelay
	}
	delay := r.interval * time.Duration(1<<attempts)
	if delay <= 0 || delay > maxPollDelay {
		return maxPollDelay
	}
	return delay
}
