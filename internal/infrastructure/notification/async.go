package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

// Async hands notifications to a background goroutine so the caller never
// waits on the mail server. Errors are logged and dropped.
type Async struct {
	next    application.Notifier
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewAsync(next application.Notifier, timeout time.Duration, logger *slog.Logger) *Async {
	return &Async{next: next, timeout: timeout, logger: logger}
}

func (a *Async) NotifyDonationSucceeded(ctx context.Context, donation *domain.Donation) error {
	detached := context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		sendCtx := detached
		if a.timeout > 0 {
			var cancel context.CancelFunc
			sendCtx, cancel = context.WithTimeout(detached, a.timeout)
			defer cancel()
		}

		if err := a.next.NotifyDonationSucceeded(sendCtx, donation); err != nil {
			a.logger.Error("donation notification failed",
				"donation_ref", donation.DonationRef,
				"error", err,
			)
		}
	}()
	return nil
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (a *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
