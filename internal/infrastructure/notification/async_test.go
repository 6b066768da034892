package notification_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application/mocks"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDonation(t *testing.T) *domain.Donation {
	t.Helper()
	d, err := domain.NewDonation("DON1", "ORD1", domain.MustAmount("10"), domain.Donor{Name: "Asha", Email: "asha@example.org"})
	require.NoError(t, err)
	return d
}

func TestAsync_DetachesFromCallerContext(t *testing.T) {
	inner := mocks.NewMockNotifier(t)
	sent := make(chan error, 1)
	inner.EXPECT().
		NotifyDonationSucceeded(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ *domain.Donation) error {
			sent <- ctx.Err()
			return nil
		}).
		Once()

	a := notification.NewAsync(inner, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, a.NotifyDonationSucceeded(ctx, newDonation(t)))
	cancel()

	require.NoError(t, a.Wait(context.Background()))
	assert.NoError(t, <-sent)
}

func TestAsync_SwallowsErrors(t *testing.T) {
	inner := mocks.NewMockNotifier(t)
	inner.EXPECT().
		NotifyDonationSucceeded(mock.Anything, mock.Anything).
		Return(errors.New("smtp down")).
		Once()

	a := notification.NewAsync(inner, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, a.NotifyDonationSucceeded(context.Background(), newDonation(t)))
	require.NoError(t, a.Wait(context.Background()))
}

func TestAsync_WaitHonoursContext(t *testing.T) {
	inner := mocks.NewMockNotifier(t)
	release := make(chan struct{})
	inner.EXPECT().
		NotifyDonationSucceeded(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, *domain.Donation) error {
			<-release
			return nil
		}).
		Once()

	a := notification.NewAsync(inner, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, a.NotifyDonationSucceeded(context.Background(), newDonation(t)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Wait(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, a.Wait(context.Background()))
}
