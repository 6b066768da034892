package handlers

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/donation-gateway/internal/application/services"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

type Initiator interface {
	Initiate(ctx context.Context, cmd services.InitiateCommand) (*services.InitiateResult, error)
}

type CallbackProcessor interface {
	HandleCallback(ctx context.Context, payload services.CallbackPayload) (*services.CallbackResult, error)
}

type Verifier interface {
	Verify(ctx context.Context, donationRef string) (*services.VerifyResult, error)
}

type StatusReader interface {
	GetStatus(ctx context.Context, donationRef string) (*domain.Donation, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers serves the donation REST API.
type Handlers struct {
	initiator Initiator
	callbacks CallbackProcessor
	verifier  Verifier
	status    StatusReader
	db        Pinger
	opts      Options
	logger    *slog.Logger
}

// Options carries the request-shaping settings handlers need.
type Options struct {
	// ResultURL receives the donor after a callback. Empty answers with JSON.
	ResultURL           string
	MaxCallbackBytes    int64
	MaxInitiateBodySize int64
}

func NewHandlers(
	initiator Initiator,
	callbacks CallbackProcessor,
	verifier Verifier,
	status StatusReader,
	db Pinger,
	opts Options,
	logger *slog.Logger,
) *Handlers {
	if opts.MaxCallbackBytes <= 0 {
		opts.MaxCallbackBytes = 64 << 10
	}
	if opts.MaxInitiateBodySize <= 0 {
		opts.MaxInitiateBodySize = 16 << 10
	}
	return &Handlers{
		initiator: initiator,
		callbacks: callbacks,
		verifier:  verifier,
		status:    status,
		db:        db,
		opts:      opts,
		logger:    logger,
	}
}
