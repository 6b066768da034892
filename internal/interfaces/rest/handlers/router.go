package handlers

import (
	"net/http"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/api"
	"github.com/DanielPopoola/donation-gateway/internal/interfaces/rest/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig holds the per-route limits applied by NewRouter.
type RouterConfig struct {
	RequestTimeout   time.Duration
	InitiateRequests int
	StatusRequests   int
	RateWindow       time.Duration
	AdminKey         string

	// TrustProxyHeaders takes the client IP from X-Forwarded-For/X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(
		middleware.Logging(h.logger),
		middleware.Recovery(h.logger),
		middleware.Timeout(cfg.RequestTimeout),
	)

	r.Get("/healthz", h.Health)
	api.RegisterDocsRoutes(r)

	r.Route("/api/v1/donations", func(r chi.Router) {
		r.With(middleware.RateLimitByIP(cfg.InitiateRequests, cfg.RateWindow)).
			Post("/", h.InitiateDonation)

		r.Post("/callback", h.DonationCallback)

		r.With(middleware.RateLimitByIP(cfg.StatusRequests, cfg.RateWindow)).
			Get("/{ref}", h.GetDonationStatus)

		r.With(
			middleware.RateLimitByIP(cfg.StatusRequests, cfg.RateWindow),
			middleware.RequireAdminKey(cfg.AdminKey),
		).Post("/{ref}/verify", h.VerifyDonation)
	})

	return r
}
