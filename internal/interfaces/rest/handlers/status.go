package handlers

import (
	"net/http"

	"github.com/DanielPopoola/donation-gateway/internal/interfaces/rest"
	"github.com/go-chi/chi/v5"
)

// GetDonationStatus godoc
//
//	@Summary	Donation status
//	@Tags		donations
//	@Produce	json
//	@Param		ref	path		string	true	"Donation reference"
//	@Success	200	{object}	rest.StatusResponse
//	@Failure	404	{object}	rest.ErrorResponse
//	@Failure	429	{object}	rest.ErrorResponse
//	@Router		/api/v1/donations/{ref} [get]
func (h *Handlers) GetDonationStatus(w http.ResponseWriter, r *http.Request) {
	d, err := h.status.GetStatus(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToStatusResponse(d))
}

// VerifyDonation godoc
//
//	@Summary		Reconcile a donation with the processor
//	@Description	Queries the processor and settles the donation if it is still PENDING.
//	@Tags			donations
//	@Produce		json
//	@Param			ref			path		string	true	"Donation reference"
//	@Param			X-Admin-Key	header		string	false	"Admin key, required when configured"
//	@Success		200			{object}	rest.VerifyResponse
//	@Failure		401			{object}	rest.ErrorResponse
//	@Failure		404			{object}	rest.ErrorResponse
//	@Failure		409			{object}	rest.ErrorResponse
//	@Failure		502			{object}	rest.ErrorResponse
//	@Router			/api/v1/donations/{ref}/verify [post]
func (h *Handlers) VerifyDonation(w http.ResponseWriter, r *http.Request) {
	result, err := h.verifier.Verify(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.VerifyResponse{
		StatusResponse:  rest.ToStatusResponse(result.Donation),
		Updated:         result.Updated,
		ProcessorStatus: result.ProcessorStatus,
	})
}

// Health godoc
//
//	@Summary	Liveness and database reachability
//	@Tags		ops
//	@Produce	json
//	@Success	200	{object}	rest.HealthResponse
//	@Failure	503	{object}	rest.HealthResponse
//	@Router		/healthz [get]
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		rest.WriteJSON(w, http.StatusOK, rest.HealthResponse{Status: "ok", Database: "unknown"})
		return
	}
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", "error", err)
		rest.WriteJSON(w, http.StatusServiceUnavailable, rest.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.HealthResponse{Status: "ok", Database: "ok"})
}
