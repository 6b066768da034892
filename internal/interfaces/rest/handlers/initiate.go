package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/interfaces/rest"
)

// InitiateDonation godoc
//
//	@Summary		Start a donation
//	@Description	Records a PENDING donation and returns the processor's hosted payment page.
//	@Tags			donations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rest.InitiateRequest	true	"Donor details"
//	@Success		201		{object}	rest.InitiateResponse
//	@Failure		400		{object}	rest.ValidationErrorResponse
//	@Failure		409		{object}	rest.ErrorResponse
//	@Failure		429		{object}	rest.ErrorResponse
//	@Failure		502		{object}	rest.ErrorResponse
//	@Router			/api/v1/donations [post]
func (h *Handlers) InitiateDonation(w http.ResponseWriter, r *http.Request) {
	var req rest.InitiateRequest
	body := http.MaxBytesReader(w, r.Body, h.opts.MaxInitiateBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewValidationError([]string{"request body must be a JSON object"}), h.logger)
		return
	}

	result, err := h.initiator.Initiate(r.Context(), req.ToCommand())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.InitiateResponse{
		Success:     true,
		PaymentURL:  result.PaymentURL,
		DonationRef: result.DonationRef,
		OrderID:     result.OrderID,
	})
}
