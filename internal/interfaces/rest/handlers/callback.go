package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/application/services"
	"github.com/DanielPopoola/donation-gateway/internal/interfaces/rest"
)

// DonationCallback godoc
//
//	@Summary		Processor callback
//	@Description	Receives the payment outcome from the processor, form-encoded or JSON. Redirects the donor to the result page when one is configured.
//	@Tags			donations
//	@Accept			x-www-form-urlencoded
//	@Accept			json
//	@Produce		json
//	@Param			order_id	formData	string	true	"Order id sent at initiation"
//	@Param			status		formData	string	false	"Processor status text or code"
//	@Param			amount		formData	string	false	"Amount the processor charged"
//	@Param			bank_ref	formData	string	false	"Processor transaction reference"
//	@Success		200			{object}	rest.CallbackResponse
//	@Success		303			"Redirect to the result page"
//	@Failure		400			{object}	rest.ErrorResponse
//	@Failure		404			{object}	rest.ErrorResponse
//	@Failure		413			{object}	rest.ErrorResponse
//	@Router			/api/v1/donations/callback [post]
func (h *Handlers) DonationCallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxCallbackBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			svcErr := application.NewInvalidCallbackError("callback body too large")
			svcErr.HTTPStatus = http.StatusRequestEntityTooLarge
			rest.WriteError(w, svcErr, h.logger)
			return
		}
		rest.WriteError(w, application.NewInvalidCallbackError("unreadable callback body"), h.logger)
		return
	}

	contentType := r.Header.Get("Content-Type")
	fields, err := parseCallbackFields(contentType, body)
	if err != nil {
		rest.WriteError(w, application.NewInvalidCallbackError("malformed callback body"), h.logger)
		return
	}

	payload := payloadFromFields(fields)
	payload.Body = body
	payload.ContentType = contentType

	result, err := h.callbacks.HandleCallback(r.Context(), payload)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	d := result.Donation
	if h.opts.ResultURL != "" {
		if target, err := resultRedirect(h.opts.ResultURL, string(d.PaymentStatus), d.DonationRef, d.Amount.String()); err == nil {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		h.logger.Error("invalid callback result url", "url", h.opts.ResultURL)
	}

	rest.WriteJSON(w, http.StatusOK, rest.CallbackResponse{
		Success:     true,
		DonationRef: d.DonationRef,
		Status:      string(d.PaymentStatus),
		Amount:      d.Amount.String(),
		Replayed:    result.Replayed,
	})
}

// parseCallbackFields flattens a form or JSON body into string fields.
// JSON is assumed when the content type says so or the body looks like an object.
func parseCallbackFields(contentType string, body []byte) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	trimmed := bytes.TrimSpace(body)

	if mediaType == "application/json" || (mediaType == "" && len(trimmed) > 0 && trimmed[0] == '{') {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		fields := make(map[string]string, len(raw))
		for k, v := range raw {
			switch val := v.(type) {
			case string:
				fields[k] = val
			case json.Number:
				fields[k] = val.String()
			case bool:
				fields[k] = strconv.FormatBool(val)
			}
		}
		return fields, nil
	}

	values, err := url.ParseQuery(string(trimmed))
	if err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}
	return fields, nil
}

func payloadFromFields(f map[string]string) services.CallbackPayload {
	raw, _ := json.Marshal(f)

	status := f["status"]
	code := f["status_code"]
	if code == "" {
		if _, err := strconv.Atoi(status); err == nil {
			code = status
		}
	}

	return services.CallbackPayload{
		OrderID:             f["order_id"],
		Status:              status,
		StatusCode:          code,
		Amount:              f["amount"],
		TransactionRef:      firstNonEmpty(f["bank_ref"], f["transaction_ref"]),
		ProcessorInternalID: f["transaction_id"],
		CardType:            f["card_type"],
		CardMask:            f["card_mask"],
		Notes:               f["notes"],
		Raw:                 raw,
	}
}

func resultRedirect(base, status, ref, amount string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("status", status)
	q.Set("ref", ref)
	q.Set("amount", amount)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
