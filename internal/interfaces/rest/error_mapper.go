package rest

import (
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/donation-gateway/internal/application"
)

type ErrorResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	Code        string `json:"code"`
	DonationRef string `json:"donationRef,omitempty"`
}

type ValidationErrorResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// WriteError maps application errors to HTTP responses. Only the public
// message reaches the caller; the full error chain is logged.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := application.ToHTTPStatus(err)
	errorCode := application.ToErrorCode(err)

	svcErr, isSvc := application.IsServiceError(err)
	if isSvc && svcErr.Code == application.ErrCodeValidation {
		WriteJSON(w, statusCode, ValidationErrorResponse{
			Success: false,
			Errors:  svcErr.Details,
		})
		return
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed",
			"code", errorCode,
			"category", application.CategorizeError(err),
			"error", err,
		)
	}

	response := ErrorResponse{
		Success: false,
		Error:   application.PublicMessage(err),
		Code:    errorCode,
	}
	if isSvc {
		response.DonationRef = svcErr.DonationRef
	}

	WriteJSON(w, statusCode, response)
}
