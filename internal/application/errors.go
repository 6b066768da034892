package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	// Details lists individual violations for validation errors.
	Details []string
	// DonationRef is set when the caller can quote it to support.
	DonationRef string
}

func (e *ServiceError) Error() string {
	msg := e.Message
	if len(e.Details) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Details, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeProcessorUnavailable = "PROCESSOR_UNAVAILABLE"
	ErrCodeDuplicateReference   = "DUPLICATE_REFERENCE"
	ErrCodeUnverifiable         = "UNVERIFIABLE"
	ErrCodeInvalidCallback      = "INVALID_CALLBACK"
	ErrCodeInternal             = "INTERNAL_ERROR"
)

func NewValidationError(details []string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeValidation,
		Message:    "Invalid donation request",
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

func NewNotFoundError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    "Donation not found",
		HTTPStatus: http.StatusNotFound,
		Err:        err,
	}
}

// NewProcessorUnavailableError keeps the processor's reason in Err for logs;
// Message is what callers see.
func NewProcessorUnavailableError(donationRef string, err error) *ServiceError {
	return &ServiceError{
		Code:        ErrCodeProcessorUnavailable,
		Message:     "Payment processor is unavailable, please try again later",
		HTTPStatus:  http.StatusBadGateway,
		Err:         err,
		DonationRef: donationRef,
	}
}

func NewDuplicateReferenceError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeDuplicateReference,
		Message:    "Donation reference collision, please retry",
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

func NewUnverifiableError(donationRef string) *ServiceError {
	return &ServiceError{
		Code:        ErrCodeUnverifiable,
		Message:     "Donation has no processor polling token and cannot be verified",
		HTTPStatus:  http.StatusConflict,
		DonationRef: donationRef,
	}
}

func NewInvalidCallbackError(reason string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidCallback,
		Message:    "Invalid callback: " + reason,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// ProcessorError is a failure reported by, or while talking to, the payment processor.
type ProcessorError struct {
	Operation  string
	Message    string
	StatusCode int
	Err        error
}

func (e *ProcessorError) Error() string {
	msg := fmt.Sprintf("processor %s failed: %s", e.Operation, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status: %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}

// IsRetryable reports transport failures and 5xx answers.
func (e *ProcessorError) IsRetryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// IsUnauthorized reports the processor rejecting our bearer token.
func (e *ProcessorError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func IsProcessorError(err error) (*ProcessorError, bool) {
	var procErr *ProcessorError
	ok := errors.As(err, &procErr)
	return procErr, ok
}
