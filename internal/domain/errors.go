package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so wrapped copies still satisfy errors.Is against the sentinels.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Domain validation errors
const (
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeDonationNotFound   = "DONATION_NOT_FOUND"
	ErrCodeDuplicateReference = "DUPLICATE_REFERENCE"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeAmountMismatch     = "AMOUNT_MISMATCH"
)

var (
	ErrInvalidTransition  = &DomainError{Code: ErrCodeInvalidTransition, Message: "invalid status transition"}
	ErrDonationNotFound   = &DomainError{Code: ErrCodeDonationNotFound, Message: "donation not found"}
	ErrDuplicateReference = &DomainError{Code: ErrCodeDuplicateReference, Message: "donation reference already exists"}
	ErrInvalidAmount      = &DomainError{Code: ErrCodeInvalidAmount, Message: "amount must be a positive number"}
	ErrAmountPrecision    = &DomainError{Code: ErrCodeInvalidAmount, Message: "amount must have at most 2 decimal places"}
	ErrAmountTooLarge     = &DomainError{Code: ErrCodeInvalidAmount, Message: "amount must be less than 10000000000"}
	ErrAmountMismatch     = &DomainError{Code: ErrCodeAmountMismatch, Message: "callback amount does not match donation amount"}
)

func NewInvalidTransitionError(from, to PaymentStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewDonationNotFoundError(ref string) *DomainError {
	return &DomainError{
		Code:    ErrCodeDonationNotFound,
		Message: fmt.Sprintf("donation %s not found", ref),
	}
}

func NewDuplicateReferenceError(ref string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeDuplicateReference,
		Message: fmt.Sprintf("donation reference %s already exists", ref),
		Err:     err,
	}
}

func NewAmountMismatchError(expected Amount, declared string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAmountMismatch,
		Message: fmt.Sprintf("amount mismatch: expected %s, got %q", expected, declared),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
