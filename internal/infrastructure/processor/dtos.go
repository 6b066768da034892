package processor

import "encoding/json"

// envelope is the processor's response wrapper for every endpoint.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type TokenRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	MerchantID string `json:"merchant_id"`
}

type TokenData struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
}

type PaymentLinkRequest struct {
	MerchantID    string      `json:"merchant_id"`
	OrderID       string      `json:"order_id"`
	Amount        json.Number `json:"amount"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	RequestID     string      `json:"request_id"`
	CallbackURL   string      `json:"callback_url"`
	Description   string      `json:"description,omitempty"`
}

type PaymentLinkData struct {
	PaymentURL    string `json:"payment_url"`
	TransactionID string `json:"transaction_id"`
}

type TransactionStatusData struct {
	StatusCode    json.Number `json:"status_code"`
	BankRef       string      `json:"bank_ref"`
	TransactionID string      `json:"transaction_id"`
	Amount        json.Number `json:"amount,omitempty"`
}

// Processor status codes.
const (
	statusCodeSuccess = "1"
	statusCodePending = "2"
)
