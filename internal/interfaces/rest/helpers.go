package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application/services"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
)

// InitiateRequest is the donor-supplied body of POST /api/v1/donations.
type InitiateRequest struct {
	Name    string `json:"name" example:"Asha Rao"`
	Email   string `json:"email" example:"asha@example.org"`
	Phone   string `json:"phone" example:"9876543210"`
	Amount  string `json:"amount" example:"500.00"`
	Message string `json:"message,omitempty" example:"Keep it up"`
}

// UnmarshalJSON accepts the amount as either a JSON string or a JSON number.
func (r *InitiateRequest) UnmarshalJSON(data []byte) error {
	type alias InitiateRequest
	aux := struct {
		*alias
		Amount json.RawMessage `json:"amount"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Amount = ""
	if len(aux.Amount) == 0 || string(aux.Amount) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.Amount, &s); err == nil {
		r.Amount = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(aux.Amount, &n); err != nil {
		return err
	}
	r.Amount = n.String()
	return nil
}

func (r InitiateRequest) ToCommand() services.InitiateCommand {
	return services.InitiateCommand{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Amount:  r.Amount,
		Message: r.Message,
	}
}

type InitiateResponse struct {
	Success     bool   `json:"success"`
	PaymentURL  string `json:"paymentUrl"`
	DonationRef string `json:"donationRef"`
	OrderID     string `json:"orderId"`
}

type StatusResponse struct {
	DonationRef    string    `json:"donationRef"`
	Status         string    `json:"status"`
	Amount         string    `json:"amount"`
	TransactionRef *string   `json:"transactionRef"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type VerifyResponse struct {
	StatusResponse
	Updated         bool            `json:"updated"`
	ProcessorStatus json.RawMessage `json:"processorStatus,omitempty" swaggertype:"object"`
}

type CallbackResponse struct {
	Success     bool   `json:"success"`
	DonationRef string `json:"donationRef"`
	Status      string `json:"status"`
	Amount      string `json:"amount"`
	Replayed    bool   `json:"replayed"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func ToStatusResponse(d *domain.Donation) StatusResponse {
	return StatusResponse{
		DonationRef:    d.DonationRef,
		Status:         string(d.PaymentStatus),
		Amount:         d.Amount.String(),
		TransactionRef: d.ProcessorTransactionRef,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
