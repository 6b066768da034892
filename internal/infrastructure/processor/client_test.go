package processor_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/config"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *processor.HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return processor.NewHTTPClient(config.ProcessorConfig{
		BaseURL:    srv.URL,
		MerchantID: "M-1",
		Timeout:    2 * time.Second,
	}, "https://donate.example/api/v1/donations/callback", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHTTPClient_RequestToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/token", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body processor.TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "merchant", body.Username)
		assert.Equal(t, "M-1", body.MerchantID)

		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"tok-abc","expires_at":"2030-01-02T15:04:05Z"}}`))
	})

	resp, err := client.RequestToken(context.Background(), application.Credentials{
		Username:   "merchant",
		Password:   "pw",
		MerchantID: "M-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-abc", resp.Token)
	assert.Equal(t, time.Date(2030, 1, 2, 15, 4, 5, 0, time.UTC), resp.ExpiresAt.UTC())
}

func TestHTTPClient_RequestToken_SuccessFalse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"bad credentials"}`))
	})

	_, err := client.RequestToken(context.Background(), application.Credentials{})

	procErr, ok := application.IsProcessorError(err)
	require.True(t, ok)
	assert.Equal(t, "bad credentials", procErr.Message)
	assert.False(t, procErr.IsRetryable())
}

func TestHTTPClient_CreatePaymentLink(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/payments/links", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ORD-1", body["order_id"])
		assert.Equal(t, "M-1", body["merchant_id"])
		assert.Equal(t, 100.0, body["amount"])
		assert.Equal(t, "https://donate.example/api/v1/donations/callback", body["callback_url"])
		assert.NotEmpty(t, body["request_id"])

		_, _ = w.Write([]byte(`{"success":true,"data":{"payment_url":"https://pay.example/checkout?token=tx-9","transaction_id":"INT-5"}}`))
	})

	resp, err := client.CreatePaymentLink(context.Background(), application.PaymentLinkRequest{
		OrderID:       "ORD-1",
		Amount:        domain.MustAmount("100"),
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.org",
		CustomerPhone: "9876543210",
	}, "tok-abc")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/checkout?token=tx-9", resp.PaymentURL)
	assert.Equal(t, "INT-5", resp.ProcessorInternalID)
	assert.Equal(t, "tx-9", resp.TransactionToken)
	assert.JSONEq(t, `{"success":true,"data":{"payment_url":"https://pay.example/checkout?token=tx-9","transaction_id":"INT-5"}}`, string(resp.Raw))
}

func TestHTTPClient_CreatePaymentLink_URLWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"payment_url":"https://pay.example/checkout","transaction_id":"INT-5"}}`))
	})

	resp, err := client.CreatePaymentLink(context.Background(), application.PaymentLinkRequest{
		OrderID: "ORD-1",
		Amount:  domain.MustAmount("1"),
	}, "tok")

	require.NoError(t, err)
	assert.Empty(t, resp.TransactionToken)
}

func TestHTTPClient_CreatePaymentLink_EmptyURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	})

	_, err := client.CreatePaymentLink(context.Background(), application.PaymentLinkRequest{Amount: domain.MustAmount("1")}, "tok")

	_, ok := application.IsProcessorError(err)
	assert.True(t, ok)
}

func TestHTTPClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"token expired"}`))
	})

	_, err := client.CreatePaymentLink(context.Background(), application.PaymentLinkRequest{Amount: domain.MustAmount("1")}, "stale")

	procErr, ok := application.IsProcessorError(err)
	require.True(t, ok)
	assert.True(t, procErr.IsUnauthorized())
	assert.Equal(t, "token expired", procErr.Message)
}

func TestHTTPClient_ServerErrorIsRetryable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>upstream down</html>`))
	})

	_, err := client.QueryTransactionStatus(context.Background(), "tx-9")

	procErr, ok := application.IsProcessorError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, procErr.StatusCode)
	assert.True(t, procErr.IsRetryable())
}

func TestHTTPClient_QueryTransactionStatus(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected domain.PaymentStatus
		ref      string
	}{
		{"pending", `{"success":true,"data":{"status_code":2}}`, domain.StatusPending, ""},
		{"success", `{"success":true,"data":{"status_code":1,"bank_ref":"BANK-1"}}`, domain.StatusSuccess, "BANK-1"},
		{"success as string", `{"success":true,"data":{"status_code":"1","transaction_id":"INT-5"}}`, domain.StatusSuccess, "INT-5"},
		{"anything else fails", `{"success":true,"data":{"status_code":0}}`, domain.StatusFailed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/payments/status", r.URL.Path)
				assert.Equal(t, "tx 9", r.URL.Query().Get("token"))
				_, _ = w.Write([]byte(tt.body))
			})

			resp, err := client.QueryTransactionStatus(context.Background(), "tx 9")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.Status)
			assert.Equal(t, tt.ref, resp.ProcessorTransactionRef)
			assert.JSONEq(t, tt.body, string(resp.Raw))
		})
	}
}

func TestTransactionTokenFromURL(t *testing.T) {
	tok, err := processor.TransactionTokenFromURL("https://pay.example/checkout?ref=1&token=abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = processor.TransactionTokenFromURL("https://pay.example/checkout")
	assert.Error(t, err)
}
