package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/config"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const maxResponseBytes = 1 << 20

type HTTPClient struct {
	baseURL     string
	merchantID  string
	callbackURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

func NewHTTPClient(cfg config.ProcessorConfig, callbackURL string, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		merchantID:  cfg.MerchantID,
		callbackURL: callbackURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (c *HTTPClient) RequestToken(ctx context.Context, creds application.Credentials) (*application.TokenResponse, error) {
	endpoint := fmt.Sprintf("%s/api/v1/auth/token", c.baseURL)
	req := TokenRequest{
		Username:   creds.Username,
		Password:   creds.Password,
		MerchantID: creds.MerchantID,
	}

	data, raw, err := sendRequest[TokenRequest, TokenData](c, ctx, "request token", http.MethodPost, endpoint, &req, "")
	if err != nil {
		return nil, err
	}
	if data.Token == "" {
		return nil, &application.ProcessorError{Operation: "request token", Message: "empty token in response"}
	}

	return &application.TokenResponse{
		Token:     data.Token,
		ExpiresAt: parseExpiry(data, time.Now()),
		Raw:       raw,
	}, nil
}

func (c *HTTPClient) CreatePaymentLink(ctx context.Context, req application.PaymentLinkRequest, token string) (*application.PaymentLinkResponse, error) {
	endpoint := fmt.Sprintf("%s/api/v1/payments/links", c.baseURL)
	body := PaymentLinkRequest{
		MerchantID:    c.merchantID,
		OrderID:       req.OrderID,
		Amount:        json.Number(req.Amount.String()),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		RequestID:     uuid.NewString(),
		CallbackURL:   c.callbackURL,
		Description:   req.Description,
	}

	data, raw, err := sendRequest[PaymentLinkRequest, PaymentLinkData](c, ctx, "create payment link", http.MethodPost, endpoint, &body, token)
	if err != nil {
		return nil, err
	}
	if data.PaymentURL == "" {
		return nil, &application.ProcessorError{Operation: "create payment link", Message: "empty payment_url in response"}
	}

	transactionToken, err := TransactionTokenFromURL(data.PaymentURL)
	if err != nil {
		c.logger.Warn("could not read transaction token from payment url",
			"order_id", req.OrderID,
			"error", err,
		)
	}

	return &application.PaymentLinkResponse{
		PaymentURL:          data.PaymentURL,
		ProcessorInternalID: data.TransactionID,
		TransactionToken:    transactionToken,
		Raw:                 raw,
	}, nil
}

func (c *HTTPClient) QueryTransactionStatus(ctx context.Context, transactionToken string) (*application.TransactionStatusResponse, error) {
	endpoint := fmt.Sprintf("%s/api/v1/payments/status?token=%s", c.baseURL, url.QueryEscape(transactionToken))

	data, raw, err := sendRequest[any, TransactionStatusData](c, ctx, "query status", http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}

	ref := data.BankRef
	if ref == "" {
		ref = data.TransactionID
	}

	return &application.TransactionStatusResponse{
		Status:                  MapStatusCode(data.StatusCode.String()),
		ProcessorTransactionRef: ref,
		Raw:                     raw,
	}, nil
}

// MapStatusCode translates the processor's numeric status.
func MapStatusCode(code string) domain.PaymentStatus {
	switch strings.TrimSpace(code) {
	case statusCodePending:
		return domain.StatusPending
	case statusCodeSuccess:
		return domain.StatusSuccess
	default:
		return domain.StatusFailed
	}
}

// TransactionTokenFromURL reads the polling token from the hosted page URL.
func TransactionTokenFromURL(paymentURL string) (string, error) {
	u, err := url.Parse(paymentURL)
	if err != nil {
		return "", err
	}
	token := u.Query().Get("token")
	if token == "" {
		return "", fmt.Errorf("no token parameter in %q", u.Redacted())
	}
	return token, nil
}

func parseExpiry(data *TokenData, now time.Time) time.Time {
	if data.ExpiresAt != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, data.ExpiresAt); err == nil {
				return t
			}
		}
		if secs, err := strconv.ParseInt(data.ExpiresAt, 10, 64); err == nil {
			return time.Unix(secs, 0)
		}
	}
	if data.ExpiresIn > 0 {
		return now.Add(time.Duration(data.ExpiresIn) * time.Second)
	}
	return time.Time{}
}

func sendRequest[Req any, Resp any](c *HTTPClient, ctx context.Context, operation, method, endpoint string, reqBody *Req, token string) (*Resp, json.RawMessage, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(httpReq)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, &application.ProcessorError{Operation: operation, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, &application.ProcessorError{Operation: operation, Message: "reading response failed", StatusCode: resp.StatusCode, Err: err}
	}

	var env envelope[Resp]
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, nil, &application.ProcessorError{Operation: operation, Message: msg, StatusCode: resp.StatusCode}
	}

	if decodeErr != nil {
		return nil, nil, &application.ProcessorError{Operation: operation, Message: "invalid response body", StatusCode: resp.StatusCode, Err: decodeErr}
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "processor reported failure"
		}
		return nil, nil, &application.ProcessorError{Operation: operation, Message: msg, StatusCode: resp.StatusCode}
	}

	return &env.Data, json.RawMessage(body), nil
}
