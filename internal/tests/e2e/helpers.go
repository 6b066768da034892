package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeProcessor plays the payment processor: it issues tokens, creates
// hosted-page links and answers status queries from a table the test controls.
type fakeProcessor struct {
	mu         sync.Mutex
	statuses   map[string]string
	failLinks  bool
	tokenCalls int
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{statuses: make(map[string]string)}
}

func (p *fakeProcessor) setStatus(token, code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses[token] = code
}

func (p *fakeProcessor) setFailLinks(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failLinks = fail
}

func (p *fakeProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/v1/auth/token":
		p.tokenCalls++
		_, _ = io.WriteString(w, `{"success":true,"data":{"token":"bearer-e2e","expires_in":86400}}`)

	case "/api/v1/payments/links":
		if r.Header.Get("Authorization") != "Bearer bearer-e2e" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"success":false,"message":"unauthorized"}`)
			return
		}
		if p.failLinks {
			_, _ = io.WriteString(w, `{"success":false,"message":"merchant disabled"}`)
			return
		}
		var req struct {
			OrderID string `json:"order_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		token := "tok-" + req.OrderID
		p.statuses[token] = "2"
		resp := map[string]any{
			"success": true,
			"data": map[string]string{
				"payment_url":    "https://pay.example/checkout?token=" + token,
				"transaction_id": "INT-" + req.OrderID,
			},
		}
		_ = json.NewEncoder(w).Encode(resp)

	case "/api/v1/payments/status":
		token := r.URL.Query().Get("token")
		code, ok := p.statuses[token]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"unknown token"}`)
			return
		}
		resp := map[string]any{
			"success": true,
			"data": map[string]any{
				"status_code":    json.Number(code),
				"bank_ref":       "BANK-" + token,
				"transaction_id": "INT-" + token,
			},
		}
		_ = json.NewEncoder(w).Encode(resp)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// TestClient wraps HTTP calls to the gateway
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type apiResponse struct {
	StatusCode int
	Header     http.Header
	Body       map[string]any
}

func (c *TestClient) do(t *testing.T, method, path, contentType string, body []byte, header map[string]string) apiResponse {
	t.Helper()

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := apiResponse{StatusCode: resp.StatusCode, Header: resp.Header}
	if len(bytes.TrimSpace(raw)) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}

// Initiate calls POST /api/v1/donations
func (c *TestClient) Initiate(t *testing.T, amount string) apiResponse {
	body, _ := json.Marshal(map[string]string{
		"name":   "Asha Rao",
		"email":  "asha@example.org",
		"phone":  "98765 43210",
		"amount": amount,
	})
	return c.do(t, http.MethodPost, "/api/v1/donations", "application/json", body, nil)
}

// Callback posts a form-encoded processor callback
func (c *TestClient) Callback(t *testing.T, fields url.Values) apiResponse {
	return c.do(t, http.MethodPost, "/api/v1/donations/callback", "application/x-www-form-urlencoded", []byte(fields.Encode()), nil)
}

// Status calls GET /api/v1/donations/{ref}
func (c *TestClient) Status(t *testing.T, ref string) apiResponse {
	return c.do(t, http.MethodGet, "/api/v1/donations/"+url.PathEscape(ref), "", nil, nil)
}

// Verify calls POST /api/v1/donations/{ref}/verify
func (c *TestClient) Verify(t *testing.T, ref, adminKey string) apiResponse {
	return c.do(t, http.MethodPost, "/api/v1/donations/"+url.PathEscape(ref)+"/verify", "", nil,
		map[string]string{"X-Admin-Key": adminKey})
}
