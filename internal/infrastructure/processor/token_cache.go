package processor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// TokenRequester is the slice of the processor API the cache needs.
type TokenRequester interface {
	RequestToken(ctx context.Context, creds application.Credentials) (*application.TokenResponse, error)
}

// TokenCache keeps one processor bearer token per process and refreshes it
// before it gets within SafetyMargin of expiry. Concurrent refreshes are
// collapsed into one request.
type TokenCache struct {
	client     TokenRequester
	creds      application.Credentials
	margin     time.Duration
	defaultTTL time.Duration
	now        func() time.Time
	logger     *slog.Logger

	mu    sync.RWMutex
	token *oauth2.Token
	group singleflight.Group
}

func NewTokenCache(client TokenRequester, creds application.Credentials, cfg config.TokenConfig, logger *slog.Logger) *TokenCache {
	return &TokenCache{
		client:     client,
		creds:      creds,
		margin:     cfg.SafetyMargin,
		defaultTTL: cfg.DefaultTTL,
		now:        time.Now,
		logger:     logger,
	}
}

func (c *TokenCache) Token(ctx context.Context) (string, error) {
	if tok := c.cached(); tok != "" {
		return tok, nil
	}

	v, err, _ := c.group.Do("token", func() (any, error) {
		if tok := c.cached(); tok != "" {
			return tok, nil
		}
		return c.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next call fetches a fresh one.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()
	c.logger.Info("processor token invalidated")
}

func (c *TokenCache) cached() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == nil || c.token.AccessToken == "" {
		return ""
	}
	if !c.token.Expiry.After(c.now().Add(c.margin)) {
		return ""
	}
	return c.token.AccessToken
}

func (c *TokenCache) refresh(ctx context.Context) (string, error) {
	resp, err := c.client.RequestToken(ctx, c.creds)
	if err != nil {
		c.logger.Error("failed to obtain processor token", "error", err)
		return "", err
	}

	expiry := resp.ExpiresAt
	if expiry.IsZero() {
		expiry = c.now().Add(c.defaultTTL)
	}

	c.mu.Lock()
	c.token = &oauth2.Token{
		AccessToken: resp.Token,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}
	c.mu.Unlock()

	c.logger.Info("processor token refreshed", "expires_at", expiry)
	return resp.Token, nil
}
