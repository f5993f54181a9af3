package shopify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog-connect-layer/internal/domain"
	"catalog-connect-layer/internal/ports"

	"github.com/rs/zerolog"
)

// Engine is the Shopify catalog adapter. It lazily fetches an access token
// via the client_credentials grant and caches it for the instance's
// lifetime, refreshing once the expiry hint lapses. The cache is
// mutex-guarded: adapter instances are shared across goroutines.
type Engine struct {
	clientID string
	creds    domain.ClientCredentials
	client   ports.ShopifyClient
	logger   zerolog.Logger

	mu    sync.Mutex
	token domain.AccessToken
	now   func() time.Time
}

// NewEngine creates a Shopify engine for one client's credential record.
func NewEngine(clientID string, creds domain.ClientCredentials, client ports.ShopifyClient, logger zerolog.Logger) (*Engine, error) {
	if !creds.Complete() {
		return nil, fmt.Errorf("%w: shopify client %q", domain.ErrMissingCredentials, clientID)
	}
	return &Engine{
		clientID: clientID,
		creds:    creds,
		client:   client,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// accessToken returns the cached token, fetching a fresh one when the cache
// is empty or expired. The lock spans validity check and refresh so
// concurrent callers cannot race two grants for the same engine.
func (e *Engine) accessToken(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.token.Valid(e.now()) {
		return e.token.Token, nil
	}

	token, err := e.client.ExchangeClientCredentials(ctx, e.creds)
	if err != nil {
		return "", err
	}
	e.token = token

	e.logger.Debug().
		Str("clientId", e.clientID).
		Time("expiresAt", token.ExpiresAt).
		Msg("Fetched Shopify access token")
	return token.Token, nil
}

// ListProducts fetches a page of products from the store's catalog.
func (e *Engine) ListProducts(ctx context.Context, limit *int) ([]domain.Product, error) {
	token, err := e.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	return e.client.ListProducts(ctx, e.creds, token, limit)
}

// GetProduct fetches a single product by id.
func (e *Engine) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	token, err := e.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	return e.client.GetProduct(ctx, e.creds, token, productID)
}
