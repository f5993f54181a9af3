package woocommerce

import (
	"context"
	"fmt"

	"catalog-connect-layer/internal/domain"
	"catalog-connect-layer/internal/ports"

	"github.com/rs/zerolog"
)

// Engine is the WooCommerce catalog adapter. Key/secret auth means there is
// no cached token to manage; the engine is a thin credential-bound wrapper
// around the client.
type Engine struct {
	clientID string
	creds    domain.ClientCredentials
	client   ports.WooCommerceClient
	logger   zerolog.Logger
}

// NewEngine creates a WooCommerce engine for one client's credential record.
func NewEngine(clientID string, creds domain.ClientCredentials, client ports.WooCommerceClient, logger zerolog.Logger) (*Engine, error) {
	if !creds.Complete() {
		return nil, fmt.Errorf("%w: woocommerce client %q", domain.ErrMissingCredentials, clientID)
	}
	return &Engine{
		clientID: clientID,
		creds:    creds,
		client:   client,
		logger:   logger,
	}, nil
}

// ListProducts fetches a page of products from the store's catalog.
func (e *Engine) ListProducts(ctx context.Context, limit *int) ([]domain.Product, error) {
	return e.client.ListProducts(ctx, e.creds, limit)
}

// GetProduct fetches a single product by id.
func (e *Engine) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	return e.client.GetProduct(ctx, e.creds, productID)
}
