package ports

import (
	"context"

	"catalog-connect-layer/internal/domain"
)

// ShopifyClient performs the authenticated HTTP calls to the Shopify Admin
// API. The engine owns the token lifecycle; the client is stateless.
type ShopifyClient interface {
	// ExchangeClientCredentials requests an access token via the
	// client_credentials grant.
	ExchangeClientCredentials(ctx context.Context, creds domain.ClientCredentials) (domain.AccessToken, error)

	ListProducts(ctx context.Context, creds domain.ClientCredentials, accessToken string, limit *int) ([]domain.Product, error)
	GetProduct(ctx context.Context, creds domain.ClientCredentials, accessToken string, productID int64) (*domain.Product, error)
}

// WooCommerceClient performs the authenticated HTTP calls to the WooCommerce
// REST API. WooCommerce authenticates every request with the consumer
// key/secret pair, so there is no token exchange.
type WooCommerceClient interface {
	ListProducts(ctx context.Context, creds domain.ClientCredentials, limit *int) ([]domain.Product, error)
	GetProduct(ctx context.Context, creds domain.ClientCredentials, productID int64) (*domain.Product, error)
}
