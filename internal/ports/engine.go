package ports

import (
	"context"

	"catalog-connect-layer/internal/domain"
)

// CatalogEngine is the platform-polymorphic catalog access contract.
// One implementation exists per integration; instances are built by the
// engine factory for a specific client.
type CatalogEngine interface {
	// ListProducts fetches a page of products. A nil limit uses the
	// platform default page size.
	ListProducts(ctx context.Context, limit *int) ([]domain.Product, error)

	// GetProduct fetches a single product by its platform-scoped id.
	// An id the platform reports as absent yields domain.ErrProductNotFound.
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
}
