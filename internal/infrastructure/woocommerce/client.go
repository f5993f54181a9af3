// Package woocommerce implements the catalog adapter for WooCommerce
// stores. The REST API (wc/v3) authenticates every call with the consumer
// key/secret pair, so unlike Shopify there is no token lifecycle.
package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-connect-layer/internal/domain"
	"catalog-connect-layer/internal/ports"

	"github.com/rs/zerolog"
)

type client struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a WooCommerce API client with an explicit timeout on
// every upstream call. Calls are never retried here.
func NewClient(timeout time.Duration, logger zerolog.Logger) ports.WooCommerceClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func baseURL(creds domain.ClientCredentials) string {
	store := strings.TrimRight(creds.StoreURL, "/")
	if !strings.HasPrefix(store, "http://") && !strings.HasPrefix(store, "https://") {
		store = "https://" + store
	}
	return fmt.Sprintf("%s/wp-json/%s", store, creds.APIVersion)
}

// doRequest performs an authenticated GET and maps the platform's failure
// statuses onto the domain error taxonomy.
func (c *client) doRequest(ctx context.Context, creds domain.ClientCredentials, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("consumer_key", creds.APIKey)
	query.Set("consumer_secret", creds.APISecret)

	fullURL := baseURL(creds) + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstreamRequest, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, strings.TrimSpace(string(body)))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", domain.ErrAuthenticationFailed, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamRequest, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// wooProduct is the subset of the wc/v3 product representation we map.
type wooProduct struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	SKU           string `json:"sku"`
	Price         string `json:"price"`
	StockQuantity *int   `json:"stock_quantity"`
	DateCreated   string `json:"date_created_gmt"`
	DateModified  string `json:"date_modified_gmt"`
	Tags          []struct {
		Name string `json:"name"`
	} `json:"tags"`
	Images []struct {
		ID  int64  `json:"id"`
		Src string `json:"src"`
	} `json:"images"`
}

func (c *client) ListProducts(ctx context.Context, creds domain.ClientCredentials, limit *int) ([]domain.Product, error) {
	query := url.Values{}
	if limit != nil {
		query.Set("per_page", strconv.Itoa(*limit))
	}

	body, err := c.doRequest(ctx, creds, "/products", query)
	if err != nil {
		return nil, err
	}

	var wooProducts []wooProduct
	if err := json.Unmarshal(body, &wooProducts); err != nil {
		return nil, fmt.Errorf("%w: failed to decode product list: %v", domain.ErrUpstreamRequest, err)
	}

	products := make([]domain.Product, 0, len(wooProducts))
	for i := range wooProducts {
		products = append(products, mapProduct(&wooProducts[i]))
	}
	return products, nil
}

func (c *client) GetProduct(ctx context.Context, creds domain.ClientCredentials, productID int64) (*domain.Product, error) {
	body, err := c.doRequest(ctx, creds, fmt.Sprintf("/products/%d", productID), nil)
	if err != nil {
		return nil, err
	}

	var p wooProduct
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: failed to decode product: %v", domain.ErrUpstreamRequest, err)
	}

	product := mapProduct(&p)
	return &product, nil
}

func mapProduct(p *wooProduct) domain.Product {
	product := domain.Product{
		ID:          p.ID,
		Title:       p.Name,
		Handle:      p.Slug,
		ProductType: p.Type,
		Status:      p.Status,
	}

	if len(p.Tags) > 0 {
		names := make([]string, 0, len(p.Tags))
		for _, tag := range p.Tags {
			names = append(names, tag.Name)
		}
		product.Tags = strings.Join(names, ", ")
	}

	if t, err := time.Parse("2006-01-02T15:04:05", p.DateCreated); err == nil {
		product.CreatedAt = &t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", p.DateModified); err == nil {
		product.UpdatedAt = &t
	}

	// Simple products carry price and stock on the product itself;
	// surface them as a single variant to keep the normalized shape.
	if p.SKU != "" || p.Price != "" {
		variant := domain.ProductVariant{
			ID:    p.ID,
			SKU:   p.SKU,
			Price: p.Price,
		}
		if p.StockQuantity != nil {
			variant.InventoryQuantity = *p.StockQuantity
		}
		product.Variants = append(product.Variants, variant)
	}

	for _, img := range p.Images {
		product.Images = append(product.Images, domain.ProductImage{ID: img.ID, Src: img.Src})
	}

	return product
}
