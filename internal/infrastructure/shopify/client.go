package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalog-connect-layer/internal/domain"
	"catalog-connect-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

type client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
	timeout     time.Duration
	logger      zerolog.Logger
}

// NewClient creates a Shopify API client. The token grant goes over a plain
// HTTP call because go-shopify does not expose the client_credentials flow;
// product calls go through go-shopify. Every upstream call carries an
// explicit timeout and is never retried here.
func NewClient(timeout time.Duration, rateLimiter *RateLimiter, logger zerolog.Logger) ports.ShopifyClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rateLimiter,
		timeout:     timeout,
		logger:      logger,
	}
}

// baseURL normalizes a configured store URL to a scheme-qualified base.
// Tests point this at an httptest server by configuring an http:// URL.
func baseURL(storeURL string) string {
	if strings.HasPrefix(storeURL, "http://") || strings.HasPrefix(storeURL, "https://") {
		return strings.TrimRight(storeURL, "/")
	}
	return "https://" + strings.TrimRight(storeURL, "/")
}

// shopDomain strips the scheme for go-shopify, which expects a bare domain.
func shopDomain(storeURL string) string {
	s := strings.TrimPrefix(storeURL, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimRight(s, "/")
}

func (c *client) ExchangeClientCredentials(ctx context.Context, creds domain.ClientCredentials) (domain.AccessToken, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return domain.AccessToken{}, err
	}

	tokenURL := baseURL(creds.StoreURL) + "/admin/oauth/access_token"

	body, err := json.Marshal(map[string]string{
		"client_id":     creds.APIKey,
		"client_secret": creds.APISecret,
		"grant_type":    "client_credentials",
	})
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(body))
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.AccessToken{}, fmt.Errorf("%w: token request rejected with status %d", domain.ErrAuthenticationFailed, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.AccessToken{}, fmt.Errorf("%w: token request status %d: %s", domain.ErrUpstreamRequest, resp.StatusCode, respBody)
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return domain.AccessToken{}, fmt.Errorf("%w: failed to decode token response: %v", domain.ErrUpstreamRequest, err)
	}
	if tokenResponse.AccessToken == "" {
		return domain.AccessToken{}, fmt.Errorf("%w: token response carried no access_token", domain.ErrAuthenticationFailed)
	}

	token := domain.AccessToken{Token: tokenResponse.AccessToken}
	if tokenResponse.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(tokenResponse.ExpiresIn) * time.Second)
	}
	return token, nil
}

func (c *client) apiClient(creds domain.ClientCredentials, accessToken string) (*goshopify.Client, error) {
	app := goshopify.App{
		ApiKey:    creds.APIKey,
		ApiSecret: creds.APISecret,
	}
	apiClient, err := goshopify.NewClient(app, shopDomain(creds.StoreURL), accessToken, goshopify.WithVersion(creds.APIVersion))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return apiClient, nil
}

func (c *client) ListProducts(ctx context.Context, creds domain.ClientCredentials, accessToken string, limit *int) ([]domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	apiClient, err := c.apiClient(creds, accessToken)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var options interface{}
	if limit != nil {
		options = goshopify.ListOptions{Limit: *limit}
	}

	products, err := apiClient.Product.List(ctx, options)
	if err != nil {
		return nil, mapAPIError(err)
	}

	result := make([]domain.Product, 0, len(products))
	for i := range products {
		result = append(result, mapProduct(&products[i]))
	}
	return result, nil
}

func (c *client) GetProduct(ctx context.Context, creds domain.ClientCredentials, accessToken string, productID int64) (*domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	apiClient, err := c.apiClient(creds, accessToken)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	product, err := apiClient.Product.Get(ctx, uint64(productID), nil)
	if err != nil {
		return nil, mapAPIError(err)
	}

	mapped := mapProduct(product)
	return &mapped, nil
}

// mapAPIError translates go-shopify failures into the domain taxonomy so
// callers can tell "not found" from "upstream broke" from "bad credentials".
func mapAPIError(err error) error {
	var respErr goshopify.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.Status {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", domain.ErrProductNotFound, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", domain.ErrAuthenticationFailed, err)
		default:
			return fmt.Errorf("%w: status %d: %v", domain.ErrUpstreamRequest, respErr.Status, err)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstreamRequest, err)
}

func mapProduct(p *goshopify.Product) domain.Product {
	product := domain.Product{
		ID:          int64(p.Id),
		Title:       p.Title,
		Handle:      p.Handle,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Status:      string(p.Status),
		Tags:        p.Tags,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	for _, v := range p.Variants {
		variant := domain.ProductVariant{
			ID:                int64(v.Id),
			Title:             v.Title,
			SKU:               v.Sku,
			InventoryQuantity: v.InventoryQuantity,
		}
		if v.Price != nil {
			variant.Price = v.Price.String()
		}
		product.Variants = append(product.Variants, variant)
	}

	for _, img := range p.Images {
		product.Images = append(product.Images, domain.ProductImage{
			ID:       int64(img.Id),
			Src:      img.Src,
			Position: img.Position,
			Width:    img.Width,
			Height:   img.Height,
		})
	}

	return product
}
