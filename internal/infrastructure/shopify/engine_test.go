package shopify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"catalog-connect-layer/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

type fakeClient struct {
	mu        sync.Mutex
	exchanges int

	token       domain.AccessToken
	exchangeErr error

	products   []domain.Product
	productErr error
}

func (f *fakeClient) ExchangeClientCredentials(_ context.Context, _ domain.ClientCredentials) (domain.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchanges++
	if f.exchangeErr != nil {
		return domain.AccessToken{}, f.exchangeErr
	}
	return f.token, nil
}

func (f *fakeClient) ListProducts(_ context.Context, _ domain.ClientCredentials, _ string, _ *int) ([]domain.Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	return f.products, nil
}

func (f *fakeClient) GetProduct(_ context.Context, _ domain.ClientCredentials, _ string, id int64) (*domain.Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, fmt.Errorf("%w: product %d", domain.ErrProductNotFound, id)
}

func (f *fakeClient) exchangeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exchanges
}

var testCreds = domain.ClientCredentials{
	StoreURL:   "example.myshopify.com",
	APIKey:     "key",
	APISecret:  "secret",
	APIVersion: "2026-01",
}

func newTestEngine(t *testing.T, client *fakeClient) *Engine {
	t.Helper()
	engine, err := NewEngine("12345", testCreds, client, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestNewEngineRejectsIncompleteCredentials(t *testing.T) {
	_, err := NewEngine("12345", domain.ClientCredentials{StoreURL: "example.myshopify.com"}, &fakeClient{}, zerolog.Nop())
	if !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("NewEngine = %v, want ErrMissingCredentials", err)
	}
}

func TestTokenFetchedOnceAcrossCalls(t *testing.T) {
	client := &fakeClient{
		token:    domain.AccessToken{Token: "tok-1"},
		products: []domain.Product{{ID: 1, Title: "T"}},
	}
	engine := newTestEngine(t, client)
	ctx := context.Background()

	if _, err := engine.ListProducts(ctx, nil); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if _, err := engine.GetProduct(ctx, 1); err != nil {
		t.Fatalf("GetProduct: %v", err)
	}

	if got := client.exchangeCount(); got != 1 {
		t.Fatalf("token exchanged %d times, want 1", got)
	}
}

func TestTokenRefreshedAfterExpiry(t *testing.T) {
	current := time.Now()
	client := &fakeClient{
		token:    domain.AccessToken{Token: "tok-1", ExpiresAt: current.Add(30 * time.Minute)},
		products: []domain.Product{{ID: 1}},
	}
	engine := newTestEngine(t, client)
	engine.now = func() time.Time { return current }
	ctx := context.Background()

	if _, err := engine.ListProducts(ctx, nil); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}

	// Within the token lifetime: no new grant.
	current = current.Add(10 * time.Minute)
	engine.ListProducts(ctx, nil)
	if got := client.exchangeCount(); got != 1 {
		t.Fatalf("token exchanged %d times before expiry, want 1", got)
	}

	// Past expiry: the next call must fetch a fresh token.
	current = current.Add(25 * time.Minute)
	engine.ListProducts(ctx, nil)
	if got := client.exchangeCount(); got != 2 {
		t.Fatalf("token exchanged %d times after expiry, want 2", got)
	}
}

func TestTokenWithoutExpiryHintIsKept(t *testing.T) {
	current := time.Now()
	client := &fakeClient{
		token:    domain.AccessToken{Token: "tok-1"},
		products: []domain.Product{{ID: 1}},
	}
	engine := newTestEngine(t, client)
	engine.now = func() time.Time { return current }
	ctx := context.Background()

	engine.ListProducts(ctx, nil)
	current = current.Add(72 * time.Hour)
	engine.ListProducts(ctx, nil)

	if got := client.exchangeCount(); got != 1 {
		t.Fatalf("token exchanged %d times, want 1 for a non-expiring token", got)
	}
}

func TestAuthenticationFailurePropagates(t *testing.T) {
	client := &fakeClient{exchangeErr: fmt.Errorf("%w: status 401", domain.ErrAuthenticationFailed)}
	engine := newTestEngine(t, client)

	_, err := engine.ListProducts(context.Background(), nil)
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("ListProducts = %v, want ErrAuthenticationFailed", err)
	}
}

func TestNotFoundDistinctFromUpstreamFailure(t *testing.T) {
	client := &fakeClient{
		token:    domain.AccessToken{Token: "tok-1"},
		products: []domain.Product{{ID: 1}},
	}
	engine := newTestEngine(t, client)
	ctx := context.Background()

	_, err := engine.GetProduct(ctx, 999)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("GetProduct(999) = %v, want ErrProductNotFound", err)
	}
	if errors.Is(err, domain.ErrUpstreamRequest) {
		t.Fatal("not-found error must not match ErrUpstreamRequest")
	}

	client.productErr = fmt.Errorf("%w: status 500", domain.ErrUpstreamRequest)
	_, err = engine.GetProduct(ctx, 1)
	if !errors.Is(err, domain.ErrUpstreamRequest) {
		t.Fatalf("GetProduct with upstream failure = %v, want ErrUpstreamRequest", err)
	}
}

func TestListProductsReturnsMappedProducts(t *testing.T) {
	want := []domain.Product{
		{ID: 1, Title: "Widget", Variants: []domain.ProductVariant{{ID: 11, SKU: "W-1", Price: "9.99"}}},
		{ID: 2, Title: "Gadget"},
	}
	client := &fakeClient{
		token:    domain.AccessToken{Token: "tok-1"},
		products: want,
	}
	engine := newTestEngine(t, client)

	got, err := engine.ListProducts(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ListProducts mismatch (-want +got):\n%s", diff)
	}
}
