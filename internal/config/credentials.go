package config

import (
	"fmt"

	"catalog-connect-layer/internal/domain"
)

// StaticCredentialStore serves credential records built once from Config.
// It is read-only after construction and therefore safe for concurrent use.
type StaticCredentialStore struct {
	records map[domain.Integration]map[string]domain.ClientCredentials
}

// NewCredentialStore builds the per-platform client credential mapping.
func NewCredentialStore(cfg *Config) *StaticCredentialStore {
	records := map[domain.Integration]map[string]domain.ClientCredentials{
		domain.IntegrationShopify: {
			cfg.Shopify.ClientID: {
				StoreURL:      cfg.Shopify.StoreURL,
				APIKey:        cfg.Shopify.APIKey,
				APISecret:     cfg.Shopify.APISecret,
				WebhookSecret: cfg.Shopify.WebhookSecret,
				APIVersion:    cfg.Shopify.APIVersion,
			},
		},
		domain.IntegrationWooCommerce: {
			cfg.WooCommerce.ClientID: {
				StoreURL:      cfg.WooCommerce.StoreURL,
				APIKey:        cfg.WooCommerce.APIKey,
				APISecret:     cfg.WooCommerce.APISecret,
				WebhookSecret: cfg.WooCommerce.WebhookSecret,
				APIVersion:    cfg.WooCommerce.APIVersion,
			},
		},
	}
	return &StaticCredentialStore{records: records}
}

// Get resolves the credential record for a client on a platform.
func (s *StaticCredentialStore) Get(integration domain.Integration, clientID string) (domain.ClientCredentials, error) {
	clients, ok := s.records[integration]
	if !ok {
		return domain.ClientCredentials{}, fmt.Errorf("%w: no clients for integration %s", domain.ErrUnknownClient, integration)
	}
	creds, ok := clients[clientID]
	if !ok {
		return domain.ClientCredentials{}, fmt.Errorf("%w: %s client %q", domain.ErrUnknownClient, integration, clientID)
	}
	return creds, nil
}
