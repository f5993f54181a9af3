package application

import (
	"fmt"

	"catalog-connect-layer/internal/domain"
	"catalog-connect-layer/internal/ports"

	"github.com/rs/zerolog"
)

// EngineBuilder constructs a platform engine for one client's credentials.
type EngineBuilder func(clientID string, creds domain.ClientCredentials) (ports.CatalogEngine, error)

// EngineFactory maps integration names to engine constructors. The
// registration table is built at process start and validated for
// completeness against the integration enum; there is no dynamic loading.
type EngineFactory struct {
	credentials ports.CredentialStore
	builders    map[domain.Integration]EngineBuilder
	logger      zerolog.Logger
}

// NewEngineFactory creates an empty factory. Builders are registered by the
// composition root before Validate.
func NewEngineFactory(credentials ports.CredentialStore, logger zerolog.Logger) *EngineFactory {
	return &EngineFactory{
		credentials: credentials,
		builders:    make(map[domain.Integration]EngineBuilder),
		logger:      logger,
	}
}

// Register adds a builder for an integration.
func (f *EngineFactory) Register(integration domain.Integration, builder EngineBuilder) {
	f.builders[integration] = builder
}

// Validate checks that every enumerated integration has a builder.
func (f *EngineFactory) Validate() error {
	for _, integration := range domain.Integrations() {
		if _, ok := f.builders[integration]; !ok {
			return fmt.Errorf("no engine registered for integration %s", integration)
		}
	}
	return nil
}

// GetEngine resolves an integration name and client id to a constructed
// adapter. Unknown names yield domain.ErrUnsupportedIntegration; clients
// without a credential record yield domain.ErrUnknownClient.
func (f *EngineFactory) GetEngine(integrationName, clientID string) (ports.CatalogEngine, error) {
	integration, err := domain.ParseIntegration(integrationName)
	if err != nil {
		return nil, err
	}

	builder, ok := f.builders[integration]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedIntegration, integrationName)
	}

	creds, err := f.credentials.Get(integration, clientID)
	if err != nil {
		return nil, err
	}

	engine, err := builder(clientID, creds)
	if err != nil {
		return nil, err
	}

	f.logger.Debug().
		Str("integration", integration.String()).
		Str("clientId", clientID).
		Msg("Constructed catalog engine")
	return engine, nil
}
