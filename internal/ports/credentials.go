package ports

import "catalog-connect-layer/internal/domain"

// CredentialStore resolves the credential record for a client on a platform.
// Records are loaded at startup and never mutated afterwards.
type CredentialStore interface {
	// Get returns domain.ErrUnknownClient when no record exists for the
	// client id on the given platform.
	Get(integration domain.Integration, clientID string) (domain.ClientCredentials, error)
}
