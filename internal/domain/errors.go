package domain

import "errors"

// Sentinel errors for the adapter layer. Implementations wrap these with %w
// and callers match with errors.Is; none of them is process-fatal after
// startup.
var (
	// ErrUnknownClient means no credential record exists for the client id
	// on the requested platform.
	ErrUnknownClient = errors.New("unknown client")

	// ErrMissingCredentials means the credential record exists but lacks a
	// field required for authenticated API calls.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrAuthenticationFailed means the platform rejected our credentials
	// or token.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrUpstreamRequest means the platform call failed for a reason other
	// than authentication or a missing resource.
	ErrUpstreamRequest = errors.New("upstream request failed")

	// ErrProductNotFound means the platform reported no product under the
	// requested id. Distinct from ErrUpstreamRequest so callers can answer
	// 404 instead of 500.
	ErrProductNotFound = errors.New("product not found")

	// ErrSignatureInvalid means the webhook signature header is missing or
	// does not match the HMAC of the raw body.
	ErrSignatureInvalid = errors.New("invalid webhook signature")

	// ErrSignatureUnconfigured means no webhook secret is configured;
	// verification fails closed rather than accepting unsigned deliveries.
	ErrSignatureUnconfigured = errors.New("webhook secret not configured")

	// ErrMalformedPayload means a webhook body passed verification but is
	// not decodable JSON.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnsupportedIntegration means the integration name is not in the
	// supported set.
	ErrUnsupportedIntegration = errors.New("unsupported integration")
)
