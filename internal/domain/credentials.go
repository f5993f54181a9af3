package domain

// ClientCredentials is the per-client credential record for one platform.
// Loaded once at startup and read-only afterwards.
type ClientCredentials struct {
	StoreURL      string
	APIKey        string
	APISecret     string
	WebhookSecret string
	APIVersion    string
}

// Complete reports whether the record carries everything needed for
// authenticated API calls. The webhook secret is checked separately by the
// verifier, which fails closed on its own.
func (c ClientCredentials) Complete() bool {
	return c.StoreURL != "" && c.APIKey != "" && c.APISecret != ""
}
