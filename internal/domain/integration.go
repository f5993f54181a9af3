package domain

import "fmt"

// Integration identifies a supported e-commerce platform.
type Integration string

const (
	IntegrationShopify     Integration = "shopify"
	IntegrationWooCommerce Integration = "woocommerce"
)

// Integrations returns every supported platform tag. The engine factory
// checks its registration table for completeness against this set at startup.
func Integrations() []Integration {
	return []Integration{IntegrationShopify, IntegrationWooCommerce}
}

// ParseIntegration maps an integration name to its tag.
func ParseIntegration(name string) (Integration, error) {
	switch Integration(name) {
	case IntegrationShopify:
		return IntegrationShopify, nil
	case IntegrationWooCommerce:
		return IntegrationWooCommerce, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedIntegration, name)
	}
}

func (i Integration) String() string {
	return string(i)
}
