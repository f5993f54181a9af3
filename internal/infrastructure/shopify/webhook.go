package shopify

import "catalog-connect-layer/internal/infrastructure/signature"

// Webhook header names used by Shopify. The signature is
// base64(HMAC-SHA256(raw body)) under the app's webhook secret.
const (
	WebhookSignatureHeader  = "X-Shopify-Hmac-SHA256"
	WebhookEventIDHeader    = "X-Shopify-Event-Id"
	WebhookTopicHeader      = "X-Shopify-Topic"
	WebhookShopDomainHeader = "X-Shopify-Shop-Domain"
)

// NewWebhookVerifier creates the verifier for Shopify webhook deliveries.
func NewWebhookVerifier(secret string) *signature.Verifier {
	return signature.New(secret, signature.EncodingBase64)
}
