package woocommerce

import "catalog-connect-layer/internal/infrastructure/signature"

// Webhook header names used by WooCommerce. The signature is
// base64(HMAC-SHA256(raw body)) under the webhook's shared secret.
const (
	WebhookSignatureHeader = "X-WC-Webhook-Signature"
	WebhookEventIDHeader   = "X-WC-Webhook-Delivery-ID"
	WebhookTopicHeader     = "X-WC-Webhook-Topic"
	WebhookSourceHeader    = "X-WC-Webhook-Source"
)

// NewWebhookVerifier creates the verifier for WooCommerce webhook deliveries.
func NewWebhookVerifier(secret string) *signature.Verifier {
	return signature.New(secret, signature.EncodingBase64)
}
