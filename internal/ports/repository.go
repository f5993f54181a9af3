package ports

import (
	"context"

	"catalog-connect-layer/internal/domain"
)

// WebhookEventRepository persists an audit record of accepted webhook
// deliveries. Logging failures never fail the request.
type WebhookEventRepository interface {
	LogWebhook(ctx context.Context, event *domain.WebhookEvent) error
}
