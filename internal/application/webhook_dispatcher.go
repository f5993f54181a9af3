package application

import (
	"context"
	"fmt"

	"catalog-connect-layer/internal/domain"

	"github.com/rs/zerolog"
)

// WebhookHandler processes webhook events for the topics it claims.
type WebhookHandler interface {
	CanHandle(topic string) bool
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}

// WebhookDispatcher routes verified webhook events to registered handlers.
type WebhookDispatcher struct {
	handlers []WebhookHandler
	logger   zerolog.Logger
}

// NewWebhookDispatcher creates an empty dispatcher.
func NewWebhookDispatcher(logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{logger: logger}
}

// RegisterHandler adds a handler. Registration happens at startup; the
// handler list is read-only afterwards.
func (d *WebhookDispatcher) RegisterHandler(handler WebhookHandler) {
	d.handlers = append(d.handlers, handler)
}

// Dispatch hands the event to every handler claiming its topic. The first
// handler error aborts dispatch and surfaces to the webhook layer, which
// answers 500 so the sender redelivers.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.WebhookEvent) error {
	matched := 0
	for _, handler := range d.handlers {
		if !handler.CanHandle(event.Topic) {
			continue
		}
		matched++
		if err := handler.Handle(ctx, event); err != nil {
			return fmt.Errorf("handler failed for topic %s: %w", event.Topic, err)
		}
	}

	if matched == 0 {
		d.logger.Warn().
			Str("topic", event.Topic).
			Str("platform", event.Platform.String()).
			Msg("No handler registered for webhook topic")
	}
	return nil
}
