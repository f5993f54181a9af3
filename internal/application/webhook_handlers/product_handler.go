package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-connect-layer/internal/domain"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related webhook events. It is the
// business-logic collaborator behind the webhook surface; downstream systems
// (search index, cache invalidation, sync) hang off this handler.
type ProductHandler struct {
	logger zerolog.Logger
}

// NewProductHandler creates a new product webhook handler.
func NewProductHandler(logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{logger: logger}
}

// CanHandle returns true for the product topics.
func (h *ProductHandler) CanHandle(topic string) bool {
	return topic == "products/create" ||
		topic == "products/update" ||
		topic == "products/delete"
}

// Handle processes a product webhook event.
func (h *ProductHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var productData map[string]interface{}
	if err := json.Unmarshal(event.Payload, &productData); err != nil {
		return fmt.Errorf("%w: product webhook payload: %v", domain.ErrMalformedPayload, err)
	}

	productID, _ := productData["id"].(float64)
	title, _ := productData["title"].(string)
	status, _ := productData["status"].(string)

	h.logger.Info().
		Str("topic", event.Topic).
		Str("platform", event.Platform.String()).
		Str("shop", event.Shop).
		Float64("productId", productID).
		Str("title", title).
		Str("status", status).
		Msg("Processing product webhook event")

	switch event.Topic {
	case "products/create":
		h.logger.Info().Str("shop", event.Shop).Float64("productId", productID).Str("title", title).Msg("New product created")
	case "products/update":
		h.logger.Info().Str("shop", event.Shop).Float64("productId", productID).Str("title", title).Msg("Product updated")
	case "products/delete":
		h.logger.Info().Str("shop", event.Shop).Float64("productId", productID).Msg("Product deleted")
	}

	return nil
}
