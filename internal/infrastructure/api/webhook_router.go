// Package api exposes the inbound webhook surface. One route set is mounted
// per registered platform:
//
//	POST /webhooks/{platform}/products/create
//	POST /webhooks/{platform}/products/update
//	POST /webhooks/{platform}/products/delete
//
// Each request runs the same pipeline: duplicate check on the event-id
// header, HMAC verification over the raw body, JSON decode, dispatch.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog-connect-layer/internal/application"
	"catalog-connect-layer/internal/domain"
	"catalog-connect-layer/internal/infrastructure/metrics"
	"catalog-connect-layer/internal/infrastructure/signature"
	"catalog-connect-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// PlatformWebhook describes one platform's webhook dialect: which headers
// carry the signature and event id, and how the signature is computed.
type PlatformWebhook struct {
	Integration     domain.Integration
	SignatureHeader string
	EventIDHeader   string
	SourceHeader    string
	Verifier        *signature.Verifier
}

// WebhookRouter mounts and serves the webhook routes.
type WebhookRouter struct {
	platforms  []PlatformWebhook
	tracker    ports.EventTracker
	dispatcher *application.WebhookDispatcher
	events     ports.WebhookEventRepository
	logger     zerolog.Logger
}

// NewWebhookRouter creates a router over the given platform dialects.
func NewWebhookRouter(
	platforms []PlatformWebhook,
	tracker ports.EventTracker,
	dispatcher *application.WebhookDispatcher,
	events ports.WebhookEventRepository,
	logger zerolog.Logger,
) *WebhookRouter {
	return &WebhookRouter{
		platforms:  platforms,
		tracker:    tracker,
		dispatcher: dispatcher,
		events:     events,
		logger:     logger,
	}
}

var productActions = []string{"create", "update", "delete"}

// Mount registers the webhook routes on r.
func (wr *WebhookRouter) Mount(r chi.Router) {
	for _, platform := range wr.platforms {
		for _, action := range productActions {
			topic := "products/" + action
			pattern := fmt.Sprintf("/webhooks/%s/products/%s", platform.Integration, action)
			r.Post(pattern, wr.handle(platform, topic))
		}
	}
}

func (wr *WebhookRouter) handle(platform PlatformWebhook, topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()
		log := wr.logger.With().
			Str("platform", platform.Integration.String()).
			Str("topic", topic).
			Logger()

		// Duplicate check runs first, before the signature, matching the
		// sender contract: replays must be acknowledged with a success
		// status even when intermediaries mangled other headers. An event
		// without an id is not deduplicable and is processed.
		eventID := r.Header.Get(platform.EventIDHeader)
		if eventID != "" {
			duplicate, err := wr.tracker.IsDuplicate(ctx, eventID)
			if err != nil {
				// Tracker outage degrades to at-least-once; handlers are
				// expected to be idempotent anyway.
				log.Error().Err(err).Str("eventId", eventID).Msg("Event tracker failed, processing without dedup")
			} else if duplicate {
				log.Info().Str("eventId", eventID).Msg("Duplicate webhook event, acknowledging")
				metrics.ObserveWebhook(platform.Integration.String(), topic, metrics.OutcomeDuplicate, time.Since(start))
				respondAccepted(w, true)
				return
			}
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read webhook payload")
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		// The signature covers the raw bytes exactly as received; nothing
		// may decode or re-serialize the body before this point.
		sig := r.Header.Get(platform.SignatureHeader)
		if err := platform.Verifier.Verify(payload, sig); err != nil {
			if errors.Is(err, domain.ErrSignatureUnconfigured) {
				log.Warn().Msg("Webhook secret not configured, rejecting delivery")
			} else {
				log.Warn().Err(err).Str("eventId", eventID).Msg("Webhook signature verification failed")
			}
			metrics.ObserveWebhook(platform.Integration.String(), topic, metrics.OutcomeRejected, time.Since(start))
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		// A verified but unparseable body is a sender bug, not a security
		// event: answer 400, distinct from the duplicate 200.
		var productData map[string]interface{}
		if err := json.Unmarshal(payload, &productData); err != nil {
			log.Warn().Err(err).Msg("Malformed webhook payload")
			metrics.ObserveWebhook(platform.Integration.String(), topic, metrics.OutcomeBadPayload, time.Since(start))
			http.Error(w, "Malformed payload", http.StatusBadRequest)
			return
		}

		event := &domain.WebhookEvent{
			Platform:   platform.Integration,
			Topic:      topic,
			EventID:    eventID,
			Shop:       r.Header.Get(platform.SourceHeader),
			Payload:    payload,
			Verified:   true,
			ReceivedAt: start,
		}

		if err := wr.events.LogWebhook(ctx, event); err != nil {
			// Audit logging must not fail the delivery.
			log.Error().Err(err).Msg("Failed to log webhook event")
		}

		if err := wr.dispatcher.Dispatch(ctx, event); err != nil {
			log.Error().Err(err).Msg("Failed to dispatch webhook event")
			metrics.ObserveWebhook(platform.Integration.String(), topic, metrics.OutcomeDispatchErr, time.Since(start))
			// 500 makes the sender redeliver; the dedup entry for this id
			// was already recorded, so the retry path relies on handlers
			// being idempotent rather than on the tracker.
			http.Error(w, "Failed to process webhook event", http.StatusInternalServerError)
			return
		}

		log.Info().Str("eventId", eventID).Msg("Webhook event delivered")
		metrics.ObserveWebhook(platform.Integration.String(), topic, metrics.OutcomeDelivered, time.Since(start))
		respondAccepted(w, false)
	}
}

func respondAccepted(w http.ResponseWriter, duplicate bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	body := map[string]string{"received": "true"}
	if duplicate {
		body["duplicate"] = "true"
	}
	json.NewEncoder(w).Encode(body)
}
