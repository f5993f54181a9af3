package repository

import (
	"context"
	"fmt"
	"time"

	"catalog-connect-layer/internal/domain"
	"catalog-connect-layer/internal/ports"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// webhookEventDoc is the persisted shape of a webhook delivery.
type webhookEventDoc struct {
	ID         string    `bson:"_id"`
	Platform   string    `bson:"platform"`
	Topic      string    `bson:"topic"`
	EventID    string    `bson:"event_id,omitempty"`
	Shop       string    `bson:"shop,omitempty"`
	Payload    []byte    `bson:"payload"`
	Verified   bool      `bson:"verified"`
	ReceivedAt time.Time `bson:"received_at"`
	CreatedAt  time.Time `bson:"created_at"`
}

// MongoWebhookEventRepository logs accepted webhook deliveries to MongoDB.
type MongoWebhookEventRepository struct {
	collection *mongo.Collection
}

// NewMongoWebhookEventRepository creates a repository over the
// webhook_events collection.
func NewMongoWebhookEventRepository(db *mongo.Database) *MongoWebhookEventRepository {
	return &MongoWebhookEventRepository{
		collection: db.Collection("webhook_events"),
	}
}

// LogWebhook inserts one audit record per delivery.
func (r *MongoWebhookEventRepository) LogWebhook(ctx context.Context, event *domain.WebhookEvent) error {
	doc := webhookEventDoc{
		ID:         uuid.NewString(),
		Platform:   event.Platform.String(),
		Topic:      event.Topic,
		EventID:    event.EventID,
		Shop:       event.Shop,
		Payload:    event.Payload,
		Verified:   event.Verified,
		ReceivedAt: event.ReceivedAt,
		CreatedAt:  time.Now(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to log webhook: %w", err)
	}
	return nil
}

// NopWebhookEventRepository discards events. Used when no Mongo URI is
// configured.
type NopWebhookEventRepository struct{}

// LogWebhook does nothing.
func (NopWebhookEventRepository) LogWebhook(context.Context, *domain.WebhookEvent) error {
	return nil
}

var _ ports.WebhookEventRepository = (*MongoWebhookEventRepository)(nil)
var _ ports.WebhookEventRepository = NopWebhookEventRepository{}
