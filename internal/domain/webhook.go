package domain

import "time"

// WebhookEvent is a verified webhook delivery handed to the dispatcher.
// Payload holds the raw request bytes; handlers decode what they need.
type WebhookEvent struct {
	Platform   Integration `json:"platform"`
	Topic      string      `json:"topic"`
	EventID    string      `json:"event_id,omitempty"`
	Shop       string      `json:"shop,omitempty"`
	Payload    []byte      `json:"payload"`
	Verified   bool        `json:"verified"`
	ReceivedAt time.Time   `json:"received_at"`
}
