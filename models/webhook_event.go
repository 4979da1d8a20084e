package models

import (
	"time"
)

// WebhookEvent records a processed gateway delivery so retries are not reprocessed
type WebhookEvent struct {
	EventID    string    `gorm:"primaryKey" json:"event_id"`
	Event      string    `json:"event"`
	ReceivedAt time.Time `gorm:"index" json:"received_at"`
}
