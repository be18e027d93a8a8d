package model

import (
	"encoding/json"
	"time"
)

// Event is a persisted record of a mutation, kept alongside the NATS publish
// so post history survives bus outages.
type Event struct {
	ID        int64           `json:"id"`
	Topic     string          `json:"topic"`
	PostID    string          `json:"post_id"`
	Actor     string          `json:"actor,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
