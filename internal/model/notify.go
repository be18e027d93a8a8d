package model

import "time"

// NotifyEntry is one row of the due-notification ledger: a post that has
// already triggered its one-time due alert.
type NotifyEntry struct {
	PostID     string    `json:"post_id"`
	Owner      string    `json:"owner"`
	NotifiedAt time.Time `json:"notified_at"`
}
