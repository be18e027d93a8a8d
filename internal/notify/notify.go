// Package notify delivers one-time due alerts for scheduled posts.
package notify

import "context"

// Permission reports whether the delivery channel may show alerts.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Notification is a single user-facing alert. Tag deduplicates at the
// delivery layer: two notifications with the same tag collapse into one.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
	Owner string `json:"owner"`
}

// Notifier is a delivery channel for due alerts.
type Notifier interface {
	// Permission reports the current delivery permission without prompting.
	Permission() Permission
	// Request asks for delivery permission. Channels with no prompt return
	// their current permission unchanged.
	Request(ctx context.Context) (Permission, error)
	// Send delivers the notification. Send on a channel without granted
	// permission is an error.
	Send(ctx context.Context, n Notification) error
	Close() error
}
