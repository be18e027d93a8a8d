package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is the NATS subject prefix for delivered notifications.
// The full subject is SubjectPrefix + "." + owner, so a watcher can
// subscribe to its own alerts only.
const SubjectPrefix = "posts.notify"

// NATSNotifier delivers notifications over a NATS subject. Permission is
// always granted: reachability of the broker is the only capability the
// channel has, and that is checked at connect time.
type NATSNotifier struct {
	conn *nats.Conn
}

var _ Notifier = (*NATSNotifier)(nil)

func NewNATSNotifier(url string) (*NATSNotifier, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSNotifier{conn: nc}, nil
}

func (n *NATSNotifier) Permission() Permission {
	if n.conn.IsConnected() {
		return PermissionGranted
	}
	return PermissionDenied
}

func (n *NATSNotifier) Request(ctx context.Context) (Permission, error) {
	return n.Permission(), nil
}

func (n *NATSNotifier) Send(ctx context.Context, notification Notification) error {
	if n.Permission() != PermissionGranted {
		return fmt.Errorf("notification permission %s", n.Permission())
	}
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshaling notification: %w", err)
	}
	subject := SubjectPrefix + "." + notification.Owner
	return n.conn.Publish(subject, data)
}

func (n *NATSNotifier) Close() error {
	n.conn.Close()
	return nil
}
