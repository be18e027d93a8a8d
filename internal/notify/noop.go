package notify

import "context"

// NoopNotifier is used when no delivery channel is configured. It reports
// denied permission, which turns every due-check tick into a no-op: nothing
// is sent and nothing is marked until a real channel is granted.
type NoopNotifier struct{}

var _ Notifier = (*NoopNotifier)(nil)

func (n *NoopNotifier) Permission() Permission {
	return PermissionDenied
}

func (n *NoopNotifier) Request(ctx context.Context) (Permission, error) {
	return PermissionDenied, nil
}

func (n *NoopNotifier) Send(ctx context.Context, notification Notification) error {
	return nil
}

func (n *NoopNotifier) Close() error {
	return nil
}
