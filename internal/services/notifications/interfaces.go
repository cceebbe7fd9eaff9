// Package notifications delivers participant-facing email. The SMTP sender is
// used when a host is configured; otherwise messages are logged, which keeps
// development and test environments side-effect free.
package notifications

import "context"

// Sender delivers a single plain-text email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
