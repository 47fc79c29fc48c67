// Package notifier delivers transactional email: OTP codes, password-reset
// links and welcome messages. Delivery is a side effect of the auth flow;
// callers decide whether a send failure is surfaced or merely logged.
package notifier

import "context"

// Notifier is the outbound notification sink. Send delivers a single HTML
// message; implementations must not retry indefinitely or block beyond the
// context deadline.
type Notifier interface {
	Send(ctx context.Context, to, subject, html string) error
}
