// Package notify delivers one-time passwords to users. The production
// implementation sends transactional email through Resend; the development
// implementation surfaces the code in the log so the flow works without a
// live provider.
package notify

import "context"

// Message is a single out-of-band notification carrying an OTP.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Notifier dispatches a message over an external channel. A failed send never
// affects already-committed state; callers log and surface the failure.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
