package notify

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// LogNotifier writes messages to the log instead of dispatching them.
// Used in development so sign-in works without a mail provider.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "notify")}
}

func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	n.logger.Info(ctx, "Skipping email dispatch",
		"to", msg.To, "subject", msg.Subject, "body", msg.HTML)
	return nil
}
