package notifier

import (
	"context"
	"log/slog"

	"github.com/amishk599/jobdigest/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes the message envelope to the given logger instead of
// sending it. Used for dry runs.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each message via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs subject, sender, recipient and body size. The HTML body itself
// is logged at debug level. Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(_ context.Context, msg model.MailMessage) error {
	n.logger.Info("digest not sent (dry run)",
		"subject", msg.Subject,
		"from", msg.From,
		"to", msg.To,
		"html_bytes", len(msg.HTMLBody),
	)
	n.logger.Debug("digest body", "html", msg.HTMLBody)
	return nil
}
