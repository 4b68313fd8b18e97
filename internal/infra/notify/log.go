package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the log instead of delivering them.
// Used in dev and when SMTP is not configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, userID, subject, body string) error {
	if n.Logger != nil {
		n.Logger.Info("notification", "user_id", userID, "subject", subject, "body", body)
	}
	return nil
}
