// Package notify defines the notification hook invoked when a session
// starts, switches course or pauses. Delivery (toast, tray balloon, OS
// notification center) belongs to an external collaborator; this package only
// fixes the contract and provides a logger-backed default.
package notify

import "github.com/rs/zerolog"

// Notifier delivers one user-facing notification. Implementations must not
// call back into the session tracker: the hook is always invoked outside the
// session lock and must stay out of it.
type Notifier interface {
	Notify(title, body string)
}

// LogNotifier writes notifications to the structured log. It is the default
// when no desktop delivery mechanism is wired in.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notify").Logger()}
}

func (n *LogNotifier) Notify(title, body string) {
	n.logger.Info().Str("title", title).Str("body", body).Msg("notification")
}
