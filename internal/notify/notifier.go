// Package notify delivers the one-time "showing sample data" warning.
package notify

import "log/slog"

// Notifier surfaces a fallback warning to the user-facing layer.
// Implementations must be non-blocking; the gateway calls Warn on the
// request path.
type Notifier interface {
	Warn(resource, message string)
}

// SlogNotifier logs the warning; the web frontend renders it as a toast.
type SlogNotifier struct {
	log *slog.Logger
}

// NewSlogNotifier creates a notifier on the given logger (nil = default).
func NewSlogNotifier(log *slog.Logger) *SlogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &SlogNotifier{log: log}
}

// Warn logs a single fallback warning.
func (n *SlogNotifier) Warn(resource, message string) {
	n.log.Warn("Serving sample data", "resource", resource, "detail", message)
}

// Noop discards warnings.
type Noop struct{}

// Warn does nothing.
func (Noop) Warn(string, string) {}
