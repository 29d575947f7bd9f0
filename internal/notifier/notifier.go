package notifier

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// Notifier surfaces a user-facing message. It replaces the browser's blocking alert.
type Notifier interface {
	Alert(ctx context.Context, text string) error
}

// LogNotifier writes alerts to the structured log.
type LogNotifier struct{}

// Alert logs text at warn level.
func (LogNotifier) Alert(_ context.Context, text string) error {
	log.Warn().Str("alert", text).Msg("user notification")
	return nil
}

// Multi fans an alert out to every notifier and joins their errors.
type Multi []Notifier

// Alert delivers text to every notifier, even after a failure.
func (m Multi) Alert(ctx context.Context, text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Alert(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps alerts in memory for inspection.
type Recorder struct {
	mu     sync.Mutex
	alerts []string
}

// Alert stores text.
func (r *Recorder) Alert(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, text)
	return nil
}

// Alerts returns a copy of the recorded messages.
func (r *Recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.alerts))
	copy(out, r.alerts)
	return out
}
