package notify

import (
	"context"

	"github.com/auto-dns/docker-event-notifier/internal/config"
	"github.com/auto-dns/docker-event-notifier/internal/domain"
)

// Notifier delivers one notification to a chat destination.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// New returns the notifier described by cfg: a webhook sender, or Nop in dry-run mode.
func New(cfg *config.NotifyConfig) Notifier {
	if cfg.DryRun {
		return Nop{}
	}
	return NewDiscord(cfg, nil)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(_ context.Context, _ domain.Notification) error { return nil }
