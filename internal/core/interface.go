package core

import (
	"context"

	"github.com/auto-dns/docker-event-notifier/internal/domain"
)

type generator interface {
	Subscribe(ctx context.Context) (<-chan domain.ContainerEvent, <-chan error)
}

type notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}
