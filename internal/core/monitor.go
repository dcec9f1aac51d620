package core

import (
	"context"
	"errors"
	"time"

	"github.com/auto-dns/docker-event-notifier/internal/config"
	"github.com/auto-dns/docker-event-notifier/internal/domain"
	"github.com/auto-dns/docker-event-notifier/internal/event"
	"github.com/auto-dns/docker-event-notifier/internal/metrics"
	"github.com/auto-dns/docker-event-notifier/internal/notify"
	dockerCli "github.com/docker/docker/client"
	"github.com/rs/zerolog"
)

var errSubscriptionEnded = errors.New("docker event subscription ended")

// Monitor forwards container lifecycle events to a notifier, one at a time,
// and reopens the event subscription whenever it fails.
type Monitor struct {
	logger   zerolog.Logger
	cfg      *config.AppConfig
	gen      generator
	notifier notifier

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewMonitor(logger zerolog.Logger, cfg *config.AppConfig, gen generator, n notifier) *Monitor {
	return &Monitor{
		logger:   logger,
		cfg:      cfg,
		gen:      gen,
		notifier: n,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Run announces startup and then watches events until ctx is cancelled.
// Subscription failures never end Run; it always returns ctx.Err().
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info().Msg("Starting Docker event monitor...")

	if m.cfg.AnnounceStartup {
		m.deliver(ctx, BuildAnnouncement(m.now()))
	}

	for {
		err := m.watch(ctx)
		if ctx.Err() != nil {
			m.logger.Info().Msg("Docker event monitor shutting down")
			return ctx.Err()
		}
		if err == nil {
			err = errSubscriptionEnded
		}

		metrics.IncSubscriptionFailure()
		m.logSubscriptionError(err)

		if err := m.sleep(ctx, m.cfg.RetryInterval); err != nil {
			m.logger.Info().Msg("Docker event monitor shutting down")
			return err
		}
	}
}

func (m *Monitor) watch(ctx context.Context) error {
	events, errs := m.gen.Subscribe(ctx)
	m.logger.Debug().Msg("Subscribed to Docker events")
	for ev := range events {
		m.handleEvent(ctx, ev)
	}
	return <-errs
}

func (m *Monitor) handleEvent(ctx context.Context, ev domain.ContainerEvent) {
	n, ok := BuildNotification(ev, m.now())
	if !ok {
		return
	}
	metrics.IncEvent(string(ev.Action))
	m.logger.Info().Msgf("Container %s: %s (%s)", ev.Action, ev.Name, ev.ShortID())
	m.deliver(ctx, n)
}

// deliver sends n once. Failures are logged and dropped.
func (m *Monitor) deliver(ctx context.Context, n domain.Notification) {
	err := m.notifier.Notify(ctx, n)
	if err == nil {
		metrics.IncNotification(metrics.ResultSent)
		m.logger.Info().Msg("Notification sent successfully.")
		return
	}

	metrics.IncNotification(metrics.ResultFailed)
	var statusErr *notify.StatusError
	if errors.As(err, &statusErr) {
		m.logger.Error().Msgf("Failed to send notification: %d, %s", statusErr.StatusCode, statusErr.Body)
		return
	}
	m.logger.Error().Err(err).Msg("Error sending notification")
}

func (m *Monitor) logSubscriptionError(err error) {
	evt := m.logger.Error().Err(err).Dur("retry_in", m.cfg.RetryInterval)
	switch {
	case dockerCli.IsErrConnectionFailed(err):
		evt.Msg("Cannot connect to the Docker daemon")
	case errors.Is(err, event.ErrStreamClosed), errors.Is(err, errSubscriptionEnded):
		evt.Msg("Docker event stream closed")
	default:
		evt.Msg("Docker API error")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
