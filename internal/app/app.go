package app

import (
	"context"
	"fmt"
	"time"

	"github.com/auto-dns/docker-event-notifier/internal/config"
	"github.com/auto-dns/docker-event-notifier/internal/core"
	"github.com/auto-dns/docker-event-notifier/internal/event"
	"github.com/auto-dns/docker-event-notifier/internal/metrics"
	"github.com/auto-dns/docker-event-notifier/internal/notify"
	dockerCli "github.com/docker/docker/client"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type App struct {
	dockerClient  *dockerCli.Client
	monitor       *core.Monitor
	metricsServer *metrics.Server
	logger        zerolog.Logger
}

// New creates a new App by wiring up all dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	// Docker CLI
	dockerClient, err := dockerCli.NewClientWithOpts(dockerCli.FromEnv, dockerCli.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	gen := event.NewDockerGenerator(dockerClient, logger)

	// Webhook
	if cfg.Notify.WebhookURL == "" && !cfg.Notify.DryRun {
		logger.Warn().Msg("No webhook URL configured; every notification will fail to send")
	}
	if cfg.Notify.NotificationRole == "" {
		logger.Warn().Msg("No notification role configured")
	}
	n := notify.New(&cfg.Notify)

	// Metrics
	var metricsServer *metrics.Server
	if cfg.Metrics.Listen != "" {
		if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
			_ = dockerClient.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		metricsServer = metrics.NewServer(cfg.Metrics.Listen, logger)
	}

	mon := core.NewMonitor(logger, &cfg.App, gen, n)

	return &App{
		dockerClient:  dockerClient,
		monitor:       mon,
		metricsServer: metricsServer,
		logger:        logger,
	}, nil
}

// Run starts the metrics listener, if any, and runs the monitor until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("Application starting")
	if a.metricsServer != nil {
		a.metricsServer.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn().Err(err).Msg("Error shutting down metrics server")
			}
		}()
	}
	return a.monitor.Run(ctx)
}

func (a *App) Close() error {
	if a.dockerClient != nil {
		if err := a.dockerClient.Close(); err != nil {
			return fmt.Errorf("close docker client: %w", err)
		}
	}
	return nil
}
