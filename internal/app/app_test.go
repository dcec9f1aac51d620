package app

import (
	"testing"
	"time"

	"github.com/auto-dns/docker-event-notifier/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresWithoutContactingDaemon(t *testing.T) {
	t.Setenv("DOCKER_HOST", "unix:///nonexistent/docker.sock")

	cfg := &config.Config{
		App:    config.AppConfig{RetryInterval: 5 * time.Second},
		Notify: config.NotifyConfig{DryRun: true},
	}
	a, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.NotNil(t, a.monitor)
	assert.Nil(t, a.metricsServer)
	assert.NoError(t, a.Close())
}

func TestNew_MetricsServerWhenListenSet(t *testing.T) {
	t.Setenv("DOCKER_HOST", "unix:///nonexistent/docker.sock")

	cfg := &config.Config{
		App:     config.AppConfig{RetryInterval: 5 * time.Second},
		Metrics: config.MetricsConfig{Listen: "127.0.0.1:0"},
	}
	a, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.metricsServer)
}
