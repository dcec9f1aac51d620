package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds application-specific configuration.
type AppConfig struct {
	RetryInterval   time.Duration `mapstructure:"retry_interval"`
	AnnounceStartup bool          `mapstructure:"announce_startup"`
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// NotifyConfig holds the webhook delivery configuration.
type NotifyConfig struct {
	WebhookURL       string        `mapstructure:"webhook_url"`
	NotificationRole string        `mapstructure:"notification_role"`
	Timeout          time.Duration `mapstructure:"timeout"`
	DryRun           bool          `mapstructure:"dry_run"`
}

// MetricsConfig holds the Prometheus listener configuration.
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// Config is the top-level configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Logging LoggingConfig `mapstructure:"log"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Environment names kept compatible with existing deployments of the monitor.
var envAliases = map[string][]string{
	"log.file":                 {"LOG_LOCATION", "LOG_LOCATIION"},
	"notify.webhook_url":       {"DISCORD_WEBHOOK"},
	"notify.notification_role": {"DISCORD_NOTIFICATION_ROLE"},
	"notify.timeout":           {"NOTIFY_TIMEOUT"},
	"notify.dry_run":           {"NOTIFY_DRY_RUN"},
	"app.retry_interval":       {"RETRY_INTERVAL"},
	"app.announce_startup":     {"ANNOUNCE_STARTUP"},
	"metrics.listen":           {"METRICS_LISTEN"},
}

// New returns a viper instance with defaults and environment bindings applied.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("app.retry_interval", 5*time.Second)
	v.SetDefault("app.announce_startup", true)
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.compress", false)
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.notification_role", "")
	v.SetDefault("notify.timeout", time.Duration(0))
	v.SetDefault("notify.dry_run", false)
	v.SetDefault("metrics.listen", "")

	for key, names := range envAliases {
		_ = v.BindEnv(append([]string{key}, names...)...)
	}

	// Enable automatic environment variable binding.
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// ReadFiles reads the optional YAML config file and the optional dotenv file.
// An empty configFile falls back to ./config.yaml, which may be absent.
// Variables from envFile never override ones already present in the environment.
func ReadFiles(v *viper.Viper, configFile, envFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if envFile == "" {
		return nil
	}
	if err := LoadEnvFile(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading env file: %w", err)
	}
	return nil
}

// LoadEnvFile exports the KEY=VALUE pairs of a dotenv file into the process
// environment, skipping keys that are already set.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	ev := viper.New()
	ev.SetConfigFile(path)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return err
	}
	for _, key := range ev.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, ev.GetString(key)); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}

// Load unmarshals the configuration into the Config struct.
func Load(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if config.App.RetryInterval <= 0 {
		return nil, fmt.Errorf("app.retry_interval must be positive, got %s", config.App.RetryInterval)
	}
	return &config, nil
}
