package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/auto-dns/docker-event-notifier/internal/app"
	"github.com/auto-dns/docker-event-notifier/internal/config"
	"github.com/auto-dns/docker-event-notifier/internal/logger"
)

type contextKey string

const configKey = contextKey("config")

var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "docker-event-notifier",
	Short: "Send chat notifications for Docker container lifecycle events",
	Long:  "Watches the Docker event stream and posts a webhook message whenever a container starts or dies.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := config.ReadFiles(v, configFile, envFile); err != nil {
			return err
		}
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		cmd.SetContext(ctx)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration.
		cfg := cmd.Context().Value(configKey).(*config.Config)

		// Set up logger.
		logInstance, logCloser, err := logger.SetupLogger(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to set up logger: %w", err)
		}
		defer logCloser.Close()

		// Create the application.
		var application application
		application, err = app.New(cfg, logInstance)
		if err != nil {
			return fmt.Errorf("failed to create app: %w", err)
		}
		defer func() {
			if err := application.Close(); err != nil {
				logInstance.Warn().Err(err).Msg("Error closing application")
			}
		}()

		// Create a context with cancellation for graceful shutdown.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Listen for OS signals.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			logInstance.Info().Msgf("Received signal: %v", sig)
			cancel()
		}()

		// Run the application. When context is canceled, Run returns.
		if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("app run error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file to load if present")
	rootCmd.PersistentFlags().String("log-level", "INFO", "set log level (e.g. INFO, DEBUG, WARN)")
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Execution error: %v\n", err)
		os.Exit(1)
	}
}
