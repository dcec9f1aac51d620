package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/auto-dns/docker-event-notifier/internal/config"
	"github.com/rs/zerolog"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogger builds the process logger. When cfg.File is set, lines are
// appended to a rotating file; otherwise they go to stdout. The returned
// closer releases the file and must be called on shutdown.
func SetupLogger(cfg *config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	if cfg.File != "" {
		if err := checkWritable(cfg.File); err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
	}
	out, closer := Writer(cfg)
	return New(out, cfg.Level, cfg.File != ""), closer, nil
}

// checkWritable creates the log file (and its directory) up front, since
// lumberjack only opens it on the first write.
func checkWritable(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	return f.Close()
}

// Writer returns the destination for log lines described by cfg.
func Writer(cfg *config.LoggingConfig) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return os.Stdout, nopCloser{}
	}
	w := &lj.Logger{
		Filename:   cfg.File,
		MaxSize:    valOr(cfg.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valOr(cfg.MaxBackups, DefaultMaxBackups),
		MaxAge:     valOr(cfg.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   cfg.Compress,
	}
	return w, w
}

// New returns a line-oriented logger ("<time> <LEVEL> <message> key=value...")
// writing to out.
func New(out io.Writer, levelStr string, noColor bool) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:         out,
		NoColor:     noColor,
		TimeFormat:  "2006-01-02 15:04:05",
		FormatLevel: formatLevel,
	}

	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil || levelStr == "" {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}

	return zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Str("service", "docker_event_notifier").
		Str("host", hostname).
		Logger()
}

func formatLevel(i interface{}) string {
	if i == nil {
		return "-"
	}
	return strings.ToUpper(fmt.Sprintf("%-5s", i))
}

func valOr(v int, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
