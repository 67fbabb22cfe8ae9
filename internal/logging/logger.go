package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"stream-token-backend/internal/config"
)

// Configure applies the logging config to the standard logrus logger.
func Configure(cfg config.LoggingConfig) {
	apply(logrus.StandardLogger(), cfg, os.Stdout)
}

// New builds a standalone logger, mostly for tests that need to capture output.
func New(cfg config.LoggingConfig, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	apply(logger, cfg, out)
	return logger
}

func apply(logger *logrus.Logger, cfg config.LoggingConfig, out io.Writer) {
	logger.SetOutput(out)
	logger.SetLevel(parseLevel(cfg.Level))

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
