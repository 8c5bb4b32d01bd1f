// Package logger configures the process-wide logrus logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"docket/internal/config"
)

// Setup applies level and format from cfg to the standard logrus logger.
// An unknown level falls back to info.
func Setup(cfg config.LogConfig) {
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if err != nil && cfg.Level != "" {
		logrus.WithField("level", cfg.Level).Warn("logger.Setup: unknown log level, using info")
	}
}
