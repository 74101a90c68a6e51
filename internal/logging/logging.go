package logging

import (
	"io"
	"os"

	"reservequeue/internal/config"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. An unknown level falls back to
// info.
func Setup(cfg config.LogConfig, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	logrus.SetOutput(out)

	switch cfg.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.WithField("level", cfg.Level).Warn("unknown log level, using info")
		return
	}
	logrus.SetLevel(level)
}
