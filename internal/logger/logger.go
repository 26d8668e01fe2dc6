package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the process-wide logrus logger.
func Setup(level, format string) {
	logrus.SetOutput(os.Stdout)

	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, falling back to info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
