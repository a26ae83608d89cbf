// Package logger configures the shared logrus logger for the CLI and the
// daemon. The chunk codec itself never logs; failures there surface as
// errors to the caller.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to stderr at the given level. Unknown level
// strings fall back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// Quiet returns a logger that discards everything, for non-verbose CLI runs
func Quiet() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
