// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"grapher/internal/buildinfo"
)

// VersionKey is attached to every entry from the root logger.
const VersionKey = "version"

// Config selects level and formatter.
type Config struct {
	Level  string
	Format string
}

// New returns a logger writing to w. Format is "text" or "json".
func New(c Config, w io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(w)

	lvl := c.Level
	if lvl == "" {
		lvl = "info"
	}
	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l.SetLevel(level)

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return nil, fmt.Errorf("log format: unknown %q", c.Format)
	}
	return l, nil
}

// Entry is the root entry carrying the build version.
func Entry(l *logrus.Logger) *logrus.Entry {
	return l.WithField(VersionKey, buildinfo.Short())
}

// Discard returns a logger that drops everything, for tests and one-shot tools.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
