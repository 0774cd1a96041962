// Package log provides the logging interface used throughout the
// emulator, along with a logrus backed implementation.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

// Option configures a Logger created with New.
type Option func(*logrus.Logger)

// WithLevel sets the minimum level that will be emitted. Unknown
// level names fall back to info.
func WithLevel(level string) Option {
	return func(l *logrus.Logger) {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		l.SetLevel(lvl)
	}
}

// WithOutput redirects log output to w.
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

type logger struct {
	*logrus.Logger
}

// New returns a Logger that writes text formatted entries to stderr.
func New(opts ...Option) Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	}
	for _, opt := range opts {
		opt(l)
	}

	return &logger{Logger: l}
}

func (l *logger) Fatal(str string) {
	l.Logger.Fatal(str)
}
