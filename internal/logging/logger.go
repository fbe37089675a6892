package logging

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var base = newBase(os.Stderr)

func newBase(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// Configure sets the output and verbosity of the default logger. Verbose
// enables debug output, otherwise only warnings and errors are shown.
func Configure(out io.Writer, verbose bool) {
	base.SetOutput(out)
	if verbose {
		base.SetLevel(logrus.DebugLevel)
	} else {
		base.SetLevel(logrus.WarnLevel)
	}
}

// SetOutput redirects the default logger without changing its level
func SetOutput(out io.Writer) {
	base.SetOutput(out)
}

// Output returns the writer of the default logger
func Output() io.Writer {
	return base.Out
}

type logrusLogger struct {
	entry *logrus.Entry
}

func (l *logrusLogger) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *logrusLogger) Infof(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *logrusLogger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *logrusLogger) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

func (l *logrusLogger) WithField(key string, value any) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

// NewLogger returns a logger from the configured factory, falling back to
// the shared logrus logger
func NewLogger(ctx context.Context) Logger {
	factory := GetLoggerFactory()
	if factory != nil {
		return factory.CreateLogger(ctx)
	}

	return &logrusLogger{entry: base.WithContext(ctx)}
}
