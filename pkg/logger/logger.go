// Package logger defines the leveled logging contract used by the module's
// adapters and a default implementation backed by logrus. The ledger core
// itself stays silent; logging is an adapter concern.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the logging contract adapters accept.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	WithField(key string, value interface{}) Logger
}

// DefaultLogger implements Logger with logrus.
type DefaultLogger struct {
	entry *logrus.Entry
}

// New creates a DefaultLogger at the given level. Unknown levels fall back
// to info.
func New(level string) *DefaultLogger {
	parsedLevel, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsedLevel = logrus.InfoLevel
	}

	logrusLogger := logrus.New()
	logrusLogger.SetOutput(os.Stderr)
	logrusLogger.SetLevel(parsedLevel)
	logrusLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &DefaultLogger{entry: logrus.NewEntry(logrusLogger)}
}

func (defaultLogger *DefaultLogger) Debugf(template string, args ...interface{}) {
	defaultLogger.entry.Debugf(template, args...)
}

func (defaultLogger *DefaultLogger) Infof(template string, args ...interface{}) {
	defaultLogger.entry.Infof(template, args...)
}

func (defaultLogger *DefaultLogger) Warnf(template string, args ...interface{}) {
	defaultLogger.entry.Warnf(template, args...)
}

func (defaultLogger *DefaultLogger) Errorf(template string, args ...interface{}) {
	defaultLogger.entry.Errorf(template, args...)
}

// WithField returns a logger scoped with a structured field.
func (defaultLogger *DefaultLogger) WithField(key string, value interface{}) Logger {
	return &DefaultLogger{entry: defaultLogger.entry.WithField(key, value)}
}

// Nop is a Logger that discards everything.
type Nop struct{}

func (Nop) Debugf(template string, args ...interface{}) {}
func (Nop) Infof(template string, args ...interface{})  {}
func (Nop) Warnf(template string, args ...interface{})  {}
func (Nop) Errorf(template string, args ...interface{}) {}

func (nop Nop) WithField(key string, value interface{}) Logger { return nop }
