package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/goaltrack/goaltrack/internal/log"
)

type logger struct {
	*logrus.Entry
}

// NewLogrus returns a new log.Logger for a logrus implementation.
func NewLogrus(l *logrus.Entry) log.Logger {
	return logger{Entry: l}
}

func (l logger) Warningf(format string, args ...any) { l.Warnf(format, args...) }

func (l logger) WithValues(kv map[string]any) log.Logger {
	newLogger := l.Entry.WithFields(kv)
	return logger{Entry: newLogger}
}
