package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry carrying the service field.
type Logger struct {
	*logrus.Entry
}

// Options controls level and output format.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// NewLogger creates a JSON (or text) logger tagged with serviceName.
func NewLogger(serviceName string, opt Options) *Logger {
	log := logrus.New()

	if strings.EqualFold(opt.Format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	if opt.Output != nil {
		log.SetOutput(opt.Output)
	} else {
		log.SetOutput(os.Stdout)
	}

	level, err := logrus.ParseLevel(opt.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return &Logger{Entry: log.WithField("service", serviceName)}
}

// Discard returns a logger that writes nowhere. Used in tests.
func Discard() *Logger {
	return NewLogger("test", Options{Output: io.Discard})
}

// WithComponent adds a component field.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Entry: l.WithField("component", name)}
}
