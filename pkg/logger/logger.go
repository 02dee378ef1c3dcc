// Package logger builds the structured logger shared by every command.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New returns a logrus logger writing to stderr unless o.Output is set.
// An unparseable level falls back to warn.
func New(o Options) *logrus.Logger {
	log := logrus.New()
	if o.Output != nil {
		log.SetOutput(o.Output)
	} else {
		log.SetOutput(os.Stderr)
	}

	switch strings.ToLower(o.Format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		})
	}

	lvl, err := logrus.ParseLevel(o.Level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	log.SetLevel(lvl)
	return log
}

// Discard is a logger for tests and embedding that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
