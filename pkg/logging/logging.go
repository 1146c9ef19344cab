// Package logging provides the structured logger shared by every component
// in this module. It wraps logrus so that callers attach fields (component,
// ack_id, net_id, game_id, client_id, error) instead of formatting strings.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a component-scoped logrus entry.
type Logger = logrus.Entry

// Fields is shorthand for the field map passed to WithFields.
type Fields = logrus.Fields

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel adjusts the base logger's verbosity; valid values are the
// logrus level names (e.g. "debug", "info", "warn").
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	base.SetLevel(lvl)
	return nil
}

// For returns a logger scoped to the given component name, e.g.
// logging.For("transport") or logging.For("session").
func For(component string) *Logger {
	return base.WithField("component", component)
}
