package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

const application = "verification-api"

// New returns the process logger tagged with application and environment.
// Production output is JSON; anything else gets the text formatter.
// An unknown level falls back to info.
func New(out io.Writer, environment, level string) logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(out)
	if environment == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return l.WithFields(logrus.Fields{
		"application": application,
		"environment": environment,
	})
}
