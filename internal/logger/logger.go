// Package logger owns the process-wide logrus logger.
//
// Logs go to stderr: in stdio mode stdout carries the MCP stream.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var root = newRoot()

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Root returns the shared logger.
func Root() *logrus.Logger {
	return root
}

// Setup applies level and format ("text" or "json"). Unknown levels fall back to info.
func Setup(level, format string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	root.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		root.SetFormatter(&logrus.JSONFormatter{})
	} else {
		root.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// SetOutput redirects the shared logger, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := root.Out
	root.SetOutput(w)
	return prev
}

// With returns an entry tagged with a component name.
func With(component string) *logrus.Entry {
	return root.WithField("component", component)
}
