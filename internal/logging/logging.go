// Package logging wraps a single structured logger for the recovery log
// manager, the way the teacher wraps a single *LogManager/*Writer: one
// constructor, no global mutable logger outside this factory.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options controls the logger New builds.
type Options struct {
	// Level is one of logrus's level strings (debug, info, warn, error).
	// Defaults to "info" if empty or unrecognized.
	Level string
	// JSON selects structured JSON output instead of the default text
	// formatter; useful when log output is shipped to a collector.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New builds a *logrus.Logger per opts.
func New(opts Options) *logrus.Logger {
	log := logrus.New()

	if opts.Output != nil {
		log.SetOutput(opts.Output)
	} else {
		log.SetOutput(os.Stderr)
	}

	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
