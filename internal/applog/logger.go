// Package applog configures the structured logger used by the CLI. Loggers are created, not global, so tests and concurrent
// batch runs never fight over shared state.
package applog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options configures a New logger.
type Options struct {
	Level  string // "trace", "debug", "info", "warn", "error"; defaults to "info"
	JSON   bool   // structured JSON output instead of text
	Output io.Writer
}

// New builds a *logrus.Logger from Options. An unrecognized Level falls back
// to info rather than erroring, since log verbosity should never be a reason
// a run refuses to start.
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

// WithRun returns a logger entry tagged with a run correlation id, used to
// tie together every log line a single reflow invocation produces.
func WithRun(log *logrus.Logger, runID string) *logrus.Entry {
	return log.WithField("run_id", runID)
}
