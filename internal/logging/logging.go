// Package logging builds the logrus logger shared by the commands.
package logging

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// New returns a text logger writing to w. quiet raises the level to warn
// unless level is already stricter.
func New(w io.Writer, level string, quiet bool) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		if lvl, err = log.ParseLevel(level); err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", level)
		}
	}
	if quiet && lvl > log.WarnLevel {
		lvl = log.WarnLevel
	}

	l := log.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetReportCaller(false)
	l.SetFormatter(&log.TextFormatter{
		DisableTimestamp:       true,
		DisableColors:          true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}
