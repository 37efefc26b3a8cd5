package clog

import (
	"io"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// Setup routes the global apex/log logger through a Handler writing to w, at
// the named level ("debug", "info", "warn", "error" or "fatal"). An empty
// level means DefaultLevel.
func Setup(w io.Writer, level string) error {
	if level == "" {
		level = DefaultLevel
	}

	l, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}

	log.SetHandler(NewHandler(w))
	log.SetLevel(l)

	return nil
}
