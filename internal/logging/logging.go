// Package logging configures the structured logger shared by the commands
// and the animator.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const prefix = "cosmoviz"

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An unknown level is an error.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// Discard returns a logger that drops everything, for tests and library
// callers that do not pass one.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
