// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns a slog logger backed by a charmbracelet/log handler that
// writes to w. Verbose enables debug output.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "routec",
		Level:  level,
	})
	return slog.New(handler)
}
