// Package log builds the console logger used by the command line tools.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Options controls console output.
type Options struct {
	Quiet   bool // drop info lines, keep warnings and errors
	NoColor bool // force plain output even on a terminal
}

// New returns a zerolog logger writing human-readable lines to w.
// Color is used only when w is a terminal and NoColor is unset.
func New(w io.Writer, opts Options) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor || !IsTerminal(w),
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	level := zerolog.InfoLevel
	if opts.Quiet {
		level = zerolog.WarnLevel
	}
	return zerolog.New(cw).Level(level)
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
