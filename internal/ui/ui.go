package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode determines how output should be formatted
type OutputMode int

const (
	// OutputModeInteractive enables full colors, spinners, and progress bars
	OutputModeInteractive OutputMode = iota
	// OutputModePlain disables colors and progress (for piped output)
	OutputModePlain
	// OutputModeDocument writes a data or document format only
	OutputModeDocument
)

// UI provides a unified interface for terminal output with TTY detection
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles
}

// New creates a new UI instance with automatic TTY detection
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
	}
}

// detectMode determines the output mode based on TTY and format flags
func detectMode(w io.Writer, format string) OutputMode {
	if format != "" && format != "terminal" {
		return OutputModeDocument
	}

	// Check if stdout is a terminal
	if f, ok := w.(*os.File); ok {
		if term.IsTerminal(int(f.Fd())) {
			return OutputModeInteractive
		}
	}

	return OutputModePlain
}

// IsInteractive returns true if the output is interactive (TTY)
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// IsDocument returns true if a data or document format is written
func (ui *UI) IsDocument() bool {
	return ui.Mode == OutputModeDocument
}

// Warn writes a styled warning to the error writer
func (ui *UI) Warn(format string, args ...any) {
	fmt.Fprintln(ui.ErrWriter, ui.Styles.Warning.Render(ui.Styles.IconWarning+" "+fmt.Sprintf(format, args...)))
}

// Infof writes a styled note to the error writer
func (ui *UI) Infof(format string, args ...any) {
	fmt.Fprintln(ui.ErrWriter, ui.Styles.Info.Render(ui.Styles.IconInfo+" "+fmt.Sprintf(format, args...)))
}
