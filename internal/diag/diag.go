// Package diag prints severity-styled diagnostic lines for the CLI shell.
// Diagnostics go to stderr so the rendered table on stdout stays clean for
// piping. Quiet mode suppresses info and warning lines; errors always print.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Severity styles, shared with the interactive viewer's palette.
var (
	styleInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	styleErr  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5252")).Bold(true)
)

// Printer writes styled diagnostic lines.
type Printer struct {
	w     io.Writer
	quiet bool
	color bool
}

// New returns a Printer on stderr.
func New(quiet, color bool) *Printer {
	return &Printer{w: os.Stderr, quiet: quiet, color: color}
}

// NewWriter returns a Printer on an arbitrary writer.
func NewWriter(w io.Writer, quiet, color bool) *Printer {
	return &Printer{w: w, quiet: quiet, color: color}
}

// Infof prints an informational line unless quiet.
func (p *Printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	p.line(styleInfo, "info", format, args...)
}

// Warnf prints a warning line unless quiet.
func (p *Printer) Warnf(format string, args ...any) {
	if p.quiet {
		return
	}
	p.line(styleWarn, "warning", format, args...)
}

// Errorf prints an error line. Never suppressed.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styleErr, "error", format, args...)
}

func (p *Printer) line(style lipgloss.Style, level, format string, args ...any) {
	prefix := level + ":"
	if p.color {
		prefix = style.Render(prefix)
	}
	fmt.Fprintf(p.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
