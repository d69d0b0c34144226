// Package output renders human-facing CLI output for LearnTime.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ColorMode controls when styled output is used.
type ColorMode int

// Color modes.
const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Formatter writes styled or plain output depending on the destination.
type Formatter struct {
	Out       io.Writer
	ColorMode ColorMode
}

// NewFormatter creates a formatter writing to stdout.
func NewFormatter() *Formatter {
	return &Formatter{Out: os.Stdout}
}

// ColorEnabled reports whether styled output should be used.
func (f *Formatter) ColorEnabled() bool {
	switch f.ColorMode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if file, ok := f.Out.(*os.File); ok {
		return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}
	return false
}

// Styles used across commands.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	enabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Title renders a section heading.
func (f *Formatter) Title(s string) string {
	if !f.ColorEnabled() {
		return s
	}
	return titleStyle.Render(s)
}

// Good renders a positive status.
func (f *Formatter) Good(s string) string {
	if !f.ColorEnabled() {
		return s
	}
	return enabledStyle.Render(s)
}

// Muted renders de-emphasized text.
func (f *Formatter) Muted(s string) string {
	if !f.ColorEnabled() {
		return s
	}
	return mutedStyle.Render(s)
}

// Bad renders an error status.
func (f *Formatter) Bad(s string) string {
	if !f.ColorEnabled() {
		return s
	}
	return errorStyle.Render(s)
}

// Printf writes formatted output.
func (f *Formatter) Printf(format string, args ...any) {
	fmt.Fprintf(f.Out, format, args...)
}

// Println writes a line of output.
func (f *Formatter) Println(args ...any) {
	fmt.Fprintln(f.Out, args...)
}
