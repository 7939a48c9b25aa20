package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwalczak/flatbatch/document"
)

var (
	errLineStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
	errPointerStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
)

// ErrorRenderer renders operation failures with the offending source line
// when one can be named.
type ErrorRenderer struct {
	lines []string
}

// NewErrorRenderer creates a renderer over the document's source text.
func NewErrorRenderer(source, delimiter string) *ErrorRenderer {
	r := &ErrorRenderer{}
	if source != "" {
		r.lines = strings.Split(strings.TrimSpace(source), delimiter)
	}
	return r
}

// Render formats an error, appending the offending line when the error
// carries a line index that falls inside the source.
func (r *ErrorRenderer) Render(err error) string {
	var validation *document.ValidationError
	if !errors.As(err, &validation) {
		return err.Error()
	}

	line := validation.GetLine()
	if line < 0 || line >= len(r.lines) {
		return err.Error()
	}

	var buf strings.Builder
	buf.WriteString(err.Error())
	buf.WriteString("\n\n")
	buf.WriteString(errPointerStyle.Render("> "))
	buf.WriteString(errLineStyle.Render(r.lines[line]))

	return buf.String()
}
