package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"solparse/ast"
)

// Diagnostic is one reported finding: a stable id, a severity, the span
// it points at, and a human-readable message.
type Diagnostic struct {
	ID       int
	Severity Severity
	Span     ast.Span
	Message  string
}

// Reporter collects diagnostics in discovery order and renders them.
// It is owned by a single parse; it is not safe for concurrent use.
type Reporter struct {
	filename    string
	source      string
	lines       []string
	diagnostics []Diagnostic

	// excessiveErrorThreshold bounds how many errors (not warnings) a
	// parse will tolerate before recovery gives up and fatals rethrow
	// unconditionally. Zero means unlimited.
	excessiveErrorThreshold int
}

// NewReporter creates a reporter for a single source unit.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename:                filename,
		source:                  source,
		lines:                   strings.Split(source, "\n"),
		excessiveErrorThreshold: 100,
	}
}

// Warning records a warning-level diagnostic. Never aborts parsing.
func (r *Reporter) Warning(id int, span ast.Span, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{ID: id, Severity: Warning, Span: span, Message: message})
}

// Error records an error-level diagnostic. Parsing continues.
func (r *Reporter) Error(id int, span ast.Span, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{ID: id, Severity: Error, Span: span, Message: message})
}

// Fatal records a fatal-level diagnostic. The caller is responsible for
// unwinding (see parser.fatalParseError); Fatal itself only records.
func (r *Reporter) Fatal(id int, span ast.Span, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{ID: id, Severity: Fatal, Span: span, Message: message})
}

// Diagnostics returns every diagnostic recorded so far, in discovery
// order.
func (r *Reporter) Diagnostics() []Diagnostic { return r.diagnostics }

// HasErrors reports whether any Error or Fatal diagnostic was recorded.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity != Warning {
			return true
		}
	}
	return false
}

// ExcessiveErrors reports whether the error count has crossed the
// configured threshold, at which point recovery gives up (§7).
func (r *Reporter) ExcessiveErrors() bool {
	if r.excessiveErrorThreshold == 0 {
		return false
	}
	count := 0
	for _, d := range r.diagnostics {
		if d.Severity != Warning {
			count++
		}
	}
	return count >= r.excessiveErrorThreshold
}

func lineColumn(source string, offset int) (line, column int) {
	line, column = 1, 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return
}

// Render formats every diagnostic with Rust-style colorized output:
// a header, a "--> file:line:col" location, context lines, and a caret
// marker under the offending span.
func (r *Reporter) Render() string {
	var out strings.Builder
	for _, d := range r.diagnostics {
		out.WriteString(r.renderOne(d))
	}
	return out.String()
}

func (r *Reporter) renderOne(d Diagnostic) string {
	var out strings.Builder

	levelColor := severityColor(d.Severity)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	line, col := lineColumn(r.source, d.Span.Start)
	width := lineNumberWidth(line)
	indent := strings.Repeat(" ", width)

	out.WriteString(fmt.Sprintf("%s[%d]: %s\n", levelColor(d.Severity.String()), d.ID, d.Message))
	out.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, line, col))
	out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if line > 1 && line-1 <= len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n", dim(pad(line-1, width)), dim("│"), r.lines[line-2]))
	}
	if line >= 1 && line <= len(r.lines) {
		text := r.lines[line-1]
		out.WriteString(fmt.Sprintf("%s %s %s\n", bold(pad(line, width)), dim("│"), text))
		length := d.Span.End - d.Span.Start
		if length <= 0 {
			length = 1
		}
		marker := strings.Repeat(" ", col-1) + levelColor(strings.Repeat("^", length))
		out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}
	if line < len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n", dim(pad(line+1, width)), dim("│"), r.lines[line]))
	}
	out.WriteString("\n")
	return out.String()
}

func severityColor(s Severity) func(...interface{}) string {
	switch s {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func pad(n, width int) string {
	return fmt.Sprintf("%*d", width, n)
}
