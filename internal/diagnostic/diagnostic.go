// Package diagnostic implements the diagnostic engine for the pyrite
// checker: collection, filtering, stable ordering and rendering of
// errors and warnings. Reporting a diagnostic never interrupts the
// checking pass.
package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pyrite-dev/pyrite/internal/position"
)

// Level represents the severity level of a diagnostic message.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelHint
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Category represents the category of a diagnostic.
type Category int

const (
	CategorySyntax Category = iota
	CategoryType
	CategorySemantic
	CategoryStyle
)

func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategoryType:
		return "type"
	case CategorySemantic:
		return "semantic"
	case CategoryStyle:
		return "style"
	default:
		return "unknown"
	}
}

// Diagnostic codes reported by pyrite.
const (
	CodeUnexpectedToken  = "E1001" // syntax: token did not match the grammar
	CodeInvalidCharacter = "E1002" // syntax: lexical error
	CodeUndefinedName    = "E2001" // semantic: reference to an unknown name
	CodeIllegalAliasCall = "E3002" // type: call target is a non-constructible type alias
)

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Message  string        `json:"message,omitempty"`
	Span     position.Span `json:"span"`
	Level    Level         `json:"level"`
	Category Category      `json:"category"`
}

// Builder constructs diagnostics with a fluent API.
type Builder struct {
	d *Diagnostic
}

// New creates a new diagnostic builder.
func New() *Builder {
	return &Builder{d: &Diagnostic{}}
}

func (b *Builder) Error() *Builder   { b.d.Level = LevelError; return b }
func (b *Builder) Warning() *Builder { b.d.Level = LevelWarning; return b }
func (b *Builder) Info() *Builder    { b.d.Level = LevelInfo; return b }
func (b *Builder) Hint() *Builder    { b.d.Level = LevelHint; return b }

func (b *Builder) Syntax() *Builder   { b.d.Category = CategorySyntax; return b }
func (b *Builder) Type() *Builder     { b.d.Category = CategoryType; return b }
func (b *Builder) Semantic() *Builder { b.d.Category = CategorySemantic; return b }
func (b *Builder) Style() *Builder    { b.d.Category = CategoryStyle; return b }

func (b *Builder) Code(code string) *Builder { b.d.Code = code; return b }

func (b *Builder) Title(title string) *Builder { b.d.Title = title; return b }

func (b *Builder) Message(format string, args ...interface{}) *Builder {
	b.d.Message = fmt.Sprintf(format, args...)
	return b
}

func (b *Builder) Span(span position.Span) *Builder { b.d.Span = span; return b }

func (b *Builder) Build() *Diagnostic { return b.d }

// Config controls which diagnostics an Engine keeps.
type Config struct {
	IgnoreCodes      []string
	MaxErrors        int // 0 means unlimited
	WarningsAsErrors bool
}

// Engine collects diagnostics during a checking pass. It is the
// Diagnostic Sink of the checker: reporting is fire and forget.
type Engine struct {
	diagnostics []Diagnostic
	config      Config
	truncated   bool
}

// NewEngine creates a new engine with the given config.
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Report adds a diagnostic to the engine, subject to the config.
func (e *Engine) Report(d *Diagnostic) {
	if e.truncated || e.shouldIgnore(d) {
		return
	}

	if e.config.WarningsAsErrors && d.Level == LevelWarning {
		d.Level = LevelError
	}

	e.diagnostics = append(e.diagnostics, *d)

	if e.config.MaxErrors > 0 && len(e.Errors()) >= e.config.MaxErrors {
		e.truncated = true
		e.diagnostics = append(e.diagnostics, Diagnostic{
			Code:    "E0001",
			Title:   "too many errors",
			Message: fmt.Sprintf("stopping after %d errors", e.config.MaxErrors),
			Level:   LevelError,
		})
	}
}

func (e *Engine) shouldIgnore(d *Diagnostic) bool {
	for _, code := range e.config.IgnoreCodes {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Diagnostics returns all collected diagnostics in reported order.
func (e *Engine) Diagnostics() []Diagnostic {
	return e.diagnostics
}

// Errors returns only error-level diagnostics.
func (e *Engine) Errors() []Diagnostic {
	var errs []Diagnostic
	for _, d := range e.diagnostics {
		if d.Level == LevelError {
			errs = append(errs, d)
		}
	}
	return errs
}

// HasErrors returns true if any error-level diagnostic was reported.
func (e *Engine) HasErrors() bool {
	return len(e.Errors()) > 0
}

// Clear removes all diagnostics, keeping the config.
func (e *Engine) Clear() {
	e.diagnostics = e.diagnostics[:0]
	e.truncated = false
}

// Sort orders diagnostics by file, position, then severity. Reporting
// order between independent call sites is unspecified, so rendering
// always sorts first to keep output stable.
func (e *Engine) Sort() {
	sort.SliceStable(e.diagnostics, func(i, j int) bool {
		a, b := e.diagnostics[i], e.diagnostics[j]
		if a.Span.Start.Filename != b.Span.Start.Filename {
			return a.Span.Start.Filename < b.Span.Start.Filename
		}
		if a.Span.Start.Offset != b.Span.Start.Offset {
			return a.Span.Start.Offset < b.Span.Start.Offset
		}
		return a.Level < b.Level
	})
}

// Format renders all diagnostics plus a summary line. When color is
// true, levels are highlighted with ANSI escapes.
func (e *Engine) Format(color bool) string {
	if len(e.diagnostics) == 0 {
		return ""
	}

	e.Sort()

	var sb strings.Builder
	for _, d := range e.diagnostics {
		sb.WriteString(formatOne(&d, color))
		sb.WriteString("\n")
	}
	sb.WriteString(e.summary())
	return sb.String()
}

func formatOne(d *Diagnostic, color bool) string {
	level := d.Level.String()
	if color {
		switch d.Level {
		case LevelError:
			level = "\x1b[31m" + level + "\x1b[0m"
		case LevelWarning:
			level = "\x1b[33m" + level + "\x1b[0m"
		}
	}

	var sb strings.Builder
	if d.Span.IsValid() {
		fmt.Fprintf(&sb, "%s:%d:%d: ", d.Span.Start.Filename, d.Span.Start.Line, d.Span.Start.Column)
	}
	fmt.Fprintf(&sb, "%s[%s]: %s", level, d.Code, d.Title)
	if d.Message != "" {
		fmt.Fprintf(&sb, "\n  %s", d.Message)
	}
	return sb.String()
}

func (e *Engine) summary() string {
	errorCount := len(e.Errors())
	warningCount := 0
	for _, d := range e.diagnostics {
		if d.Level == LevelWarning {
			warningCount++
		}
	}

	var parts []string
	if errorCount > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errorCount))
	}
	if warningCount > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warningCount))
	}
	if len(parts) == 0 {
		return "no issues found"
	}
	return "found " + strings.Join(parts, ", ")
}
