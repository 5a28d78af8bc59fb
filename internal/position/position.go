// Package position provides unified source code position tracking
// for the pyrite checker. Every token, AST node and diagnostic carries
// a Span so errors can be reported precisely and sorted stably.
package position

import (
	"fmt"
	"sort"
	"strings"
)

// Position represents a single point in source code.
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Offset   int    // 0-based byte offset in source
}

// IsValid returns true if the position is valid.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before returns true if this position comes before other.
// Positions in different files order by filename.
func (p Position) Before(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename < other.Filename
	}
	return p.Offset < other.Offset
}

// Span represents a half-open range of source code [Start, End).
type Span struct {
	Start Position
	End   Position
}

// IsValid returns true if the span is valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		s.Start.Offset <= s.End.Offset
}

// String returns a string representation of the span.
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s:%d-%d", s.Start.String(), s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s-%d:%d", s.Start.String(), s.End.Line, s.End.Column)
}

// Contains returns true if the span contains the given position.
func (s Span) Contains(pos Position) bool {
	if !s.IsValid() || !pos.IsValid() || s.Start.Filename != pos.Filename {
		return false
	}
	return s.Start.Offset <= pos.Offset && pos.Offset < s.End.Offset
}

// Union returns a span that encompasses both this span and other.
// Spans from different files cannot be merged; the receiver wins.
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() || s.Start.Filename != other.Start.Filename {
		return s
	}
	out := s
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if out.End.Before(other.End) {
		out.End = other.End
	}
	return out
}

// SourceFile holds the content of one source file together with a
// precomputed line-start index for offset/position conversion.
type SourceFile struct {
	Filename   string
	Content    string
	lineStarts []int // byte offset of the first character of each line
}

// NewSourceFile creates a new source file from content.
func NewSourceFile(filename, content string) *SourceFile {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceFile{
		Filename:   filename,
		Content:    content,
		lineStarts: starts,
	}
}

// LineCount returns the number of lines in the file.
func (sf *SourceFile) LineCount() int {
	return len(sf.lineStarts)
}

// Line returns the text of the given 1-based line without its trailing
// newline, or the empty string when the line number is out of range.
func (sf *SourceFile) Line(n int) string {
	if n < 1 || n > len(sf.lineStarts) {
		return ""
	}
	start := sf.lineStarts[n-1]
	end := len(sf.Content)
	if n < len(sf.lineStarts) {
		end = sf.lineStarts[n] - 1
	}
	return strings.TrimSuffix(sf.Content[start:end], "\r")
}

// PositionFor converts a byte offset into a Position using the line index.
func (sf *SourceFile) PositionFor(offset int) Position {
	if offset < 0 || offset > len(sf.Content) {
		return Position{}
	}
	line := sort.Search(len(sf.lineStarts), func(i int) bool {
		return sf.lineStarts[i] > offset
	})
	return Position{
		Filename: sf.Filename,
		Line:     line,
		Column:   offset - sf.lineStarts[line-1] + 1,
		Offset:   offset,
	}
}

// SpanText returns the text covered by the span, or "" when the span
// does not belong to this file.
func (sf *SourceFile) SpanText(span Span) string {
	if !span.IsValid() || span.Start.Filename != sf.Filename {
		return ""
	}
	if span.End.Offset > len(sf.Content) {
		return ""
	}
	return sf.Content[span.Start.Offset:span.End.Offset]
}

// SourceMap manages multiple source files.
type SourceMap struct {
	files map[string]*SourceFile
}

// NewSourceMap creates a new empty source map.
func NewSourceMap() *SourceMap {
	return &SourceMap{files: make(map[string]*SourceFile)}
}

// AddFile registers a source file and returns it.
func (sm *SourceMap) AddFile(filename, content string) *SourceFile {
	file := NewSourceFile(filename, content)
	sm.files[filename] = file
	return file
}

// File returns the registered file for filename, or nil.
func (sm *SourceMap) File(filename string) *SourceFile {
	return sm.files[filename]
}

// Filenames returns the registered filenames in sorted order.
func (sm *SourceMap) Filenames() []string {
	names := make([]string, 0, len(sm.files))
	for name := range sm.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
