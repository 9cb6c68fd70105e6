// Package diagnostics defines how the front end reports problems. The
// compiler only decides when a diagnostic is raised and what it points at,
// formatting and counting is up to the Emitter the driver plugs in.
package diagnostics

import (
	"fmt"

	"github.com/pipe01/akhamoth/internal/source"
)

type Level int

const (
	Error Level = iota
	Warning
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}

	return "unknown"
}

// Context is what a diagnostic points at: either a span, resolved through the
// SourceMap when the diagnostic is displayed, or just a file path when there
// is no span yet (e.g. the file failed to load).
type Context struct {
	span   source.Span
	path   string
	isSpan bool
}

func SpanContext(span source.Span) Context {
	return Context{span: span, isSpan: true}
}

func FileContext(path string) Context {
	return Context{path: path}
}

func (c Context) IsSpan() bool {
	return c.isSpan
}

func (c Context) Span() source.Span {
	return c.span
}

func (c Context) Path() string {
	return c.path
}

// Resolve renders the context as path:line:col, or the bare path.
func (c Context) Resolve(sm *source.SourceMap) string {
	if !c.isSpan {
		return c.path
	}

	loc, err := sm.SpanToLocation(c.span)
	if err != nil {
		return fmt.Sprintf("<offset %d>", c.span.Lo)
	}

	return loc.String()
}

// Emitter receives diagnostics. Code that raises diagnostics takes it as a
// type parameter so drivers keep their own state in the concrete sink.
type Emitter interface {
	Error(msg string, ctx Context)
	Warn(msg string, ctx Context)
}

type Diagnostic struct {
	Level   Level
	Message string
	Context Context
}

// Collector buffers every diagnostic it receives.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Error(msg string, ctx Context) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Level: Error, Message: msg, Context: ctx})
}

func (c *Collector) Warn(msg string, ctx Context) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Level: Warning, Message: msg, Context: ctx})
}

func (c *Collector) Count(level Level) (n int) {
	for _, d := range c.Diagnostics {
		if d.Level == level {
			n++
		}
	}
	return
}

func (c *Collector) Reset() {
	c.Diagnostics = c.Diagnostics[:0]
}
