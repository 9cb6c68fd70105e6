package diagnostics

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/pipe01/akhamoth/internal/source"
)

type styles struct {
	error   *color.Color
	warning *color.Color
	gutter  *color.Color
	message *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		error:   color.New(color.Bold, color.FgRed),
		warning: color.New(color.Bold, color.FgYellow),
		gutter:  color.New(color.Bold, color.FgBlue),
		message: color.New(color.Bold),
	}

	if !enabled {
		s.error.DisableColor()
		s.warning.DisableColor()
		s.gutter.DisableColor()
		s.message.DisableColor()
	}

	return s
}

// Printer writes every diagnostic to out as soon as it is received, followed
// by the offending source line when the context is a span.
type Printer struct {
	Errors, Warnings int

	out    io.Writer
	sm     *source.SourceMap
	styles *styles
}

func NewPrinter(out io.Writer, sm *source.SourceMap, useColor bool) *Printer {
	return &Printer{
		out:    out,
		sm:     sm,
		styles: newStyles(useColor),
	}
}

func (p *Printer) Error(msg string, ctx Context) {
	p.Errors++
	p.print(p.styles.error, Error, msg, ctx)
}

func (p *Printer) Warn(msg string, ctx Context) {
	p.Warnings++
	p.print(p.styles.warning, Warning, msg, ctx)
}

func (p *Printer) print(style *color.Color, level Level, msg string, ctx Context) {
	style.Fprint(p.out, level.String())
	fmt.Fprintf(p.out, ": %s: ", ctx.Resolve(p.sm))
	p.styles.message.Fprintln(p.out, msg)

	if ctx.IsSpan() {
		p.printSnippet(style, ctx.Span())
	}
}

func (p *Printer) printSnippet(style *color.Color, span source.Span) {
	loc, err := p.sm.SpanToLocation(span)
	if err != nil {
		return
	}

	line, err := loc.File.Line(loc.Line)
	if err != nil {
		return
	}

	prefix := line[:min(loc.Col-1, len(line))]
	marked := line[len(prefix):min(len(prefix)+int(span.Len), len(line))]

	// keep tabs so the caret lines up with the source line
	pad := strings.Map(func(r rune) rune {
		if r == '\t' {
			return '\t'
		}
		return ' '
	}, prefix)

	width := fmt.Sprint(loc.Line)
	gutter := strings.Repeat(" ", len(width))

	p.styles.gutter.Fprintf(p.out, "%s |\n", gutter)
	p.styles.gutter.Fprintf(p.out, "%s | ", width)
	fmt.Fprintln(p.out, line)
	p.styles.gutter.Fprintf(p.out, "%s | ", gutter)
	fmt.Fprint(p.out, pad)
	style.Fprintln(p.out, strings.Repeat("^", max(1, utf8.RuneCountInString(marked))))
}

// Summary writes the closing line of a compilation, if anything was reported.
func (p *Printer) Summary() {
	switch {
	case p.Errors > 0:
		p.styles.error.Fprint(p.out, "error")
		fmt.Fprintf(p.out, ": could not compile project due to %d previous errors; %d warnings emitted\n", p.Errors, p.Warnings)

	case p.Warnings > 0:
		p.styles.warning.Fprint(p.out, "warning")
		fmt.Fprintf(p.out, ": %d warnings emitted\n", p.Warnings)
	}
}
