package dump

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pipe01/akhamoth/internal/lexer"
	"github.com/pipe01/akhamoth/internal/source"
)

// Writer prints token streams in a tabular, human readable form.
type Writer struct {
	w  io.Writer
	sm *source.SourceMap
}

func New(w io.Writer, sm *source.SourceMap) *Writer {
	return &Writer{
		w:  w,
		sm: sm,
	}
}

func (w *Writer) WriteFile(f *source.SourceFile, tks []lexer.Token) error {
	fmt.Fprintf(w.w, "== %s\n", f.Path)

	tw := tabwriter.NewWriter(w.w, 0, 4, 2, ' ', 0)

	for _, tk := range tks {
		if err := w.writeToken(tw, tk); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func (w *Writer) writeToken(out io.Writer, tk lexer.Token) error {
	loc, err := w.sm.SpanToLocation(tk.Span)
	if err != nil {
		return fmt.Errorf("resolve token location: %w", err)
	}

	text, err := w.sm.SpanToString(tk.Span)
	if err != nil {
		return fmt.Errorf("resolve token text: %w", err)
	}

	spaced := ""
	if tk.Spaced {
		spaced = "spaced"
	}

	_, err = fmt.Fprintf(out, "%d:%d\t%s\t%s\t%q\n", loc.Line, loc.Col, tk, spaced, text)
	return err
}
