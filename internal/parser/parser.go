package parser

import (
	"github.com/pipe01/akhamoth/internal/diagnostics"
	"github.com/pipe01/akhamoth/internal/lexer"
)

const (
	msgUnclosedString = "unclosed string literal"
	msgUnrecognized   = "unrecognized token"
)

type parser[E diagnostics.Emitter] struct {
	lx   *lexer.Lexer
	emit E

	tokens int
}

// Check drains the token stream and reports one error per malformed token.
// It returns the number of tokens that were read.
func Check[E diagnostics.Emitter](lx *lexer.Lexer, emit E) int {
	p := parser[E]{
		lx:   lx,
		emit: emit,
	}

	for {
		tk, ok := p.lx.Next()
		if !ok {
			break
		}

		p.tokens++
		p.checkToken(&tk)
	}

	return p.tokens
}

func (p *parser[E]) checkToken(tk *lexer.Token) {
	ctx := diagnostics.SpanContext(tk.Span)

	switch tk.Kind {
	case lexer.KindString:
		if tk.Unclosed {
			p.emit.Error(msgUnclosedString, ctx)
		}

	case lexer.KindInt:
		if tk.IntErr != nil {
			p.emit.Error(tk.IntErr.Error(), ctx)
		}

	case lexer.KindUnrecognized:
		p.emit.Error(msgUnrecognized, ctx)
	}
}
