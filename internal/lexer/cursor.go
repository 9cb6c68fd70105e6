package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/pipe01/akhamoth/internal/source"
)

// Cursor is the raw scanner behind Lexer. It yields every token, whitespace
// included, and never fails: malformed input comes back as tokens carrying
// an error payload.
type Cursor struct {
	input string
	base  uint32

	// byte offset of the next unconsumed rune
	pos int
	// byte offset where the current token started
	start int
}

// NewCursor scans input, reporting spans relative to the global offset base.
func NewCursor(input string, base uint32) *Cursor {
	return &Cursor{
		input: input,
		base:  base,
	}
}

func (c *Cursor) isEOF() bool {
	return c.pos >= len(c.input)
}

// peek returns the next rune without consuming it, or 0 at the end of input.
func (c *Cursor) peek() rune {
	if c.isEOF() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(c.input[c.pos:])
	return r
}

func (c *Cursor) bump() (r rune, ok bool) {
	if c.isEOF() {
		return 0, false
	}

	r, size := utf8.DecodeRuneInString(c.input[c.pos:])
	c.pos += size

	return r, true
}

func (c *Cursor) eatWhile(pred func(rune) bool) {
	for !c.isEOF() && pred(c.peek()) {
		c.bump()
	}
}

func (c *Cursor) tokenText() string {
	return c.input[c.start:c.pos]
}

// Next scans one token. ok is false once the input is exhausted.
func (c *Cursor) Next() (tk Token, ok bool) {
	c.start = c.pos

	first, ok := c.bump()
	if !ok {
		return Token{}, false
	}

	switch {
	case isWhitespace(first):
		c.eatWhile(isWhitespace)
		tk = Token{Kind: KindWhitespace}

	case isIDStart(first):
		c.eatWhile(isIDContinue)
		tk = Token{Kind: KindIdent, Text: c.tokenText()}

	case first >= '0' && first <= '9':
		tk = c.number(first)

	case first == '"':
		tk = c.stringLiteral()

	default:
		tk = c.punct(first)
	}

	tk.Span = source.NewSpan(c.base+uint32(c.start), uint32(c.pos-c.start))

	return tk, true
}

func (c *Cursor) punct(first rune) Token {
	switch first {
	case '/':
		if c.peek() == '/' {
			c.eatWhile(func(r rune) bool { return r != '\n' })
			return Token{Kind: KindComment, Text: trimCR(c.input[c.start+2 : c.pos])}
		}
		return operator(OpDiv)

	case '|':
		return Token{Kind: KindPipe}
	case ',':
		return Token{Kind: KindComma}
	case ':':
		return Token{Kind: KindColon}
	case ';':
		return Token{Kind: KindSemicolon}

	case '(':
		return Token{Kind: KindOpenDelim, Delim: DelimParen}
	case '[':
		return Token{Kind: KindOpenDelim, Delim: DelimBracket}
	case '{':
		return Token{Kind: KindOpenDelim, Delim: DelimBrace}
	case ')':
		return Token{Kind: KindCloseDelim, Delim: DelimParen}
	case ']':
		return Token{Kind: KindCloseDelim, Delim: DelimBracket}
	case '}':
		return Token{Kind: KindCloseDelim, Delim: DelimBrace}

	case '+':
		return operator(OpPlus)
	case '*':
		return operator(OpMul)
	case '.':
		return operator(OpDot)
	case '%':
		return operator(OpPercent)

	case '-':
		if c.peek() == '>' {
			c.bump()
			return operator(OpArrow)
		}
		return operator(OpMinus)

	case '=':
		if c.peek() == '>' {
			c.bump()
			return operator(OpFatArrow)
		}
		return operator(OpEquals)
	}

	// batch the whole run so it only produces one diagnostic
	c.eatWhile(isUnknown)
	return Token{Kind: KindUnrecognized, Text: c.tokenText()}
}

func operator(op Operator) Token {
	return Token{Kind: KindOperator, Op: op}
}

func (c *Cursor) number(first rune) Token {
	radix := 10
	digitsStart := c.start

	if first == '0' {
		switch c.peek() {
		case 'b':
			radix = 2
		case 'o':
			radix = 8
		case 'x':
			radix = 16
		}

		if radix != 10 {
			c.bump()
			digitsStart = c.pos
		}
	}

	for {
		r := c.peek()

		if r == '_' || isDigit(r, radix) {
			c.bump()
		} else if isIDContinue(r) {
			// swallow the rest so the tail doesn't come back as an identifier
			c.eatWhile(isIDContinue)

			return Token{
				Kind: KindInt,
				IntErr: &ParseIntError{
					Reason: IntInvalidDigit,
					Char:   r,
					Radix:  radix,
				},
			}
		} else {
			break
		}
	}

	val, err := parseDigits(c.input[digitsStart:c.pos], radix)

	return Token{
		Kind:   KindInt,
		Int:    val,
		IntErr: err,
	}
}

func (c *Cursor) stringLiteral() Token {
	contentStart := c.pos

	for {
		r, ok := c.bump()
		if !ok {
			break
		}

		switch r {
		case '"':
			return Token{Kind: KindString, Text: c.input[contentStart : c.pos-1]}

		case '\\':
			if next := c.peek(); next == '\\' || next == '"' {
				c.bump()
			}
		}
	}

	// Unclosed, resume lexing on the next line
	c.pos = contentStart
	c.eatWhile(func(r rune) bool { return r != '\n' })

	return Token{
		Kind:     KindString,
		Text:     trimCR(c.input[contentStart:c.pos]),
		Unclosed: true,
	}
}

// trimCR drops the '\r' of a CRLF line ending from token text. The span still
// covers it.
func trimCR(s string) string {
	return strings.TrimSuffix(s, "\r")
}
