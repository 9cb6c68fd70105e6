package lexer

import (
	"fmt"

	"github.com/pipe01/akhamoth/internal/source"
)

type Kind int

const (
	KindString Kind = iota
	KindInt
	KindIdent
	KindOpenDelim
	KindCloseDelim
	KindPipe
	KindComma
	KindColon
	KindSemicolon
	KindWhitespace
	KindOperator
	KindComment
	KindUnrecognized
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String literal"
	case KindInt:
		return "Int literal"
	case KindIdent:
		return "Identifier"
	case KindOpenDelim:
		return "Open delimiter"
	case KindCloseDelim:
		return "Close delimiter"
	case KindPipe:
		return "Pipe"
	case KindComma:
		return "Comma"
	case KindColon:
		return "Colon"
	case KindSemicolon:
		return "Semicolon"
	case KindWhitespace:
		return "Whitespace"
	case KindOperator:
		return "Operator"
	case KindComment:
		return "Comment"
	case KindUnrecognized:
		return "Unrecognized"
	}

	return "<unknown>"
}

type DelimKind int

const (
	DelimParen DelimKind = iota
	DelimBracket
	DelimBrace
)

func (d DelimKind) String() string {
	switch d {
	case DelimParen:
		return "Paren"
	case DelimBracket:
		return "Bracket"
	case DelimBrace:
		return "Brace"
	}

	return "<unknown>"
}

type Operator int

const (
	OpDot Operator = iota
	OpArrow
	OpFatArrow
	OpEquals
	OpPlus
	OpMinus
	OpDiv
	OpMul
	OpPercent
)

func (o Operator) String() string {
	switch o {
	case OpDot:
		return "."
	case OpArrow:
		return "->"
	case OpFatArrow:
		return "=>"
	case OpEquals:
		return "="
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpDiv:
		return "/"
	case OpMul:
		return "*"
	case OpPercent:
		return "%"
	}

	return "<unknown>"
}

// Token is a tagged union: Kind selects which of the payload fields is
// meaningful.
type Token struct {
	Kind Kind
	Span source.Span

	// Identifier, Comment and Unrecognized hold the raw source slice. String
	// literals hold their content without the quotes, escapes left as written.
	Text string
	// Unclosed is set on string literals that hit the end of input.
	Unclosed bool

	// Int literal payload, IntErr is non-nil when the literal is malformed.
	Int    int64
	IntErr *ParseIntError

	Delim DelimKind
	Op    Operator

	// Spaced is true if whitespace came right before this token.
	Spaced bool
}

func (t Token) String() string {
	switch t.Kind {
	case KindString:
		if t.Unclosed {
			return fmt.Sprintf("%s(%q, unclosed)", t.Kind, t.Text)
		}
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)

	case KindInt:
		if t.IntErr != nil {
			return fmt.Sprintf("%s(error: %s)", t.Kind, t.IntErr)
		}
		return fmt.Sprintf("%s(%d)", t.Kind, t.Int)

	case KindIdent, KindComment, KindUnrecognized:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)

	case KindOpenDelim, KindCloseDelim:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Delim)

	case KindOperator:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Op)
	}

	return t.Kind.String()
}
