package lexer

import "github.com/pipe01/akhamoth/internal/source"

// Lexer produces the public token stream of a file: whitespace is dropped
// and recorded in the Spaced flag of the token that follows it. Tokens are
// computed one at a time as Next is called. A Lexer can't be rewound, create
// a new one to scan the same text again.
type Lexer struct {
	cursor *Cursor
}

func New(file *source.SourceFile) *Lexer {
	return NewString(file.Text, file.StartPos)
}

func NewString(text string, base uint32) *Lexer {
	return &Lexer{
		cursor: NewCursor(text, base),
	}
}

func (l *Lexer) Next() (Token, bool) {
	tk, ok := l.cursor.Next()
	if !ok {
		return Token{}, false
	}

	if tk.Kind == KindWhitespace {
		tk, ok = l.cursor.Next()
		if !ok {
			return Token{}, false
		}

		tk.Spaced = true
	}

	return tk, true
}

func (l *Lexer) Collect() []Token {
	tks := []Token{}

	for {
		tk, ok := l.Next()
		if !ok {
			break
		}

		tks = append(tks, tk)
	}

	return tks
}

// Tokenize is a shortcut for New(file).Collect().
func Tokenize(file *source.SourceFile) []Token {
	return New(file).Collect()
}
