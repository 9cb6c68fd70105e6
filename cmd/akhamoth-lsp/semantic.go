package main

import (
	"strings"

	"github.com/pipe01/akhamoth/internal/lexer"
	"github.com/pipe01/akhamoth/internal/workspace"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// indexes into tokenTypes
const (
	semanticVariable protocol.UInteger = iota
	semanticString
	semanticNumber
	semanticComment
	semanticOperator
)

var tokenTypes = []string{
	"variable",
	"string",
	"number",
	"comment",
	"operator",
}

func semanticType(tk *lexer.Token) (protocol.UInteger, bool) {
	switch tk.Kind {
	case lexer.KindIdent:
		return semanticVariable, true
	case lexer.KindString:
		return semanticString, true
	case lexer.KindInt:
		return semanticNumber, true
	case lexer.KindComment:
		return semanticComment, true
	case lexer.KindOperator:
		return semanticOperator, true
	}

	return 0, false
}

func encodeSemanticTokens(res *workspace.Result) ([]protocol.UInteger, error) {
	tokens := make([]protocol.UInteger, 0)

	var prevLine, prevChar protocol.UInteger
	for i := range res.Tokens {
		tk := &res.Tokens[i]

		tokenType, ok := semanticType(tk)
		if !ok {
			continue
		}

		text, err := res.SourceMap.SpanToString(tk.Span)
		if err != nil {
			return nil, err
		}

		// clients don't have to support tokens that span several lines
		if strings.ContainsRune(text, '\n') {
			continue
		}

		start, err := position(res.SourceMap, tk.Span.Lo)
		if err != nil {
			return nil, err
		}

		startDelta := start.Character
		if start.Line == prevLine {
			startDelta = start.Character - prevChar
		}

		tokens = append(tokens,
			start.Line-prevLine,
			startDelta,
			protocol.UInteger(utf16Len(text)),
			tokenType,
			0,
		)

		prevLine, prevChar = start.Line, start.Character
	}

	return tokens, nil
}
