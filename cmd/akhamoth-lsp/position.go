package main

import (
	"github.com/pipe01/akhamoth/internal/source"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// utf16Len counts the UTF-16 code units in s, which is how LSP measures columns.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func position(sm *source.SourceMap, offset uint32) (protocol.Position, error) {
	loc, err := sm.SpanToLocation(source.NewSpan(offset, 0))
	if err != nil {
		return protocol.Position{}, err
	}

	line, err := loc.File.Line(loc.Line)
	if err != nil {
		return protocol.Position{}, err
	}

	prefix := line[:min(loc.Col-1, len(line))]

	return protocol.Position{
		Line:      protocol.UInteger(loc.Line - 1),
		Character: protocol.UInteger(utf16Len(prefix)),
	}, nil
}

func spanRange(sm *source.SourceMap, span source.Span) (protocol.Range, error) {
	start, err := position(sm, span.Lo)
	if err != nil {
		return protocol.Range{}, err
	}

	end, err := position(sm, span.Hi())
	if err != nil {
		return protocol.Range{}, err
	}

	return protocol.Range{
		Start: start,
		End:   end,
	}, nil
}
