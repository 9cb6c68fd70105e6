package main

import (
	"testing"

	"github.com/pipe01/akhamoth/internal/diagnostics"
	"github.com/pipe01/akhamoth/internal/source"
	"github.com/pipe01/akhamoth/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestPosition(t *testing.T) {
	sm := source.New()

	// 'é' is two bytes and one UTF-16 unit, '𝄞' is four bytes and two units
	_, err := sm.AddFile("a.akh", "é𝄞x\r\nab")
	require.NoError(t, err)

	cases := []struct {
		offset    uint32
		line, chr protocol.UInteger
	}{
		{0, 0, 0},
		{2, 0, 1},
		{6, 0, 3},
		{7, 0, 4},
		{9, 1, 0},
		{10, 1, 1},
	}

	for _, c := range cases {
		pos, err := position(sm, c.offset)
		require.NoError(t, err)
		assert.Equal(t, protocol.Position{Line: c.line, Character: c.chr}, pos, "offset %d", c.offset)
	}
}

func TestToProtocolDiagnostic(t *testing.T) {
	ws := workspace.New("")
	ws.SetOverlay("/mem/a.akh", "ok\n  @@ 0xZ")

	res, err := ws.Analyze("/mem/a.akh")
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 2)

	d := toProtocolDiagnostic(res, res.Diagnostics[0])
	assert.Equal(t, "unrecognized token", d.Message)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 2},
		End:   protocol.Position{Line: 1, Character: 4},
	}, d.Range)

	d = toProtocolDiagnostic(res, diagnostics.Diagnostic{
		Level:   diagnostics.Warning,
		Message: "no span",
		Context: diagnostics.FileContext("/mem/a.akh"),
	})
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
	assert.Equal(t, protocol.Range{}, d.Range)
}

func TestEncodeSemanticTokens(t *testing.T) {
	ws := workspace.New("")
	ws.SetOverlay("/mem/b.akh", "f(1) // c\n  \"s\" -> x")

	res, err := ws.Analyze("/mem/b.akh")
	require.NoError(t, err)

	data, err := encodeSemanticTokens(res)
	require.NoError(t, err)

	assert.Equal(t, []protocol.UInteger{
		0, 0, 1, semanticVariable, 0, // f
		0, 2, 1, semanticNumber, 0, // 1
		0, 3, 4, semanticComment, 0, // // c
		1, 2, 3, semanticString, 0, // "s"
		0, 4, 2, semanticOperator, 0, // ->
		0, 3, 1, semanticVariable, 0, // x
	}, data)
}

func TestDocumentPath(t *testing.T) {
	path, err := documentPath("file:///home/me/a.akh")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/a.akh", path)

	_, err = documentPath("untitled:Untitled-1")
	assert.Error(t, err)
}
