package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pipe01/akhamoth/internal/diagnostics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.akh"), []byte("x = 0o9"), 0o644))

	ws := New(dir)

	res, err := ws.Analyze("a.akh")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a.akh"), res.File.Path)
	assert.Len(t, res.Tokens, 3)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "invalid digit '9' for base 8", res.Diagnostics[0].Message)
	assert.Equal(t, res.File.Path+":1:5", res.Diagnostics[0].Context.Resolve(res.SourceMap))
}

func TestAnalyzeOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.akh"), []byte("@"), 0o644))

	ws := New(dir)
	ws.SetOverlay("a.akh", "fine")

	contents, ok := ws.Overlay(filepath.Join(dir, "a.akh"))
	require.True(t, ok)
	assert.Equal(t, "fine", contents)

	res, err := ws.Analyze("a.akh")
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	ws.RemoveOverlay("a.akh")

	res, err = ws.Analyze("a.akh")
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "unrecognized token", res.Diagnostics[0].Message)
}

func TestAnalyzeMissing(t *testing.T) {
	ws := New(t.TempDir())

	res, err := ws.Analyze("missing.akh")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.File)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diagnostics.Error, res.Diagnostics[0].Level)
	assert.False(t, res.Diagnostics[0].Context.IsSpan())
}
