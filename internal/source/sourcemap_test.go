package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestLoadFileAssignsStartPositions(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.akh", strings.Repeat("a", 10))
	b := writeFile(t, dir, "b.akh", strings.Repeat("b", 20))

	m := New()

	fa, err := m.LoadFile(a)
	require.NoError(t, err)
	fb, err := m.LoadFile(b)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), fa.StartPos)
	assert.Equal(t, uint32(11), fb.StartPos)

	got, err := m.LookupSourceFile(10)
	require.NoError(t, err)
	assert.Same(t, fa, got)

	got, err = m.LookupSourceFile(11)
	require.NoError(t, err)
	assert.Same(t, fb, got)

	got, err = m.LookupSourceFile(31)
	require.NoError(t, err)
	assert.Same(t, fb, got)
}

func TestLoadFileMissing(t *testing.T) {
	m := New()

	_, err := m.LoadFile(filepath.Join(t.TempDir(), "missing.akh"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.False(t, loadErr.IsOverflow())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Zero(t, m.Len())
}

func TestAddFileInvalidUTF8(t *testing.T) {
	m := New()

	_, err := m.AddFile("bad.akh", "ok\xff")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Zero(t, m.Len())
}

func TestOffsetOverflow(t *testing.T) {
	m := New()
	m.limit = 20

	_, err := m.AddFile("a", strings.Repeat("a", 10))
	require.NoError(t, err)

	// would start at 11 and end at 21
	_, err = m.AddFile("b", strings.Repeat("b", 10))
	require.ErrorIs(t, err, ErrOffsetOverflow)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, loadErr.IsOverflow())
	assert.Equal(t, 1, m.Len())

	// exactly fills the address space
	_, err = m.AddFile("c", strings.Repeat("c", 9))
	require.NoError(t, err)

	_, err = m.AddFile("d", "")
	assert.ErrorIs(t, err, ErrOffsetOverflow)
}

func TestOffsetDisjointness(t *testing.T) {
	m := New()

	for _, text := range []string{"", "x", "hello\nworld\n", "", "\n\n\n", "último"} {
		_, err := m.AddFile("f", text)
		require.NoError(t, err)
	}

	files := m.Files()
	for i := 1; i < len(files); i++ {
		assert.Greater(t, files[i].StartPos, files[i-1].EndPos(), "file %d overlaps file %d", i, i-1)
	}
}

func TestLookupOutOfRange(t *testing.T) {
	m := New()

	_, err := m.LookupSourceFile(0)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	f, err := m.AddFile("a", "abc")
	require.NoError(t, err)

	got, err := m.LookupSourceFile(3)
	require.NoError(t, err, "end offset belongs to the file")
	assert.Same(t, f, got)

	_, err = m.LookupSourceFile(4)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = m.SpanToLocation(NewSpan(100, 1))
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestSpanToString(t *testing.T) {
	m := New()

	_, err := m.AddFile("a", "let x = 1")
	require.NoError(t, err)
	_, err = m.AddFile("b", "foo(bar)")
	require.NoError(t, err)

	cases := []struct {
		span Span
		want string
	}{
		{NewSpan(0, 3), "let"},
		{NewSpan(8, 1), "1"},
		{NewSpan(9, 0), ""},
		{NewSpan(10, 3), "foo"},
		{NewSpan(14, 3), "bar"},
	}

	for _, c := range cases {
		got, err := m.SpanToString(c.span)
		require.NoError(t, err, c.span.String())
		assert.Equal(t, c.want, got, c.span.String())
	}

	_, err = m.SpanToString(NewSpan(8, 5))
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestSpanToLocation(t *testing.T) {
	m := New()

	_, err := m.AddFile("first.akh", "ab\ncd\n\nef")
	require.NoError(t, err)
	_, err = m.AddFile("second.akh", "x\ny")
	require.NoError(t, err)

	cases := []struct {
		offset    uint32
		file      string
		line, col int
	}{
		{0, "first.akh", 1, 1},
		{1, "first.akh", 1, 2},
		{2, "first.akh", 1, 3}, // the newline itself
		{3, "first.akh", 2, 1},
		{4, "first.akh", 2, 2},
		{6, "first.akh", 3, 1},
		{7, "first.akh", 4, 1},
		{9, "first.akh", 4, 3}, // end of file
		{10, "second.akh", 1, 1},
		{12, "second.akh", 2, 1},
	}

	for _, c := range cases {
		loc, err := m.SpanToLocation(NewSpan(c.offset, 0))
		require.NoError(t, err)

		assert.Equal(t, c.file, loc.File.Path, "offset %d", c.offset)
		assert.Equal(t, c.line, loc.Line, "line of offset %d", c.offset)
		assert.Equal(t, c.col, loc.Col, "column of offset %d", c.offset)
	}

	loc, err := m.SpanToLocation(NewSpan(4, 1))
	require.NoError(t, err)
	assert.Equal(t, "first.akh:2:2", loc.String())
}

func TestLocationMonotonicity(t *testing.T) {
	m := New()

	f, err := m.AddFile("a", "fn main() {\n  x -> y\n\n}\r\nend")
	require.NoError(t, err)

	for a := f.StartPos; a < f.EndPos(); a++ {
		la, err := m.SpanToLocation(NewSpan(a, 0))
		require.NoError(t, err)

		lb, err := m.SpanToLocation(NewSpan(a+1, 0))
		require.NoError(t, err)

		require.LessOrEqual(t, la.Line, lb.Line)
		if la.Line == lb.Line {
			require.Less(t, la.Col, lb.Col)
		}
	}
}

func TestSourceFileLine(t *testing.T) {
	m := New()

	f, err := m.AddFile("a", "one\r\ntwo\n\nfour")
	require.NoError(t, err)

	assert.Equal(t, 4, f.LineCount())

	for i, want := range []string{"one", "two", "", "four"} {
		got, err := f.Line(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = f.Line(5)
	assert.Error(t, err)
}

func TestSpanCompare(t *testing.T) {
	assert.Equal(t, 0, NewSpan(1, 2).Compare(NewSpan(1, 2)))
	assert.Equal(t, -1, NewSpan(1, 2).Compare(NewSpan(2, 0)))
	assert.Equal(t, -1, NewSpan(1, 2).Compare(NewSpan(1, 3)))
	assert.Equal(t, 1, NewSpan(3, 0).Compare(NewSpan(1, 9)))
	assert.Equal(t, uint32(3), NewSpan(1, 2).Hi())
	assert.True(t, NewSpan(4, 0).IsEmpty())
}
