package source

import (
	"errors"
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

var (
	ErrOffsetOverflow   = errors.New("4GB limit for source files reached")
	ErrOffsetOutOfRange = errors.New("offset is outside of every loaded file")
	ErrInvalidUTF8      = errors.New("file is not valid UTF-8")
)

type LoadError struct {
	Path  string
	Inner error
}

func (e *LoadError) Unwrap() error {
	return e.Inner
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s", e.Path, e.Inner)
}

// IsOverflow reports whether the session ran out of address space. Any other
// load error is an I/O failure.
func (e *LoadError) IsOverflow() bool {
	return errors.Is(e.Inner, ErrOffsetOverflow)
}

// SourceMap owns every file loaded during a session and assigns each one a
// disjoint range of global offsets. Files are only ever appended, so offsets
// handed out stay valid for the lifetime of the map.
type SourceMap struct {
	files []*SourceFile

	// highest usable global offset, lowered in tests
	limit uint32
}

func New() *SourceMap {
	return &SourceMap{
		limit: math.MaxUint32,
	}
}

func (m *SourceMap) Files() []*SourceFile {
	return m.files
}

func (m *SourceMap) Len() int {
	return len(m.files)
}

func (m *SourceMap) LoadFile(path string) (*SourceFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Inner: err}
	}

	return m.AddFile(path, string(bytes))
}

// AddFile registers text that is already in memory as if it had been loaded
// from path.
func (m *SourceMap) AddFile(path, text string) (*SourceFile, error) {
	if !utf8.ValidString(text) {
		return nil, &LoadError{Path: path, Inner: ErrInvalidUTF8}
	}

	startPos, err := m.nextStartPos()
	if err != nil {
		return nil, &LoadError{Path: path, Inner: err}
	}

	if uint64(startPos)+uint64(len(text)) > uint64(m.limit) {
		return nil, &LoadError{Path: path, Inner: ErrOffsetOverflow}
	}

	f := newSourceFile(path, text, startPos)
	m.files = append(m.files, f)

	return f, nil
}

func (m *SourceMap) nextStartPos() (uint32, error) {
	if len(m.files) == 0 {
		return 0, nil
	}

	end := m.files[len(m.files)-1].EndPos()
	if end >= m.limit {
		return 0, ErrOffsetOverflow
	}

	// leave one byte between files so a file's end offset never aliases the
	// next file's start
	return end + 1, nil
}

// LookupSourceFile returns the file whose [StartPos, EndPos] range contains
// pos. Offsets past the end of the last file fail with ErrOffsetOutOfRange.
func (m *SourceMap) LookupSourceFile(pos uint32) (*SourceFile, error) {
	idx, err := m.lookupSourceFileIdx(pos)
	if err != nil {
		return nil, err
	}

	return m.files[idx], nil
}

func (m *SourceMap) lookupSourceFileIdx(pos uint32) (int, error) {
	idx, _ := slices.BinarySearchFunc(m.files, pos, func(f *SourceFile, pos uint32) int {
		if f.StartPos <= pos {
			return -1
		}
		return 1
	})

	if idx == 0 || !m.files[idx-1].Contains(pos) {
		return 0, fmt.Errorf("lookup offset %d: %w", pos, ErrOffsetOutOfRange)
	}

	return idx - 1, nil
}

// SpanToString returns the exact source text covered by span.
func (m *SourceMap) SpanToString(span Span) (string, error) {
	f, err := m.LookupSourceFile(span.Lo)
	if err != nil {
		return "", err
	}

	if uint64(span.Lo)+uint64(span.Len) > uint64(f.EndPos()) {
		return "", fmt.Errorf("span %s crosses the end of %s: %w", span, f.Path, ErrOffsetOutOfRange)
	}

	lo := span.Lo - f.StartPos
	return f.Text[lo : lo+span.Len], nil
}

// SpanToLocation resolves the start of span to a 1-based line and column.
func (m *SourceMap) SpanToLocation(span Span) (Location, error) {
	f, err := m.LookupSourceFile(span.Lo)
	if err != nil {
		return Location{}, err
	}

	line, col := f.Location(span.Lo - f.StartPos)

	return Location{
		File: f,
		Line: line,
		Col:  col,
	}, nil
}

type Location struct {
	File *SourceFile

	// 1-based, Col counts bytes
	Line, Col int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File.Path, l.Line, l.Col)
}
