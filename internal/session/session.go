package session

import (
	"errors"
	"fmt"

	"github.com/pipe01/akhamoth/internal/diagnostics"
	"github.com/pipe01/akhamoth/internal/lexer"
	"github.com/pipe01/akhamoth/internal/parser"
	"github.com/pipe01/akhamoth/internal/source"
	"github.com/tliron/commonlog"
)

// Session holds the state of one compilation. Offsets produced while
// compiling are only meaningful against this session's SourceMap.
type Session[E diagnostics.Emitter] struct {
	SourceMap *source.SourceMap
	Emitter   E

	log commonlog.Logger
}

func New[E diagnostics.Emitter](emit E) *Session[E] {
	return NewWithSourceMap(source.New(), emit)
}

// NewWithSourceMap is like New, for emitters that need to hold on to the
// SourceMap to resolve spans.
func NewWithSourceMap[E diagnostics.Emitter](sm *source.SourceMap, emit E) *Session[E] {
	return &Session[E]{
		SourceMap: sm,
		Emitter:   emit,
		log:       commonlog.GetLogger("akhamoth.session"),
	}
}

// Compile loads the file at path and checks it. Problems inside the file are
// reported through the emitter and don't make Compile fail, only a failure to
// load it does.
func (s *Session[E]) Compile(path string) (*source.SourceFile, error) {
	f, err := s.load(path)
	if err != nil {
		return nil, err
	}

	s.check(f)
	return f, nil
}

// CompileText is like Compile for text that is already in memory.
func (s *Session[E]) CompileText(path, text string) (*source.SourceFile, error) {
	f, err := s.SourceMap.AddFile(path, text)
	if err != nil {
		s.loadFailed(path, err)
		return nil, fmt.Errorf("add file: %w", err)
	}

	s.check(f)
	return f, nil
}

// Tokens loads the file at path and returns its tokens without checking them.
func (s *Session[E]) Tokens(path string) (*source.SourceFile, []lexer.Token, error) {
	f, err := s.load(path)
	if err != nil {
		return nil, nil, err
	}

	return f, lexer.Tokenize(f), nil
}

func (s *Session[E]) load(path string) (*source.SourceFile, error) {
	f, err := s.SourceMap.LoadFile(path)
	if err != nil {
		s.loadFailed(path, err)
		return nil, fmt.Errorf("load file: %w", err)
	}

	s.log.Debugf("loaded %s at offset %d (%d bytes, %d lines)", f.Path, f.StartPos, len(f.Text), f.LineCount())

	return f, nil
}

func (s *Session[E]) loadFailed(path string, err error) {
	s.log.Errorf("failed to load %s: %s", path, err)

	msg := err.Error()

	var loadErr *source.LoadError
	if errors.As(err, &loadErr) {
		msg = loadErr.Inner.Error()
	}

	s.Emitter.Error(msg, diagnostics.FileContext(path))
}

func (s *Session[E]) check(f *source.SourceFile) {
	n := parser.Check(lexer.New(f), s.Emitter)

	s.log.Debugf("checked %d tokens in %s", n, f.Path)
}
