package workspace

import (
	"path/filepath"

	"github.com/pipe01/akhamoth/internal/diagnostics"
	"github.com/pipe01/akhamoth/internal/lexer"
	"github.com/pipe01/akhamoth/internal/session"
	"github.com/pipe01/akhamoth/internal/source"
)

// Workspace analyzes files under a root directory. Files with an overlay
// (e.g. unsaved editor buffers) are read from memory instead of disk.
type Workspace struct {
	rootPath string

	overlays map[string]string
}

type Result struct {
	SourceMap   *source.SourceMap
	File        *source.SourceFile
	Tokens      []lexer.Token
	Diagnostics []diagnostics.Diagnostic
}

func New(rootPath string) *Workspace {
	return &Workspace{
		rootPath: rootPath,
		overlays: make(map[string]string),
	}
}

func (w *Workspace) fullPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}
	return filepath.Join(w.rootPath, relPath)
}

func (w *Workspace) SetOverlay(relPath, contents string) {
	w.overlays[w.fullPath(relPath)] = contents
}

func (w *Workspace) RemoveOverlay(relPath string) {
	delete(w.overlays, w.fullPath(relPath))
}

func (w *Workspace) Overlay(relPath string) (string, bool) {
	contents, ok := w.overlays[w.fullPath(relPath)]
	return contents, ok
}

// Analyze checks a single file in a fresh session. Load failures are
// reported both as the returned error and as a file diagnostic in the result.
func (w *Workspace) Analyze(relPath string) (*Result, error) {
	fullPath := w.fullPath(relPath)

	var collector diagnostics.Collector
	sess := session.New(&collector)

	var (
		f   *source.SourceFile
		err error
	)
	if contents, ok := w.overlays[fullPath]; ok {
		f, err = sess.CompileText(fullPath, contents)
	} else {
		f, err = sess.Compile(fullPath)
	}

	res := &Result{
		SourceMap:   sess.SourceMap,
		File:        f,
		Diagnostics: collector.Diagnostics,
	}
	if err != nil {
		return res, err
	}

	res.Tokens = lexer.Tokenize(f)

	return res, nil
}
