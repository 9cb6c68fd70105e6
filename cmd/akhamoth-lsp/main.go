package main

import (
	"fmt"
	"net/url"

	"github.com/pipe01/akhamoth/internal/diagnostics"
	"github.com/pipe01/akhamoth/internal/workspace"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "akhamoth"

var version string = "0.0.1"
var handler protocol.Handler

// every document is addressed by its absolute path, so the root is unused
var ws = workspace.New("")

var log commonlog.Logger

func main() {
	// This increases logging verbosity (optional)
	commonlog.Configure(1, nil)
	log = commonlog.GetLogger("akhamoth.lsp")

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			path, err := documentPath(params.TextDocument.URI)
			if err != nil {
				return err
			}

			ws.SetOverlay(path, params.TextDocument.Text)

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			path, err := documentPath(params.TextDocument.URI)
			if err != nil {
				return err
			}

			content, ok := ws.Overlay(path)
			if !ok {
				return nil
			}

			for _, change := range params.ContentChanges {
				switch change := change.(type) {
				case protocol.TextDocumentContentChangeEventWhole:
					content = change.Text

				case protocol.TextDocumentContentChangeEvent:
					startIndex, endIndex := change.Range.IndexesIn(content)
					content = content[:startIndex] + change.Text + content[endIndex:]
				}
			}

			ws.SetOverlay(path, content)

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidClose: func(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			path, err := documentPath(params.TextDocument.URI)
			if err != nil {
				return err
			}

			ws.RemoveOverlay(path)

			context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
				URI:         params.TextDocument.URI,
				Diagnostics: []protocol.Diagnostic{},
			})
			return nil
		},
		TextDocumentSemanticTokensFull: semanticTokensFull,
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

func documentPath(docURI string) (string, error) {
	url, err := url.Parse(docURI)
	if err != nil {
		return "", fmt.Errorf("parse document uri: %w", err)
	}
	if url.Scheme != "file" {
		return "", fmt.Errorf("invalid document uri scheme %q", url.Scheme)
	}

	return url.Path, nil
}

func handleDocument(context *glsp.Context, docURI string) error {
	path, err := documentPath(docURI)
	if err != nil {
		return err
	}

	res, err := ws.Analyze(path)
	if err != nil {
		log.Warningf("analyze %s: %s", path, err)
	}

	diag := make([]protocol.Diagnostic, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		diag = append(diag, toProtocolDiagnostic(res, d))
	}

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diag,
	})

	return nil
}

func toProtocolDiagnostic(res *workspace.Result, d diagnostics.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Level == diagnostics.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}

	var rng protocol.Range
	if d.Context.IsSpan() {
		r, err := spanRange(res.SourceMap, d.Context.Span())
		if err == nil {
			rng = r
		}
	}

	return protocol.Diagnostic{
		Range:    rng,
		Severity: ptr(severity),
		Source:   ptr(lsName),
		Message:  d.Message,
	}
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     tokenTypes,
			TokenModifiers: []string{},
		},
		Range: false,
		Full:  true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func semanticTokensFull(context *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := documentPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	if _, ok := ws.Overlay(path); !ok {
		return nil, fmt.Errorf("document %q not found", params.TextDocument.URI)
	}

	res, err := ws.Analyze(path)
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}

	data, err := encodeSemanticTokens(res)
	if err != nil {
		return nil, fmt.Errorf("encode semantic tokens: %w", err)
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

func ptr[T any](v T) *T {
	return &v
}
