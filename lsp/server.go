// Package lsp implements a language server that reports syntax errors of the
// registered languages as diagnostics.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/kipaco/lang"
	"github.com/dhamidi/kipaco/parse"
	"github.com/dhamidi/kipaco/workspace"
)

const lsName = "kipaco"

var log = commonlog.GetLogger("kipaco.lsp")

type Server struct {
	registry  *lang.Registry
	workspace *workspace.Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewServer(registry *lang.Registry, version string) *Server {
	ls := &Server{
		registry:  registry,
		workspace: workspace.New(".", registry),
		version:   version,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = workspace.New(rootDir, ls.registry)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

// initialized reports the syntax errors of every file in the workspace.
func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	files, err := ls.workspace.ScanAll()
	if err != nil {
		log.Errorf("scan %s: %s", ls.workspace.RootDir(), err)
	}
	for _, f := range files {
		if f.ParseErr != nil {
			ls.publish(ctx, pathToURI(f.Path), f)
		}
	}
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.RemoveFile(path)
	ls.publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || !ls.workspace.Wants(path) {
		return nil
	}
	f, err := ls.workspace.ScanFile(path)
	if err != nil {
		log.Errorf("read %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, f)
	return nil
}

// update parses text as the content of uri and publishes the result.
// Documents of unknown languages are ignored.
func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	path, err := uriToPath(uri)
	if err != nil || !ls.workspace.Wants(path) {
		return
	}
	f, err := ls.workspace.UpdateFile(path, []byte(text))
	if err != nil {
		log.Errorf("update %s: %s", path, err)
		return
	}
	ls.publish(ctx, uri, f)
}

// publish sends the diagnostics of f, or clears them when f is nil.
func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, f *workspace.File) {
	diagnostics := []protocol.Diagnostic{}
	if f != nil && f.ParseErr != nil {
		diagnostics = append(diagnostics, diagnostic(f.ParseErr))
	}
	log.Debugf("publish %d diagnostics for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func diagnostic(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	d := protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}

	var perr *parse.Error
	if errors.As(err, &perr) {
		pos := position(perr.Position)
		d.Range = protocol.Range{Start: pos, End: pos}
		d.Message = perr.Message
	}
	return d
}

// position converts in to an LSP position, which counts characters in
// UTF-16 code units.
func position(in parse.Input) protocol.Position {
	src := in.Source()
	off := in.Offset()
	start := strings.LastIndexByte(src[:off], '\n') + 1
	prefix := []rune(src[start:off])
	return protocol.Position{
		Line:      protocol.UInteger(in.Position().Line - 1),
		Character: protocol.UInteger(len(utf16.Encode(prefix))),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
