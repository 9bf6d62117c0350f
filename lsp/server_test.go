package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/kipaco/lang"
	"github.com/dhamidi/kipaco/parse"
)

type recorder struct {
	published []protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, r.published)
	return r.published[len(r.published)-1]
}

func newTestServer(t *testing.T, root string) (*Server, *recorder) {
	t.Helper()
	ls := NewServer(lang.Default(), "test")
	rec := &recorder{}
	_, err := ls.initialize(rec.context(), &protocol.InitializeParams{RootPath: &root})
	require.NoError(t, err)
	return ls, rec
}

func TestInitializeAdvertisesFullSync(t *testing.T) {
	ls := NewServer(lang.Default(), "1.2.3")
	root := t.TempDir()
	res, err := ls.initialize(&glsp.Context{}, &protocol.InitializeParams{RootPath: &root})
	require.NoError(t, err)

	result := res.(protocol.InitializeResult)
	opts := result.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *opts.Change)
	assert.Equal(t, "kipaco", result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *result.ServerInfo.Version)
	assert.Equal(t, root, ls.workspace.RootDir())
}

func TestDiagnosticsFollowDocument(t *testing.T) {
	ls, rec := newTestServer(t, t.TempDir())
	uri := "file:///project/data.json"
	ctx := rec.context()

	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "json", Version: 1, Text: "{\n  \"a\": tru\n}"},
	}))
	p := rec.last(t)
	assert.Equal(t, uri, p.URI)
	require.Len(t, p.Diagnostics, 1)
	d := p.Diagnostics[0]
	assert.Equal(t, `expected "true"`, d.Message)
	assert.Equal(t, protocol.Position{Line: 1, Character: 7}, d.Range.Start)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)

	require.NoError(t, ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: `{"a": true}`}},
	}))
	assert.Empty(t, rec.last(t).Diagnostics)

	text := "[1"
	require.NoError(t, ls.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	}))
	require.Len(t, rec.last(t).Diagnostics, 1)

	require.NoError(t, ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Empty(t, rec.last(t).Diagnostics)
	assert.Nil(t, ls.workspace.GetFile("/project/data.json"))
}

func TestUnknownLanguageIsIgnored(t *testing.T) {
	ls, rec := newTestServer(t, t.TempDir())
	require.NoError(t, ls.textDocumentDidOpen(rec.context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///x/readme.md", Text: "# hi"},
	}))
	assert.Empty(t, rec.published)
}

func TestInitializedReportsBrokenFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "ok.calc"), []byte("1+1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.calc"), []byte("(1"), 0o644))

	ls, rec := newTestServer(t, root)
	require.NoError(t, ls.initialized(rec.context(), &protocol.InitializedParams{}))

	require.Len(t, rec.published, 1)
	p := rec.published[0]
	assert.Equal(t, pathToURI(filepath.Join(root, "bad.calc")), p.URI)
	require.Len(t, p.Diagnostics, 1)
	assert.Equal(t, `expected ")"`, p.Diagnostics[0].Message)
}

func TestPositionCountsUTF16(t *testing.T) {
	in := parse.NewInput("ab\n\"😀é\" x").Advance(3 + 1 + 4 + 2 + 1)
	pos := position(in)
	assert.Equal(t, protocol.UInteger(1), pos.Line)
	// quote, surrogate pair, é, quote
	assert.Equal(t, protocol.UInteger(5), pos.Character)
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///a/b/../c.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/a/c.json"), path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)

	assert.Equal(t, "file:///a/c.json", pathToURI("/a/c.json"))
}
