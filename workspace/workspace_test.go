package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/kipaco/lang"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), `[1, 2]`)
	writeFile(t, filepath.Join(root, "sub", "b.calc"), `1 +`)
	writeFile(t, filepath.Join(root, "notes.txt"), `ignored`)
	writeFile(t, filepath.Join(root, ".hidden", "c.json"), `{}`)

	ws := New(root, lang.Default())
	scanned, err := ws.ScanAll()
	require.NoError(t, err)
	assert.Len(t, scanned, 2)

	files := ws.Files()
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(root, "a.json"), files[0].Path)
	assert.Equal(t, "json", files[0].Language)
	assert.NoError(t, files[0].ParseErr)
	assert.Equal(t, []any{1.0, 2.0}, files[0].Value)

	failed := ws.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "calc", failed[0].Language)
	assert.Nil(t, failed[0].Value)
	assert.ErrorContains(t, failed[0].ParseErr, "1:4: expected expression")
}

func TestUpdateAndRemoveFile(t *testing.T) {
	ws := New(t.TempDir(), lang.Default())

	f, err := ws.UpdateFile("x.calc", []byte("(1"))
	require.NoError(t, err)
	assert.Error(t, f.ParseErr)

	f, err = ws.UpdateFile("x.calc", []byte("(1)"))
	require.NoError(t, err)
	assert.NoError(t, f.ParseErr)
	assert.Same(t, f, ws.GetFile("x.calc"))

	ws.RemoveFile("x.calc")
	assert.Nil(t, ws.GetFile("x.calc"))

	_, err = ws.UpdateFile("x.txt", []byte("hi"))
	assert.Error(t, err)
	assert.False(t, ws.Wants("x.txt"))
}

func TestScanFileMissing(t *testing.T) {
	ws := New(t.TempDir(), lang.Default())
	_, err := ws.ScanFile(filepath.Join(ws.RootDir(), "missing.json"))
	assert.Error(t, err)
}
