package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/kipaco/lang"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
trace = true

[log]
verbosity = 2
file = "out.log"

[languages.conf]
extensions = [".ini"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Trace)
	assert.Equal(t, Log{Verbosity: 2, File: "out.log"}, cfg.Log)
	assert.Equal(t, map[string]Language{"conf": {Extensions: []string{".ini"}}}, cfg.Languages)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "[log]\nlevel = 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	_, err := Load(writeConfig(t, "trace = \n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	reg := lang.Default()
	cfg := &Config{Languages: map[string]Language{
		"conf": {Extensions: []string{".ini"}},
		"json": {},
	}}
	require.NoError(t, cfg.Apply(reg))

	l, ok := reg.ForFile("x.ini")
	require.True(t, ok)
	assert.Equal(t, "conf", l.Name)

	_, ok = reg.ForFile("x.toml")
	assert.False(t, ok)

	l, ok = reg.ForFile("x.json")
	require.True(t, ok)
	assert.Equal(t, "json", l.Name)

	bad := &Config{Languages: map[string]Language{"cobol": {Extensions: []string{".cbl"}}}}
	assert.Error(t, bad.Apply(reg))
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var schema struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "kipaco configuration", schema.Title)
	assert.Contains(t, schema.Properties, "trace")
	assert.Contains(t, schema.Properties, "log")
	assert.Contains(t, schema.Properties, "languages")
}
