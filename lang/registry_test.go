package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/kipaco/parse"
)

func TestDefaultLanguages(t *testing.T) {
	r := Default()

	var names []string
	for _, l := range r.Languages() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"calc", "conf", "json"}, names)

	tests := []struct {
		path string
		name string
	}{
		{"expr.calc", "calc"},
		{"dir/data.json", "json"},
		{"Settings.TOML", "conf"},
		{"app.conf", "conf"},
	}
	for _, tt := range tests {
		l, ok := r.ForFile(tt.path)
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.name, l.Name, tt.path)
	}

	_, ok := r.ForFile("README")
	assert.False(t, ok)
	_, ok = r.ForFile("main.go")
	assert.False(t, ok)
}

func TestDefaultLanguagesParse(t *testing.T) {
	r := Default()
	sources := map[string]string{
		"calc": "1 + 2 * 3",
		"conf": "[a]\nb = 1\n",
		"json": `{"a": [1, 2]}`,
	}
	for name, src := range sources {
		l, ok := r.Lookup(name)
		require.True(t, ok)
		_, err := l.Parse(name+".src", src)
		assert.NoError(t, err, name)
	}

	l, _ := r.Lookup("json")
	_, err := l.Parse("bad.json", "[1,")
	var perr *parse.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bad.json", perr.Position.Position().Filename)
}

func TestDefaultGrammarsVerify(t *testing.T) {
	for _, l := range Default().Languages() {
		g, err := ebnf.Parse(l.Name, strings.NewReader(l.Grammar))
		require.NoError(t, err, l.Name)
		assert.NoError(t, ebnf.Verify(g, l.Start), l.Name)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	parseNothing := func(string, string) (any, error) { return nil, nil }

	require.NoError(t, r.Register(Language{Name: "a", Extensions: []string{"x"}, Parse: parseNothing}))
	assert.Error(t, r.Register(Language{Name: "a", Parse: parseNothing}))
	assert.Error(t, r.Register(Language{Name: "b", Extensions: []string{".X"}, Parse: parseNothing}))
	assert.Error(t, r.Register(Language{Name: "c"}))

	l, ok := r.ForFile("file.x")
	require.True(t, ok)
	assert.Equal(t, []string{".x"}, l.Extensions)
}

func TestSetExtensions(t *testing.T) {
	r := Default()

	require.NoError(t, r.SetExtensions("conf", []string{".ini", "json"}))

	l, ok := r.ForFile("a.ini")
	require.True(t, ok)
	assert.Equal(t, "conf", l.Name)

	l, ok = r.ForFile("a.json")
	require.True(t, ok)
	assert.Equal(t, "conf", l.Name)

	_, ok = r.ForFile("a.toml")
	assert.False(t, ok)

	jsonLang, _ := r.Lookup("json")
	assert.Empty(t, jsonLang.Extensions)

	assert.Error(t, r.SetExtensions("nope", nil))
}

func TestLookupReturnsCopy(t *testing.T) {
	r := Default()
	l, _ := r.Lookup("calc")
	l.Extensions[0] = ".changed"

	again, _ := r.Lookup("calc")
	assert.Equal(t, []string{".calc"}, again.Extensions)
}
