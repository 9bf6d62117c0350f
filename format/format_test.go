package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/kipaco/lang/calc"
	"github.com/dhamidi/kipaco/lang/json"
)

func TestNewEncoder(t *testing.T) {
	var buf bytes.Buffer
	for _, kind := range Kinds {
		enc, err := NewEncoder(kind, &buf)
		require.NoError(t, err)
		assert.NotNil(t, enc)
		assert.True(t, Valid(kind))
	}

	_, err := NewEncoder("xml", &buf)
	assert.Error(t, err)
	assert.False(t, Valid("xml"))
}

func TestJSONEncoder(t *testing.T) {
	v, err := json.Parse("in.json", `{"b": [1, true], "a": null}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(Document{File: "in.json", Language: "json", Value: v}))

	want := `{
  "file": "in.json",
  "language": "json",
  "value": {
    "a": null,
    "b": [
      1,
      true
    ]
  }
}
`
	assert.Equal(t, want, buf.String())
}

func TestYAMLEncoder(t *testing.T) {
	n, err := calc.Parse("", "1 - -2")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder(&buf).Encode(Document{Language: "calc", Value: n}))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	want := map[string]any{
		"language": "calc",
		"value": map[string]any{
			"op":    "-",
			"left":  map[string]any{"value": 1},
			"right": map[string]any{"operand": map[string]any{"value": 2}},
		},
	}
	assert.Equal(t, want, got)
}

func TestNewDiagnostic(t *testing.T) {
	_, err := json.Parse("bad.json", "[1,\n 2")
	require.Error(t, err)

	d := NewDiagnostic("ignored.json", err)
	assert.Equal(t, "bad.json", d.File)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, 3, d.Column)
	assert.Equal(t, `expected ']'`, d.Message)
	assert.Equal(t, " 2\n  ^", d.Snippet)

	d = NewDiagnostic("x.json", errors.New("open x.json: no such file"))
	assert.Equal(t, Diagnostic{File: "x.json", Message: "open x.json: no such file"}, d)
}

func TestLineEncoder(t *testing.T) {
	v, err := json.Parse("", `{"b": [1, {"x y": null}], "a": "s\n", "e": {}, "f": [], "_ok9": false}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(v))

	want := "$._ok9\tbool\tfalse\n" +
		"$.a\tstring\t\"s\\n\"\n" +
		"$.b[0]\tnumber\t1\n" +
		"$.b[1][\"x y\"]\tnull\tnull\n" +
		"$.e\tobject\t{}\n" +
		"$.f\tarray\t[]\n"
	assert.Equal(t, want, buf.String())
}

func TestLineEncoderSeesStructsAsJSON(t *testing.T) {
	n, err := calc.Parse("", "-3")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(Document{Language: "calc", Value: n}))
	assert.Equal(t, "$.language\tstring\t\"calc\"\n$.value.operand.value\tnumber\t3\n", buf.String())
}
