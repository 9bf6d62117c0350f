package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"
)

type YAMLEncoder struct {
	w     io.Writer
	value any
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

// Encode writes v as a YAML document.
func (e *YAMLEncoder) Encode(v any) error {
	e.value = v
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(e.value); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
