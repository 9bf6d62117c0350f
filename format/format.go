// Package format encodes parse results for output.
package format

import (
	"encoding"
	"fmt"
	"io"
	"slices"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(v any) error
}

// Kinds lists the names accepted by NewEncoder.
var Kinds = []string{"json", "yaml", "lines"}

// NewEncoder returns the encoder called kind writing to w.
func NewEncoder(kind string, w io.Writer) (Encoder, error) {
	switch kind {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "lines":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", kind, Kinds)
}

// Valid reports whether kind names an encoder.
func Valid(kind string) bool {
	return slices.Contains(Kinds, kind)
}
