package format

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// LineEncoder writes one tab separated line per leaf of a value:
// its path, its kind and its value. The output is meant for grep and awk.
//
//	$.value.items[0]	number	1
type LineEncoder struct {
	w     io.Writer
	value any
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(v any) error {
	e.value = v
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	v, err := generic(e.value)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	writeLines(&sb, "$", v)
	return []byte(sb.String()), nil
}

// generic converts v to the maps, slices and scalars encoding/json decodes
// into, so structs are seen through their JSON field names.
func generic(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func writeLines(sb *strings.Builder, path string, v any) {
	switch v := v.(type) {
	case map[string]any:
		if len(v) == 0 {
			fmt.Fprintf(sb, "%s\tobject\t{}\n", path)
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			writeLines(sb, path+pathKey(k), v[k])
		}
	case []any:
		if len(v) == 0 {
			fmt.Fprintf(sb, "%s\tarray\t[]\n", path)
			return
		}
		for i, item := range v {
			writeLines(sb, fmt.Sprintf("%s[%d]", path, i), item)
		}
	case string:
		fmt.Fprintf(sb, "%s\tstring\t%q\n", path, v)
	case float64:
		fmt.Fprintf(sb, "%s\tnumber\t%v\n", path, v)
	case bool:
		fmt.Fprintf(sb, "%s\tbool\t%v\n", path, v)
	case nil:
		fmt.Fprintf(sb, "%s\tnull\tnull\n", path)
	}
}

func pathKey(k string) string {
	if k == "" {
		return fmt.Sprintf("[%q]", k)
	}
	for i, c := range k {
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return fmt.Sprintf("[%q]", k)
	}
	return "." + k
}
