package format

import (
	"errors"

	"github.com/dhamidi/kipaco/parse"
)

// Document is the output of a successful parse.
type Document struct {
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
	Language string `json:"language" yaml:"language"`
	Value    any    `json:"value" yaml:"value"`
}

// Diagnostic is a parse error in a form fit for output.
type Diagnostic struct {
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
	Message string `json:"message" yaml:"message"`
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// NewDiagnostic describes err. Errors that are not *parse.Error only carry a
// message and the file they belong to.
func NewDiagnostic(file string, err error) Diagnostic {
	var perr *parse.Error
	if !errors.As(err, &perr) {
		return Diagnostic{File: file, Message: err.Error()}
	}
	pos := perr.Position.Position()
	d := Diagnostic{
		File:    pos.Filename,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: perr.Message,
		Snippet: parse.Snippet(perr),
	}
	if d.File == "" {
		d.File = file
	}
	return d
}
