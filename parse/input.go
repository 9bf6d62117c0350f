package parse

import (
	"fmt"
	"strings"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Input is an immutable view over the text being parsed.
// Parsers consume a prefix of an Input and hand the remaining suffix on.
// Advancing never copies the underlying text, so many inputs may share it.
type Input struct {
	name string
	src  string
	off  int
}

// NewInput creates an input positioned at the start of src.
func NewInput(src string) Input {
	return Input{src: src}
}

// NewNamedInput creates an input whose positions report the given file name.
func NewNamedInput(name, src string) Input {
	return Input{name: name, src: src}
}

// String returns the unconsumed text.
func (in Input) String() string {
	return in.src[in.off:]
}

// Len returns the number of unconsumed bytes.
func (in Input) Len() int {
	return len(in.src) - in.off
}

// Empty reports whether all input has been consumed.
func (in Input) Empty() bool {
	return in.off >= len(in.src)
}

// Offset returns the byte offset of the input from the start of the source.
func (in Input) Offset() int {
	return in.off
}

// Name returns the file name given to NewNamedInput.
func (in Input) Name() string {
	return in.name
}

// Source returns the complete text, including the consumed prefix.
func (in Input) Source() string {
	return in.src
}

// Peek returns the next byte without consuming it.
func (in Input) Peek() (byte, bool) {
	if in.Empty() {
		return 0, false
	}
	return in.src[in.off], true
}

// HasPrefix reports whether the unconsumed text starts with s.
func (in Input) HasPrefix(s string) bool {
	return strings.HasPrefix(in.src[in.off:], s)
}

// Advance returns the input with n more bytes consumed.
// Advancing past the end is a bug in the calling parser and panics.
func (in Input) Advance(n int) Input {
	if n < 0 || n > in.Len() {
		panic(fmt.Sprintf("parse: advance by %d with %d bytes left", n, in.Len()))
	}
	in.off += n
	return in
}

// Position computes the line and column of the input.
// Lines and columns are 1-based; columns count bytes.
func (in Input) Position() Position {
	line := 1
	last := 0
	for {
		i := strings.IndexByte(in.src[last:], '\n')
		if i < 0 || last+i >= in.off {
			break
		}
		last += i + 1
		line++
	}
	return Position{
		Filename: in.name,
		Offset:   in.off,
		Line:     line,
		Column:   in.off - last + 1,
	}
}
