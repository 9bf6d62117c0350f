package parse

import (
	"fmt"
	"strings"
)

// Error describes why a parser did not match.
// Position is the input as it was when the mismatch was detected.
type Error struct {
	Message  string
	Position Input
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Position.Position(), e.Message)
}

// Snippet renders the source line of a failure with a caret under the column.
func Snippet(err *Error) string {
	src := err.Position.Source()
	off := err.Position.Offset()

	start := strings.LastIndexByte(src[:off], '\n') + 1
	end := strings.IndexByte(src[off:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += off
	}
	line := strings.TrimRight(src[start:end], "\r")

	var b strings.Builder
	b.WriteString(line)
	b.WriteByte('\n')
	for i := start; i < off; i++ {
		// keep tabs so the caret lines up in a terminal
		if src[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}

func describe(v any) string {
	switch x := v.(type) {
	case byte:
		return fmt.Sprintf("%q", rune(x))
	case rune:
		return fmt.Sprintf("%q", x)
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
