// Package conf parses a subset of TOML: [table] headers with dotted names,
// key = value pairs with basic strings, integers, booleans and single line
// arrays, and # comments.
//
// A document decodes to nested map[string]any values the same way
// github.com/BurntSushi/toml decodes into a map: integers are int64 and arrays
// are []any.
package conf

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dhamidi/kipaco/parse"
	"github.com/dhamidi/kipaco/parse/char"
	"github.com/dhamidi/kipaco/parse/text"
)

// Grammar is the EBNF description of the document syntax.
//
//go:embed grammar.ebnf
var Grammar string

// Start is the start production of Grammar.
const Start = "Document"

var document = sync.OnceValue(grammar)

// entry is a table header or a key/value pair, with the input it starts at.
type entry struct {
	at    parse.Input
	table []string
	key   string
	value any
}

func (e entry) errorf(format string, args ...any) *parse.Error {
	return &parse.Error{Message: fmt.Sprintf(format, args...), Position: e.at}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isBare(c byte) bool {
	return char.IsAlpha(c) || char.IsDigit(c) || c == '_' || c == '-'
}

var ws = text.While(isBlank)

func codepoint(digits int) parse.Parser[string] {
	hex := parse.Count(digits, char.HexDigit())
	return parse.New(func(in parse.Input) parse.Result[string] {
		return parse.Bind(hex, func(ds []byte) parse.Parser[string] {
			n, _ := strconv.ParseUint(string(ds), 16, 32)
			r := rune(n)
			if !utf8.ValidRune(r) {
				return parse.New(func(parse.Input) parse.Result[string] {
					return parse.Failf[string](in, "invalid code point U+%s", strings.ToUpper(string(ds)))
				})
			}
			return parse.Pure(string(r))
		}).Parse(in)
	})
}

func basicString() parse.Parser[string] {
	simple := parse.Map(char.OneOf(`"\bfnrt`), func(c byte) string {
		switch c {
		case 'b':
			return "\b"
		case 'f':
			return "\f"
		case 'n':
			return "\n"
		case 'r':
			return "\r"
		case 't':
			return "\t"
		}
		return string(c)
	}).Label("escape sequence")
	escape := parse.Right(char.Is('\\'), parse.Bind(parse.Lookahead(char.Any()).Label("escape sequence"), func(c byte) parse.Parser[string] {
		switch c {
		case 'u':
			return parse.Right(char.Is('u'), codepoint(4))
		case 'U':
			return parse.Right(char.Is('U'), codepoint(8))
		}
		return simple
	}))
	unescaped := text.While1("string character", func(c byte) bool {
		return c == '\t' || (c >= 0x20 && c != '"' && c != '\\' && c != 0x7f)
	})
	piece := parse.Bind(parse.Lookahead(char.Any()).Label("closing quote"), func(c byte) parse.Parser[string] {
		switch c {
		case '\\':
			return escape
		case '\n', '\r':
			return parse.Never[string]("expected closing quote")
		}
		return unescaped
	})
	body := parse.Map(parse.Until(piece, char.Is('"')), func(parts []string) string {
		return strings.Join(parts, "")
	})
	return parse.Right(char.Is('"'), body)
}

func integer() parse.Parser[any] {
	syntax := parse.Recognize(parse.Then(parse.Optional(char.OneOf("+-")), parse.Either(
		text.String("0"),
		parse.Recognize(parse.Pair(char.Range('1', '9'), text.While(char.IsDigit))),
	)))
	return parse.New(func(in parse.Input) parse.Result[any] {
		return parse.Bind(syntax, func(s string) parse.Parser[any] {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return parse.New(func(parse.Input) parse.Result[any] {
					return parse.Fail[any]("integer out of range", in)
				})
			}
			return parse.Pure[any](n)
		}).Parse(in)
	})
}

func constant(lit string, v any) parse.Parser[any] {
	return parse.Map(text.Literal(lit), func(parse.Unit) any { return v })
}

func grammar() parse.Parser[[]parse.Option[entry]] {
	var value parse.Parser[any]
	valueRef := parse.Lazy(func() parse.Parser[any] { return value })

	str := basicString()
	key := parse.Bind(parse.Lookahead(char.Any()).Label("key"), func(c byte) parse.Parser[string] {
		if c == '"' {
			return str
		}
		return text.While1("key", isBare)
	})

	// a value is followed by a comma or by the closing bracket
	element := parse.Left(parse.Left(valueRef, ws), parse.Either(
		parse.Left(char.Is(','), ws),
		parse.Lookahead(char.Is(']')),
	))
	array := parse.Map(
		parse.Right(parse.Left(char.Is('['), ws), parse.Until(element, char.Is(']'))),
		func(vs []any) any { return vs },
	)
	num := integer()

	value = parse.Trace("value", parse.Bind(parse.Lookahead(char.Any()).Label("value"), func(c byte) parse.Parser[any] {
		switch {
		case c == '"':
			return parse.Map(str, func(s string) any { return s })
		case c == '[':
			return array
		case c == 't':
			return constant("true", true)
		case c == 'f':
			return constant("false", false)
		case c == '+' || c == '-' || char.IsDigit(c):
			return num
		}
		return parse.Never[any]("expected value")
	}))

	dotted := parse.SepBy1(parse.Left(key, ws), parse.Left(char.Is('.'), ws))
	header := parse.Between(parse.Left(char.Is('['), ws), dotted, char.Is(']'))
	keyValue := parse.Pair(parse.Left(parse.Left(key, ws), parse.Left(char.Is('='), ws)), value)

	tableEntry := parse.Map(parse.Pair(parse.Here(), header), func(t parse.Tuple[parse.Input, []string]) parse.Option[entry] {
		return parse.Some(entry{at: t.First, table: t.Second})
	})
	pairEntry := parse.Map(parse.Pair(parse.Here(), keyValue), func(t parse.Tuple[parse.Input, parse.Tuple[string, any]]) parse.Option[entry] {
		return parse.Some(entry{at: t.First, key: t.Second.First, value: t.Second.Second})
	})
	content := parse.Bind(parse.Optional(parse.Lookahead(char.Any())), func(o parse.Option[byte]) parse.Parser[parse.Option[entry]] {
		c, ok := o.Get()
		switch {
		case !ok || c == '#' || c == '\n' || c == '\r':
			return parse.Pure(parse.None[entry]())
		case c == '[':
			return tableEntry
		}
		return pairEntry
	})

	comment := parse.Then(char.Is('#'), text.While(func(c byte) bool { return c != '\n' && c != '\r' }))
	eol := parse.Choice(text.Literal("\n"), text.Literal("\r\n"), text.EOF()).Label("end of line")
	line := parse.Left(parse.Left(parse.Left(parse.Right(ws, content), ws), parse.Optional(comment)), eol)

	return parse.Trace("document", parse.Until(parse.Trace("line", line), text.EOF()))
}

// build applies the entries in order. Keys go to the most recent table.
func build(lines []parse.Option[entry]) (map[string]any, error) {
	root := map[string]any{}
	defined := map[string]bool{}
	cur := root
	for _, l := range lines {
		e, ok := l.Get()
		if !ok {
			continue
		}
		if e.table == nil {
			if _, dup := cur[e.key]; dup {
				return nil, e.errorf("duplicate key %q", e.key)
			}
			cur[e.key] = e.value
			continue
		}

		name := strings.Join(e.table, ".")
		if defined[name] {
			return nil, e.errorf("table [%s] defined twice", name)
		}
		defined[name] = true

		t, err := descend(root, e)
		if err != nil {
			return nil, err
		}
		cur = t
	}
	return root, nil
}

func descend(root map[string]any, e entry) (map[string]any, error) {
	m := root
	for i, k := range e.table {
		switch v := m[k].(type) {
		case nil:
			t := map[string]any{}
			m[k] = t
			m = t
		case map[string]any:
			m = v
		default:
			return nil, e.errorf("key %q is not a table", strings.Join(e.table[:i+1], "."))
		}
	}
	return m, nil
}

// Parse parses a complete document. Errors are *parse.Error values.
func Parse(name, src string) (map[string]any, error) {
	lines, err := parse.Complete(document(), parse.NewNamedInput(name, src))
	if err != nil {
		return nil, err
	}
	return build(lines)
}
