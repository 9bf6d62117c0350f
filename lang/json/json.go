// Package json parses JSON text (RFC 8259) into Go values.
//
// Values are decoded the way encoding/json decodes into an interface{}:
// objects become map[string]any, arrays []any, numbers float64, and
// strings, booleans and null become string, bool and nil.
package json

import (
	_ "embed"
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/kipaco/parse"
	"github.com/dhamidi/kipaco/parse/char"
	"github.com/dhamidi/kipaco/parse/text"
)

// Grammar is the EBNF description of JSON.
//
//go:embed grammar.ebnf
var Grammar string

// Start is the start production of Grammar.
const Start = "Value"

var document = sync.OnceValue(grammar)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

var ws = text.While(isSpace)

func token[T any](p parse.Parser[T]) parse.Parser[T] {
	return parse.Left(p, ws)
}

func symbol(c byte) parse.Parser[byte] {
	return token(char.Is(c))
}

// list parses open, comma separated items and end. A failing item, including
// one after a comma, is reported instead of a missing end.
func list[T any](open, end byte, item parse.Parser[T]) parse.Parser[[]T] {
	empty := parse.Map(symbol(end), func(byte) []T { return []T{} })
	items := parse.Left(parse.SepBy1(item, symbol(',')), symbol(end))
	return parse.Right(symbol(open), parse.Either(empty, items))
}

func constant(lit string, v any) parse.Parser[any] {
	return parse.Map(text.Literal(lit), func(parse.Unit) any { return v })
}

func hex4() parse.Parser[rune] {
	return parse.Map(parse.Count(4, char.HexDigit()), func(ds []byte) rune {
		n, _ := strconv.ParseUint(string(ds), 16, 32)
		return rune(n)
	})
}

// unicodeEscape decodes the part after `\u`, joining surrogate pairs.
// Unpaired surrogates decode to U+FFFD, as encoding/json does.
func unicodeEscape() parse.Parser[string] {
	low := text.Prefixed(`\u`, hex4()).Pred(func(r rune) bool { return 0xDC00 <= r && r <= 0xDFFF })
	return parse.Bind(hex4(), func(r rune) parse.Parser[string] {
		if 0xD800 <= r && r <= 0xDBFF {
			return parse.Map(parse.Optional(low), func(o parse.Option[rune]) string {
				if lo, ok := o.Get(); ok {
					return string(utf16.DecodeRune(r, lo))
				}
				return string(utf8.RuneError)
			})
		}
		if utf16.IsSurrogate(r) {
			return parse.Pure(string(utf8.RuneError))
		}
		return parse.Pure(string(r))
	})
}

func stringLiteral() parse.Parser[string] {
	simple := parse.Map(char.OneOf(`"\/bfnrt`), func(c byte) string {
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
	})
	escape := parse.Right(char.Is('\\'), parse.Either(simple, parse.Right(char.Is('u'), unicodeEscape())).Label("escape sequence"))
	unescaped := text.While1("string character", func(c byte) bool {
		return c >= 0x20 && c != '"' && c != '\\'
	})
	piece := parse.Bind(parse.Lookahead(char.Any()).Label("closing quote"), func(c byte) parse.Parser[string] {
		if c == '\\' {
			return escape
		}
		return unescaped
	})
	body := parse.Map(parse.Until(piece, char.Is('"')), func(parts []string) string {
		return strings.Join(parts, "")
	})
	return parse.Right(char.Is('"'), body)
}

func number() parse.Parser[any] {
	digits := text.While1("digit", char.IsDigit)
	integer := parse.Either(
		text.String("0"),
		parse.Recognize(parse.Pair(char.Range('1', '9'), text.While(char.IsDigit))),
	)
	fraction := parse.Then(char.Is('.'), digits)
	exponent := parse.Then(parse.Then(char.OneOf("eE"), parse.Optional(char.OneOf("+-"))), digits)
	syntax := parse.Recognize(parse.Then(parse.Then(parse.Then(
		parse.Optional(char.Is('-')), integer), parse.Optional(fraction)), parse.Optional(exponent)))

	return parse.New(func(in parse.Input) parse.Result[any] {
		return parse.Bind(syntax, func(s string) parse.Parser[any] {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return parse.New(func(parse.Input) parse.Result[any] {
					return parse.Failf[any](in, "number %s out of range", s)
				})
			}
			return parse.Pure[any](f)
		}).Parse(in)
	})
}

func grammar() parse.Parser[any] {
	var value parse.Parser[any]
	valueRef := parse.Lazy(func() parse.Parser[any] { return value })

	str := token(stringLiteral())
	member := parse.Pair(parse.Left(str, symbol(':')), valueRef)
	object := parse.Map(list('{', '}', member), func(members []parse.Tuple[string, any]) any {
		obj := make(map[string]any, len(members))
		for _, m := range members {
			obj[m.First] = m.Second
		}
		return obj
	})
	array := parse.Map(list('[', ']', valueRef), func(values []any) any { return values })
	strValue := parse.Map(str, func(s string) any { return s })
	num := token(number())

	value = parse.Trace("value", parse.Bind(parse.Lookahead(char.Any()).Label("value"), func(c byte) parse.Parser[any] {
		switch {
		case c == '{':
			return parse.Trace("object", object)
		case c == '[':
			return parse.Trace("array", array)
		case c == '"':
			return strValue
		case c == '-' || char.IsDigit(c):
			return num
		case c == 't':
			return token(constant("true", true))
		case c == 'f':
			return token(constant("false", false))
		case c == 'n':
			return token(constant("null", nil))
		}
		return parse.Never[any]("expected value")
	}))

	return parse.Right(ws, value)
}

// Parse parses a complete JSON text. Errors are *parse.Error values.
func Parse(name, src string) (any, error) {
	return parse.Complete(document(), parse.NewNamedInput(name, src))
}

// Unmarshal is Parse for unnamed input.
func Unmarshal(data []byte) (any, error) {
	return Parse("", string(data))
}
