// Package text provides parsers that match runs of bytes, and helpers that let
// a literal string stand in for a parser in sequences and alternatives.
package text

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/kipaco/parse"
	"github.com/dhamidi/kipaco/parse/char"
)

// Literal matches s exactly.
func Literal(s string) parse.Parser[parse.Unit] {
	msg := fmt.Sprintf("expected %q", s)
	return parse.New(func(in parse.Input) parse.Result[parse.Unit] {
		if !in.HasPrefix(s) {
			return parse.Fail[parse.Unit](msg, in)
		}
		return parse.Succeed(parse.Unit{}, in.Advance(len(s)))
	})
}

// String matches s exactly and yields it.
func String(s string) parse.Parser[string] {
	return parse.Map(Literal(s), func(parse.Unit) string { return s })
}

// Rest consumes and yields all remaining input. It never fails.
func Rest() parse.Parser[string] {
	return parse.New(func(in parse.Input) parse.Result[string] {
		return parse.Succeed(in.String(), in.Advance(in.Len()))
	})
}

// EOF matches only at the end of input.
func EOF() parse.Parser[parse.Unit] {
	return parse.New(func(in parse.Input) parse.Result[parse.Unit] {
		if !in.Empty() {
			return parse.Fail[parse.Unit]("expected end of input", in)
		}
		return parse.Succeed(parse.Unit{}, in)
	})
}

// While consumes the longest prefix of bytes accepted by f. It never fails.
func While(f func(byte) bool) parse.Parser[string] {
	return parse.New(func(in parse.Input) parse.Result[string] {
		s := in.String()
		n := 0
		for n < len(s) && f(s[n]) {
			n++
		}
		return parse.Succeed(s[:n], in.Advance(n))
	})
}

// While1 is While requiring at least one byte. The name appears in failure messages.
func While1(name string, f func(byte) bool) parse.Parser[string] {
	return While(f).Pred(func(s string) bool { return s != "" }).Label(name)
}

// Spaces skips optional whitespace.
func Spaces() parse.Parser[parse.Unit] {
	return parse.Map(While(char.IsSpace), func(string) parse.Unit { return parse.Unit{} })
}

// Token runs p and skips the whitespace that follows it.
func Token[T any](p parse.Parser[T]) parse.Parser[T] {
	return parse.Left(p, Spaces())
}

// Digits matches one or more decimal digits.
func Digits() parse.Parser[string] {
	return While1("digits", char.IsDigit)
}

// Int matches an optionally signed decimal integer that fits in an int64.
func Int() parse.Parser[int64] {
	sign := parse.Map(parse.Optional(char.OneOf("+-")), func(o parse.Option[byte]) string {
		if c, ok := o.Get(); ok {
			return string(c)
		}
		return ""
	})
	number := parse.Pair(sign, Digits())
	return parse.New(func(in parse.Input) parse.Result[int64] {
		return parse.Bind(number, func(t parse.Tuple[string, string]) parse.Parser[int64] {
			n, err := strconv.ParseInt(t.First+t.Second, 10, 64)
			if err != nil {
				return parse.New(func(parse.Input) parse.Result[int64] {
					return parse.Fail[int64]("integer out of range", in)
				})
			}
			return parse.Pure(n)
		}).Parse(in)
	})
}

// Prefixed matches the literal s followed by p and keeps the value of p.
func Prefixed[T any](s string, p parse.Parser[T]) parse.Parser[T] {
	return parse.Right(Literal(s), p)
}

// Suffixed matches p followed by the literal s and keeps the value of p.
func Suffixed[T any](p parse.Parser[T], s string) parse.Parser[T] {
	return parse.Left(p, Literal(s))
}

// Alt matches the first of the literals that the input starts with and yields it.
func Alt(literals ...string) parse.Parser[string] {
	ps := make([]parse.Parser[string], len(literals))
	for i, s := range literals {
		ps[i] = String(s)
	}
	return parse.Choice(ps...)
}

// Seq matches the literals one after the other.
func Seq(literals ...string) parse.Parser[parse.Unit] {
	p := parse.Pure(parse.Unit{})
	for _, s := range literals {
		p = parse.Then(p, Literal(s))
	}
	return p
}
