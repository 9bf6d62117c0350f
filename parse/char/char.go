// Package char provides parsers that match a single byte.
package char

import (
	"fmt"
	"strings"

	"github.com/dhamidi/kipaco/parse"
)

// Any matches any byte. It fails only at the end of input.
func Any() parse.Parser[byte] {
	return parse.New(func(in parse.Input) parse.Result[byte] {
		c, ok := in.Peek()
		if !ok {
			return parse.Fail[byte]("unexpected end of input", in)
		}
		return parse.Succeed(c, in.Advance(1))
	})
}

// Satisfy matches a byte accepted by f. The name appears in failure messages.
func Satisfy(name string, f func(byte) bool) parse.Parser[byte] {
	return Any().Pred(f).Label(name)
}

// Is matches exactly c.
func Is(c byte) parse.Parser[byte] {
	return Satisfy(fmt.Sprintf("%q", rune(c)), func(b byte) bool { return b == c })
}

// Digit matches an ASCII decimal digit.
func Digit() parse.Parser[byte] {
	return Satisfy("digit", IsDigit)
}

// Alpha matches an ASCII letter.
func Alpha() parse.Parser[byte] {
	return Satisfy("letter", IsAlpha)
}

// Alnum matches a letter or a digit.
func Alnum() parse.Parser[byte] {
	return parse.Either(Alpha(), Digit()).Label("letter or digit")
}

// Word matches a letter, a digit or an underscore.
func Word() parse.Parser[byte] {
	return parse.Either(Alnum(), Is('_')).Label("word character")
}

// Space matches an ASCII whitespace byte.
func Space() parse.Parser[byte] {
	return Satisfy("whitespace", IsSpace)
}

// HexDigit matches a hexadecimal digit of either case.
func HexDigit() parse.Parser[byte] {
	return Satisfy("hex digit", func(c byte) bool {
		return IsDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
	})
}

// OneOf matches any byte in set.
func OneOf(set string) parse.Parser[byte] {
	return Satisfy(fmt.Sprintf("one of %q", set), func(c byte) bool {
		return strings.IndexByte(set, c) >= 0
	})
}

// NoneOf matches any byte not in set.
func NoneOf(set string) parse.Parser[byte] {
	return Satisfy(fmt.Sprintf("none of %q", set), func(c byte) bool {
		return strings.IndexByte(set, c) < 0
	})
}

// Range matches a byte between lo and hi inclusive.
func Range(lo, hi byte) parse.Parser[byte] {
	return Satisfy(fmt.Sprintf("%q-%q", rune(lo), rune(hi)), func(c byte) bool {
		return lo <= c && c <= hi
	})
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsAlpha reports whether c is an ASCII letter.
func IsAlpha(c byte) bool { return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') }

// IsSpace reports whether c is ASCII whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
