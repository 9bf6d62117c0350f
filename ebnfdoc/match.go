package ebnfdoc

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Matcher measures how much of an input a production matches.
// Alternatives pick the longest match and repetitions are greedy, which is
// enough for the lexical productions of the bundled languages.
type Matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int  // match length, -1 for no match
	visiting map[memoKey]bool // cycle detection
}

// NewMatcher creates a matcher for input.
func NewMatcher(grammar ebnf.Grammar, input string) *Matcher {
	return &Matcher{
		grammar:  grammar,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Match returns the length of the longest prefix of the input that the
// production name matches, and false when it matches nothing.
func (m *Matcher) Match(name string) (int, bool) {
	n := m.matchName(name, 0)
	return n, n >= 0
}

// Accepts reports whether the production name matches all of s.
func Accepts(g ebnf.Grammar, name, s string) bool {
	n, ok := NewMatcher(g, s).Match(name)
	return ok && n == len(s)
}

// match returns the length matched by expr at offset, or -1.
func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		pos := offset
		for _, item := range e {
			n := m.match(item, pos)
			if n < 0 {
				return -1
			}
			pos += n
		}
		return pos - offset

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		pos := offset
		for {
			n := m.match(e.Body, pos)
			if n <= 0 {
				break
			}
			pos += n
		}
		return pos - offset

	case *ebnf.Option:
		return max(m.match(e.Body, offset), 0)

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

// matchName matches a named production with memoization and cycle detection.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if result, ok := m.memo[key]; ok {
		return result
	}

	// already visiting this production at this offset: left recursion
	if m.visiting[key] {
		return -1
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return -1
	}

	m.visiting[key] = true
	result := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = result
	return result
}

// matchRange matches one character between begin and end inclusive.
func (m *Matcher) matchRange(begin, end string, offset int) int {
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRuneInString(m.input[offset:])
	if size == 0 || r == utf8.RuneError && size == 1 {
		return -1
	}
	if r < lo || r > hi {
		return -1
	}
	return size
}
