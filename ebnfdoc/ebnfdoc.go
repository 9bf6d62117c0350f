// Package ebnfdoc loads the EBNF documentation that accompanies a grammar
// written with combinators, checks it for consistency and matches sample text
// against its lexical productions.
//
// The EBNF is never used to build parsers; it describes them.
package ebnfdoc

import (
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Load loads an EBNF grammar from a file.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

// Parse parses grammar text. name is used in error positions.
func Parse(name, src string) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(name, strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Check parses src and, when start is not empty, verifies that every
// production is defined and reachable from start.
func Check(name, src, start string) (ebnf.Grammar, error) {
	grammar, err := Parse(name, src)
	if err != nil {
		return nil, err
	}
	if start == "" {
		return grammar, nil
	}
	if err := ebnf.Verify(grammar, start); err != nil {
		return grammar, fmt.Errorf("verify grammar: %w", err)
	}
	return grammar, nil
}

// Errors splits an error from Parse, Check or Load into the individual
// errors reported by the ebnf package, one per problem.
func Errors(err error) []error {
	for err != nil {
		v := reflect.ValueOf(err)
		if v.Kind() == reflect.Slice {
			errs := make([]error, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if e, ok := v.Index(i).Interface().(error); ok {
					errs = append(errs, e)
				}
			}
			return errs
		}
		next := unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	if err == nil {
		return nil
	}
	return []error{err}
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}

// Production summarizes one production of a grammar.
type Production struct {
	Name     string
	Lexical  bool
	Position scanner.Position
}

// IsLexical reports whether name is a lexical production. Lexical names start
// with a lower case letter and may only refer to other lexical productions.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

// Productions lists the productions of g in source order.
func Productions(g ebnf.Grammar) []Production {
	result := make([]Production, 0, len(g))
	for name, prod := range g {
		result = append(result, Production{
			Name:     name,
			Lexical:  IsLexical(name),
			Position: prod.Pos(),
		})
	}
	slices.SortFunc(result, func(a, b Production) int {
		return a.Position.Offset - b.Position.Offset
	})
	return result
}
