// Package calc parses and evaluates integer arithmetic expressions.
//
// Operators, from lowest to highest precedence:
//
//	+ -      left associative
//	* / %    left associative
//	-        unary minus
//
// Parentheses group. Whitespace between tokens is ignored.
package calc

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/dhamidi/kipaco/parse"
	"github.com/dhamidi/kipaco/parse/char"
	"github.com/dhamidi/kipaco/parse/text"
)

// Grammar is the EBNF description of the expression syntax.
//
//go:embed grammar.ebnf
var Grammar string

// Start is the start production of Grammar.
const Start = "Expression"

var program = sync.OnceValue(grammar)

func symbol(s string) parse.Parser[parse.Unit] {
	return text.Token(text.Literal(s))
}

func operator(op string) parse.Parser[func(Node, Node) Node] {
	return parse.Map(symbol(op), func(parse.Unit) func(Node, Node) Node {
		return func(l, r Node) Node { return Binary{Op: op, Left: l, Right: r} }
	})
}

func grammar() parse.Parser[Node] {
	var expr, unary parse.Parser[Node]

	number := parse.Map(
		text.Token(parse.Right(parse.Lookahead(char.Digit()).Label("number"), text.Int())),
		func(n int64) Node { return Num{Value: n} },
	)
	group := parse.Between(symbol("("), parse.Lazy(func() parse.Parser[Node] { return expr }), symbol(")"))
	neg := parse.Map(
		parse.Right(symbol("-"), parse.Lazy(func() parse.Parser[Node] { return unary })),
		func(n Node) Node { return Neg{Operand: n} },
	)

	// the next byte decides the rule, so failures inside a rule are reported as is
	unary = parse.Trace("unary", parse.Bind(parse.Lookahead(char.Any()).Label("expression"), func(c byte) parse.Parser[Node] {
		switch c {
		case '-':
			return neg
		case '(':
			return group
		}
		return number
	}))

	term := parse.Trace("term", parse.Chainl1(unary, parse.Choice(operator("*"), operator("/"), operator("%"))))
	expr = parse.Trace("expression", parse.Chainl1(term, parse.Either(operator("+"), operator("-"))))

	return parse.Right(text.Spaces(), expr)
}

// Parse parses a complete expression. Errors are *parse.Error values.
func Parse(name, src string) (Node, error) {
	return parse.Complete(program(), parse.NewNamedInput(name, src))
}

// Eval parses and evaluates an expression.
func Eval(src string) (int64, error) {
	n, err := Parse("", src)
	if err != nil {
		return 0, fmt.Errorf("parse expression: %w", err)
	}
	return n.Eval()
}
