// Package parse provides parser combinators over an in-memory text input.
//
// # Overview
//
// A Parser[T] is a function from an Input to a Result[T]. A Result is either
// a Success carrying a value and the unconsumed input, or a Failure carrying
// an *Error with a message and the input at which the mismatch happened.
// Larger parsers are built by combining smaller ones; a composed parser is
// the grammar.
//
//	digit := char.Digit()
//	number := parse.Map(parse.Many1(digit), func(ds []byte) string { return string(ds) })
//	sum := parse.Pair(number, text.Prefixed("+", number))
//
// Nothing runs until a parser is given an input:
//
//	v, rest, err := parse.Run(sum, parse.NewInput("1+2"))
//
// # Backtracking
//
// An Input is an immutable value. Either and Choice hand every alternative
// the same Input, so a failed alternative leaves nothing to undo.
//
// # Failure positions
//
// Bind, Map, Pair, Left, Right and Either return a failure of a
// sub-parser unchanged. Pred, Negate, Many1 and ManyN report their failures at
// the input they received. Optional and Many never fail.
//
// # Recursion
//
// Go evaluates arguments eagerly, so a rule that refers to itself must be
// wrapped in Lazy:
//
//	var value parse.Parser[any]
//	value = parse.Lazy(func() parse.Parser[any] { return parse.Choice(number, list(value)) })
package parse
