package parse

import "fmt"

// Unit is the value of parsers that only recognise input.
type Unit struct{}

// Option holds a value that may be absent.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some returns a present option.
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

// None returns an absent option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// Or returns the value if present, otherwise def.
func (o Option[T]) Or(def T) T {
	if o.Valid {
		return o.Value
	}
	return def
}

func (o Option[T]) String() string {
	if !o.Valid {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.Value)
}

// Tuple is the value produced by Pair.
type Tuple[A, B any] struct {
	First  A
	Second B
}
