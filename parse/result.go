package parse

import "fmt"

// Result is the outcome of running a parser once.
// It is either a Success[T] or a Failure[T]; no other implementations exist.
//
//	switch r := res.(type) {
//	case parse.Success[int]:
//	    use(r.Value, r.Remaining)
//	case parse.Failure[int]:
//	    report(r.Err)
//	}
type Result[T any] interface {
	// Ok reports whether the result is a Success.
	Ok() bool
	// AsSuccess returns the success payload, or a *VariantError for a failure.
	AsSuccess() (Success[T], error)
	// AsFailure returns the failure payload, or a *VariantError for a success.
	AsFailure() (Failure[T], error)

	sealed()
}

// Success carries the produced value and the unconsumed input.
type Success[T any] struct {
	Value     T
	Remaining Input
}

// Failure carries the reason a parser did not match.
type Failure[T any] struct {
	Err *Error
}

// VariantError is returned when a Result is asked for the variant it does not hold.
type VariantError struct {
	Want string
	Got  string
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("parse result is a %s, not a %s", e.Got, e.Want)
}

func (s Success[T]) Ok() bool { return true }

func (s Success[T]) AsSuccess() (Success[T], error) { return s, nil }

func (s Success[T]) AsFailure() (Failure[T], error) {
	return Failure[T]{}, &VariantError{Want: "failure", Got: "success"}
}

func (Success[T]) sealed() {}

func (f Failure[T]) Ok() bool { return false }

func (f Failure[T]) AsSuccess() (Success[T], error) {
	return Success[T]{}, &VariantError{Want: "success", Got: "failure"}
}

func (f Failure[T]) AsFailure() (Failure[T], error) { return f, nil }

func (Failure[T]) sealed() {}

// Succeed builds a successful result.
func Succeed[T any](value T, remaining Input) Result[T] {
	return Success[T]{Value: value, Remaining: remaining}
}

// Fail builds a failed result reported at pos.
func Fail[T any](message string, pos Input) Result[T] {
	return Failure[T]{Err: &Error{Message: message, Position: pos}}
}

// Failf is Fail with a formatted message.
func Failf[T any](pos Input, format string, args ...any) Result[T] {
	return Fail[T](fmt.Sprintf(format, args...), pos)
}

// Retype converts a failure to another result type.
// The error is shared, so the message and position are unchanged.
func Retype[U, T any](f Failure[T]) Failure[U] {
	return Failure[U]{Err: f.Err}
}
