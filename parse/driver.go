package parse

// Run parses in with p and returns the value and the remaining input.
// On failure the error is a *Error and the returned input is the failure position.
func Run[T any](p Parser[T], in Input) (T, Input, error) {
	switch r := p.Parse(in).(type) {
	case Success[T]:
		return r.Value, r.Remaining, nil
	case Failure[T]:
		var zero T
		return zero, r.Err.Position, r.Err
	}
	panic("parse: unknown result type")
}

// Complete is Run requiring that p consumes all of in.
func Complete[T any](p Parser[T], in Input) (T, error) {
	v, rest, err := Run(p, in)
	if err != nil {
		return v, err
	}
	if !rest.Empty() {
		var zero T
		return zero, &Error{Message: "expected end of input", Position: rest}
	}
	return v, nil
}
