package parse

// Parser turns an Input into a Result.
// A Parser is a small immutable value: copying it is cheap and it may be
// invoked any number of times, from any number of goroutines.
type Parser[T any] struct {
	run func(Input) Result[T]
}

// New wraps a parsing function.
// The function must fail at the input it received and, on success,
// return a suffix of that input as the remainder.
func New[T any](fn func(Input) Result[T]) Parser[T] {
	return Parser[T]{run: fn}
}

// Parse runs the parser on in.
func (p Parser[T]) Parse(in Input) Result[T] {
	if p.run == nil {
		return Fail[T]("uninitialized parser", in)
	}
	return p.run(in)
}

// ParseString runs the parser on an unnamed input.
func (p Parser[T]) ParseString(s string) Result[T] {
	return p.Parse(NewInput(s))
}

// Pred keeps a success only if f accepts its value.
// Any failure is reported at the input Pred received, as if nothing had been consumed.
func (p Parser[T]) Pred(f func(T) bool) Parser[T] {
	return New(func(in Input) Result[T] {
		res := p.Parse(in)
		switch r := res.(type) {
		case Success[T]:
			if f(r.Value) {
				return res
			}
			return Fail[T]("unexpected "+describe(r.Value), in)
		case Failure[T]:
			return Fail[T](r.Err.Message, in)
		}
		return res
	})
}

// Negate succeeds without consuming input when p fails, and fails when p succeeds.
func (p Parser[T]) Negate() Parser[Unit] {
	return New(func(in Input) Result[Unit] {
		if p.Parse(in).Ok() {
			return Fail[Unit]("unexpected match", in)
		}
		return Succeed(Unit{}, in)
	})
}

// Many applies p until it fails and collects the values.
// It always succeeds. A match that consumes nothing ends the repetition and
// is not collected, so Many terminates for every p.
func Many[T any](p Parser[T]) Parser[[]T] {
	return New(func(in Input) Result[[]T] {
		values, rest := repeat(p, in, make([]T, 0))
		return Succeed(values, rest)
	})
}

// Many1 is Many requiring at least one match.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return ManyN(p, 1)
}

// ManyN is Many requiring at least n matches.
// When fewer are available it fails at the input ManyN received.
func ManyN[T any](p Parser[T], n int) Parser[[]T] {
	if n < 1 {
		return Many(p)
	}
	return New(func(in Input) Result[[]T] {
		values := make([]T, 0, n)
		cur := in
		for i := 0; i < n; i++ {
			s, ok := p.Parse(cur).(Success[T])
			if !ok {
				if n == 1 {
					return Fail[[]T]("expected at least one match", in)
				}
				return Failf[[]T](in, "expected at least %d matches, found %d", n, i)
			}
			values = append(values, s.Value)
			cur = s.Remaining
		}
		values, cur = repeat(p, cur, values)
		return Succeed(values, cur)
	})
}

func repeat[T any](p Parser[T], in Input, values []T) ([]T, Input) {
	for {
		s, ok := p.Parse(in).(Success[T])
		if !ok || s.Remaining.Offset() == in.Offset() {
			return values, in
		}
		values = append(values, s.Value)
		in = s.Remaining
	}
}

// Optional never fails. When p fails it yields None and consumes nothing.
func Optional[T any](p Parser[T]) Parser[Option[T]] {
	return New(func(in Input) Result[Option[T]] {
		if s, ok := p.Parse(in).(Success[T]); ok {
			return Succeed(Some(s.Value), s.Remaining)
		}
		return Succeed(None[T](), in)
	})
}

// Label replaces the message of a failure with "expected name".
// The reported position is kept.
func (p Parser[T]) Label(name string) Parser[T] {
	return New(func(in Input) Result[T] {
		res := p.Parse(in)
		if f, ok := res.(Failure[T]); ok {
			return Fail[T]("expected "+name, f.Err.Position)
		}
		return res
	})
}

// Or is Either(p, q).
func (p Parser[T]) Or(q Parser[T]) Parser[T] {
	return Either(p, q)
}
