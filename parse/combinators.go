package parse

import "sync"

// Bind runs p and feeds its value to f to choose the parser for the rest of the input.
// A failure of p is returned unchanged and f is not called.
func Bind[T, U any](p Parser[T], f func(T) Parser[U]) Parser[U] {
	return New(func(in Input) Result[U] {
		switch r := p.Parse(in).(type) {
		case Success[T]:
			return f(r.Value).Parse(r.Remaining)
		case Failure[T]:
			return Retype[U](r)
		}
		panic("parse: unknown result type")
	})
}

// Then runs p and then q, keeping only the value of q.
func Then[T, U any](p Parser[T], q Parser[U]) Parser[U] {
	return Bind(p, func(T) Parser[U] { return q })
}

// Map transforms the value of a success. f must not fail; use Bind or Pred for
// transformations that can reject a value.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return New(func(in Input) Result[U] {
		switch r := p.Parse(in).(type) {
		case Success[T]:
			return Succeed(f(r.Value), r.Remaining)
		case Failure[T]:
			return Retype[U](r)
		}
		panic("parse: unknown result type")
	})
}

// Pure succeeds with v without consuming input.
func Pure[T any](v T) Parser[T] {
	return New(func(in Input) Result[T] {
		return Succeed(v, in)
	})
}

// Never fails at the input it receives.
func Never[T any](message string) Parser[T] {
	return New(func(in Input) Result[T] {
		return Fail[T](message, in)
	})
}

// Pair runs p1 then p2 and yields both values.
func Pair[A, B any](p1 Parser[A], p2 Parser[B]) Parser[Tuple[A, B]] {
	return Bind(p1, func(a A) Parser[Tuple[A, B]] {
		return Map(p2, func(b B) Tuple[A, B] {
			return Tuple[A, B]{First: a, Second: b}
		})
	})
}

// Left runs p1 then p2 and keeps the value of p1.
func Left[A, B any](p1 Parser[A], p2 Parser[B]) Parser[A] {
	return Map(Pair(p1, p2), func(t Tuple[A, B]) A { return t.First })
}

// Right runs p1 then p2 and keeps the value of p2.
func Right[A, B any](p1 Parser[A], p2 Parser[B]) Parser[B] {
	return Map(Pair(p1, p2), func(t Tuple[A, B]) B { return t.Second })
}

// Between runs open, p and end in order and keeps the value of p.
func Between[O, T, C any](open Parser[O], p Parser[T], end Parser[C]) Parser[T] {
	return Left(Right(open, p), end)
}

// Either tries p1 and, if it fails, runs p2 on the same input.
// The result of p2 is returned as is.
func Either[T any](p1, p2 Parser[T]) Parser[T] {
	return New(func(in Input) Result[T] {
		if res := p1.Parse(in); res.Ok() {
			return res
		}
		return p2.Parse(in)
	})
}

// Choice tries each parser in order on the same input and returns the first
// success, or the failure of the last parser.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	if len(ps) == 0 {
		return Never[T]("no alternatives")
	}
	return New(func(in Input) Result[T] {
		var res Result[T]
		for _, p := range ps {
			if res = p.Parse(in); res.Ok() {
				return res
			}
		}
		return res
	})
}

// SepBy parses zero or more p separated by sep.
// It yields an empty list when the first p fails at the input SepBy received;
// any other failure is returned.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	items := SepBy1(p, sep)
	return New(func(in Input) Result[[]T] {
		res := items.Parse(in)
		if f, ok := res.(Failure[[]T]); ok && f.Err.Position.Offset() == in.Offset() {
			return Succeed([]T{}, in)
		}
		return res
	})
}

// SepBy1 parses one or more p separated by sep.
// Once sep has matched another p is required, and its failure is returned.
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return New(func(in Input) Result[[]T] {
		var values []T
		var cur Input
		switch r := p.Parse(in).(type) {
		case Success[T]:
			values = []T{r.Value}
			cur = r.Remaining
		case Failure[T]:
			return Retype[[]T](r)
		}
		for {
			s, ok := sep.Parse(cur).(Success[S])
			if !ok {
				return Succeed(values, cur)
			}
			switch r := p.Parse(s.Remaining).(type) {
			case Success[T]:
				if r.Remaining.Offset() == cur.Offset() {
					return Succeed(values, cur)
				}
				values = append(values, r.Value)
				cur = r.Remaining
			case Failure[T]:
				return Retype[[]T](r)
			}
		}
	})
}

// Chainl1 parses one or more p separated by op and folds them from the left
// with the functions op yields. Once op has matched another p is required.
func Chainl1[T any](p Parser[T], op Parser[func(T, T) T]) Parser[T] {
	return New(func(in Input) Result[T] {
		var acc T
		var cur Input
		switch r := p.Parse(in).(type) {
		case Success[T]:
			acc = r.Value
			cur = r.Remaining
		case Failure[T]:
			return r
		}
		for {
			o, ok := op.Parse(cur).(Success[func(T, T) T])
			if !ok {
				return Succeed(acc, cur)
			}
			switch r := p.Parse(o.Remaining).(type) {
			case Success[T]:
				if r.Remaining.Offset() == cur.Offset() {
					return Succeed(acc, cur)
				}
				acc = o.Value(acc, r.Value)
				cur = r.Remaining
			case Failure[T]:
				return r
			}
		}
	})
}

// Lazy defers building a parser until it is first used, which allows
// recursive grammars. f is called at most once.
func Lazy[T any](f func() Parser[T]) Parser[T] {
	get := sync.OnceValue(f)
	return New(func(in Input) Result[T] {
		return get().Parse(in)
	})
}

// Count runs p exactly n times.
func Count[T any](n int, p Parser[T]) Parser[[]T] {
	return New(func(in Input) Result[[]T] {
		values := make([]T, 0, n)
		cur := in
		for i := 0; i < n; i++ {
			switch r := p.Parse(cur).(type) {
			case Success[T]:
				values = append(values, r.Value)
				cur = r.Remaining
			case Failure[T]:
				return Retype[[]T](r)
			}
		}
		return Succeed(values, cur)
	})
}

// Until applies p until end matches, then consumes end.
// Unlike Many, a failure of p is returned, so the caller sees why the
// repetition stopped.
func Until[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return New(func(in Input) Result[[]T] {
		values := make([]T, 0)
		for {
			if s, ok := end.Parse(in).(Success[E]); ok {
				return Succeed(values, s.Remaining)
			}
			switch r := p.Parse(in).(type) {
			case Success[T]:
				if r.Remaining.Offset() == in.Offset() {
					return Fail[[]T]("repetition made no progress", in)
				}
				values = append(values, r.Value)
				in = r.Remaining
			case Failure[T]:
				return Retype[[]T](r)
			}
		}
	})
}

// Lookahead runs p without consuming input.
func Lookahead[T any](p Parser[T]) Parser[T] {
	return New(func(in Input) Result[T] {
		res := p.Parse(in)
		if s, ok := res.(Success[T]); ok {
			return Succeed(s.Value, in)
		}
		return res
	})
}

// Here yields the current input without consuming it.
func Here() Parser[Input] {
	return New(func(in Input) Result[Input] {
		return Succeed(in, in)
	})
}

// Recognize runs p and yields the text it consumed instead of its value.
func Recognize[T any](p Parser[T]) Parser[string] {
	return New(func(in Input) Result[string] {
		switch r := p.Parse(in).(type) {
		case Success[T]:
			n := r.Remaining.Offset() - in.Offset()
			return Succeed(in.String()[:n], r.Remaining)
		case Failure[T]:
			return Retype[string](r)
		}
		panic("parse: unknown result type")
	})
}
