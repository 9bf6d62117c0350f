package parse

import (
	"errors"
	"testing"
)

func TestInputAdvanceLeavesOriginal(t *testing.T) {
	in := NewInput("hello")
	rest := in.Advance(2)

	if rest.String() != "llo" {
		t.Errorf("expected %q, got %q", "llo", rest.String())
	}
	if in.String() != "hello" {
		t.Errorf("original input changed to %q", in.String())
	}
	if rest.Offset() != 2 {
		t.Errorf("expected offset 2, got %d", rest.Offset())
	}
	if rest.Source() != in.Source() {
		t.Error("advanced input does not share the source")
	}
}

func TestInputAdvancePastEndPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewInput("ab").Advance(3)
}

func TestInputPeek(t *testing.T) {
	c, ok := NewInput("xy").Peek()
	if !ok || c != 'x' {
		t.Errorf("expected 'x', got %q (ok=%v)", c, ok)
	}
	if _, ok := NewInput("").Peek(); ok {
		t.Error("expected no byte at end of input")
	}
}

func TestInputPosition(t *testing.T) {
	src := "ab\ncd\nef"
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{8, 3, 3},
	}

	for _, tt := range tests {
		pos := NewNamedInput("f.txt", src).Advance(tt.offset).Position()
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", tt.offset, tt.line, tt.column, pos.Line, pos.Column)
		}
		if pos.Filename != "f.txt" || pos.Offset != tt.offset {
			t.Errorf("offset %d: unexpected position %+v", tt.offset, pos)
		}
	}
}

func TestPositionString(t *testing.T) {
	if s := (Position{Line: 2, Column: 5}).String(); s != "2:5" {
		t.Errorf("expected 2:5, got %q", s)
	}
	if s := (Position{Filename: "a.calc", Line: 1, Column: 1}).String(); s != "a.calc:1:1" {
		t.Errorf("expected a.calc:1:1, got %q", s)
	}
}

func TestResultWrongVariant(t *testing.T) {
	in := NewInput("x")

	_, err := Succeed(1, in).AsFailure()
	var verr *VariantError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *VariantError, got %v", err)
	}
	if verr.Want != "failure" || verr.Got != "success" {
		t.Errorf("unexpected variant error %+v", verr)
	}

	_, err = Fail[int]("nope", in).AsSuccess()
	if !errors.As(err, &verr) {
		t.Fatalf("expected *VariantError, got %v", err)
	}
	if verr.Want != "success" {
		t.Errorf("unexpected variant error %+v", verr)
	}
}

func TestRetypeSharesError(t *testing.T) {
	f, _ := Fail[int]("boom", NewInput("x")).AsFailure()
	g := Retype[string](f)
	if g.Err != f.Err {
		t.Error("expected the same error after retyping")
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Message: `expected "teste"`, Position: NewNamedInput("in.txt", "test")}
	if got := err.Error(); got != `in.txt:1:1: expected "teste"` {
		t.Errorf("unexpected error string %q", got)
	}
}

func TestSnippet(t *testing.T) {
	err := &Error{Message: "x", Position: NewInput("ab\ncd\nef").Advance(4)}
	want := "cd\n ^"
	if got := Snippet(err); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	err = &Error{Message: "x", Position: NewInput("\tab").Advance(2)}
	want = "\tab\n\t ^"
	if got := Snippet(err); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestZeroParserFails(t *testing.T) {
	var p Parser[int]
	f, err := p.ParseString("x").AsFailure()
	if err != nil {
		t.Fatal("expected failure")
	}
	if f.Err.Message != "uninitialized parser" {
		t.Errorf("unexpected message %q", f.Err.Message)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{byte('a'), `'a'`},
		{'b', `'b'`},
		{"c", `"c"`},
		{42, "42"},
	}
	for _, tt := range tests {
		if got := describe(tt.v); got != tt.want {
			t.Errorf("describe(%v): expected %s, got %s", tt.v, tt.want, got)
		}
	}
}
