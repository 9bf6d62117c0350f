package ebnfdoc

import (
	"os"
	"path/filepath"
	"testing"
)

const numbers = `
List    = number { "," number } .
number  = [ "-" ] digit { digit } .
digit   = "0" … "9" .
word    = letter { letter } .
letter  = "a" … "z" | "α" … "ω" .
`

func TestCheck(t *testing.T) {
	if _, err := Check("numbers.ebnf", numbers, ""); err != nil {
		t.Fatalf("syntax check failed: %v", err)
	}

	// word is unreachable from List
	_, err := Check("numbers.ebnf", numbers, "List")
	if err == nil {
		t.Fatal("expected verification error")
	}
	errs := Errors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
}

func TestCheckSyntaxError(t *testing.T) {
	_, err := Check("bad.ebnf", "A = \"a\" \nB = .", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(Errors(err)) == 0 {
		t.Error("expected at least one error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.ebnf")
	if err := os.WriteFile(path, []byte(numbers), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(g) != 5 {
		t.Errorf("expected 5 productions, got %d", len(g))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.ebnf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProductionsInSourceOrder(t *testing.T) {
	g, err := Parse("numbers.ebnf", numbers)
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		name    string
		lexical bool
	}{
		{"List", false},
		{"number", true},
		{"digit", true},
		{"word", true},
		{"letter", true},
	}
	got := Productions(g)
	if len(got) != len(want) {
		t.Fatalf("expected %d productions, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Lexical != w.lexical {
			t.Errorf("production %d: expected %s (lexical=%v), got %s (lexical=%v)",
				i, w.name, w.lexical, got[i].Name, got[i].Lexical)
		}
	}
	if got[1].Position.Line != 3 {
		t.Errorf("expected number on line 3, got %d", got[1].Position.Line)
	}
}

func TestAccepts(t *testing.T) {
	g, err := Parse("numbers.ebnf", numbers)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		production string
		input      string
		want       bool
	}{
		{"number", "42", true},
		{"number", "-7", true},
		{"number", "-", false},
		{"number", "4a", false},
		{"List", "1,-2,3", true},
		{"List", "1,", false},
		{"word", "abc", true},
		{"word", "λx", true},
		{"word", "λ1", false},
		{"word", "λμ", true},
		{"missing", "x", false},
	}
	for _, tt := range tests {
		if got := Accepts(g, tt.production, tt.input); got != tt.want {
			t.Errorf("Accepts(%s, %q): expected %v, got %v", tt.production, tt.input, tt.want, got)
		}
	}
}

func TestMatchPrefix(t *testing.T) {
	g, err := Parse("numbers.ebnf", numbers)
	if err != nil {
		t.Fatal(err)
	}

	n, ok := NewMatcher(g, "123abc").Match("number")
	if !ok || n != 3 {
		t.Errorf("expected match of length 3, got %d (ok=%v)", n, ok)
	}
	if _, ok := NewMatcher(g, "abc").Match("number"); ok {
		t.Error("expected no match")
	}
}

func TestMatchLeftRecursionTerminates(t *testing.T) {
	g, err := Parse("rec.ebnf", `expr = expr "+" "a" | "a" .`)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := NewMatcher(g, "a+a").Match("expr")
	if !ok || n != 1 {
		t.Errorf("expected match of length 1, got %d (ok=%v)", n, ok)
	}
}
