package calc

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by Eval for x/0 and x%0.
var ErrDivisionByZero = errors.New("division by zero")

// Node is an arithmetic expression.
type Node interface {
	Eval() (int64, error)
	String() string
}

// Num is an integer literal.
type Num struct {
	Value int64 `json:"value" yaml:"value"`
}

// Neg is unary minus.
type Neg struct {
	Operand Node `json:"operand" yaml:"operand"`
}

// Binary is a binary operation. Op is one of + - * / %.
type Binary struct {
	Op    string `json:"op" yaml:"op"`
	Left  Node   `json:"left" yaml:"left"`
	Right Node   `json:"right" yaml:"right"`
}

func (n Num) Eval() (int64, error) { return n.Value, nil }

func (n Num) String() string { return fmt.Sprint(n.Value) }

func (n Neg) Eval() (int64, error) {
	v, err := n.Operand.Eval()
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n Neg) String() string { return "(-" + n.Operand.String() + ")" }

func (b Binary) Eval() (int64, error) {
	l, err := b.Left.Eval()
	if err != nil {
		return 0, err
	}
	r, err := b.Right.Eval()
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l % r, nil
	}
	return 0, fmt.Errorf("unknown operator %q", b.Op)
}

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}
