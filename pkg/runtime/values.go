package runtime

import (
	"fmt"

	"minicode/interpreter-go/pkg/algebra"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindText
	KindBool
	KindSymbolic
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindSymbolic:
		return "symbolic"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// NumberValue is the only numeric type; integers are represented as floats.
type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type TextValue struct {
	Val string
}

func (v TextValue) Kind() Kind { return KindText }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// SymbolicValue wraps an algebra expression handle.
type SymbolicValue struct {
	Expr algebra.Expr
}

func (v SymbolicValue) Kind() Kind { return KindSymbolic }

// Null is the shared null instance.
var Null Value = NullValue{}

func Number(f float64) Value { return NumberValue{Val: f} }

func Text(s string) Value { return TextValue{Val: s} }

func Bool(b bool) Value { return BoolValue{Val: b} }

func Symbolic(e algebra.Expr) Value { return SymbolicValue{Expr: e} }
