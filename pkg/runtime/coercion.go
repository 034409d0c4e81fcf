package runtime

import (
	"math"
	"strconv"
	"strings"

	"minicode/interpreter-go/pkg/algebra"
)

// The rules in this file are the single source of truth for how values
// convert to booleans, numbers and display text.

// Truthy maps any value onto a boolean. False, 0.0, "" and null are falsy;
// every other value, including every symbolic expression, is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, NullValue:
		return false
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0
	case TextValue:
		return val.Val != ""
	default:
		return true
	}
}

// ToNumber converts numbers and booleans (true=1, false=0). Text, null and
// symbolic values are not numeric.
func ToNumber(v Value) (float64, bool) {
	switch val := v.(type) {
	case NumberValue:
		return val.Val, true
	case BoolValue:
		if val.Val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// ToSymbolic lifts numbers (and booleans) into constant expressions so they
// can be combined with symbolic operands.
func ToSymbolic(v Value) (algebra.Expr, bool) {
	if s, ok := v.(SymbolicValue); ok {
		return s.Expr, true
	}
	f, ok := ToNumber(v)
	if !ok {
		return algebra.Expr{}, false
	}
	e, err := algebra.FromFloat(f)
	if err != nil {
		return algebra.Expr{}, false
	}
	return e, true
}

// FormatNumber renders floats the way the console has always shown them:
// integral values keep a trailing ".0", everything else uses the shortest
// round-trip form.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e16:
		return strconv.FormatFloat(f, 'f', 1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// FormatValue renders a value for printing.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case nil, NullValue:
		return "None"
	case NumberValue:
		return FormatNumber(val.Val)
	case TextValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return "True"
		}
		return "False"
	case SymbolicValue:
		return val.Expr.String()
	default:
		return "<unknown>"
	}
}

// ValuesEqual implements `==`. Values of different kinds are never equal,
// except that numbers and booleans compare numerically.
func ValuesEqual(a, b Value) bool {
	if a == nil {
		a = Null
	}
	if b == nil {
		b = Null
	}
	switch av := a.(type) {
	case NullValue:
		return b.Kind() == KindNull
	case NumberValue, BoolValue:
		if b.Kind() != KindNumber && b.Kind() != KindBool {
			return false
		}
		x, _ := ToNumber(av)
		y, _ := ToNumber(b)
		return x == y
	case TextValue:
		bv, ok := b.(TextValue)
		return ok && av.Val == bv.Val
	case SymbolicValue:
		bv, ok := b.(SymbolicValue)
		return ok && algebra.Equal(av.Expr, bv.Expr)
	default:
		return false
	}
}

// Unordered is returned by CompareValues when a NaN takes part.
const Unordered = 2

// CompareValues orders two values of a compatible kind, returning -1, 0, 1 or
// Unordered. ok is false when the pair has no ordering at all.
func CompareValues(a, b Value) (cmp int, ok bool) {
	switch av := a.(type) {
	case NumberValue, BoolValue:
		x, _ := ToNumber(av)
		y, isNum := ToNumber(b)
		if !isNum {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		case x == y:
			return 0, true
		default:
			return Unordered, true
		}
	case TextValue:
		bv, isText := b.(TextValue)
		if !isText {
			return 0, false
		}
		return strings.Compare(av.Val, bv.Val), true
	default:
		return 0, false
	}
}
