package interpreter

import (
	"errors"
	"math"
	"strings"

	"minicode/interpreter-go/pkg/algebra"
	"minicode/interpreter-go/pkg/ast"
	"minicode/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.Number(n.Value), nil
	case *ast.TextLiteral:
		return runtime.Text(stripLexeme(n.Lexeme)), nil
	case *ast.BooleanLiteral:
		return runtime.Bool(n.Value), nil
	case *ast.ParenthesizedExpression:
		return i.evaluateExpression(n.Expression)
	case *ast.Identifier:
		return i.resolveIdentifier(n.Name)
	case *ast.FunctionCall:
		return i.callFunction(n)
	case *ast.UnaryExpression:
		return i.evaluateUnary(n)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n)
	case nil:
		return nil, newRuntimeError(KindInternal, "missing expression")
	default:
		return nil, newRuntimeError(KindInternal, "unsupported expression type: %s", node.NodeType())
	}
}

// stripLexeme drops exactly the first and last character. Escapes inside
// the literal are left as written.
func stripLexeme(lexeme string) string {
	r := []rune(lexeme)
	if len(r) < 2 {
		return ""
	}
	return string(r[1 : len(r)-1])
}

// resolveIdentifier consults the polynomial registry before variables.
func (i *Interpreter) resolveIdentifier(name string) (runtime.Value, error) {
	if expr, ok := i.polynomials.Get(name); ok {
		return runtime.Symbolic(expr), nil
	}
	v, err := i.scopes.Lookup(name)
	if err != nil {
		return nil, &RuntimeError{Kind: KindUndefinedVariable, Message: err.Error(), Err: err}
	}
	return v, nil
}

func (i *Interpreter) evaluateUnary(n *ast.UnaryExpression) (runtime.Value, error) {
	operand, err := i.evaluateExpression(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "-":
		switch v := operand.(type) {
		case runtime.NumberValue:
			return runtime.Number(-v.Val), nil
		case runtime.SymbolicValue:
			return runtime.Symbolic(algebra.Neg(v.Expr)), nil
		}
	case "+":
		switch operand.(type) {
		case runtime.NumberValue, runtime.SymbolicValue:
			return operand, nil
		}
	default:
		return nil, newRuntimeError(KindInternal, "unknown unary operator %q", n.Operator)
	}
	return nil, newTypeMismatch("bad operand type for unary %s: %s", n.Operator, operand.Kind())
}

func (i *Interpreter) evaluateBinary(n *ast.BinaryExpression) (runtime.Value, error) {
	switch n.Operator {
	case "and", "or":
		return i.evaluateLogical(n)
	}
	left, err := i.evaluateExpression(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "==":
		return runtime.Bool(runtime.ValuesEqual(left, right)), nil
	case "!=":
		return runtime.Bool(!runtime.ValuesEqual(left, right)), nil
	case "<", ">", "<=", ">=":
		return compareValues(n.Operator, left, right)
	case "+", "-", "*", "/", "%", "^":
		return applyArithmetic(n.Operator, left, right)
	default:
		return nil, newRuntimeError(KindInternal, "unknown binary operator %q", n.Operator)
	}
}

// evaluateLogical short-circuits: the right operand is only evaluated when
// the left one does not decide the result.
func (i *Interpreter) evaluateLogical(n *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left)
	if err != nil {
		return nil, err
	}
	leftTrue := runtime.Truthy(left)
	if n.Operator == "and" && !leftTrue {
		return runtime.Bool(false), nil
	}
	if n.Operator == "or" && leftTrue {
		return runtime.Bool(true), nil
	}
	right, err := i.evaluateExpression(n.Right)
	if err != nil {
		return nil, err
	}
	return runtime.Bool(runtime.Truthy(right)), nil
}

func compareValues(op string, left, right runtime.Value) (runtime.Value, error) {
	cmp, ok := runtime.CompareValues(left, right)
	if !ok {
		return nil, newTypeMismatch("'%s' not supported between %s and %s", op, left.Kind(), right.Kind())
	}
	if cmp == runtime.Unordered {
		return runtime.Bool(false), nil
	}
	switch op {
	case "<":
		return runtime.Bool(cmp < 0), nil
	case ">":
		return runtime.Bool(cmp > 0), nil
	case "<=":
		return runtime.Bool(cmp <= 0), nil
	default:
		return runtime.Bool(cmp >= 0), nil
	}
}

func applyArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	if left.Kind() == runtime.KindSymbolic || right.Kind() == runtime.KindSymbolic {
		return applySymbolic(op, left, right)
	}
	if op == "+" {
		if l, ok := left.(runtime.TextValue); ok {
			if r, ok := right.(runtime.TextValue); ok {
				return runtime.Text(l.Val + r.Val), nil
			}
		}
	}
	if op == "*" {
		if l, ok := left.(runtime.TextValue); ok {
			if count, ok := runtime.ToNumber(right); ok {
				return repeatText(l.Val, count)
			}
		}
		if r, ok := right.(runtime.TextValue); ok {
			if count, ok := runtime.ToNumber(left); ok {
				return repeatText(r.Val, count)
			}
		}
	}
	x, okL := runtime.ToNumber(left)
	y, okR := runtime.ToNumber(right)
	if !okL || !okR {
		return nil, newTypeMismatch("unsupported operand types for %s: %s and %s", op, left.Kind(), right.Kind())
	}
	switch op {
	case "+":
		return runtime.Number(x + y), nil
	case "-":
		return runtime.Number(x - y), nil
	case "*":
		return runtime.Number(x * y), nil
	case "/":
		if y == 0 {
			return nil, newDivisionByZeroError()
		}
		return runtime.Number(x / y), nil
	case "%":
		return runtime.Number(flooredMod(x, y)), nil
	default:
		return runtime.Number(math.Pow(x, y)), nil
	}
}

// flooredMod gives the result the sign of the divisor. A zero divisor
// yields NaN.
func flooredMod(x, y float64) float64 {
	if y == 0 {
		return math.NaN()
	}
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

// MaxTextLength bounds the length of text built by repetition.
const MaxTextLength = 1 << 24

func repeatText(s string, count float64) (runtime.Value, error) {
	if math.IsNaN(count) || count < 1 || s == "" {
		return runtime.Text(""), nil
	}
	if count > float64(MaxTextLength/len(s)) {
		return nil, newTypeMismatch("text repetition of %d characters %s times exceeds %d characters", len(s), runtime.FormatNumber(count), MaxTextLength)
	}
	return runtime.Text(strings.Repeat(s, int(count))), nil
}

func applySymbolic(op string, left, right runtime.Value) (runtime.Value, error) {
	if op == "^" {
		return symbolicPower(left, right)
	}
	a, okL := runtime.ToSymbolic(left)
	b, okR := runtime.ToSymbolic(right)
	if !okL || !okR || op == "%" {
		return nil, newTypeMismatch("unsupported operand types for %s: %s and %s", op, left.Kind(), right.Kind())
	}
	var (
		out algebra.Expr
		err error
	)
	switch op {
	case "+":
		out, err = algebra.Add(a, b)
	case "-":
		out, err = algebra.Sub(a, b)
	case "*":
		out, err = algebra.Mul(a, b)
	default:
		out, err = algebra.Quo(a, b)
	}
	if err != nil {
		return nil, algebraError(err)
	}
	return runtime.Symbolic(out), nil
}

func symbolicPower(left, right runtime.Value) (runtime.Value, error) {
	base, ok := left.(runtime.SymbolicValue)
	exp, isNum := right.(runtime.NumberValue)
	if !ok || !isNum {
		return nil, newTypeMismatch("unsupported operand types for ^: %s and %s", left.Kind(), right.Kind())
	}
	if exp.Val < 0 || exp.Val != math.Trunc(exp.Val) || exp.Val > algebra.MaxExponent {
		return nil, newTypeMismatch("symbolic exponent must be a whole number between 0 and %d", algebra.MaxExponent)
	}
	out, err := algebra.Pow(base.Expr, int(exp.Val))
	if err != nil {
		return nil, algebraError(err)
	}
	return runtime.Symbolic(out), nil
}

func algebraError(err error) *RuntimeError {
	if errors.Is(err, algebra.ErrDivisionByZero) {
		return &RuntimeError{Kind: KindDivisionByZero, Message: "division by zero", Err: err}
	}
	return &RuntimeError{Kind: KindTypeMismatch, Message: err.Error(), Err: err}
}
