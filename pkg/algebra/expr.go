// Package algebra is a small computer-algebra engine for univariate rational
// functions with exact rational coefficients. Every Expr is kept in canonical
// form: numerator and denominator share no common factor and the denominator
// is monic, so structural equality is mathematical equality.
package algebra

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

var (
	ErrDivisionByZero = errors.New("algebra: division by zero")
	ErrMixedVariables = errors.New("algebra: expressions use different variables")
	ErrNotFinite      = errors.New("algebra: value is not finite")
	ErrDegreeTooLarge = errors.New("algebra: degree too large")
)

// MaxDegree bounds the degree of numerators and denominators an operation may
// produce.
const MaxDegree = 1024

// Expr is an immutable rational function num/den in one variable.
type Expr struct {
	variable string
	num      poly
	den      poly
}

// Zero is the additive identity.
func Zero() Expr { return Expr{den: poly{ratInt(1)}} }

// Const builds a constant expression.
func Const(r *big.Rat) Expr {
	return Expr{num: constPoly(r), den: poly{ratInt(1)}}
}

// Var builds the expression consisting of the bare variable name.
func Var(name string) Expr {
	return Expr{variable: name, num: monomial(ratInt(1), 1), den: poly{ratInt(1)}}
}

// FromFloat converts a finite float into an exact constant using its shortest
// decimal representation, so 0.1 becomes 1/10 rather than its binary expansion.
func FromFloat(f float64) (Expr, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Expr{}, ErrNotFinite
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		return Expr{}, fmt.Errorf("algebra: cannot represent %v", f)
	}
	return Const(r), nil
}

func build(variable string, num, den poly) (Expr, error) {
	if den.isZero() {
		return Expr{}, ErrDivisionByZero
	}
	if num.isZero() {
		return Zero(), nil
	}
	g := gcdPoly(num, den)
	if !g.isOne() {
		num, _ = divModPoly(num, g)
		den, _ = divModPoly(den, g)
	}
	inv := new(big.Rat).Inv(den.lead())
	num = scalePoly(num, inv)
	den = scalePoly(den, inv)
	if num.degree() <= 0 && den.degree() == 0 {
		variable = ""
	}
	return Expr{variable: variable, num: num, den: den}, nil
}

func joinVariables(a, b Expr) (string, error) {
	switch {
	case a.variable == "":
		return b.variable, nil
	case b.variable == "" || a.variable == b.variable:
		return a.variable, nil
	default:
		return "", fmt.Errorf("%w: %s and %s", ErrMixedVariables, a.variable, b.variable)
	}
}

// Variable returns the indeterminate name, or "" for constants.
func (e Expr) Variable() string { return e.variable }

// IsPolynomial reports whether the denominator is 1.
func (e Expr) IsPolynomial() bool { return e.den.isOne() || len(e.den) == 0 }

// Constant returns the value of a variable-free expression.
func (e Expr) Constant() (*big.Rat, bool) {
	if e.num.degree() > 0 || !e.IsPolynomial() {
		return nil, false
	}
	if e.num.isZero() {
		return new(big.Rat), true
	}
	return new(big.Rat).Set(e.num[0]), true
}

// IsZero reports whether the expression is identically zero.
func (e Expr) IsZero() bool { return e.num.isZero() }

// Degree returns the numerator degree (-1 for zero).
func (e Expr) Degree() int { return e.num.degree() }

// span is the larger of the numerator and denominator degrees.
func (e Expr) span() int { return max(e.num.degree(), e.denom().degree(), 0) }

// checkDegrees rejects an operation when one of the products it is about to
// form would exceed MaxDegree.
func checkDegrees(degrees ...int) error {
	for _, d := range degrees {
		if d > MaxDegree {
			return fmt.Errorf("%w: %d exceeds %d", ErrDegreeTooLarge, d, MaxDegree)
		}
	}
	return nil
}

func Add(a, b Expr) (Expr, error) {
	v, err := joinVariables(a, b)
	if err != nil {
		return Expr{}, err
	}
	if err := checkDegrees(a.num.degree()+b.denom().degree(), b.num.degree()+a.denom().degree(), a.denom().degree()+b.denom().degree()); err != nil {
		return Expr{}, err
	}
	num := addPoly(mulPoly(a.num, b.denom()), mulPoly(b.num, a.denom()))
	return build(v, num, mulPoly(a.denom(), b.denom()))
}

func Sub(a, b Expr) (Expr, error) {
	return Add(a, Neg(b))
}

func Mul(a, b Expr) (Expr, error) {
	v, err := joinVariables(a, b)
	if err != nil {
		return Expr{}, err
	}
	if err := checkDegrees(a.num.degree()+b.num.degree(), a.denom().degree()+b.denom().degree()); err != nil {
		return Expr{}, err
	}
	return build(v, mulPoly(a.num, b.num), mulPoly(a.denom(), b.denom()))
}

func Quo(a, b Expr) (Expr, error) {
	if b.IsZero() {
		return Expr{}, ErrDivisionByZero
	}
	v, err := joinVariables(a, b)
	if err != nil {
		return Expr{}, err
	}
	if err := checkDegrees(a.num.degree()+b.denom().degree(), a.denom().degree()+b.num.degree()); err != nil {
		return Expr{}, err
	}
	return build(v, mulPoly(a.num, b.denom()), mulPoly(a.denom(), b.num))
}

func Neg(a Expr) Expr {
	return Expr{variable: a.variable, num: scalePoly(a.num, ratInt(-1)), den: a.denom()}
}

// Pow raises a to an integer power. Negative powers invert. Results above
// MaxDegree fail with ErrDegreeTooLarge before any multiplication.
func Pow(a Expr, n int) (Expr, error) {
	if span := a.span(); span > 0 && (n > MaxDegree/span || n < -MaxDegree/span) {
		return Expr{}, fmt.Errorf("%w: degree %d raised to %d exceeds %d", ErrDegreeTooLarge, span, n, MaxDegree)
	}
	if n < 0 {
		p, err := Pow(a, -n)
		if err != nil {
			return Expr{}, err
		}
		return Quo(Const(ratInt(1)), p)
	}
	result := Const(ratInt(1))
	base := a
	for n > 0 {
		var err error
		if n&1 == 1 {
			if result, err = Mul(result, base); err != nil {
				return Expr{}, err
			}
		}
		n >>= 1
		if n > 0 {
			if base, err = Mul(base, base); err != nil {
				return Expr{}, err
			}
		}
	}
	return result, nil
}

// Equal reports mathematical equality; canonical form makes it structural.
func Equal(a, b Expr) bool {
	if a.variable != b.variable {
		return false
	}
	return a.num.equal(b.num) && a.denom().equal(b.denom())
}

// Eval evaluates the expression at x. Poles yield ±Inf or NaN.
func (e Expr) Eval(x float64) float64 {
	return e.num.eval(x) / e.denom().eval(x)
}

func (e Expr) denom() poly {
	if len(e.den) == 0 {
		return poly{ratInt(1)}
	}
	return e.den
}
