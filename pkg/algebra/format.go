package algebra

import (
	"math/big"
	"strconv"
	"strings"
)

// String renders the expression in conventional CAS notation, highest power
// first: `x**2 + 2*x + 1`, `3*x/2`, `(x + 1)/(x - 1)`.
func (e Expr) String() string {
	num := formatPoly(e.num, e.variable)
	if e.IsPolynomial() {
		return num
	}
	den := formatPoly(e.den, e.variable)
	if e.num.terms() > 1 {
		num = "(" + num + ")"
	}
	if e.den.terms() > 1 {
		den = "(" + den + ")"
	}
	return num + "/" + den
}

func formatPoly(p poly, variable string) string {
	if p.isZero() {
		return "0"
	}
	var b strings.Builder
	first := true
	for deg := p.degree(); deg >= 0; deg-- {
		c := p[deg]
		if c.Sign() == 0 {
			continue
		}
		neg := c.Sign() < 0
		abs := new(big.Rat).Abs(c)
		switch {
		case first && neg:
			b.WriteString("-")
		case !first && neg:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		b.WriteString(formatTerm(abs, deg, variable))
		first = false
	}
	return b.String()
}

func formatTerm(coef *big.Rat, deg int, variable string) string {
	if deg == 0 {
		return formatRat(coef)
	}
	mono := variable
	if deg > 1 {
		mono += "**" + strconv.Itoa(deg)
	}
	one := coef.Num().IsInt64() && coef.Num().Int64() == 1
	switch {
	case coef.IsInt() && one:
		return mono
	case coef.IsInt():
		return coef.Num().String() + "*" + mono
	case one:
		return mono + "/" + coef.Denom().String()
	default:
		return coef.Num().String() + "*" + mono + "/" + coef.Denom().String()
	}
}

func formatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.String()
}
