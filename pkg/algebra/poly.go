package algebra

import "math/big"

// poly holds coefficients from the constant term upward. The zero polynomial
// is the empty slice; a normalised poly never ends in a zero coefficient.
type poly []*big.Rat

func ratInt(n int64) *big.Rat { return new(big.Rat).SetInt64(n) }

func constPoly(r *big.Rat) poly {
	if r.Sign() == 0 {
		return nil
	}
	return poly{new(big.Rat).Set(r)}
}

func monomial(coef *big.Rat, degree int) poly {
	if coef.Sign() == 0 {
		return nil
	}
	p := make(poly, degree+1)
	for i := range p {
		p[i] = new(big.Rat)
	}
	p[degree].Set(coef)
	return p
}

func (p poly) trim() poly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

func (p poly) isZero() bool { return len(p) == 0 }

// degree of the zero polynomial is -1.
func (p poly) degree() int { return len(p) - 1 }

func (p poly) lead() *big.Rat { return p[len(p)-1] }

func (p poly) isOne() bool {
	return len(p) == 1 && p[0].Cmp(ratInt(1)) == 0
}

func (p poly) clone() poly {
	out := make(poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Set(c)
	}
	return out
}

func (p poly) equal(q poly) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i].Cmp(q[i]) != 0 {
			return false
		}
	}
	return true
}

func (p poly) terms() int {
	n := 0
	for _, c := range p {
		if c.Sign() != 0 {
			n++
		}
	}
	return n
}

func addPoly(a, b poly) poly {
	n := max(len(a), len(b))
	out := make(poly, n)
	for i := range out {
		out[i] = new(big.Rat)
		if i < len(a) {
			out[i].Add(out[i], a[i])
		}
		if i < len(b) {
			out[i].Add(out[i], b[i])
		}
	}
	return out.trim()
}

func scalePoly(p poly, k *big.Rat) poly {
	if k.Sign() == 0 {
		return nil
	}
	out := make(poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Mul(c, k)
	}
	return out.trim()
}

func subPoly(a, b poly) poly {
	return addPoly(a, scalePoly(b, ratInt(-1)))
}

func mulPoly(a, b poly) poly {
	if a.isZero() || b.isZero() {
		return nil
	}
	out := make(poly, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	tmp := new(big.Rat)
	for i, x := range a {
		for j, y := range b {
			out[i+j].Add(out[i+j], tmp.Mul(x, y))
		}
	}
	return out.trim()
}

// divModPoly performs long division; b must be non-zero.
func divModPoly(a, b poly) (q, r poly) {
	r = a.clone()
	if a.degree() < b.degree() {
		return nil, r
	}
	q = make(poly, a.degree()-b.degree()+1)
	for i := range q {
		q[i] = new(big.Rat)
	}
	for !r.isZero() && r.degree() >= b.degree() {
		shift := r.degree() - b.degree()
		coef := new(big.Rat).Quo(r.lead(), b.lead())
		q[shift].Set(coef)
		r = subPoly(r, mulPoly(monomial(coef, shift), b))
	}
	return q.trim(), r
}

// gcdPoly returns the monic greatest common divisor. gcd(0, 0) is 1 so that
// callers can always divide by the result.
func gcdPoly(a, b poly) poly {
	a, b = a.clone(), b.clone()
	for !b.isZero() {
		_, r := divModPoly(a, b)
		a, b = b, r
	}
	if a.isZero() {
		return poly{ratInt(1)}
	}
	return makeMonic(a)
}

func makeMonic(p poly) poly {
	if p.isZero() {
		return p
	}
	return scalePoly(p, new(big.Rat).Inv(p.lead()))
}

func (p poly) eval(x float64) float64 {
	acc := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		c, _ := p[i].Float64()
		acc = acc*x + c
	}
	return acc
}
