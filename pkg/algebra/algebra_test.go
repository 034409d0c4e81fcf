package algebra

import (
	"errors"
	"math"
	"testing"
)

func mustParse(t *testing.T, src string) Expr {
	t.Helper()
	e, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return e
}

func TestParseAndFormat(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x + 1", "x + 1"},
		{"x+1", "x + 1"},
		{"1 + x", "x + 1"},
		{"x^2 + 2*x + 1", "x**2 + 2*x + 1"},
		{"x**2 - 1", "x**2 - 1"},
		{"(x + 1)*(x - 1)", "x**2 - 1"},
		{"-x", "-x"},
		{"3*x/2", "3*x/2"},
		{"x/2", "x/2"},
		{"0.5*x", "x/2"},
		{"2 - 2", "0"},
		{"7", "7"},
		{"1/x", "1/x"},
		{"(x + 1)/(x - 1)", "(x + 1)/(x - 1)"},
		{"(x^2 - 1)/(x - 1)", "x + 1"},
		{"-(y - 3)", "-y + 3"},
		{"x^-1", "1/x"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got := mustParse(t, tc.src).String()
			if got != tc.want {
				t.Fatalf("Parse(%q).String() = %q, want %q", tc.src, got, tc.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"x +",
		"2x",
		"(x + 1",
		"x + y",
		"x ^ x",
		"x ^ 0.5",
		"x $ 1",
		"1..2",
		"1/(x - x)",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			if err == nil {
				t.Fatalf("expected Parse(%q) to fail", src)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T (%v)", err, err)
			}
		})
	}
}

func TestCombineSumSimplifies(t *testing.T) {
	p1 := mustParse(t, "x + 1")
	p2 := mustParse(t, "x - 1")
	sum, err := Add(p1, p2)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !Equal(sum, mustParse(t, "2*x")) {
		t.Fatalf("expected 2*x, got %s", sum)
	}
	if sum.String() != "2*x" {
		t.Fatalf("unexpected rendering %q", sum.String())
	}
}

func TestCombineOperations(t *testing.T) {
	p1 := mustParse(t, "x + 1")
	p2 := mustParse(t, "x - 1")

	diff, err := Sub(p1, p2)
	if err != nil || diff.String() != "2" {
		t.Fatalf("Sub = %v, %v", diff, err)
	}
	prod, err := Mul(p1, p2)
	if err != nil || prod.String() != "x**2 - 1" {
		t.Fatalf("Mul = %v, %v", prod, err)
	}
	quo, err := Quo(prod, p2)
	if err != nil || !Equal(quo, p1) {
		t.Fatalf("Quo = %v, %v", quo, err)
	}
	if !quo.IsPolynomial() {
		t.Fatalf("expected exact division to reduce to a polynomial")
	}
	rational, err := Quo(p1, p2)
	if err != nil || rational.String() != "(x + 1)/(x - 1)" {
		t.Fatalf("Quo = %v, %v", rational, err)
	}
}

func TestQuoByZero(t *testing.T) {
	_, err := Quo(mustParse(t, "x"), Zero())
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestMixedVariables(t *testing.T) {
	_, err := Add(mustParse(t, "x"), mustParse(t, "y"))
	if !errors.Is(err, ErrMixedVariables) {
		t.Fatalf("expected ErrMixedVariables, got %v", err)
	}
	// Constants combine with anything.
	if _, err := Add(mustParse(t, "3"), mustParse(t, "y")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancellationDropsVariable(t *testing.T) {
	e, err := Sub(mustParse(t, "x + 2"), mustParse(t, "x"))
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if e.Variable() != "" {
		t.Fatalf("expected constant, got variable %q", e.Variable())
	}
	c, ok := e.Constant()
	if !ok || c.RatString() != "2" {
		t.Fatalf("expected constant 2, got %v", e)
	}
}

func TestFromFloat(t *testing.T) {
	e, err := FromFloat(0.1)
	if err != nil {
		t.Fatalf("FromFloat failed: %v", err)
	}
	if e.String() != "1/10" {
		t.Fatalf("expected 1/10, got %s", e)
	}
	if _, err := FromFloat(math.NaN()); !errors.Is(err, ErrNotFinite) {
		t.Fatalf("expected ErrNotFinite, got %v", err)
	}
}

func TestEval(t *testing.T) {
	e := mustParse(t, "x^2 - 3*x + 2")
	if got := e.Eval(3); got != 2 {
		t.Fatalf("Eval(3) = %v, want 2", got)
	}
	pole := mustParse(t, "1/(x - 1)")
	if got := pole.Eval(1); !math.IsInf(got, 0) {
		t.Fatalf("expected pole at 1, got %v", got)
	}
}

func TestPow(t *testing.T) {
	e, err := Pow(mustParse(t, "x + 1"), 2)
	if err != nil || e.String() != "x**2 + 2*x + 1" {
		t.Fatalf("Pow = %v, %v", e, err)
	}
	one, err := Pow(mustParse(t, "x"), 0)
	if err != nil || one.String() != "1" {
		t.Fatalf("Pow(x, 0) = %v, %v", one, err)
	}
}

func TestDegreeLimit(t *testing.T) {
	x := mustParse(t, "x")
	top, err := Pow(x, MaxDegree)
	if err != nil {
		t.Fatalf("x^%d should be allowed: %v", MaxDegree, err)
	}
	if top.Degree() != MaxDegree {
		t.Fatalf("expected degree %d, got %d", MaxDegree, top.Degree())
	}
	if _, err := Pow(top, MaxDegree); !errors.Is(err, ErrDegreeTooLarge) {
		t.Fatalf("expected ErrDegreeTooLarge for a nested power, got %v", err)
	}
	if _, err := Mul(top, x); !errors.Is(err, ErrDegreeTooLarge) {
		t.Fatalf("expected ErrDegreeTooLarge for a product, got %v", err)
	}
	if _, err := Add(top, x); err != nil {
		t.Fatalf("sums stay within the limit: %v", err)
	}
	if _, err := Pow(mustParse(t, "2"), MaxDegree*4); err != nil {
		t.Fatalf("constants have no degree to grow: %v", err)
	}

	_, err = Parse("(x^1024)^1024")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a ParseError for a nested power, got %v", err)
	}
	if _, err := Parse("(x^2)^600"); err == nil {
		t.Fatalf("expected degree 1200 to be rejected")
	}
}
