package runtime

import (
	"math"
	"testing"

	"minicode/interpreter-go/pkg/algebra"
)

func TestTruthy(t *testing.T) {
	x, err := algebra.Parse("x")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	cases := []struct {
		name string
		val  Value
		want bool
	}{
		{"null", Null, false},
		{"nil", nil, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", Number(0), false},
		{"negative zero", Number(math.Copysign(0, -1)), false},
		{"nonzero", Number(0.5), true},
		{"empty text", Text(""), false},
		{"text", Text("a"), true},
		{"symbolic", Symbolic(x), true},
		{"zero polynomial", Symbolic(algebra.Zero()), true},
	}
	for _, tc := range cases {
		if got := Truthy(tc.val); got != tc.want {
			t.Errorf("%s: Truthy = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		val  Value
		want string
	}{
		{Number(5), "5.0"},
		{Number(-3), "-3.0"},
		{Number(2.5), "2.5"},
		{Number(0.1), "0.1"},
		{Number(1e16), "1e+16"},
		{Number(math.NaN()), "nan"},
		{Number(math.Inf(-1)), "-inf"},
		{Bool(true), "True"},
		{Bool(false), "False"},
		{Null, "None"},
		{Text("hola"), "hola"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.val); got != tc.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", tc.val, got, tc.want)
		}
	}
}

func TestValuesEqual(t *testing.T) {
	if !ValuesEqual(Number(1), Bool(true)) {
		t.Errorf("expected 1 == true")
	}
	if ValuesEqual(Number(1), Text("1")) {
		t.Errorf("expected number and text to differ")
	}
	if !ValuesEqual(Null, Null) {
		t.Errorf("expected null == null")
	}
	a, _ := algebra.Parse("(x+1)*(x-1)")
	b, _ := algebra.Parse("x^2 - 1")
	if !ValuesEqual(Symbolic(a), Symbolic(b)) {
		t.Errorf("expected equivalent expressions to compare equal")
	}
}

func TestCompareValues(t *testing.T) {
	if cmp, ok := CompareValues(Number(1), Number(2)); !ok || cmp != -1 {
		t.Errorf("1 vs 2: %d, %v", cmp, ok)
	}
	if cmp, ok := CompareValues(Text("b"), Text("a")); !ok || cmp != 1 {
		t.Errorf("b vs a: %d, %v", cmp, ok)
	}
	if _, ok := CompareValues(Text("a"), Number(1)); ok {
		t.Errorf("expected text and number to be unordered")
	}
	if cmp, ok := CompareValues(Number(math.NaN()), Number(1)); !ok || cmp != Unordered {
		t.Errorf("NaN vs 1: %d, %v", cmp, ok)
	}
}
