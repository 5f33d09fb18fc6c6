package numfield

import (
	"testing"
)

func intPoly(c ...int64) Poly {
	return PolyFromInt64(Q(), c)
}

func TestDivMod(t *testing.T) {
	f := intPoly(2, 3, 1) // x^2+3x+2
	g := intPoly(1, 1)    // x+1
	quo, rem, err := f.DivMod(g)
	if err != nil {
		t.Fatal(err)
	}
	if !quo.Equal(intPoly(2, 1)) || !rem.IsZero() {
		t.Fatalf("quo = %s, rem = %s", quo, rem)
	}
	_, rem, err = intPoly(1, 0, 1).DivMod(g)
	if err != nil {
		t.Fatal(err)
	}
	if !rem.Equal(intPoly(2)) { // (x^2+1)(-1) = 2 at x = -1
		t.Fatalf("rem = %s, want 2", rem)
	}
	if _, _, err := f.DivMod(ZeroPoly(Q())); err == nil {
		t.Fatalf("division by zero accepted")
	}
}

func TestXGCD(t *testing.T) {
	p := intPoly(-1, 0, 1) // (x-1)(x+1)
	q := intPoly(-2, 1, 1) // (x-1)(x+2)
	u, v, g, err := p.XGCD(q)
	if err != nil {
		t.Fatal(err)
	}
	lhs := u.Mul(p).Add(v.Mul(q))
	if !lhs.Equal(g) {
		t.Fatalf("u*p + v*q = %s, gcd = %s", lhs, g)
	}
	monic, err := g.Monic()
	if err != nil {
		t.Fatal(err)
	}
	if !monic.Equal(intPoly(-1, 1)) {
		t.Fatalf("gcd = %s, want x-1", monic)
	}
}

func TestTaylorShift(t *testing.T) {
	f := intPoly(0, 0, 1) // x^2
	shifted, err := f.TaylorShift(Q().FromInt64(1))
	if err != nil {
		t.Fatal(err)
	}
	if !shifted.Equal(intPoly(1, 2, 1)) {
		t.Fatalf("x^2 at x+1 = %s, want x^2+2x+1", shifted)
	}
	// Constant term of p(x+a) is p(a).
	g := intPoly(5, -3, 0, 2)
	shifted, err = g.TaylorShift(Q().FromInt64(-2))
	if err != nil {
		t.Fatal(err)
	}
	if !Q().Equal(shifted.Coeff(0), g.Eval(Q().FromInt64(-2))) {
		t.Fatalf("constant term of shift is not g(-2)")
	}
}

func TestSquarefree(t *testing.T) {
	f := intPoly(-1, 1).Mul(intPoly(-1, 1)).Mul(intPoly(2, 1)) // (x-1)^2 (x+2)
	sf, err := f.Squarefree()
	if err != nil {
		t.Fatal(err)
	}
	if !sf.Equal(intPoly(-2, 1, 1)) {
		t.Fatalf("squarefree part = %s, want x^2+x-2", sf)
	}
}

func TestShift(t *testing.T) {
	f := intPoly(0, 4, 1) // x^2 + 4x
	if !f.Shift(-1).Equal(intPoly(4, 1)) {
		t.Fatalf("negative shift failed: %s", f.Shift(-1))
	}
	if !intPoly(1, 1).Shift(2).Equal(intPoly(0, 0, 1, 1)) {
		t.Fatalf("positive shift failed")
	}
}

func TestPowAndEval(t *testing.T) {
	f := intPoly(1, 1) // x+1
	cube := f.Pow(3)
	if !cube.Equal(intPoly(1, 3, 3, 1)) {
		t.Fatalf("(x+1)^3 = %s", cube)
	}
	got := cube.Eval(Q().FromInt64(2))
	if !Q().Equal(got, Q().FromInt64(27)) {
		t.Fatalf("(2+1)^3 = %s", Q().String(got))
	}
}
