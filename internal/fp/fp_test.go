package fp

import (
	"testing"
)

func TestMulDivRoundtrip(t *testing.T) {
	const q = 7
	f := Poly{1, 1}  // x + 1
	g := Poly{2, 1}  // x + 2
	prod := Mul(f, g, q)
	if !equal(prod, Poly{2, 3, 1}) {
		t.Fatalf("product = %v, want x^2+3x+2", prod)
	}
	quo, rem := DivMod(prod, f, q)
	if !equal(quo, g) || !IsZero(rem) {
		t.Fatalf("quo = %v rem = %v, want %v and 0", quo, rem, g)
	}
}

func TestGCD(t *testing.T) {
	const q = 7
	a := Mul(Poly{1, 1}, Poly{2, 1}, q) // (x+1)(x+2)
	b := Mul(Poly{1, 1}, Poly{3, 1}, q) // (x+1)(x+3)
	g := GCD(a, b, q)
	if !equal(g, Poly{1, 1}) {
		t.Fatalf("gcd = %v, want x+1", g)
	}
}

func TestDerivative(t *testing.T) {
	// (x^3 + 2x + 5)' = 3x^2 + 2 over F_7.
	d := Derivative(Poly{5, 2, 0, 1}, 7)
	if !equal(d, Poly{2, 0, 3}) {
		t.Fatalf("derivative = %v, want 3x^2+2", d)
	}
	// x^3 over F_3 has zero derivative.
	if !IsZero(Derivative(Poly{0, 0, 0, 1}, 3)) {
		t.Fatalf("derivative of x^3 over F_3 should vanish")
	}
}

func TestIsIrreducible(t *testing.T) {
	cases := []struct {
		f    Poly
		q    uint64
		want bool
	}{
		{Poly{1, 0, 1}, 3, true},    // x^2+1 has no root mod 3
		{Poly{1, 0, 1}, 5, false},   // 2^2 = -1 mod 5
		{Poly{1, 1, 1}, 2, true},    // x^2+x+1
		{Poly{1, 1, 0, 1}, 2, true}, // x^3+x+1
		{Poly{1, 0, 0, 1}, 2, false},
		{Poly{3, 1}, 5, true}, // linear
	}
	for _, c := range cases {
		if got := IsIrreducible(c.f, c.q); got != c.want {
			t.Errorf("IsIrreducible(%v, %d) = %v, want %v", c.f, c.q, got, c.want)
		}
	}
}

func TestFindIrreducibleDeterministic(t *testing.T) {
	f1, err := FindIrreducible(2, 3, ShakeSource("test", 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	f2, err := FindIrreducible(2, 3, ShakeSource("test", 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !equal(f1, f2) {
		t.Fatalf("same seed gave %v and %v", f1, f2)
	}
	if !IsIrreducible(f1, 2) {
		t.Fatalf("%v is reducible over F_2", f1)
	}
	if f1[0] == 0 {
		t.Fatalf("%v has zero constant term", f1)
	}
}

func TestFindIrreducibleLargePrime(t *testing.T) {
	const q = 1000003
	f, err := FindIrreducible(q, 2, ShakeSource("test", q, 2))
	if err != nil {
		t.Fatal(err)
	}
	if Degree(f) != 2 || !IsIrreducible(f, q) {
		t.Fatalf("bad polynomial %v", f)
	}
}
