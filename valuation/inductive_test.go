package valuation

import (
	"math/big"
	"testing"

	"pAdic-Ramification/numfield"
)

func qPoly(c ...int64) numfield.Poly {
	return numfield.PolyFromInt64(numfield.Q(), c)
}

func TestGaussEval(t *testing.T) {
	v := Gauss(mustPAdic(t, 2), big.NewRat(1, 2))
	// v(x^2 + 2x + 4) = min(2, 1 + 1/2, 0 + 1) = 1.
	got, err := v.EvalPoly(qPoly(4, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got.Rat().Cmp(big.NewRat(1, 1)) != 0 {
		t.Fatalf("got %s, want 1", got)
	}
	inf, err := v.EvalPoly(numfield.ZeroPoly(numfield.Q()))
	if err != nil {
		t.Fatal(err)
	}
	if !inf.IsInf() {
		t.Fatalf("v(0) should be infinite")
	}
}

func TestAugmentedEval(t *testing.T) {
	// [v(x) = 1/2, v(x^2 - 2) = +inf] evaluates the x-expansion digits one
	// stage down; for a linear polynomial only the Gauss stage matters.
	v := Gauss(mustPAdic(t, 2), big.NewRat(1, 2)).augment(qPoly(-2, 0, 1), Infinity())
	got, err := v.EvalPoly(qPoly(4, 1)) // x + 4
	if err != nil {
		t.Fatal(err)
	}
	if got.Rat().Cmp(big.NewRat(1, 2)) != 0 {
		t.Fatalf("v(x+4) = %s, want 1/2", got)
	}
	exact, err := v.EvalPoly(qPoly(-2, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !exact.IsInf() {
		t.Fatalf("v(key) = %s, want +inf", exact)
	}
	// x^2 + 2 = (x^2 - 2) + 4 has the value of the digit 4.
	mixed, err := v.EvalPoly(qPoly(2, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if mixed.Rat().Cmp(big.NewRat(2, 1)) != 0 {
		t.Fatalf("v(x^2+2) = %s, want 2", mixed)
	}
}

func TestExactChainEval(t *testing.T) {
	// An infinite final-stage value applies only to digits that involve the
	// key; constants and low-degree polynomials stay finite.
	v := Gauss(mustPAdic(t, 2), big.NewRat(1, 2)).augment(qPoly(-2, 0, 1), Infinity())
	got, err := v.EvalPoly(qPoly(6))
	if err != nil {
		t.Fatal(err)
	}
	if got.IsInf() || got.Rat().Cmp(big.NewRat(1, 1)) != 0 {
		t.Fatalf("v(6) = %s, want 1", got)
	}
	// x^3 = x * (x^2 - 2) + 2x: the key digit is infinite, the constant
	// digit 2x has value 3/2.
	got, err = v.EvalPoly(qPoly(0, 0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got.IsInf() || got.Rat().Cmp(big.NewRat(3, 2)) != 0 {
		t.Fatalf("v(x^3) = %s, want 3/2", got)
	}
}

func TestEDenominator(t *testing.T) {
	v2 := mustPAdic(t, 2)
	if e := Gauss(v2, big.NewRat(1, 3)).EDenominator(); e != 3 {
		t.Fatalf("EDenominator = %d, want 3", e)
	}
	chain := Gauss(v2, big.NewRat(1, 2)).augment(qPoly(-2, 0, 1), Infinity())
	if e := chain.EDenominator(); e != 2 {
		t.Fatalf("EDenominator = %d, want 2", e)
	}
	if e := Gauss(v2, new(big.Rat)).EDenominator(); e != 1 {
		t.Fatalf("EDenominator of the trivial Gauss valuation = %d", e)
	}
}

func TestValOrdering(t *testing.T) {
	a := FiniteInt(1)
	b := Finite(big.NewRat(3, 2))
	if a.Cmp(b) >= 0 || b.Cmp(Infinity()) >= 0 {
		t.Fatalf("ordering broken")
	}
	if got := a.Add(b); got.Rat().Cmp(big.NewRat(5, 2)) != 0 {
		t.Fatalf("1 + 3/2 = %s", got)
	}
	if got := b.MulInt(4); got.Rat().Cmp(big.NewRat(6, 1)) != 0 {
		t.Fatalf("4 * 3/2 = %s", got)
	}
	if a.Min(Infinity()).IsInf() {
		t.Fatalf("min with infinity picked infinity")
	}
}
