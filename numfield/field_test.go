package numfield

import (
	"math/big"
	"testing"
)

func TestRationalArithmetic(t *testing.T) {
	F := Q()
	a := F.FromRat(big.NewRat(1, 2))
	b := F.FromInt64(3)
	sum := F.Add(a, b)
	if r, _ := F.Rat(sum); r.Cmp(big.NewRat(7, 2)) != 0 {
		t.Fatalf("1/2 + 3 = %s", r.RatString())
	}
	inv, err := F.Inv(a)
	if err != nil {
		t.Fatal(err)
	}
	if !F.IsOne(F.Mul(a, inv)) {
		t.Fatalf("a * a^-1 != 1")
	}
	if _, err := F.Inv(F.Zero()); err == nil {
		t.Fatalf("inverting zero should fail")
	}
}

func sqrtTwoField(t *testing.T) *Field {
	t.Helper()
	K, err := Extend(PolyFromInt64(Q(), []int64{-2, 0, 1}), "s")
	if err != nil {
		t.Fatal(err)
	}
	return K
}

func TestQuadraticExtension(t *testing.T) {
	K := sqrtTwoField(t)
	s := K.Gen()
	if !K.Equal(K.Mul(s, s), K.FromInt64(2)) {
		t.Fatalf("s^2 != 2")
	}
	// (1+s)(1-s) = -1
	got := K.Mul(K.Add(K.One(), s), K.Sub(K.One(), s))
	if !K.Equal(got, K.FromInt64(-1)) {
		t.Fatalf("(1+s)(1-s) = %s, want -1", K.String(got))
	}
	inv, err := K.Inv(s)
	if err != nil {
		t.Fatal(err)
	}
	if !K.IsOne(K.Mul(s, inv)) {
		t.Fatalf("s * s^-1 != 1")
	}
	if K.AbsoluteDegree() != 2 {
		t.Fatalf("absolute degree = %d", K.AbsoluteDegree())
	}
}

func TestTower(t *testing.T) {
	K := sqrtTwoField(t)
	// L = K[y]/(y^2 - s), so the generator of L is a fourth root of 2.
	g := NewPoly(K, []Elem{K.Neg(K.Gen()), K.Zero(), K.One()})
	L, err := Extend(g, "y")
	if err != nil {
		t.Fatal(err)
	}
	if L.AbsoluteDegree() != 4 {
		t.Fatalf("absolute degree = %d, want 4", L.AbsoluteDegree())
	}
	y := L.Gen()
	y4 := L.Mul(L.Mul(y, y), L.Mul(y, y))
	two, err := L.Embed(Q().FromInt64(2))
	if err != nil {
		t.Fatal(err)
	}
	if !L.Equal(y4, two) {
		t.Fatalf("y^4 = %s, want 2", L.String(y4))
	}
}

func TestEmbedAndRepresentative(t *testing.T) {
	K := sqrtTwoField(t)
	e, err := K.Embed(Q().FromRat(big.NewRat(3, 4)))
	if err != nil {
		t.Fatal(err)
	}
	rep := K.Representative(e)
	if rep.Degree() != 0 {
		t.Fatalf("rational embeds with degree %d representative", rep.Degree())
	}
	// Roundtrip an element through its representative.
	a := K.Add(K.Gen(), K.FromInt64(5))
	back := K.FromPolynomial(K.Representative(a))
	if !K.Equal(a, back) {
		t.Fatalf("representative roundtrip changed the element")
	}
	if _, err := Q().Embed(K.Gen()); err == nil {
		t.Fatalf("embedding s into Q should fail")
	}
}

func TestExtendRejectsNonMonic(t *testing.T) {
	if _, err := Extend(PolyFromInt64(Q(), []int64{1, 0, 2}), "t"); err == nil {
		t.Fatalf("non-monic defining polynomial accepted")
	}
	if _, err := Extend(PolyFromInt64(Q(), []int64{5}), "t"); err == nil {
		t.Fatalf("constant defining polynomial accepted")
	}
}
