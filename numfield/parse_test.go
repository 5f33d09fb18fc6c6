package numfield

import (
	"math/big"
	"testing"
)

func TestParsePoly(t *testing.T) {
	cases := []struct {
		in   string
		want Poly
	}{
		{"x^6+6*x^4+6*x^3+18", intPoly(18, 0, 0, 6, 6, 0, 1)},
		{"x^6+6x^4+6x^3+18", intPoly(18, 0, 0, 6, 6, 0, 1)},
		{"x^2 - 2", intPoly(-2, 0, 1)},
		{"-x+1", intPoly(1, -1)},
		{"y^3 - 5", intPoly(-5, 0, 0, 1)},
		{"7", intPoly(7)},
		{"x^2-2*x-1", intPoly(-1, -2, 1)},
	}
	for _, c := range cases {
		got, err := ParsePoly(c.in)
		if err != nil {
			t.Errorf("ParsePoly(%q): %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParsePoly(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParsePolyRationalCoeff(t *testing.T) {
	got, err := ParsePoly("x^2 - 1/2")
	if err != nil {
		t.Fatal(err)
	}
	want := PolyFromRats(Q(), []*big.Rat{big.NewRat(-1, 2), new(big.Rat), big.NewRat(1, 1)})
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParsePolyErrors(t *testing.T) {
	for _, in := range []string{"", "x+y", "x^", "x+", "x^99999999999999999999"} {
		if _, err := ParsePoly(in); err == nil {
			t.Errorf("ParsePoly(%q) should fail", in)
		}
	}
}
