package numfield

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// ParsePoly parses a univariate polynomial over Q from a string such as
// "x^6+6*x^4+6x^3+18" or "x^2 - 1/2". The variable may be any single letter;
// the '*' between coefficient and variable is optional.
func ParsePoly(s string) (Poly, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return Poly{}, fmt.Errorf("numfield: empty polynomial string")
	}
	var coeffs []*big.Rat
	setCoeff := func(deg int, c *big.Rat) {
		for len(coeffs) <= deg {
			coeffs = append(coeffs, new(big.Rat))
		}
		coeffs[deg].Add(coeffs[deg], c)
	}

	i := 0
	variable := rune(0)
	for i < len(s) {
		sign := big.NewRat(1, 1)
		for i < len(s) && (s[i] == '+' || s[i] == '-') {
			if s[i] == '-' {
				sign.Neg(sign)
			}
			i++
		}
		if i >= len(s) {
			return Poly{}, fmt.Errorf("numfield: dangling sign in %q", s)
		}
		// Optional rational coefficient.
		coeff := big.NewRat(1, 1)
		start := i
		for i < len(s) && (unicode.IsDigit(rune(s[i])) || s[i] == '/') {
			i++
		}
		if i > start {
			if _, ok := coeff.SetString(s[start:i]); !ok {
				return Poly{}, fmt.Errorf("numfield: bad coefficient %q", s[start:i])
			}
		}
		coeff.Mul(coeff, sign)
		if i < len(s) && s[i] == '*' {
			i++
		}
		// Optional variable with exponent.
		deg := 0
		if i < len(s) && unicode.IsLetter(rune(s[i])) {
			v := rune(s[i])
			if variable == 0 {
				variable = v
			} else if v != variable {
				return Poly{}, fmt.Errorf("numfield: mixed variables %q and %q", variable, v)
			}
			i++
			deg = 1
			if i < len(s) && s[i] == '^' {
				i++
				start := i
				for i < len(s) && unicode.IsDigit(rune(s[i])) {
					i++
				}
				if i == start {
					return Poly{}, fmt.Errorf("numfield: missing exponent in %q", s)
				}
				e := new(big.Int)
				e.SetString(s[start:i], 10)
				if !e.IsInt64() || e.Int64() > 1<<20 {
					return Poly{}, fmt.Errorf("numfield: exponent out of range in %q", s)
				}
				deg = int(e.Int64())
			}
		} else if i == start {
			return Poly{}, fmt.Errorf("numfield: unexpected character %q in %q", s[i], s)
		}
		setCoeff(deg, coeff)
	}
	return PolyFromRats(Q(), coeffs), nil
}
