package fp

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// ShakeSource returns a deterministic byte stream derived from a label and a
// sequence of integers. Searches that consume randomness (irreducible
// polynomials, equal-degree splitting) read from such a stream so that their
// output is a pure function of the inputs.
func ShakeSource(label string, vals ...uint64) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(label))
	var buf [8]byte
	for _, v := range vals {
		binary.BigEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	return h
}

// Factor is an irreducible factor of a squarefree polynomial together with
// the degree class it was found in.
type Factor struct {
	Poly Poly
}

// FactorSquarefree factors a monic squarefree polynomial over F_q into monic
// irreducible factors, by distinct-degree splitting followed by
// Cantor-Zassenhaus equal-degree splitting. rnd supplies the randomness for
// the equal-degree stage; pass a ShakeSource for deterministic results.
func FactorSquarefree(f Poly, q uint64, rnd io.Reader) ([]Poly, error) {
	f = Monic(Trim(f), q)
	n := Degree(f)
	if n < 0 {
		return nil, fmt.Errorf("fp: cannot factor the zero polynomial")
	}
	if n == 0 {
		return nil, nil
	}
	var out []Poly
	rest := f
	h := X()
	qe := new(big.Int).SetUint64(q)
	for d := 1; 2*d <= Degree(rest); d++ {
		h = PowMod(h, qe, rest, q)
		g := GCD(Sub(h, X(), q), rest, q)
		if Degree(g) > 0 {
			parts, err := equalDegreeSplit(g, d, q, rnd)
			if err != nil {
				return nil, err
			}
			out = append(out, parts...)
			rest, _ = DivMod(rest, g, q)
			h = Mod(h, rest, q)
		}
	}
	if Degree(rest) > 0 {
		out = append(out, rest)
	}
	return out, nil
}

// equalDegreeSplit splits g into its irreducible factors, all of degree d.
func equalDegreeSplit(g Poly, d int, q uint64, rnd io.Reader) ([]Poly, error) {
	if Degree(g) == d {
		return []Poly{g}, nil
	}
	const maxTries = 256
	for try := 0; try < maxTries; try++ {
		a := randomPoly(Degree(g)-1, q, rnd)
		if Degree(a) < 1 {
			continue
		}
		var b Poly
		if q == 2 {
			// Trace map: a + a^2 + ... + a^(2^(d-1)).
			b = Mod(a, g, q)
			t := b
			for i := 1; i < d; i++ {
				t = Mod(Mul(t, t, q), g, q)
				b = Add(b, t, q)
			}
		} else {
			// a^((q^d - 1)/2) - 1.
			e := new(big.Int).Exp(new(big.Int).SetUint64(q), big.NewInt(int64(d)), nil)
			e.Sub(e, big.NewInt(1))
			e.Rsh(e, 1)
			b = Sub(PowMod(a, e, g, q), Poly{1}, q)
		}
		h := GCD(b, g, q)
		if Degree(h) > 0 && Degree(h) < Degree(g) {
			left, err := equalDegreeSplit(h, d, q, rnd)
			if err != nil {
				return nil, err
			}
			quo, _ := DivMod(g, h, q)
			right, err := equalDegreeSplit(quo, d, q, rnd)
			if err != nil {
				return nil, err
			}
			return append(left, right...), nil
		}
	}
	return nil, fmt.Errorf("fp: equal-degree splitting did not converge (degree %d over F_%d)", d, q)
}

func randomPoly(maxDeg int, q uint64, rnd io.Reader) Poly {
	f := make(Poly, maxDeg+1)
	for i := range f {
		f[i] = randU64(rnd) % q
	}
	return Trim(f)
}

// SquarefreePart returns the product of the distinct irreducible factors of
// a monic polynomial. A vanishing derivative means f is a p-th power
// (coefficients of F_p are Frobenius-fixed), so the p-th root is taken and
// the reduction repeated.
func SquarefreePart(f Poly, q uint64) Poly {
	f = Monic(Trim(f), q)
	for Degree(f) > 0 {
		d := Derivative(f, q)
		if !IsZero(d) {
			g := GCD(f, d, q)
			if Degree(g) == 0 {
				return f
			}
			f, _ = DivMod(f, g, q)
			f = Monic(f, q)
			continue
		}
		root := make(Poly, Degree(f)/int(q)+1)
		for i := range root {
			root[i] = f[i*int(q)]
		}
		f = Monic(Trim(root), q)
	}
	return f
}

// Roots returns the roots in F_q of a squarefree polynomial, via its linear
// factors.
func Roots(f Poly, q uint64, rnd io.Reader) ([]uint64, error) {
	g := GCD(Sub(PowMod(X(), new(big.Int).SetUint64(q), f, q), X(), q), f, q)
	if Degree(g) <= 0 {
		return nil, nil
	}
	lin, err := FactorSquarefree(g, q, rnd)
	if err != nil {
		return nil, err
	}
	var roots []uint64
	for _, l := range lin {
		if Degree(l) != 1 {
			return nil, fmt.Errorf("fp: non-linear factor in root isolation")
		}
		// x + c has root -c.
		roots = append(roots, modSub(0, l[0], q))
	}
	return roots, nil
}
