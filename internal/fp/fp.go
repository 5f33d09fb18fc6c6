// Package fp implements arithmetic and factorization in F_p[x] for a prime
// modulus p that fits in a uint64. Polynomials are little-endian coefficient
// slices with coefficients reduced modulo p and no trailing zeros.
//
// The package is used for the residual analysis of Newton polygon sides and
// for constructing defining polynomials of unramified extensions.
package fp

import (
	"fmt"
	"io"
	"math/big"
	"math/bits"
)

func modAdd(a, b, q uint64) uint64 {
	a %= q
	b %= q
	c := a + b
	if c < a || c >= q {
		c -= q
	}
	return c
}

func modSub(a, b, q uint64) uint64 {
	a %= q
	b %= q
	if a >= b {
		return a - b
	}
	return a + (q - b)
}

func modMul(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a%q, b%q)
	_, rem := bits.Div64(hi%q, lo, q)
	return rem
}

func modPow(a, e, q uint64) uint64 {
	r := uint64(1 % q)
	a %= q
	for e > 0 {
		if e&1 == 1 {
			r = modMul(r, a, q)
		}
		a = modMul(a, a, q)
		e >>= 1
	}
	return r
}

// modInv inverts a modulo the prime q via Fermat.
func modInv(a, q uint64) uint64 {
	return modPow(a, q-2, q)
}

// Poly is a polynomial over F_p, little-endian, normalized.
type Poly []uint64

// Trim drops trailing zero coefficients.
func Trim(f Poly) Poly {
	n := len(f)
	for n > 0 && f[n-1] == 0 {
		n--
	}
	return f[:n]
}

// Degree returns the degree of f, with -1 for the zero polynomial.
func Degree(f Poly) int {
	return len(Trim(f)) - 1
}

// IsZero reports whether f is the zero polynomial.
func IsZero(f Poly) bool {
	return len(Trim(f)) == 0
}

// Normalize reduces every coefficient modulo q and trims.
func Normalize(f Poly, q uint64) Poly {
	out := make(Poly, len(f))
	for i := range f {
		out[i] = f[i] % q
	}
	return Trim(out)
}

// X returns the monomial x.
func X() Poly {
	return Poly{0, 1}
}

// Add returns f + g modulo q.
func Add(f, g Poly, q uint64) Poly {
	n := len(f)
	if len(g) > n {
		n = len(g)
	}
	out := make(Poly, n)
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(f) {
			a = f[i]
		}
		if i < len(g) {
			b = g[i]
		}
		out[i] = modAdd(a, b, q)
	}
	return Trim(out)
}

// Sub returns f - g modulo q.
func Sub(f, g Poly, q uint64) Poly {
	n := len(f)
	if len(g) > n {
		n = len(g)
	}
	out := make(Poly, n)
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(f) {
			a = f[i]
		}
		if i < len(g) {
			b = g[i]
		}
		out[i] = modSub(a, b, q)
	}
	return Trim(out)
}

// Mul returns f * g modulo q by schoolbook multiplication.
func Mul(f, g Poly, q uint64) Poly {
	f = Trim(f)
	g = Trim(g)
	if len(f) == 0 || len(g) == 0 {
		return nil
	}
	out := make(Poly, len(f)+len(g)-1)
	for i, a := range f {
		if a == 0 {
			continue
		}
		for j, b := range g {
			if b == 0 {
				continue
			}
			out[i+j] = modAdd(out[i+j], modMul(a, b, q), q)
		}
	}
	return Trim(out)
}

// Scale returns c * f modulo q.
func Scale(c uint64, f Poly, q uint64) Poly {
	out := make(Poly, len(f))
	for i := range f {
		out[i] = modMul(c, f[i], q)
	}
	return Trim(out)
}

// DivMod returns quotient and remainder of f by g. g must be non-zero.
func DivMod(f, g Poly, q uint64) (quo, rem Poly) {
	g = Trim(g)
	if len(g) == 0 {
		panic("fp: division by zero polynomial")
	}
	rem = append(Poly(nil), Trim(f)...)
	dg := len(g) - 1
	inv := modInv(g[dg], q)
	if len(rem)-1 < dg {
		return nil, rem
	}
	quo = make(Poly, len(rem)-dg)
	for len(rem)-1 >= dg {
		dr := len(rem) - 1
		c := modMul(rem[dr], inv, q)
		quo[dr-dg] = c
		for i := 0; i <= dg; i++ {
			rem[dr-dg+i] = modSub(rem[dr-dg+i], modMul(c, g[i], q), q)
		}
		rem = Trim(rem)
		if len(rem) == 0 {
			break
		}
	}
	return Trim(quo), rem
}

// Mod returns f modulo g.
func Mod(f, g Poly, q uint64) Poly {
	_, r := DivMod(f, g, q)
	return r
}

// GCD returns the monic greatest common divisor of f and g.
func GCD(f, g Poly, q uint64) Poly {
	a := Trim(f)
	b := Trim(g)
	for len(b) > 0 {
		a, b = b, Mod(a, b, q)
	}
	return Monic(a, q)
}

// Monic scales f so its leading coefficient is one.
func Monic(f Poly, q uint64) Poly {
	f = Trim(f)
	if len(f) == 0 {
		return f
	}
	lead := f[len(f)-1]
	if lead == 1 {
		return f
	}
	return Scale(modInv(lead, q), f, q)
}

// Derivative returns f'.
func Derivative(f Poly, q uint64) Poly {
	f = Trim(f)
	if len(f) <= 1 {
		return nil
	}
	out := make(Poly, len(f)-1)
	for i := 1; i < len(f); i++ {
		out[i-1] = modMul(uint64(i)%q, f[i], q)
	}
	return Trim(out)
}

// PowMod returns base^e modulo f, with e an arbitrary-precision exponent.
func PowMod(base Poly, e *big.Int, f Poly, q uint64) Poly {
	r := Poly{1 % q}
	b := Mod(base, f, q)
	for i := e.BitLen() - 1; i >= 0; i-- {
		r = Mod(Mul(r, r, q), f, q)
		if e.Bit(i) == 1 {
			r = Mod(Mul(r, b, q), f, q)
		}
	}
	return r
}

// frobenius returns x^(q^k) modulo f by iterating x -> x^q.
func frobenius(k int, f Poly, q uint64) Poly {
	h := X()
	qe := new(big.Int).SetUint64(q)
	for i := 0; i < k; i++ {
		h = PowMod(h, qe, f, q)
	}
	return h
}

// IsIrreducible reports whether the monic polynomial f is irreducible over
// F_q, by the standard Frobenius criterion: x^(q^n) = x mod f and
// gcd(x^(q^(n/l)) - x, f) = 1 for every prime l dividing n.
func IsIrreducible(f Poly, q uint64) bool {
	f = Trim(f)
	n := len(f) - 1
	if n <= 0 {
		return false
	}
	if n == 1 {
		return true
	}
	h := frobenius(n, f, q)
	if !equal(h, Mod(X(), f, q)) {
		return false
	}
	for _, l := range primeDivisors(n) {
		h := frobenius(n/l, f, q)
		g := GCD(Sub(h, X(), q), f, q)
		if Degree(g) != 0 {
			return false
		}
	}
	return true
}

func equal(f, g Poly) bool {
	f = Trim(f)
	g = Trim(g)
	if len(f) != len(g) {
		return false
	}
	for i := range f {
		if f[i] != g[i] {
			return false
		}
	}
	return true
}

func primeDivisors(n int) []int {
	var out []int
	for l := 2; l*l <= n; l++ {
		if n%l == 0 {
			out = append(out, l)
			for n%l == 0 {
				n /= l
			}
		}
	}
	if n > 1 {
		out = append(out, n)
	}
	return out
}

func randU64(r io.Reader) uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		panic(fmt.Sprintf("fp: randomness source failed: %v", err))
	}
	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}
	return v
}

// FindIrreducible searches for a monic irreducible polynomial of degree n
// over F_q, drawing candidate coefficients from rnd. The constant term is
// kept non-zero so the result never has the root zero.
func FindIrreducible(q uint64, n int, rnd io.Reader) (Poly, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fp: degree must be positive, got %d", n)
	}
	const maxTries = 1 << 16
	for try := 0; try < maxTries; try++ {
		f := make(Poly, n+1)
		f[n] = 1 % q
		f[0] = 1 + randU64(rnd)%(q-1)
		for i := 1; i < n; i++ {
			f[i] = randU64(rnd) % q
		}
		if IsIrreducible(f, q) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("fp: failed to find irreducible polynomial of degree %d over F_%d", n, q)
}
