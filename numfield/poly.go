package numfield

import (
	"fmt"
	"math/big"
	"strings"
)

// Poly is a dense polynomial over a Field, little-endian, with no trailing
// zero coefficients. The zero polynomial has an empty coefficient slice.
type Poly struct {
	fld *Field
	c   []Elem
}

// NewPoly builds a polynomial over F from little-endian coefficients.
func NewPoly(F *Field, coeffs []Elem) Poly {
	c := make([]Elem, len(coeffs))
	for i := range coeffs {
		c[i] = F.copy(coeffs[i])
	}
	n := len(c)
	for n > 0 && F.IsZero(c[n-1]) {
		n--
	}
	return Poly{fld: F, c: c[:n]}
}

// PolyFromRats builds a polynomial over F from rational coefficients.
func PolyFromRats(F *Field, coeffs []*big.Rat) Poly {
	c := make([]Elem, len(coeffs))
	for i, r := range coeffs {
		c[i] = F.FromRat(r)
	}
	return NewPoly(F, c)
}

// PolyFromInt64 builds a polynomial over F from integer coefficients.
func PolyFromInt64(F *Field, coeffs []int64) Poly {
	c := make([]Elem, len(coeffs))
	for i, n := range coeffs {
		c[i] = F.FromInt64(n)
	}
	return NewPoly(F, c)
}

// X returns the monomial x over F.
func X(F *Field) Poly {
	return NewPoly(F, []Elem{F.Zero(), F.One()})
}

// ZeroPoly returns the zero polynomial over F.
func ZeroPoly(F *Field) Poly {
	return Poly{fld: F}
}

// Field returns the coefficient field.
func (p Poly) Field() *Field {
	return p.fld
}

// Degree returns the degree, with -1 for the zero polynomial.
func (p Poly) Degree() int {
	return len(p.c) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.c) == 0
}

// Coeff returns the coefficient of x^i (zero beyond the degree).
func (p Poly) Coeff(i int) Elem {
	if i < 0 || i >= len(p.c) {
		return p.fld.Zero()
	}
	return p.fld.copy(p.c[i])
}

// Lead returns the leading coefficient of a non-zero polynomial.
func (p Poly) Lead() Elem {
	return p.Coeff(p.Degree())
}

// IsMonic reports whether the leading coefficient is one.
func (p Poly) IsMonic() bool {
	return !p.IsZero() && p.fld.IsOne(p.Lead())
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	n := len(p.c)
	if len(q.c) > n {
		n = len(q.c)
	}
	out := make([]Elem, n)
	for i := range out {
		out[i] = p.fld.Add(p.Coeff(i), q.Coeff(i))
	}
	return NewPoly(p.fld, out)
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly {
	n := len(p.c)
	if len(q.c) > n {
		n = len(q.c)
	}
	out := make([]Elem, n)
	for i := range out {
		out[i] = p.fld.Sub(p.Coeff(i), q.Coeff(i))
	}
	return NewPoly(p.fld, out)
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	return ZeroPoly(p.fld).Sub(p)
}

// Mul returns p * q by schoolbook multiplication.
func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return ZeroPoly(p.fld)
	}
	out := make([]Elem, len(p.c)+len(q.c)-1)
	for i := range out {
		out[i] = p.fld.Zero()
	}
	for i, a := range p.c {
		if p.fld.IsZero(a) {
			continue
		}
		for j, b := range q.c {
			if p.fld.IsZero(b) {
				continue
			}
			out[i+j] = p.fld.Add(out[i+j], p.fld.Mul(a, b))
		}
	}
	return NewPoly(p.fld, out)
}

// ScaleElem returns c * p.
func (p Poly) ScaleElem(c Elem) Poly {
	out := make([]Elem, len(p.c))
	for i := range out {
		out[i] = p.fld.Mul(c, p.c[i])
	}
	return NewPoly(p.fld, out)
}

// Shift multiplies by x^k for k >= 0, or drops the k lowest coefficients for
// k < 0 (exact division by x^|k| is not checked).
func (p Poly) Shift(k int) Poly {
	if p.IsZero() {
		return p
	}
	if k >= 0 {
		out := make([]Elem, len(p.c)+k)
		for i := 0; i < k; i++ {
			out[i] = p.fld.Zero()
		}
		copy(out[k:], p.c)
		return NewPoly(p.fld, out)
	}
	if -k >= len(p.c) {
		return ZeroPoly(p.fld)
	}
	return NewPoly(p.fld, p.c[-k:])
}

// DivMod returns quotient and remainder of p by q.
func (p Poly) DivMod(q Poly) (quo, rem Poly, err error) {
	if q.IsZero() {
		return Poly{}, Poly{}, fmt.Errorf("numfield: polynomial division by zero")
	}
	inv, err := p.fld.Inv(q.Lead())
	if err != nil {
		return Poly{}, Poly{}, err
	}
	dq := q.Degree()
	remc := make([]Elem, len(p.c))
	for i := range remc {
		remc[i] = p.fld.copy(p.c[i])
	}
	if len(remc)-1 < dq {
		return ZeroPoly(p.fld), NewPoly(p.fld, remc), nil
	}
	quoc := make([]Elem, len(remc)-dq)
	for i := range quoc {
		quoc[i] = p.fld.Zero()
	}
	for top := len(remc) - 1; top >= dq; top-- {
		if p.fld.IsZero(remc[top]) {
			continue
		}
		f := p.fld.Mul(remc[top], inv)
		quoc[top-dq] = f
		for i := 0; i <= dq; i++ {
			remc[top-dq+i] = p.fld.Sub(remc[top-dq+i], p.fld.Mul(f, q.c[i]))
		}
	}
	return NewPoly(p.fld, quoc), NewPoly(p.fld, remc), nil
}

// Monic divides p by its leading coefficient.
func (p Poly) Monic() (Poly, error) {
	if p.IsZero() {
		return Poly{}, fmt.Errorf("numfield: cannot normalize the zero polynomial")
	}
	inv, err := p.fld.Inv(p.Lead())
	if err != nil {
		return Poly{}, err
	}
	return p.ScaleElem(inv), nil
}

// GCD returns the monic greatest common divisor of p and q.
func (p Poly) GCD(q Poly) (Poly, error) {
	a, b := p, q
	for !b.IsZero() {
		_, r, err := a.DivMod(b)
		if err != nil {
			return Poly{}, err
		}
		a, b = b, r
	}
	if a.IsZero() {
		return a, nil
	}
	return a.Monic()
}

// XGCD returns u, v and the gcd g with u*p + v*q = g.
func (p Poly) XGCD(q Poly) (u, v, g Poly, err error) {
	F := p.fld
	r0, r1 := p, q
	u0, u1 := PolyFromInt64(F, []int64{1}), ZeroPoly(F)
	v0, v1 := ZeroPoly(F), PolyFromInt64(F, []int64{1})
	for !r1.IsZero() {
		quo, rem, err := r0.DivMod(r1)
		if err != nil {
			return Poly{}, Poly{}, Poly{}, err
		}
		r0, r1 = r1, rem
		u0, u1 = u1, u0.Sub(quo.Mul(u1))
		v0, v1 = v1, v0.Sub(quo.Mul(v1))
	}
	return u0, v0, r0, nil
}

// Derivative returns p'.
func (p Poly) Derivative() Poly {
	if p.Degree() < 1 {
		return ZeroPoly(p.fld)
	}
	out := make([]Elem, p.Degree())
	for i := 1; i <= p.Degree(); i++ {
		out[i-1] = p.fld.Mul(p.fld.FromInt64(int64(i)), p.c[i])
	}
	return NewPoly(p.fld, out)
}

// Squarefree returns p divided by gcd(p, p').
func (p Poly) Squarefree() (Poly, error) {
	if p.Degree() < 1 {
		return p, nil
	}
	g, err := p.GCD(p.Derivative())
	if err != nil {
		return Poly{}, err
	}
	if g.Degree() < 1 {
		return p, nil
	}
	quo, _, err := p.DivMod(g)
	if err != nil {
		return Poly{}, err
	}
	return quo, nil
}

// Eval evaluates p at an element of its coefficient field by Horner's rule.
func (p Poly) Eval(a Elem) Elem {
	acc := p.fld.Zero()
	for i := len(p.c) - 1; i >= 0; i-- {
		acc = p.fld.Add(p.fld.Mul(acc, a), p.c[i])
	}
	return acc
}

// Pow returns p^k for k >= 0.
func (p Poly) Pow(k int) Poly {
	out := PolyFromInt64(p.fld, []int64{1})
	for i := 0; i < k; i++ {
		out = out.Mul(p)
	}
	return out
}

// Equal reports whether p and q have identical coefficients.
func (p Poly) Equal(q Poly) bool {
	return p.Sub(q).IsZero()
}

// MapTo lifts p coefficient-wise into an extension L of its coefficient
// field.
func (p Poly) MapTo(L *Field) (Poly, error) {
	out := make([]Elem, len(p.c))
	for i := range out {
		e, err := L.Embed(p.c[i])
		if err != nil {
			return Poly{}, err
		}
		out[i] = e
	}
	return NewPoly(L, out), nil
}

// TaylorShift returns the coefficients of p(x + a) as a polynomial in x, by
// repeated synthetic division by (x - a).
func (p Poly) TaylorShift(a Elem) (Poly, error) {
	lin := NewPoly(p.fld, []Elem{p.fld.Neg(a), p.fld.One()})
	var coeffs []Elem
	cur := p
	for !cur.IsZero() {
		quo, rem, err := cur.DivMod(lin)
		if err != nil {
			return Poly{}, err
		}
		coeffs = append(coeffs, rem.Coeff(0))
		cur = quo
	}
	return NewPoly(p.fld, coeffs), nil
}

// String renders the polynomial in the variable x.
func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var parts []string
	for i := p.Degree(); i >= 0; i-- {
		if p.fld.IsZero(p.c[i]) {
			continue
		}
		c := p.fld.String(p.c[i])
		switch {
		case i == 0:
			parts = append(parts, c)
		case c == "1" && i == 1:
			parts = append(parts, "x")
		case c == "1":
			parts = append(parts, fmt.Sprintf("x^%d", i))
		case i == 1:
			parts = append(parts, fmt.Sprintf("%s*x", c))
		default:
			parts = append(parts, fmt.Sprintf("%s*x^%d", c, i))
		}
	}
	return strings.Join(parts, " + ")
}
