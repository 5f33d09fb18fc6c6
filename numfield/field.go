// Package numfield implements exact arithmetic in towers of number fields
// over Q. A field is either Q itself or an extension base[x]/(g) for a monic
// defining polynomial g over the base; elements are power-basis coefficient
// vectors with big.Rat entries at the bottom of the tower.
//
// Irreducibility of defining polynomials is the caller's responsibility; the
// arithmetic here only requires g to be monic.
package numfield

import (
	"fmt"
	"math/big"
	"strings"
)

// Field is Q or an extension of another Field by a monic polynomial.
type Field struct {
	base *Field
	g    Poly // defining polynomial over base; undefined for Q
	name string
}

var rationals = &Field{}

// Q returns the field of rational numbers.
func Q() *Field {
	return rationals
}

// Extend builds the extension g.Field()[x]/(g) with the given generator name.
func Extend(g Poly, name string) (*Field, error) {
	if g.Degree() < 1 {
		return nil, fmt.Errorf("numfield: defining polynomial must have degree >= 1")
	}
	if !g.fld.IsQ() && g.fld.base == nil {
		return nil, fmt.Errorf("numfield: defining polynomial has no coefficient field")
	}
	lead := g.c[g.Degree()]
	if !g.fld.IsOne(lead) {
		return nil, fmt.Errorf("numfield: defining polynomial must be monic")
	}
	if name == "" {
		name = "a"
	}
	return &Field{base: g.fld, g: g, name: name}, nil
}

// IsQ reports whether F is the rational field.
func (F *Field) IsQ() bool {
	return F.base == nil
}

// Base returns the base field of an extension, or nil for Q.
func (F *Field) Base() *Field {
	return F.base
}

// Degree returns the relative degree [F : base], with 1 for Q.
func (F *Field) Degree() int {
	if F.IsQ() {
		return 1
	}
	return F.g.Degree()
}

// AbsoluteDegree returns [F : Q].
func (F *Field) AbsoluteDegree() int {
	d := 1
	for f := F; !f.IsQ(); f = f.base {
		d *= f.Degree()
	}
	return d
}

// DefiningPolynomial returns the defining polynomial of an extension.
func (F *Field) DefiningPolynomial() (Poly, bool) {
	if F.IsQ() {
		return Poly{}, false
	}
	return F.g, true
}

// Name returns the generator symbol.
func (F *Field) Name() string {
	if F.IsQ() {
		return "Q"
	}
	return F.name
}

// Elem is an element of a Field.
type Elem struct {
	fld *Field
	rat *big.Rat // set when fld is Q
	vec []Elem   // set otherwise; len == fld.Degree(), entries over fld.base
}

// Field returns the field the element belongs to.
func (a Elem) Field() *Field {
	return a.fld
}

// Zero returns the additive identity.
func (F *Field) Zero() Elem {
	if F.IsQ() {
		return Elem{fld: F, rat: new(big.Rat)}
	}
	vec := make([]Elem, F.Degree())
	for i := range vec {
		vec[i] = F.base.Zero()
	}
	return Elem{fld: F, vec: vec}
}

// One returns the multiplicative identity.
func (F *Field) One() Elem {
	return F.FromInt64(1)
}

// FromInt64 lifts an integer into F.
func (F *Field) FromInt64(n int64) Elem {
	return F.FromRat(big.NewRat(n, 1))
}

// FromRat lifts a rational into F.
func (F *Field) FromRat(r *big.Rat) Elem {
	if F.IsQ() {
		return Elem{fld: F, rat: new(big.Rat).Set(r)}
	}
	e := F.Zero()
	e.vec[0] = F.base.FromRat(r)
	return e
}

// Gen returns the generator of an extension field.
func (F *Field) Gen() Elem {
	if F.IsQ() {
		return F.One()
	}
	e := F.Zero()
	e.vec[1] = F.base.One()
	return e
}

// Embed lifts an element of an ancestor field into F.
func (F *Field) Embed(a Elem) (Elem, error) {
	if a.fld == F {
		return F.copy(a), nil
	}
	if F.IsQ() {
		return Elem{}, fmt.Errorf("numfield: cannot embed element of %s into Q", a.fld.Name())
	}
	inner, err := F.base.Embed(a)
	if err != nil {
		return Elem{}, err
	}
	e := F.Zero()
	e.vec[0] = inner
	return e, nil
}

func (F *Field) copy(a Elem) Elem {
	if F.IsQ() {
		return Elem{fld: F, rat: new(big.Rat).Set(a.rat)}
	}
	vec := make([]Elem, len(a.vec))
	for i := range vec {
		vec[i] = F.base.copy(a.vec[i])
	}
	return Elem{fld: F, vec: vec}
}

// Rat returns the rational an element of Q holds; ok is false when F is an
// extension field.
func (F *Field) Rat(a Elem) (*big.Rat, bool) {
	if !F.IsQ() {
		return nil, false
	}
	return new(big.Rat).Set(a.rat), true
}

// IsZero reports whether a is zero.
func (F *Field) IsZero(a Elem) bool {
	if F.IsQ() {
		return a.rat.Sign() == 0
	}
	for _, c := range a.vec {
		if !F.base.IsZero(c) {
			return false
		}
	}
	return true
}

// IsOne reports whether a is one.
func (F *Field) IsOne(a Elem) bool {
	return F.Equal(a, F.One())
}

// Equal reports whether a and b are the same element.
func (F *Field) Equal(a, b Elem) bool {
	return F.IsZero(F.Sub(a, b))
}

// Add returns a + b.
func (F *Field) Add(a, b Elem) Elem {
	if F.IsQ() {
		return Elem{fld: F, rat: new(big.Rat).Add(a.rat, b.rat)}
	}
	vec := make([]Elem, F.Degree())
	for i := range vec {
		vec[i] = F.base.Add(a.vec[i], b.vec[i])
	}
	return Elem{fld: F, vec: vec}
}

// Sub returns a - b.
func (F *Field) Sub(a, b Elem) Elem {
	if F.IsQ() {
		return Elem{fld: F, rat: new(big.Rat).Sub(a.rat, b.rat)}
	}
	vec := make([]Elem, F.Degree())
	for i := range vec {
		vec[i] = F.base.Sub(a.vec[i], b.vec[i])
	}
	return Elem{fld: F, vec: vec}
}

// Neg returns -a.
func (F *Field) Neg(a Elem) Elem {
	return F.Sub(F.Zero(), a)
}

// Mul returns a * b, reducing by the defining polynomial in an extension.
func (F *Field) Mul(a, b Elem) Elem {
	if F.IsQ() {
		return Elem{fld: F, rat: new(big.Rat).Mul(a.rat, b.rat)}
	}
	d := F.Degree()
	tmp := make([]Elem, 2*d-1)
	for i := range tmp {
		tmp[i] = F.base.Zero()
	}
	for i := 0; i < d; i++ {
		if F.base.IsZero(a.vec[i]) {
			continue
		}
		for j := 0; j < d; j++ {
			if F.base.IsZero(b.vec[j]) {
				continue
			}
			tmp[i+j] = F.base.Add(tmp[i+j], F.base.Mul(a.vec[i], b.vec[j]))
		}
	}
	for k := len(tmp) - 1; k >= d; k-- {
		c := tmp[k]
		if F.base.IsZero(c) {
			continue
		}
		tmp[k] = F.base.Zero()
		for j := 0; j < d; j++ {
			tmp[k-d+j] = F.base.Sub(tmp[k-d+j], F.base.Mul(c, F.g.c[j]))
		}
	}
	return Elem{fld: F, vec: tmp[:d]}
}

// Inv returns 1/a, by the extended Euclidean algorithm against the defining
// polynomial in an extension.
func (F *Field) Inv(a Elem) (Elem, error) {
	if F.IsZero(a) {
		return Elem{}, fmt.Errorf("numfield: division by zero in %s", F.Name())
	}
	if F.IsQ() {
		return Elem{fld: F, rat: new(big.Rat).Inv(a.rat)}, nil
	}
	rep := F.Representative(a)
	u, _, g, err := rep.XGCD(F.g)
	if err != nil {
		return Elem{}, err
	}
	if g.Degree() != 0 {
		return Elem{}, fmt.Errorf("numfield: element of %s is a zero divisor (defining polynomial reducible?)", F.Name())
	}
	c, err := F.base.Inv(g.c[0])
	if err != nil {
		return Elem{}, err
	}
	return F.FromPolynomial(u.ScaleElem(c)), nil
}

// Div returns a / b.
func (F *Field) Div(a, b Elem) (Elem, error) {
	inv, err := F.Inv(b)
	if err != nil {
		return Elem{}, err
	}
	return F.Mul(a, inv), nil
}

// Representative returns the power-basis representative of a as a polynomial
// over the base field.
func (F *Field) Representative(a Elem) Poly {
	if F.IsQ() {
		return NewPoly(F, []Elem{F.copy(a)})
	}
	coeffs := make([]Elem, len(a.vec))
	for i := range coeffs {
		coeffs[i] = F.base.copy(a.vec[i])
	}
	return NewPoly(F.base, coeffs)
}

// FromPolynomial maps a polynomial over the base field to the element it
// represents, reducing by the defining polynomial.
func (F *Field) FromPolynomial(p Poly) Elem {
	if F.IsQ() {
		if p.Degree() > 0 {
			panic("numfield: non-constant polynomial does not represent a rational")
		}
		if p.IsZero() {
			return F.Zero()
		}
		return F.copy(p.c[0])
	}
	_, r, err := p.DivMod(F.g)
	if err != nil {
		panic("numfield: reduction by monic polynomial cannot fail: " + err.Error())
	}
	e := F.Zero()
	for i := 0; i <= r.Degree(); i++ {
		e.vec[i] = F.base.copy(r.c[i])
	}
	return e
}

// String renders a as a polynomial expression in the tower's generators.
func (F *Field) String(a Elem) string {
	if F.IsQ() {
		return a.rat.RatString()
	}
	var parts []string
	for i := len(a.vec) - 1; i >= 0; i-- {
		if F.base.IsZero(a.vec[i]) {
			continue
		}
		c := F.base.String(a.vec[i])
		switch i {
		case 0:
			parts = append(parts, c)
		case 1:
			parts = append(parts, fmt.Sprintf("(%s)*%s", c, F.name))
		default:
			parts = append(parts, fmt.Sprintf("(%s)*%s^%d", c, F.name, i))
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " + ")
}
