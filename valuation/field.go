package valuation

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v4/ring"

	"pAdic-Ramification/internal/fp"
	"pAdic-Ramification/numfield"
)

// FieldValuation is a p-adic valuation on a number field, normalized so that
// v(p) = 1. The supported domains are Q and unramified extensions of Q
// (towers whose defining polynomials stay irreducible modulo p), where the
// valuation of an element is the minimum of the valuations of its power-basis
// coordinates.
type FieldValuation struct {
	p   uint64
	dom *numfield.Field
}

// PAdic returns the p-adic valuation on Q.
func PAdic(p uint64) (*FieldValuation, error) {
	if p < 2 || !ring.IsPrime(p) {
		return nil, fmt.Errorf("valuation: %d is not prime", p)
	}
	return &FieldValuation{p: p, dom: numfield.Q()}, nil
}

// Prime returns p.
func (v *FieldValuation) Prime() uint64 {
	return v.p
}

// Domain returns the number field the valuation lives on.
func (v *FieldValuation) Domain() *numfield.Field {
	return v.dom
}

// Extend returns the unramified extension of v to K, a field whose defining
// polynomial remains irreducible modulo p. K must be an extension of the
// current domain.
func (v *FieldValuation) Extend(K *numfield.Field) (*FieldValuation, error) {
	if K.Base() != v.dom {
		return nil, fmt.Errorf("valuation: %s is not an extension of the valuation's domain", K.Name())
	}
	return &FieldValuation{p: v.p, dom: K}, nil
}

// RatVal returns the p-adic valuation of a rational.
func (v *FieldValuation) RatVal(r *big.Rat) Val {
	if r.Sign() == 0 {
		return Infinity()
	}
	p := new(big.Int).SetUint64(v.p)
	n := multiplicity(new(big.Int).Set(r.Num()), p)
	d := multiplicity(new(big.Int).Set(r.Denom()), p)
	return FiniteInt(n - d)
}

func multiplicity(n, p *big.Int) int64 {
	var k int64
	r := new(big.Int)
	for n.Sign() != 0 {
		q := new(big.Int)
		q.QuoRem(n, p, r)
		if r.Sign() != 0 {
			break
		}
		n = q
		k++
	}
	return k
}

// Eval returns the valuation of a field element: the p-adic valuation for a
// rational, and the minimum over power-basis coordinates otherwise.
func (v *FieldValuation) Eval(a numfield.Elem) Val {
	F := a.Field()
	if r, ok := F.Rat(a); ok {
		return v.RatVal(r)
	}
	rep := F.Representative(a)
	sub := &FieldValuation{p: v.p, dom: F.Base()}
	out := Infinity()
	for i := 0; i <= rep.Degree(); i++ {
		out = out.Min(sub.Eval(rep.Coeff(i)))
	}
	return out
}

// Unramified returns the canonical valuation whose completion is the
// unramified extension of Q_p of residue degree n. For n = 1 this is the
// p-adic valuation on Q; for n > 1 the domain is Q[z]/(g) for a monic
// degree-n lift of an irreducible polynomial over F_p, found by a
// deterministic search seeded by (p, n).
func Unramified(p uint64, n int) (*FieldValuation, error) {
	vp, err := PAdic(p)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("valuation: residue degree must be positive, got %d", n)
	}
	if n == 1 {
		return vp, nil
	}
	g, err := fp.FindIrreducible(p, n, fp.ShakeSource("unramified-extension", p, uint64(n)))
	if err != nil {
		return nil, err
	}
	coeffs := make([]*big.Rat, len(g))
	for i, c := range g {
		coeffs[i] = new(big.Rat).SetInt(new(big.Int).SetUint64(c))
	}
	K, err := numfield.Extend(numfield.PolyFromRats(numfield.Q(), coeffs), "z")
	if err != nil {
		return nil, err
	}
	return vp.Extend(K)
}
