package valuation

import (
	"fmt"
	"math/big"

	"pAdic-Ramification/numfield"
)

// Limit is the valuation on the stem field K[x]/(key) of an exact inductive
// chain (one ending in v(key) = +inf). Elements are evaluated through their
// representative polynomials, which have degree below deg(key) and therefore
// never meet the infinite final stage. Values are multiplied by a fixed
// positive scale, typically the ramification index, so that a uniformizer
// gets value 1.
type Limit struct {
	chain *Inductive
	scale *big.Rat
}

// NewLimit wraps an exact inductive chain. scale must be positive.
func NewLimit(chain *Inductive, scale *big.Rat) (*Limit, error) {
	if !chain.Mu().IsInf() {
		return nil, fmt.Errorf("valuation: limit valuation needs an exact chain, got %s", chain)
	}
	if scale.Sign() <= 0 {
		return nil, fmt.Errorf("valuation: limit scale must be positive, got %s", scale.RatString())
	}
	return &Limit{chain: chain, scale: new(big.Rat).Set(scale)}, nil
}

// Chain returns the underlying inductive valuation.
func (lv *Limit) Chain() *Inductive {
	return lv.chain
}

// Scale returns the normalization factor.
func (lv *Limit) Scale() *big.Rat {
	return new(big.Rat).Set(lv.scale)
}

// EvalPoly returns the scaled value of a polynomial over the chain's domain.
func (lv *Limit) EvalPoly(f numfield.Poly) (Val, error) {
	val, err := lv.chain.EvalPoly(f)
	if err != nil {
		return Val{}, err
	}
	return val.ScaleRat(lv.scale), nil
}

// EvalElem returns the scaled value of an element of the stem field, taken on
// its power-basis representative.
func (lv *Limit) EvalElem(a numfield.Elem) (Val, error) {
	return lv.EvalPoly(a.Field().Representative(a))
}
