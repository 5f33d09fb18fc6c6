// Package valuation implements the p-adic valuations consumed by the
// ramification algorithms: the p-adic valuation on Q, its unramified
// extensions to number fields, MacLane inductive valuations on polynomial
// rings with approximant search and refinement steps, and limit valuations
// on simple extensions.
//
// Values live in Q together with +infinity (the value of zero).
package valuation

import "math/big"

// Val is a valuation value: a rational or +infinity.
type Val struct {
	r   *big.Rat
	inf bool
}

// Finite wraps a rational value.
func Finite(r *big.Rat) Val {
	return Val{r: new(big.Rat).Set(r)}
}

// FiniteInt wraps an integer value.
func FiniteInt(n int64) Val {
	return Val{r: big.NewRat(n, 1)}
}

// Infinity returns the value of zero.
func Infinity() Val {
	return Val{inf: true}
}

// IsInf reports whether v is +infinity.
func (v Val) IsInf() bool {
	return v.inf
}

// Rat returns the finite value; it must not be called on +infinity.
func (v Val) Rat() *big.Rat {
	if v.inf {
		panic("valuation: Rat() on +inf")
	}
	return new(big.Rat).Set(v.r)
}

// Cmp orders values, with +infinity larger than every rational.
func (v Val) Cmp(w Val) int {
	switch {
	case v.inf && w.inf:
		return 0
	case v.inf:
		return 1
	case w.inf:
		return -1
	default:
		return v.r.Cmp(w.r)
	}
}

// Add returns v + w.
func (v Val) Add(w Val) Val {
	if v.inf || w.inf {
		return Infinity()
	}
	return Val{r: new(big.Rat).Add(v.r, w.r)}
}

// MulInt returns n * v.
func (v Val) MulInt(n int64) Val {
	if v.inf {
		return Infinity()
	}
	return Val{r: new(big.Rat).Mul(v.r, big.NewRat(n, 1))}
}

// ScaleRat returns c * v for a positive rational c.
func (v Val) ScaleRat(c *big.Rat) Val {
	if v.inf {
		return Infinity()
	}
	return Val{r: new(big.Rat).Mul(v.r, c)}
}

// Min returns the smaller of v and w.
func (v Val) Min(w Val) Val {
	if v.Cmp(w) <= 0 {
		return v
	}
	return w
}

func (v Val) String() string {
	if v.inf {
		return "+Infinity"
	}
	return v.r.RatString()
}
