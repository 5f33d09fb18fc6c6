package valuation

import (
	"fmt"
	"math/big"
	"strings"

	"pAdic-Ramification/newton"
	"pAdic-Ramification/numfield"
)

// stage is one augmentation step of an inductive valuation: a monic key
// polynomial and the value assigned to it.
type stage struct {
	phi numfield.Poly
	mu  Val
}

// Inductive is a MacLane inductive valuation on K[x]: a Gauss stage
// (key x, value lambda) followed by augmentations by keys of non-decreasing
// degree and strictly increasing value. The value of a polynomial is computed
// recursively through phi-adic expansions.
type Inductive struct {
	base   *FieldValuation
	stages []stage
}

// Gauss returns the Gauss valuation over base with v(x) = lambda.
func Gauss(base *FieldValuation, lambda *big.Rat) *Inductive {
	return &Inductive{
		base:   base,
		stages: []stage{{phi: numfield.X(base.Domain()), mu: Finite(lambda)}},
	}
}

// Base returns the underlying field valuation.
func (v *Inductive) Base() *FieldValuation {
	return v.base
}

// KeyPolynomial returns the key of the last augmentation.
func (v *Inductive) KeyPolynomial() numfield.Poly {
	return v.stages[len(v.stages)-1].phi
}

// Mu returns the value assigned to the last key; +infinity means the key is
// an exact factor.
func (v *Inductive) Mu() Val {
	return v.stages[len(v.stages)-1].mu
}

// augment appends a stage, returning a new valuation.
func (v *Inductive) augment(phi numfield.Poly, mu Val) *Inductive {
	stages := make([]stage, len(v.stages)+1)
	copy(stages, v.stages)
	stages[len(v.stages)] = stage{phi: phi, mu: mu}
	return &Inductive{base: v.base, stages: stages}
}

// ReplaceKey swaps the final key and its value, returning a new valuation.
// The caller is responsible for the pair being admissible over the earlier
// stages.
func (v *Inductive) ReplaceKey(phi numfield.Poly, mu Val) *Inductive {
	return v.replaceLast(phi, mu)
}

// replaceLast swaps the last stage, returning a new valuation.
func (v *Inductive) replaceLast(phi numfield.Poly, mu Val) *Inductive {
	stages := make([]stage, len(v.stages))
	copy(stages, v.stages)
	stages[len(stages)-1] = stage{phi: phi, mu: mu}
	return &Inductive{base: v.base, stages: stages}
}

// dropLast returns the valuation without its final stage, or nil for a
// Gauss valuation.
func (v *Inductive) dropLast() *Inductive {
	if len(v.stages) == 1 {
		return nil
	}
	return &Inductive{base: v.base, stages: v.stages[:len(v.stages)-1]}
}

// expand returns the phi-adic digits of f: f = sum a_i * phi^i with
// deg a_i < deg phi.
func expand(f, phi numfield.Poly) ([]numfield.Poly, error) {
	var digits []numfield.Poly
	cur := f
	for !cur.IsZero() {
		quo, rem, err := cur.DivMod(phi)
		if err != nil {
			return nil, err
		}
		digits = append(digits, rem)
		cur = quo
	}
	if len(digits) == 0 {
		digits = append(digits, numfield.ZeroPoly(f.Field()))
	}
	return digits, nil
}

// EvalPoly returns the valuation of f.
func (v *Inductive) EvalPoly(f numfield.Poly) (Val, error) {
	return v.evalStage(len(v.stages)-1, f)
}

func (v *Inductive) evalStage(k int, f numfield.Poly) (Val, error) {
	if f.IsZero() {
		return Infinity(), nil
	}
	st := v.stages[k]
	if k == 0 {
		// Gauss stage: the digits of the x-expansion are constants.
		out := Infinity()
		for i := 0; i <= f.Degree(); i++ {
			c := f.Coeff(i)
			if f.Field().IsZero(c) {
				continue
			}
			term := v.base.Eval(c)
			// The constant digit carries no multiple of mu, which may
			// be infinite on an exact chain.
			if i > 0 {
				term = term.Add(st.mu.MulInt(int64(i)))
			}
			out = out.Min(term)
		}
		return out, nil
	}
	digits, err := expand(f, st.phi)
	if err != nil {
		return Val{}, err
	}
	out := Infinity()
	for i, a := range digits {
		if a.IsZero() {
			continue
		}
		prev, err := v.evalStage(k-1, a)
		if err != nil {
			return Val{}, err
		}
		if i > 0 {
			prev = prev.Add(st.mu.MulInt(int64(i)))
		}
		out = out.Min(prev)
	}
	return out, nil
}

// prevVal evaluates a digit of the last key's expansion in the valuation one
// stage down (the base valuation for a Gauss stage).
func (v *Inductive) prevVal(a numfield.Poly) (Val, error) {
	if prev := v.dropLast(); prev != nil {
		return prev.EvalPoly(a)
	}
	// Digits of the Gauss key x are constants.
	if a.IsZero() {
		return Infinity(), nil
	}
	return v.base.Eval(a.Coeff(0)), nil
}

// EDenominator returns the index of Z in the value group generated by the
// stage values: the ramification contributed by the approximant.
func (v *Inductive) EDenominator() int64 {
	e := big.NewInt(1)
	for _, st := range v.stages {
		if st.mu.IsInf() {
			continue
		}
		d := st.mu.Rat().Denom()
		g := new(big.Int).GCD(nil, nil, e, d)
		e.Div(e, g)
		e.Mul(e, d)
	}
	return e.Int64()
}

// keyPolygon returns the Newton polygon of the last key's expansion of f,
// with digit values taken one stage down.
func (v *Inductive) keyPolygon(f numfield.Poly) (*newton.Polygon, error) {
	digits, err := expand(f, v.KeyPolynomial())
	if err != nil {
		return nil, err
	}
	points := make([]newton.Point, 0, len(digits))
	for i, a := range digits {
		val, err := v.prevVal(a)
		if err != nil {
			return nil, err
		}
		pt := newton.Point{X: i}
		if !val.IsInf() {
			pt.Y = val.Rat()
		}
		points = append(points, pt)
	}
	return newton.FromPoints(points), nil
}

func (v *Inductive) String() string {
	parts := make([]string, len(v.stages))
	for i, st := range v.stages {
		parts[i] = fmt.Sprintf("v(%s) = %s", st.phi.String(), st.mu.String())
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}
