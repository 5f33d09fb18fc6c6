package ramify

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"go.uber.org/zap"

	"pAdic-Ramification/internal/ramlog"
	"pAdic-Ramification/newton"
	"pAdic-Ramification/numfield"
	"pAdic-Ramification/valuation"
)

// WeakExtension is a weak p-adic Galois extension L/Q_p: the weak splitting
// field of a set of polynomials, enlarged so that its ramification degree is
// divisible by a prescribed tame minimum. The ramification polygon and the
// jumps of the filtration are computed lazily and cached.
type WeakExtension struct {
	base BaseField
	fld  BaseField
	e, f int

	once         sync.Once
	err          error
	polygon      *newton.Polygon
	lower        []Jump
	underRefined bool
}

// New builds the weak Galois extension generated by a single polynomial.
func New(K BaseField, F numfield.Poly, minimalRamification int64) (*WeakExtension, error) {
	return NewFromFactors(K, []numfield.Poly{F}, minimalRamification)
}

// NewFromFactors builds the weak Galois extension generated by the given
// polynomials: the weak splitting field of their product, extended by a tame
// totally ramified step so that minimalRamification divides the ramification
// degree. K must be Q_p itself and minimalRamification must be prime to p.
func NewFromFactors(K BaseField, factors []numfield.Poly, minimalRamification int64) (*WeakExtension, error) {
	if !K.IsBasePrimeField() {
		return nil, fmt.Errorf("ramify: the base field must be Q_%d itself", K.Prime())
	}
	if minimalRamification < 1 {
		return nil, fmt.Errorf("ramify: minimal ramification must be positive, got %d", minimalRamification)
	}
	if minimalRamification%int64(K.Prime()) == 0 {
		return nil, fmt.Errorf("ramify: minimal ramification %d must be prime to p = %d", minimalRamification, K.Prime())
	}
	L, err := K.WeakSplittingField(factors)
	if err != nil {
		return nil, err
	}
	e := int64(L.AbsoluteRamificationDegree())
	// m * e = lcm(e, minimalRamification); m = 1 iff minimalRamification
	// already divides e.
	if m := minimalRamification / gcdInt64(e, minimalRamification); m > 1 {
		if L, err = L.RamifiedExtension(m); err != nil {
			return nil, err
		}
	}
	ramlog.L().Debug("weak splitting field",
		zap.Uint64("p", K.Prime()),
		zap.Int("ramification", L.AbsoluteRamificationDegree()),
		zap.Int("inertia", L.AbsoluteInertiaDegree()))
	return FromField(K, L)
}

// FromField wraps an already constructed extension L/K as a weak Galois
// extension. L's weak normality is the caller's responsibility.
func FromField(K, L BaseField) (*WeakExtension, error) {
	if K.Prime() != L.Prime() {
		return nil, fmt.Errorf("ramify: residue characteristics %d and %d differ", K.Prime(), L.Prime())
	}
	return &WeakExtension{
		base: K,
		fld:  L,
		e:    L.AbsoluteRamificationDegree(),
		f:    L.AbsoluteInertiaDegree(),
	}, nil
}

// Base returns the base field Q_p.
func (w *WeakExtension) Base() BaseField { return w.base }

// Field returns the extension field L.
func (w *WeakExtension) Field() BaseField { return w.fld }

// Degree returns [L : Q_p].
func (w *WeakExtension) Degree() int { return w.e * w.f }

// RamificationDegree returns the ramification index of L/Q_p.
func (w *WeakExtension) RamificationDegree() int { return w.e }

// InertiaDegree returns the residue degree of L/Q_p.
func (w *WeakExtension) InertiaDegree() int { return w.f }

// RamificationPolygon returns the Newton polygon of the ramification
// polynomial of the totally ramified part of L, with valuations normalized
// so a uniformizer of L has value 1.
func (w *WeakExtension) RamificationPolygon() (*newton.Polygon, error) {
	w.once.Do(w.compute)
	return w.polygon, w.err
}

// RamificationFiltration returns the jumps of the filtration of higher
// ramification groups, in lower or upper numbering.
func (w *WeakExtension) RamificationFiltration(upperNumbering bool) ([]Jump, error) {
	w.once.Do(w.compute)
	if w.err != nil {
		return nil, w.err
	}
	if upperNumbering {
		return UpperFromLower(w.lower, int64(w.e)), nil
	}
	return cloneJumps(w.lower), nil
}

// LowerJumps returns the filtration jumps in lower numbering.
func (w *WeakExtension) LowerJumps() ([]Jump, error) {
	return w.RamificationFiltration(false)
}

// UpperJumps returns the filtration jumps in upper numbering.
func (w *WeakExtension) UpperJumps() ([]Jump, error) {
	return w.RamificationFiltration(true)
}

// UnderRefined reports whether the approximant of the totally ramified part
// was still inexact when the refinement budget ran out. The polygon is then
// computed from a key polynomial congruent to the true one to high precision,
// which in practice yields the same polygon.
func (w *WeakExtension) UnderRefined() (bool, error) {
	w.once.Do(w.compute)
	return w.underRefined, w.err
}

// RamificationSubfields returns the fixed fields of the filtration groups.
func (w *WeakExtension) RamificationSubfields() (map[string]BaseField, error) {
	return nil, fmt.Errorf("ramify: ramification subfields: %w", ErrUnsupported)
}

// RamificationSubfield returns the fixed field of the group at jump u.
func (w *WeakExtension) RamificationSubfield(u *big.Rat) (BaseField, error) {
	return nil, fmt.Errorf("ramify: ramification subfield at %s: %w", u.RatString(), ErrUnsupported)
}

// compute derives the ramification polygon and the lower-numbering jumps:
// the defining polynomial of L is factored over the maximal unramified
// subfield K1, the approximant of largest degree is refined into the
// polynomial P1 of the totally ramified part, and the polygon of
// P1(x + pi)/x over K1(pi) is taken with values scaled by e.
func (w *WeakExtension) compute() {
	if w.e == 1 {
		w.polygon = newton.FromPoints(nil)
		return
	}
	P, ok := w.fld.Polynomial()
	if !ok {
		w.err = fmt.Errorf("ramify: ramified extension without a defining polynomial")
		return
	}
	vK1, err := valuation.Unramified(w.fld.Prime(), w.f)
	if err != nil {
		w.err = err
		return
	}
	PK1, err := P.MapTo(vK1.Domain())
	if err != nil {
		w.err = err
		return
	}
	apps, err := vK1.Approximants(PK1, valuation.ApproximantOptions{
		AssumeSquarefree:     true,
		RequireIncomparable:  true,
		RequireMaximalDegree: true,
	})
	if err != nil {
		w.err = err
		return
	}
	if len(apps) == 0 {
		w.err = fmt.Errorf("ramify: no approximant for %s over the unramified subfield", P)
		return
	}
	v := apps[0]
	for i := 0; i < 10 && !v.Mu().IsInf(); i++ {
		next, err := v.MacLaneStep(PK1)
		if errors.Is(err, valuation.ErrNoProgress) {
			break
		}
		if err != nil {
			w.err = err
			return
		}
		v = next
		ramlog.L().Debug("refined approximant",
			zap.Int("iteration", i),
			zap.String("valuation", v.String()))
	}
	w.underRefined = !v.Mu().IsInf()
	P1 := v.KeyPolynomial()
	if P1.Degree() != w.e {
		w.err = fmt.Errorf("ramify: totally ramified part has degree %d, want ramification degree %d", P1.Degree(), w.e)
		return
	}
	if w.underRefined {
		// Only representatives of degree below P1 are evaluated from here
		// on, so the value of the final stage never enters.
		v = v.ReplaceKey(P1, valuation.Infinity())
	}
	lim, err := valuation.NewLimit(v, big.NewRat(int64(w.e), 1))
	if err != nil {
		w.err = err
		return
	}
	L1, err := numfield.Extend(P1, "pi")
	if err != nil {
		w.err = err
		return
	}
	PL1, err := P1.MapTo(L1)
	if err != nil {
		w.err = err
		return
	}
	shifted, err := PL1.TaylorShift(L1.Gen())
	if err != nil {
		w.err = err
		return
	}
	if !L1.IsZero(shifted.Coeff(0)) {
		w.err = fmt.Errorf("ramify: the generator of %s is not a root of %s", L1.Name(), P1)
		return
	}
	G := shifted.Shift(-1)
	pts := make([]newton.Point, 0, G.Degree()+1)
	for i := 0; i <= G.Degree(); i++ {
		val, err := lim.EvalElem(G.Coeff(i))
		if err != nil {
			w.err = err
			return
		}
		pt := newton.Point{X: i}
		if !val.IsInf() {
			pt.Y = val.Rat()
		}
		pts = append(pts, pt)
	}
	w.polygon = newton.FromPoints(pts)
	w.lower = JumpsFromPolygon(w.polygon, int64(w.e))
	ramlog.L().Debug("ramification polygon",
		zap.String("polygon", w.polygon.String()),
		zap.Int("jumps", len(w.lower)))
}

func gcdInt64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
