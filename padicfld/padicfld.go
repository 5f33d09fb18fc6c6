// Package padicfld models finite extensions of Q_p through dense number
// field models: a number field K/Q together with the ramification and
// inertia degrees of the distinguished place over p. All arithmetic is exact;
// no element of the completion is ever represented directly.
package padicfld

import (
	"fmt"

	"go.uber.org/zap"

	"pAdic-Ramification/internal/ramlog"
	"pAdic-Ramification/numfield"
	"pAdic-Ramification/ramify"
	"pAdic-Ramification/valuation"
)

// Completion is a finite extension of Q_p presented by a monic defining
// polynomial over Q, or Q_p itself.
type Completion struct {
	p    uint64
	fld  *numfield.Field
	poly numfield.Poly // zero for Q_p
	e, f int
}

// Qp returns the completion Q_p.
func Qp(p uint64) (*Completion, error) {
	if _, err := valuation.PAdic(p); err != nil {
		return nil, fmt.Errorf("padicfld: %w", err)
	}
	return &Completion{p: p, fld: numfield.Q(), e: 1, f: 1}, nil
}

// FromDefiningPolynomial returns the extension of Q_p defined by a monic
// irreducible polynomial P over Q, with the given ramification and inertia
// degrees of the place over p. Irreducibility over Q_p and the degrees are
// the caller's responsibility beyond the check e * f = deg P.
func FromDefiningPolynomial(p uint64, P numfield.Poly, e, f int) (*Completion, error) {
	if _, err := valuation.PAdic(p); err != nil {
		return nil, fmt.Errorf("padicfld: %w", err)
	}
	if !P.Field().IsQ() {
		return nil, fmt.Errorf("padicfld: the defining polynomial must be over Q")
	}
	if !P.IsMonic() {
		return nil, fmt.Errorf("padicfld: the defining polynomial must be monic")
	}
	if e < 1 || f < 1 || e*f != P.Degree() {
		return nil, fmt.Errorf("padicfld: degrees e = %d, f = %d do not match deg P = %d", e, f, P.Degree())
	}
	fld, err := numfield.Extend(P, "theta")
	if err != nil {
		return nil, err
	}
	return &Completion{p: p, fld: fld, poly: P, e: e, f: f}, nil
}

// Prime returns p.
func (K *Completion) Prime() uint64 { return K.p }

// IsBasePrimeField reports whether K is Q_p itself.
func (K *Completion) IsBasePrimeField() bool { return K.fld.IsQ() }

// AbsoluteDegree returns [K : Q_p].
func (K *Completion) AbsoluteDegree() int { return K.e * K.f }

// AbsoluteRamificationDegree returns the ramification index over Q_p.
func (K *Completion) AbsoluteRamificationDegree() int { return K.e }

// AbsoluteInertiaDegree returns the residue degree over F_p.
func (K *Completion) AbsoluteInertiaDegree() int { return K.f }

// NumberField returns the dense number field model.
func (K *Completion) NumberField() *numfield.Field { return K.fld }

// Polynomial returns the defining polynomial over Q; ok is false for Q_p.
func (K *Completion) Polynomial() (numfield.Poly, bool) {
	if K.fld.IsQ() {
		return numfield.Poly{}, false
	}
	return K.poly, true
}

// WeakSplittingField returns an extension of K over whose maximal unramified
// extension every given polynomial splits into linear factors. Unramified
// factors need no extension at all; a single ramified factor is handled by
// adjoining a root. Several ramified factors would need an iterated splitting
// field and return ErrUnsupported, as does a base K other than Q_p.
func (K *Completion) WeakSplittingField(factors []numfield.Poly) (ramify.BaseField, error) {
	if !K.IsBasePrimeField() {
		return nil, fmt.Errorf("padicfld: weak splitting field over a proper extension of Q_%d: %w", K.p, ramify.ErrUnsupported)
	}
	prod := numfield.PolyFromInt64(numfield.Q(), []int64{1})
	for _, g := range factors {
		if !g.Field().IsQ() {
			return nil, fmt.Errorf("padicfld: splitting field input must be over Q")
		}
		if g.Degree() >= 1 {
			prod = prod.Mul(g)
		}
	}
	if prod.Degree() < 1 {
		return K, nil
	}
	prod, err := prod.Monic()
	if err != nil {
		return nil, err
	}
	if prod, err = prod.Squarefree(); err != nil {
		return nil, err
	}
	vp, err := valuation.PAdic(K.p)
	if err != nil {
		return nil, err
	}
	apps, err := vp.Approximants(prod, valuation.ApproximantOptions{
		AssumeSquarefree:     true,
		RequireMaximalDegree: true,
	})
	if err != nil {
		return nil, err
	}
	var ramified []*valuation.Inductive
	for _, a := range apps {
		if a.EDenominator() > 1 {
			ramified = append(ramified, a)
		}
	}
	if len(ramified) == 0 {
		// Everything splits over the unramified closure already.
		return K, nil
	}
	if len(ramified) > 1 {
		return nil, fmt.Errorf("padicfld: %d ramified factors need an iterated splitting field: %w", len(ramified), ramify.ErrUnsupported)
	}
	v := ramified[0]
	for i := 0; i < 10 && !v.Mu().IsInf(); i++ {
		if v, err = v.MacLaneStep(prod); err != nil {
			return nil, fmt.Errorf("padicfld: refining the ramified factor: %w", err)
		}
	}
	if !v.Mu().IsInf() {
		return nil, fmt.Errorf("padicfld: the ramified factor did not refine to an exact key: %w", ramify.ErrUnsupported)
	}
	P1 := v.KeyPolynomial()
	e := int(v.EDenominator())
	if P1.Degree()%e != 0 {
		return nil, fmt.Errorf("padicfld: key degree %d is not divisible by e = %d", P1.Degree(), e)
	}
	L, err := FromDefiningPolynomial(K.p, P1, e, P1.Degree()/e)
	if err != nil {
		return nil, err
	}
	ramlog.L().Debug("weak splitting step",
		zap.Uint64("p", K.p),
		zap.String("polynomial", P1.String()),
		zap.Int("e", L.e),
		zap.Int("f", L.f))
	return L, nil
}

// RamifiedExtension returns the totally ramified degree-m extension of Q_p
// defined by y^m - p. Over a proper extension only m = 1 is supported.
func (K *Completion) RamifiedExtension(m int64) (ramify.BaseField, error) {
	if m < 1 {
		return nil, fmt.Errorf("padicfld: ramification degree must be positive, got %d", m)
	}
	if m == 1 {
		return K, nil
	}
	if !K.IsBasePrimeField() {
		return nil, fmt.Errorf("padicfld: ramified extension of a proper extension of Q_%d: %w", K.p, ramify.ErrUnsupported)
	}
	coeffs := make([]int64, m+1)
	coeffs[0] = -int64(K.p)
	coeffs[m] = 1
	return FromDefiningPolynomial(K.p, numfield.PolyFromInt64(numfield.Q(), coeffs), int(m), 1)
}

// SplitRecord pairs a polynomial with its known weak splitting field, for
// results imported from the literature or an external computation.
type SplitRecord struct {
	Input numfield.Poly
	Field *Completion
}

type tabulated struct {
	*Completion
	records []SplitRecord
}

// Tabulated wraps base so that WeakSplittingField first consults the given
// records, matching single inputs by polynomial equality, and falls back to
// the built-in search otherwise.
func Tabulated(base *Completion, records []SplitRecord) ramify.BaseField {
	return &tabulated{Completion: base, records: records}
}

func (t *tabulated) WeakSplittingField(factors []numfield.Poly) (ramify.BaseField, error) {
	if len(factors) == 1 {
		for _, r := range t.records {
			if r.Input.Equal(factors[0]) {
				return r.Field, nil
			}
		}
	}
	return t.Completion.WeakSplittingField(factors)
}
