package valuation

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"pAdic-Ramification/internal/fp"
	"pAdic-Ramification/newton"
	"pAdic-Ramification/numfield"
)

var (
	// ErrNoProgress is returned by a refinement step that cannot improve the
	// valuation any further within its candidate search.
	ErrNoProgress = errors.New("valuation: refinement made no progress")
	// ErrUnsupported is returned for inputs outside the implemented
	// refinement search, such as non-trivial residual factorizations over
	// extension domains.
	ErrUnsupported = errors.New("valuation: input is outside the supported refinement search")
)

const (
	maxAttachDepth  = 8
	maxCandidates   = 128
	maxExponent     = 8
	unitSearchBound = 32
)

// ApproximantOptions controls the approximant search.
type ApproximantOptions struct {
	// AssumeSquarefree skips the squarefree reduction of the input.
	AssumeSquarefree bool
	// RequireIncomparable documents the caller's reliance on the returned
	// valuations being pairwise incomparable. The construction guarantees
	// this (each approximant comes from a distinct polygon side or residual
	// factor), so the flag changes nothing.
	RequireIncomparable bool
	// RequireMaximalDegree refines each approximant until its key degree
	// stops growing, so the key degree equals the degree of the factor it
	// singles out.
	RequireMaximalDegree bool
}

// Approximants returns inductive valuations approximating the monic
// irreducible factors of f over the completion of the valued field, one per
// factor. Factors of x are reported as the exact chain [v(x) = +inf].
//
// Over Q the search is complete for factors isolated by the Gauss Newton
// polygon and its residual factorizations. Over extension domains only the
// totally ramified single-factor shape is recognized; other shapes return
// ErrUnsupported.
func (v *FieldValuation) Approximants(f numfield.Poly, opts ApproximantOptions) ([]*Inductive, error) {
	if f.Field() != v.dom {
		return nil, fmt.Errorf("valuation: polynomial is not over the valuation's domain %s", v.dom.Name())
	}
	if f.Degree() < 1 {
		return nil, nil
	}
	var err error
	if !f.IsMonic() {
		if f, err = f.Monic(); err != nil {
			return nil, err
		}
	}
	if !opts.AssumeSquarefree {
		if f, err = f.Squarefree(); err != nil {
			return nil, err
		}
	}

	var out []*Inductive
	if f.Field().IsZero(f.Coeff(0)) {
		out = append(out, &Inductive{base: v, stages: []stage{{phi: numfield.X(v.dom), mu: Infinity()}}})
		for !f.IsZero() && f.Field().IsZero(f.Coeff(0)) {
			f = f.Shift(-1)
		}
		if f.Degree() < 1 {
			return out, nil
		}
	}

	pts := make([]newton.Point, 0, f.Degree()+1)
	for i := 0; i <= f.Degree(); i++ {
		val := v.Eval(f.Coeff(i))
		pt := newton.Point{X: i}
		if !val.IsInf() {
			pt.Y = val.Rat()
		}
		pts = append(pts, pt)
	}
	sides := newton.FromPoints(pts).Sides()

	for _, s := range sides {
		lam := new(big.Rat).Neg(s.Slope())
		h, d := lam.Num().Int64(), lam.Denom().Int64()
		if !v.dom.IsQ() {
			// No residual machinery over extensions: recognize only the
			// single totally ramified factor.
			if len(sides) == 1 && d == int64(f.Degree()) {
				out = append(out, Gauss(v, lam).augment(f, Infinity()))
				continue
			}
			return nil, fmt.Errorf("valuation: approximants over %s need a trivial residual: %w", v.dom.Name(), ErrUnsupported)
		}
		R, err := residualOnSide(v, f, s, h, d)
		if err != nil {
			return nil, err
		}
		factors, err := fp.FactorSquarefree(fp.SquarefreePart(R, v.p), v.p,
			fp.ShakeSource("residual-split", v.p, uint64(s.V1.X), uint64(f.Degree())))
		if err != nil {
			return nil, err
		}
		for _, psi := range factors {
			phi := liftKey(v.dom, psi, h, d, v.p)
			chain := Gauss(v, lam)
			if phi.Degree() == f.Degree() {
				// A key of full degree already pins down f itself.
				out = append(out, chain.augment(f, Infinity()))
				continue
			}
			app, err := attachKey(chain, phi, f, 0)
			if err != nil {
				return nil, err
			}
			out = append(out, app)
		}
	}

	if opts.RequireMaximalDegree {
		for i, w := range out {
			out[i] = refineToMaximalDegree(w, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].KeyPolynomial().Degree() > out[j].KeyPolynomial().Degree()
	})
	return out, nil
}

// refineToMaximalDegree steps the valuation while its key degree keeps
// growing. A step that fails or no longer grows the key ends the loop.
func refineToMaximalDegree(w *Inductive, f numfield.Poly) *Inductive {
	for iter := 0; iter < 10 && !w.Mu().IsInf(); iter++ {
		next, err := w.MacLaneStep(f)
		if err != nil {
			break
		}
		grew := next.KeyPolynomial().Degree() > w.KeyPolynomial().Degree()
		w = next
		if !grew {
			break
		}
	}
	return w
}

// MacLaneStep returns an improved approximation of the factor of f this
// valuation singles out: a valuation with a strictly larger value on its key,
// a key of larger degree, or an exact chain ending in v(key) = +inf. f must
// be monic and squarefree and the receiver must approximate one of its
// factors, as produced by Approximants. An exact valuation is returned
// unchanged.
func (v *Inductive) MacLaneStep(f numfield.Poly) (*Inductive, error) {
	if v.Mu().IsInf() {
		return v, nil
	}
	phi := v.KeyPolynomial()
	// The approximated factor has at least the key's degree, so a key of
	// full degree pins down f itself.
	if phi.Degree() == f.Degree() && f.IsMonic() {
		return v.replaceLast(f, Infinity()), nil
	}
	_, rem, err := f.DivMod(phi)
	if err != nil {
		return nil, err
	}
	if rem.IsZero() {
		return v.replaceLast(phi, Infinity()), nil
	}
	np, err := v.keyPolygon(f)
	if err != nil {
		return nil, err
	}
	slope, ok := np.SteepestSlope()
	if !ok {
		return nil, ErrNoProgress
	}
	lam := new(big.Rat).Neg(slope)
	if lam.Cmp(v.Mu().Rat()) < 0 {
		return nil, ErrNoProgress
	}
	dp := relDenominator(lam, v.EDenominator())
	if dp == 1 {
		return v.sameDegreeRefine(phi, lam, f)
	}
	grown := v.replaceLast(phi, Finite(lam))
	return escalate(grown, phi, lam, dp, f, 0)
}

// attachKey augments chain by a fresh key polynomial, assigning it the
// steepest slope of f's key expansion and escalating the key degree when the
// slope's denominator demands it.
func attachKey(chain *Inductive, phi, f numfield.Poly, depth int) (*Inductive, error) {
	if depth > maxAttachDepth {
		return chain, ErrNoProgress
	}
	_, rem, err := f.DivMod(phi)
	if err != nil {
		return nil, err
	}
	if rem.IsZero() {
		return chain.augment(phi, Infinity()), nil
	}
	lam, err := steepestIn(chain, phi, f)
	if err != nil {
		return nil, err
	}
	w0, err := chain.EvalPoly(phi)
	if err != nil {
		return nil, err
	}
	if !w0.IsInf() && lam.Cmp(w0.Rat()) <= 0 {
		return nil, ErrNoProgress
	}
	dp := relDenominator(lam, chain.EDenominator())
	grown := chain.augment(phi, Finite(lam))
	if dp == 1 {
		return grown, nil
	}
	return escalate(grown, phi, lam, dp, f, depth)
}

// escalate moves from a key phi with fractional value lam (relative
// denominator dp > 1) to a key of degree dp * deg(phi), searching candidates
// phi^dp - c over monomials c of matching value.
func escalate(grown *Inductive, phi numfield.Poly, lam *big.Rat, dp int64, f numfield.Poly, depth int) (*Inductive, error) {
	next := int(dp) * phi.Degree()
	switch {
	case next == f.Degree():
		return grown.augment(f, Infinity()), nil
	case next > f.Degree():
		return nil, fmt.Errorf("valuation: escalated key degree %d exceeds deg f = %d: %w", next, f.Degree(), ErrUnsupported)
	}
	target := new(big.Rat).Mul(lam, big.NewRat(dp, 1))
	phiPow := phi.Pow(int(dp))
	var bestPhi numfield.Poly
	var bestLam *big.Rat
	for _, c := range grown.shiftCandidates(target, next-1) {
		cand := phiPow.Sub(c)
		_, rem, err := f.DivMod(cand)
		if err != nil {
			return nil, err
		}
		if rem.IsZero() {
			return grown.augment(cand, Infinity()), nil
		}
		l2, err := steepestIn(grown, cand, f)
		if err != nil || l2.Cmp(target) <= 0 {
			continue
		}
		if bestLam == nil || l2.Cmp(bestLam) > 0 {
			bestPhi, bestLam = cand, l2
		}
	}
	if bestLam == nil {
		// Best effort: the chain is still a valid, if coarse, approximant.
		return grown, ErrNoProgress
	}
	return attachKey(grown, bestPhi, f, depth+1)
}

// sameDegreeRefine replaces the last key by phi - c for the candidate shift c
// of value lam that pushes the steepest slope of f's key expansion highest.
// Keeping phi itself (c = 0) is among the candidates.
func (v *Inductive) sameDegreeRefine(phi numfield.Poly, lam *big.Rat, f numfield.Poly) (*Inductive, error) {
	mu := v.Mu().Rat()
	cands := []numfield.Poly{phi}
	for _, c := range v.shiftCandidates(lam, phi.Degree()-1) {
		cands = append(cands, phi.Sub(c))
	}
	var bestPhi numfield.Poly
	var bestLam *big.Rat
	for _, cand := range cands {
		_, rem, err := f.DivMod(cand)
		if err != nil {
			return nil, err
		}
		if rem.IsZero() {
			return v.replaceLast(cand, Infinity()), nil
		}
		probe := v.replaceLast(cand, Finite(lam))
		np, err := probe.keyPolygon(f)
		if err != nil {
			return nil, err
		}
		slope, ok := np.SteepestSlope()
		if !ok {
			continue
		}
		l2 := new(big.Rat).Neg(slope)
		if l2.Cmp(mu) <= 0 {
			continue
		}
		if bestLam == nil || l2.Cmp(bestLam) > 0 {
			bestPhi, bestLam = cand, l2
		}
	}
	if bestLam == nil {
		return nil, ErrNoProgress
	}
	return v.replaceLast(bestPhi, Finite(bestLam)), nil
}

// steepestIn returns minus the steepest slope of the Newton polygon of f's
// phi-adic expansion, with digit values taken under v.
func steepestIn(v *Inductive, phi, f numfield.Poly) (*big.Rat, error) {
	digits, err := expand(f, phi)
	if err != nil {
		return nil, err
	}
	points := make([]newton.Point, 0, len(digits))
	for i, a := range digits {
		val, err := v.EvalPoly(a)
		if err != nil {
			return nil, err
		}
		pt := newton.Point{X: i}
		if !val.IsInf() {
			pt.Y = val.Rat()
		}
		points = append(points, pt)
	}
	slope, ok := newton.FromPoints(points).SteepestSlope()
	if !ok {
		return nil, ErrNoProgress
	}
	return new(big.Rat).Neg(slope), nil
}

// shiftCandidates enumerates polynomials of the given value and degree at
// most maxDeg: products of powers of the stage keys and of p, times a small
// range of residue units (and generator powers over an extension domain).
func (v *Inductive) shiftCandidates(target *big.Rat, maxDeg int) []numfield.Poly {
	dom := v.base.Domain()
	type gen struct {
		poly numfield.Poly
		mu   *big.Rat
		deg  int
	}
	var gens []gen
	for _, st := range v.stages {
		if st.mu.IsInf() || st.phi.Degree() < 1 || st.phi.Degree() > maxDeg {
			continue
		}
		gens = append(gens, gen{poly: st.phi, mu: st.mu.Rat(), deg: st.phi.Degree()})
	}

	bound := v.base.Prime() - 1
	if bound > unitSearchBound {
		bound = unitSearchBound
	}
	units := make([]numfield.Elem, 0, bound)
	for t := uint64(1); t <= bound; t++ {
		units = append(units, dom.FromInt64(int64(t)))
	}
	if !dom.IsQ() {
		scaled := units
		pow := dom.One()
		for j := 1; j < dom.Degree(); j++ {
			pow = dom.Mul(pow, dom.Gen())
			for _, u := range units {
				scaled = append(scaled, dom.Mul(u, pow))
			}
		}
		units = scaled
	}

	var out []numfield.Poly
	var walk func(k, deg int, sum *big.Rat, m numfield.Poly)
	walk = func(k, deg int, sum *big.Rat, m numfield.Poly) {
		if len(out) >= maxCandidates {
			return
		}
		if k == len(gens) {
			s := new(big.Rat).Sub(target, sum)
			if !s.IsInt() {
				return
			}
			mono := m.ScaleElem(dom.FromRat(ratPow(v.base.Prime(), s.Num())))
			for _, u := range units {
				if len(out) >= maxCandidates {
					return
				}
				out = append(out, mono.ScaleElem(u))
			}
			return
		}
		g := gens[k]
		cur := m
		cursum := sum
		for w := 0; w <= maxExponent; w++ {
			if deg+w*g.deg > maxDeg {
				break
			}
			walk(k+1, deg+w*g.deg, cursum, cur)
			cur = cur.Mul(g.poly)
			cursum = new(big.Rat).Add(cursum, g.mu)
		}
	}
	walk(0, 0, new(big.Rat), numfield.PolyFromInt64(dom, []int64{1}))
	return out
}

// residualOnSide reduces the coefficients of f on the lattice points of a
// Gauss polygon side to F_p: for slope -h/d from (x1, y1), the j-th residual
// coefficient is the reduction of coeff(x1 + j*d) / p^(y1 - j*h).
func residualOnSide(v *FieldValuation, f numfield.Poly, s newton.Side, h, d int64) (fp.Poly, error) {
	F := f.Field()
	r := int64(s.Width()) / d
	out := make(fp.Poly, r+1)
	for j := int64(0); j <= r; j++ {
		target := new(big.Rat).Sub(s.V1.Y, big.NewRat(j*h, 1))
		c, ok := F.Rat(f.Coeff(int(int64(s.V1.X) + j*d)))
		if !ok {
			return nil, fmt.Errorf("valuation: residual reduction needs rational coefficients")
		}
		if c.Sign() == 0 {
			continue
		}
		if val := v.RatVal(c); val.IsInf() || val.Rat().Cmp(target) != 0 {
			// Strictly above the side.
			continue
		}
		if !target.IsInt() {
			return nil, fmt.Errorf("valuation: non-integral valuation %s on a polygon lattice point", target.RatString())
		}
		unit := new(big.Rat).Quo(c, ratPow(v.p, target.Num()))
		out[j] = redModP(unit, v.p)
	}
	return fp.Trim(out), nil
}

// liftKey lifts a monic irreducible residual factor psi of degree r to a key
// polynomial of degree r*d over F: sum over j of lift(psi_j) * p^(h*(r-j)) *
// x^(j*d).
func liftKey(F *numfield.Field, psi fp.Poly, h, d int64, p uint64) numfield.Poly {
	r := int64(fp.Degree(psi))
	coeffs := make([]*big.Rat, r*d+1)
	for i := range coeffs {
		coeffs[i] = new(big.Rat)
	}
	for j := int64(0); j <= r; j++ {
		lift := new(big.Rat).SetUint64(psi[j])
		coeffs[j*d] = lift.Mul(lift, ratPow(p, big.NewInt(h*(r-j))))
	}
	return numfield.PolyFromRats(F, coeffs)
}

// redModP reduces a rational of valuation zero modulo p.
func redModP(r *big.Rat, p uint64) uint64 {
	pb := new(big.Int).SetUint64(p)
	num := new(big.Int).Mod(r.Num(), pb)
	den := new(big.Int).Mod(r.Denom(), pb)
	den.ModInverse(den, pb)
	num.Mul(num, den).Mod(num, pb)
	return num.Uint64()
}

// ratPow returns p^e as a rational, for a (possibly negative) integer e.
func ratPow(p uint64, e *big.Int) *big.Rat {
	pw := new(big.Int).Exp(new(big.Int).SetUint64(p), new(big.Int).Abs(e), nil)
	if e.Sign() >= 0 {
		return new(big.Rat).SetInt(pw)
	}
	return new(big.Rat).SetFrac(big.NewInt(1), pw)
}

// relDenominator returns the index of the value group extension generated by
// lam over a group with denominator e: den(lam) / gcd(den(lam), e).
func relDenominator(lam *big.Rat, e int64) int64 {
	d := lam.Denom().Int64()
	return d / gcd64(d, e)
}

func gcd64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
