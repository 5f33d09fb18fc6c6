package ramify

import (
	"fmt"
	"math/big"

	"pAdic-Ramification/newton"
)

// Jump is one break of the ramification filtration: the numbering U at which
// the groups drop, and the order of the subgroup at U.
type Jump struct {
	U     *big.Rat
	Order int64
}

func (j Jump) String() string {
	return fmt.Sprintf("(%s, %d)", j.U.RatString(), j.Order)
}

// cloneJumps deep-copies a jump slice.
func cloneJumps(jumps []Jump) []Jump {
	out := make([]Jump, len(jumps))
	for i, j := range jumps {
		out[i] = Jump{U: new(big.Rat).Set(j.U), Order: j.Order}
	}
	return out
}

// JumpsFromPolygon reads the lower-numbering jumps off a ramification
// polygon, for an extension of ramification degree e. A side of slope -(u+1)
// with u >= 0 contributes the jump u with order one more than the abscissa of
// the side's right endpoint; the zero jump always carries the full order e.
// Jumps are returned with U increasing, and a zero jump whose order ties the
// next jump is a polygon artifact and is dropped.
func JumpsFromPolygon(np *newton.Polygon, e int64) []Jump {
	one := big.NewRat(1, 1)
	var jumps []Jump
	for _, s := range np.Sides() {
		u := new(big.Rat).Neg(s.Slope())
		u.Sub(u, one)
		if u.Sign() < 0 {
			continue
		}
		m := int64(s.V2.X) + 1
		if u.Sign() == 0 {
			m = e
		}
		jumps = append(jumps, Jump{U: u, Order: m})
	}
	// Sides run from steepest to shallowest, so U decreases; flip.
	for i, j := 0, len(jumps)-1; i < j; i, j = i+1, j-1 {
		jumps[i], jumps[j] = jumps[j], jumps[i]
	}
	if len(jumps) >= 2 && jumps[0].U.Sign() == 0 && jumps[0].Order == jumps[1].Order {
		jumps = jumps[1:]
	}
	return jumps
}

// UpperFromLower converts lower-numbering jumps to upper numbering via the
// Herbrand transform: between consecutive jumps the group order is that of
// the upcoming jump, so each segment contributes its length times order / e.
func UpperFromLower(lower []Jump, e int64) []Jump {
	upper := make([]Jump, 0, len(lower))
	prevU := new(big.Rat)
	prevPhi := new(big.Rat)
	for _, j := range lower {
		seg := new(big.Rat).Sub(j.U, prevU)
		seg.Mul(seg, big.NewRat(j.Order, 1))
		seg.Quo(seg, big.NewRat(e, 1))
		phi := new(big.Rat).Add(prevPhi, seg)
		upper = append(upper, Jump{U: phi, Order: j.Order})
		prevU = j.U
		prevPhi = phi
	}
	return upper
}
