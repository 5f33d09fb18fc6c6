// Package newton computes Newton polygons: the lower convex hull of a set of
// points (i, v_i) with integer abscissae and rational (or infinite)
// ordinates. Points with infinite ordinate are ignored, matching the
// convention v(0) = +inf for vanishing coefficients.
package newton

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Point is a polygon input point. A nil Y means +infinity and the point is
// skipped during hull construction.
type Point struct {
	X int
	Y *big.Rat
}

// Side is a segment between two consecutive vertices of the polygon,
// left to right.
type Side struct {
	V1, V2 Point
}

// Slope returns (V2.Y - V1.Y) / (V2.X - V1.X).
func (s Side) Slope() *big.Rat {
	dy := new(big.Rat).Sub(s.V2.Y, s.V1.Y)
	dx := big.NewRat(int64(s.V2.X-s.V1.X), 1)
	return dy.Quo(dy, dx)
}

// Width returns the horizontal length of the side.
func (s Side) Width() int {
	return s.V2.X - s.V1.X
}

// Polygon is a lower convex hull. Vertices are in increasing-X order and the
// side slopes strictly increase left to right.
type Polygon struct {
	vertices []Point
}

// FromPoints builds the lower convex hull of the finite points. Collinear
// interior points are absorbed into their side.
func FromPoints(points []Point) *Polygon {
	finite := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Y != nil {
			finite = append(finite, Point{X: p.X, Y: new(big.Rat).Set(p.Y)})
		}
	}
	sort.Slice(finite, func(i, j int) bool {
		if finite[i].X != finite[j].X {
			return finite[i].X < finite[j].X
		}
		return finite[i].Y.Cmp(finite[j].Y) < 0
	})
	// Drop duplicate abscissae, keeping the lowest point.
	dedup := finite[:0]
	for _, p := range finite {
		if len(dedup) > 0 && dedup[len(dedup)-1].X == p.X {
			continue
		}
		dedup = append(dedup, p)
	}
	var hull []Point
	for _, p := range dedup {
		for len(hull) >= 2 && !turnsRight(hull[len(hull)-2], hull[len(hull)-1], p) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return &Polygon{vertices: hull}
}

// turnsRight reports whether b lies strictly below the segment from a to c,
// i.e. whether a-b-c is a strict lower-hull turn.
func turnsRight(a, b, c Point) bool {
	// b below the chord a-c iff (b.Y-a.Y)*(c.X-a.X) < (c.Y-a.Y)*(b.X-a.X).
	lhs := new(big.Rat).Sub(b.Y, a.Y)
	lhs.Mul(lhs, big.NewRat(int64(c.X-a.X), 1))
	rhs := new(big.Rat).Sub(c.Y, a.Y)
	rhs.Mul(rhs, big.NewRat(int64(b.X-a.X), 1))
	return lhs.Cmp(rhs) < 0
}

// Vertices returns the hull vertices left to right.
func (np *Polygon) Vertices() []Point {
	out := make([]Point, len(np.vertices))
	copy(out, np.vertices)
	return out
}

// Sides returns the hull segments left to right; slopes strictly increase.
func (np *Polygon) Sides() []Side {
	if len(np.vertices) < 2 {
		return nil
	}
	out := make([]Side, 0, len(np.vertices)-1)
	for i := 0; i+1 < len(np.vertices); i++ {
		out = append(out, Side{V1: np.vertices[i], V2: np.vertices[i+1]})
	}
	return out
}

// SteepestSlope returns the slope of the leftmost side, or false for a
// degenerate polygon with no sides.
func (np *Polygon) SteepestSlope() (*big.Rat, bool) {
	sides := np.Sides()
	if len(sides) == 0 {
		return nil, false
	}
	return sides[0].Slope(), true
}

// String renders the polygon's vertices.
func (np *Polygon) String() string {
	parts := make([]string, len(np.vertices))
	for i, v := range np.vertices {
		parts[i] = fmt.Sprintf("(%d, %s)", v.X, v.Y.RatString())
	}
	return "NewtonPolygon[" + strings.Join(parts, ", ") + "]"
}
