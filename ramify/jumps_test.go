package ramify

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"pAdic-Ramification/newton"
)

func ratPt(x int, num, den int64) newton.Point {
	return newton.Point{X: x, Y: big.NewRat(num, den)}
}

func jumpsEqual(got []Jump, want []Jump) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i].U.Cmp(want[i].U) != 0 || got[i].Order != want[i].Order {
			return false
		}
	}
	return true
}

func TestJumpsFromPolygon(t *testing.T) {
	cases := []struct {
		name   string
		points []newton.Point
		e      int64
		want   []Jump
	}{
		{
			name:   "wild sextic",
			points: []newton.Point{ratPt(0, 7, 1), ratPt(1, 6, 1), ratPt(2, 3, 1), ratPt(3, 8, 1), ratPt(4, 7, 1), ratPt(5, 0, 1)},
			e:      6,
			want:   []Jump{{U: new(big.Rat), Order: 6}, {U: big.NewRat(1, 1), Order: 3}},
		},
		{
			name:   "wild quadratic",
			points: []newton.Point{ratPt(0, 3, 1), ratPt(1, 0, 1)},
			e:      2,
			want:   []Jump{{U: big.NewRat(2, 1), Order: 2}},
		},
		{
			name:   "tame cubic",
			points: []newton.Point{ratPt(0, 2, 1), ratPt(1, 1, 1), ratPt(2, 0, 1)},
			e:      3,
			want:   []Jump{{U: new(big.Rat), Order: 3}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := JumpsFromPolygon(newton.FromPoints(c.points), c.e)
			if !jumpsEqual(got, c.want) {
				t.Fatalf("jumps = %v, want %v", got, c.want)
			}
		})
	}
}

func TestJumpsFromPolygonDropsZeroArtifact(t *testing.T) {
	// A zero jump whose order ties the next jump carries no information.
	np := newton.FromPoints([]newton.Point{ratPt(0, 4, 1), ratPt(1, 2, 1), ratPt(3, 0, 1)})
	got := JumpsFromPolygon(np, 2)
	want := []Jump{{U: big.NewRat(1, 1), Order: 2}}
	if !jumpsEqual(got, want) {
		t.Fatalf("jumps = %v, want %v", got, want)
	}
}

func TestUpperFromLower(t *testing.T) {
	cases := []struct {
		name  string
		lower []Jump
		e     int64
		want  []Jump
	}{
		{
			name:  "wild sextic",
			lower: []Jump{{U: new(big.Rat), Order: 6}, {U: big.NewRat(1, 1), Order: 3}},
			e:     6,
			want:  []Jump{{U: new(big.Rat), Order: 6}, {U: big.NewRat(1, 2), Order: 3}},
		},
		{
			name:  "wild quadratic",
			lower: []Jump{{U: big.NewRat(2, 1), Order: 2}},
			e:     2,
			want:  []Jump{{U: big.NewRat(2, 1), Order: 2}},
		},
		{
			name:  "tame",
			lower: []Jump{{U: new(big.Rat), Order: 3}},
			e:     3,
			want:  []Jump{{U: new(big.Rat), Order: 3}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := UpperFromLower(c.lower, c.e)
			if !jumpsEqual(got, c.want) {
				t.Fatalf("upper = %v, want %v", got, c.want)
			}
		})
	}
}

func TestHerbrandTransformProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("preserves count, orders and monotonicity", prop.ForAll(
		func(incs []int) bool {
			n := len(incs)
			e := int64(1) << uint(n)
			lower := make([]Jump, 0, n)
			u := int64(incs[0]%5) - 1
			if u < 0 {
				u = 0
			}
			for i, inc := range incs {
				if i > 0 {
					u += int64(inc)
				}
				lower = append(lower, Jump{U: big.NewRat(u, 1), Order: e >> uint(i+1)})
			}
			upper := UpperFromLower(lower, e)
			if len(upper) != len(lower) {
				return false
			}
			prev := big.NewRat(-1, 1)
			for i := range upper {
				if upper[i].Order != lower[i].Order {
					return false
				}
				// Upper numbering never exceeds lower numbering.
				if upper[i].U.Cmp(lower[i].U) > 0 {
					return false
				}
				// Jumps stay strictly increasing (orders are positive).
				if i > 0 && upper[i].U.Cmp(prev) <= 0 {
					return false
				}
				prev = upper[i].U
			}
			return true
		},
		gen.SliceOfN(3, gen.IntRange(1, 5)),
	))

	properties.Property("first upper jump is u0 * g0 / e", prop.ForAll(
		func(u0 int, g int) bool {
			e := int64(16)
			lower := []Jump{{U: big.NewRat(int64(u0), 1), Order: int64(g)}}
			upper := UpperFromLower(lower, e)
			want := big.NewRat(int64(u0)*int64(g), e)
			return upper[0].U.Cmp(want) == 0
		},
		gen.IntRange(0, 20),
		gen.IntRange(1, 16),
	))

	properties.TestingRun(t)
}
