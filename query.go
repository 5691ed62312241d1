package shape

import (
	"math"
	"sort"

	"github.com/gonum/floats"
)

// segmentLengths returns the length of every segment.
func (c *Chain) segmentLengths() []float64 {
	lens := make([]float64, len(c.segs))
	for i, s := range c.segs {
		lens[i] = s.Length()
	}
	return lens
}

// Length returns the total length of the chain, measuring arcs along their
// curve.
func (c *Chain) Length() float64 {
	if len(c.segs) == 0 {
		return 0
	}
	return floats.Sum(c.segmentLengths())
}

// SignedArea returns the signed area enclosed by the chain, positive for
// counter-clockwise chains in a y-up coordinate system. Open chains are
// treated as if closed by a line from the last to the first point.
//
// Arcs contribute the exact area of their circular segment, so the result
// only carries floating point error.
func (c *Chain) SignedArea() float64 {
	var area float64
	for _, s := range c.segs {
		area += s.signedArea()
	}
	if !c.closed && len(c.segs) > 0 {
		area += Line{c.segs[len(c.segs)-1].P1, c.segs[0].P0}.Seg().signedArea()
	}
	return area
}

// Area returns the absolute value of [Chain.SignedArea].
func (c *Chain) Area() float64 {
	return math.Abs(c.SignedArea())
}

// nearest finds the segment closest to pt. Ties are broken in favor of the
// lowest segment index and then the earliest position on the segment. With
// arcInterior unset, only the end points of arcs are considered.
func (c *Chain) nearest(pt Point, arcInterior bool) (seg int, t float64, ok bool) {
	type candidate struct {
		distSq float64
		seg    int
		t      float64
	}
	var best option[candidate]
	for i, s := range c.segs {
		var d, st float64
		if s.IsArc() && !arcInterior {
			d, st = pt.DistanceSquared(s.P0), 0
			if d1 := pt.DistanceSquared(s.P1); d1 < d {
				d, st = d1, 1
			}
		} else {
			d, st = s.Nearest(pt)
		}
		if !best.isSet || d < best.value.distSq {
			best.set(candidate{d, i, st})
		}
	}
	if !best.isSet {
		return 0, 0, false
	}
	b := best.unwrap()
	return b.seg, b.t, true
}

// NearestPoint returns the point on the chain closest to pt. With
// allowInternalArcPoints unset, positions inside arcs are excluded and the
// nearest arc end point is used instead. Equidistant candidates are
// resolved in favor of the lowest segment index, then the earliest position
// along that segment. It returns false for an empty chain.
func (c *Chain) NearestPoint(pt Point, allowInternalArcPoints bool) (Point, bool) {
	if len(c.segs) == 0 {
		return c.first, c.hasFirstPoint
	}
	i, t, _ := c.nearest(pt, allowInternalArcPoints)
	return c.segs[i].EvalPoint(t), true
}

// NearestSegment returns the index of the segment closest to pt, using the
// same metric and tie-break as NearestPoint.
func (c *Chain) NearestSegment(pt Point) (int, bool) {
	i, _, ok := c.nearest(pt, true)
	return i, ok
}

// distance returns the distance from pt to the chain's outline.
func (c *Chain) distance(pt Point) float64 {
	if len(c.segs) == 0 {
		if c.hasFirstPoint {
			return pt.Distance(c.first)
		}
		return math.Inf(1)
	}
	i, t, _ := c.nearest(pt, true)
	return pt.Vec().Distance(c.segs[i].Eval(t))
}

// distanceVec is like distance for positions off the grid.
func (c *Chain) distanceVec(p Vec2) float64 {
	best := math.Inf(1)
	for _, s := range c.segs {
		d, _ := s.nearestVec(p)
		best = min(best, d)
	}
	return best
}

// PathLength returns the length along the chain from its first point to the
// projection of pt. If seg is non-negative, pt is projected onto that
// segment; otherwise onto the nearest segment.
func (c *Chain) PathLength(pt Point, seg int) (float64, bool) {
	if len(c.segs) == 0 || seg >= len(c.segs) {
		return 0, false
	}
	var t float64
	if seg < 0 {
		seg, t, _ = c.nearest(pt, true)
	} else {
		_, t = c.segs[seg].Nearest(pt)
	}
	lens := c.segmentLengths()
	before := 0.0
	if seg > 0 {
		before = floats.Sum(lens[:seg])
	}
	return before + t*lens[seg], true
}

// PointAlong returns the point at distance l along the chain, measuring arcs
// along their curve. Distances outside [0, Length] are clamped to the end
// points.
func (c *Chain) PointAlong(l float64) (Point, bool) {
	if len(c.segs) == 0 {
		return c.first, c.hasFirstPoint
	}
	if l <= 0 {
		return c.segs[0].P0, true
	}
	lens := c.segmentLengths()
	cum := floats.CumSum(make([]float64, len(lens)), lens)
	k := sort.SearchFloat64s(cum, l)
	if k == len(cum) {
		return c.segs[len(c.segs)-1].P1, true
	}
	start := cum[k] - lens[k]
	if lens[k] == 0 {
		return c.segs[k].P0, true
	}
	return c.segs[k].EvalPoint(min(1, (l-start)/lens[k])), true
}

// Find returns the index of the first point within threshold of pt.
func (c *Chain) Find(pt Point, threshold float64) (int, bool) {
	for i := range c.PointCount() {
		if c.pt(i).Distance(pt) <= threshold {
			return i, true
		}
	}
	return 0, false
}

// FindSegment returns the index of the first segment within threshold of pt.
func (c *Chain) FindSegment(pt Point, threshold float64) (int, bool) {
	for i, s := range c.segs {
		if s.Distance(pt) <= threshold {
			return i, true
		}
	}
	return 0, false
}

// EdgeContainingPoint returns the index of the first segment that pt lies
// on. With accuracy 0, lines are tested exactly and arcs to within grid
// rounding.
func (c *Chain) EdgeContainingPoint(pt Point, accuracy float64) (int, bool) {
	for i, s := range c.segs {
		switch {
		case accuracy == 0 && !s.IsArc():
			if s.Line().Contains(pt) {
				return i, true
			}
		case s.IsArc():
			if s.Arc().Contains(pt.Vec(), max(accuracy, roundingSlack)) {
				return i, true
			}
		default:
			if s.Distance(pt) <= accuracy {
				return i, true
			}
		}
	}
	return 0, false
}

// PointOnEdge reports whether pt lies on one of the chain's segments. A
// chain consisting only of a pending first point has pt on its edge if they
// coincide.
func (c *Chain) PointOnEdge(pt Point, accuracy float64) bool {
	if len(c.segs) == 0 {
		return c.hasFirstPoint && c.first.Distance(pt) <= accuracy
	}
	_, ok := c.EdgeContainingPoint(pt, accuracy)
	return ok
}
