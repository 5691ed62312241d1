package shape

import (
	"cmp"
	"math"
	"slices"
)

// Intersection is a point shared by a chain and another operand.
type Intersection struct {
	// The shared point.
	P Point
	// Index of the segment of the chain, and of the operand, that P lies on.
	Our, Their int
	// Whether P coincides with an end point of the respective segment.
	IsCornerOur, IsCornerTheir bool
	// Valid is cleared by [RefineIntersections] for near-duplicates.
	Valid bool

	// Parameter of P on our segment, for ordering.
	t float64
	// Set for the end points of colinear overlaps.
	colinear bool
}

// IntersectOptions configures [Chain.Intersect].
type IntersectOptions struct {
	// Report only proper crossings, dropping colinear overlaps and points
	// where one operand merely touches the other at a segment end point.
	ExcludeColinearAndTouching bool
	// Bounding box of the other chain, if already known.
	OtherBBox *Rect
}

func isEnd(s Segment, pt Point) bool {
	return pt == s.P0 || pt == s.P1
}

// RefineIntersections clears the Valid flag of every intersection that lies
// within tolerance of an earlier valid one.
func RefineIntersections(xs []Intersection, tolerance float64) {
	for i := range xs {
		if !xs[i].Valid {
			continue
		}
		for j := range i {
			if xs[j].Valid && xs[j].P.Distance(xs[i].P) <= tolerance {
				xs[i].Valid = false
				break
			}
		}
	}
}

// finishIntersections sorts xs along the chain, drops duplicates and
// returns the remaining intersections.
func finishIntersections(xs []Intersection) []Intersection {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		if c := cmp.Compare(a.Our, b.Our); c != 0 {
			return c
		}
		return cmp.Compare(a.t, b.t)
	})
	RefineIntersections(xs, 0)
	return slices.DeleteFunc(xs, func(x Intersection) bool { return !x.Valid })
}

// intersectSegment appends the intersections between our segment i and
// their segment j.
func intersectSegment(xs []Intersection, our Segment, i int, their Segment, j int) []Intersection {
	ps, n := our.Intersect(their)
	for _, p := range ps[:n] {
		xs = append(xs, Intersection{
			P:             p.P,
			Our:           i,
			Their:         j,
			IsCornerOur:   isEnd(our, p.P),
			IsCornerTheir: isEnd(their, p.P),
			Valid:         true,
			t:             p.T0,
			colinear:      p.Colinear,
		})
	}
	return xs
}

// IntersectSegment returns the points where seg meets the chain, ordered
// along the chain. Their is always 0.
func (c *Chain) IntersectSegment(seg Segment) []Intersection {
	var xs []Intersection
	bbox := seg.BoundingBox()
	for i, s := range c.segs {
		if !s.BoundingBox().Intersects(bbox) {
			continue
		}
		xs = intersectSegment(xs, s, i, seg, 0)
	}
	return finishIntersections(xs)
}

// IntersectLine returns the points where l meets the chain.
func (c *Chain) IntersectLine(l Line) []Intersection {
	return c.IntersectSegment(l.Seg())
}

// IntersectArc returns the points where a meets the chain.
func (c *Chain) IntersectArc(a Arc) []Intersection {
	return c.IntersectSegment(a.Seg())
}

// Intersect returns the points shared by c and o, ordered along c.
func (c *Chain) Intersect(o *Chain, opts IntersectOptions) []Intersection {
	var obox Rect
	if opts.OtherBBox != nil {
		obox = *opts.OtherBBox
	} else {
		var ok bool
		if obox, ok = o.BBox(); !ok {
			return nil
		}
	}
	var xs []Intersection
	for i, s := range c.segs {
		sbox := s.BoundingBox()
		if !sbox.Intersects(obox) {
			continue
		}
		for j, os := range o.segs {
			if !sbox.Intersects(os.BoundingBox()) {
				continue
			}
			xs = intersectSegment(xs, s, i, os, j)
		}
	}
	if opts.ExcludeColinearAndTouching {
		xs = slices.DeleteFunc(xs, func(x Intersection) bool {
			return x.colinear || !crossesAt(c, x.Our, o, x.Their, x.P)
		})
	}
	return finishIntersections(xs)
}

// tangentAt returns the unit direction of travel of s at pt, which lies on
// s.
func (s Segment) tangentAt(pt Point) Vec2 {
	if s.Kind != ArcKind {
		return s.P1.Sub(s.P0).Vec().Normalize()
	}
	a := s.Arc()
	d := pt.Vec().Sub(a.Center()).Turn90()
	if a.IsClockwise() {
		d = d.Negate()
	}
	return d.Normalize()
}

// directionsAt returns the directions in which the chain leaves pt, which
// lies on segment i: back along the chain and forward along it. ok is false
// where the chain ends at pt.
func (c *Chain) directionsAt(i int, pt Point) (back, fwd Vec2, ok bool) {
	s := c.segs[i]
	n := len(c.segs)
	switch pt {
	case s.P0:
		if i == 0 && !c.closed {
			return Vec2{}, Vec2{}, false
		}
		prev := c.segs[(i-1+n)%n]
		return prev.tangentAt(pt).Negate(), s.tangentAt(pt), true
	case s.P1:
		if i == n-1 && !c.closed {
			return Vec2{}, Vec2{}, false
		}
		next := c.segs[(i+1)%n]
		return s.tangentAt(pt).Negate(), next.tangentAt(pt), true
	default:
		d := s.tangentAt(pt)
		return d.Negate(), d, true
	}
}

// crossesAt reports whether chain o passes from one side of chain c to the
// other at pt, where segment i of c meets segment j of o. Chains that only
// touch, run along each other or end at pt don't cross.
func crossesAt(c *Chain, i int, o *Chain, j int, pt Point) bool {
	back, fwd, ok := c.directionsAt(i, pt)
	if !ok {
		return false
	}
	oback, ofwd, ok := o.directionsAt(j, pt)
	if !ok {
		return false
	}
	const eps = 1e-9
	// Counter-clockwise angle from fwd to v, in [0, 2π).
	angle := func(v Vec2) float64 {
		th := math.Atan2(fwd.Cross(v), fwd.Dot(v))
		if th < 0 {
			th += 2 * math.Pi
		}
		if th > 2*math.Pi-eps {
			th = 0
		}
		return th
	}
	limit := angle(back)
	// side is 1 between fwd and back counter-clockwise, −1 on the other
	// side and 0 along c.
	side := func(v Vec2) int {
		if v.IsNaN() || back.IsNaN() || fwd.IsNaN() {
			return 0
		}
		th := angle(v)
		switch {
		case th < eps || math.Abs(th-limit) < eps:
			return 0
		case th < limit:
			return 1
		default:
			return -1
		}
	}
	s0, s1 := side(oback), side(ofwd)
	return s0 != 0 && s1 != 0 && s0 != s1
}

// adjacent reports whether segments i < j of the chain share an end point
// by virtue of being consecutive, and returns that point.
func (c *Chain) adjacent(i, j int) (shared [2]Point, n int) {
	if j == i+1 {
		shared[n] = c.segs[i].P1
		n++
	}
	if c.closed && i == 0 && j == len(c.segs)-1 {
		shared[n] = c.segs[0].P0
		n++
	}
	return shared, n
}

// SelfIntersecting returns the first point where the chain meets itself
// other than at the points shared by consecutive segments. Segment pairs are
// searched in order of the first and then the second segment index. Chains
// with fewer than two segments never intersect themselves.
func (c *Chain) SelfIntersecting() (Intersection, bool) {
	if len(c.segs) < 2 {
		return Intersection{}, false
	}
	boxes := make([]Rect, len(c.segs))
	for i, s := range c.segs {
		boxes[i] = s.BoundingBox()
	}
	for i := range c.segs {
		for j := i + 1; j < len(c.segs); j++ {
			if !boxes[i].Intersects(boxes[j]) {
				continue
			}
			shared, ns := c.adjacent(i, j)
			xs := intersectSegment(nil, c.segs[i], i, c.segs[j], j)
			for _, x := range xs {
				if slices.Contains(shared[:ns], x.P) {
					continue
				}
				return x, true
			}
		}
	}
	return Intersection{}, false
}
