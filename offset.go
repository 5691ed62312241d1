package shape

import (
	"math"
	"slices"
)

// CornerStrategy defines how the offset curves of two segments are joined
// where they leave a gap, at the convex corners of the offset side.
type CornerStrategy int

const (
	// The offset segments are extended to their natural intersection point.
	AllowAcuteCorners CornerStrategy = iota
	// Like AllowAcuteCorners, but corners sharper than a right angle are
	// chamfered.
	ChamferAcuteCorners
	// Like AllowAcuteCorners, but corners sharper than a right angle are
	// rounded.
	RoundAcuteCorners
	// A straight line tangent to the rounded corner.
	ChamferAllCorners
	// An arc about the original vertex.
	RoundAllCorners
)

func (cs CornerStrategy) String() string {
	switch cs {
	case AllowAcuteCorners:
		return "AllowAcuteCorners"
	case ChamferAcuteCorners:
		return "ChamferAcuteCorners"
	case RoundAcuteCorners:
		return "RoundAcuteCorners"
	case ChamferAllCorners:
		return "ChamferAllCorners"
	case RoundAllCorners:
		return "RoundAllCorners"
	default:
		return "CornerStrategy(?)"
	}
}

// OffsetLine computes the curves parallel to the chain at distance amount on
// its left and on its right, relative to the direction of travel. A negative
// amount swaps the two sides. Gaps at convex corners are filled according to
// corners; overlaps at concave corners, and any other part of an offset
// curve that comes closer to the chain than amount, are trimmed away.
//
// Offset arcs and rounded corners are arcs. A rounded corner passes through
// grid points, and maxError bounds how far it may stray from the true circle
// about the vertex. Where no arc meets that, a corner too small for one is
// filled with lines under the same bound; if that can't be met either, the
// side fails.
// With simplify set, colinear lines are merged in the results.
//
// ok is false if either side collapses, such as when a closed chain is
// offset inward by more than half its width, or can't be built within
// maxError. The side that could be built is still returned.
func (c *Chain) OffsetLine(amount float64, corners CornerStrategy, maxError float64, simplify bool) (left, right *Chain, ok bool) {
	if len(c.segs) == 0 {
		return nil, nil, false
	}
	if amount == 0 {
		return c.Clone(), c.Clone(), true
	}
	left = c.offsetSide(amount, corners, maxError)
	right = c.offsetSide(-amount, corners, maxError)
	for _, side := range [2]*Chain{left, right} {
		if side != nil && simplify {
			// A simplified side that can't stay closed is kept as it was.
			_ = side.Simplify()
		}
	}
	return left, right, left != nil && right != nil
}

// offsetPiece is the offset of one segment. Arcs that shrink to nothing
// collapse onto their center.
type offsetPiece struct {
	seg       Segment
	collapsed bool
}

// offsetSegment offsets s by d along its left normal.
func offsetSegment(s Segment, d float64) offsetPiece {
	if !s.IsArc() {
		n := s.P1.Sub(s.P0).Vec().Normalize().Turn90().Mul(d)
		return offsetPiece{seg: Line{
			s.P0.Vec().Add(n).Round(),
			s.P1.Vec().Add(n).Round(),
		}.Seg()}
	}
	a := s.Arc()
	c := a.Circle()
	// The left normal of a counter-clockwise arc points at its center.
	r := c.Radius + d
	if !a.IsClockwise() {
		r = c.Radius - d
	}
	if r < 1 {
		ctr := c.Center.Round()
		return offsetPiece{seg: Line{ctr, ctr}.Seg(), collapsed: true}
	}
	scale := func(p Point) Point {
		return c.Center.Add(p.Vec().Sub(c.Center).Mul(r / c.Radius)).Round()
	}
	off := Arc{scale(a.Start), scale(a.Mid), scale(a.End)}
	if !off.IsValid() {
		return offsetPiece{seg: off.Chord().Seg()}
	}
	return offsetPiece{seg: off.Seg()}
}

// pathBuilder accumulates a continuous sequence of segments, dropping
// zero-length lines.
type pathBuilder struct {
	segs []Segment
	cur  Point
}

func (b *pathBuilder) lineTo(p Point) {
	if p != b.cur {
		b.segs = append(b.segs, Line{b.cur, p}.Seg())
		b.cur = p
	}
}

func (b *pathBuilder) segTo(s Segment) {
	b.lineTo(s.P0)
	if s.P0 != s.P1 {
		b.segs = append(b.segs, s)
		b.cur = s.P1
	}
}

// offsetSide returns the offset of the chain by d along the left normal, or
// nil if it collapses.
func (c *Chain) offsetSide(d float64, corners CornerStrategy, maxError float64) *Chain {
	src := slices.DeleteFunc(slices.Clone(c.segs), func(s Segment) bool {
		return !s.IsArc() && s.P0 == s.P1
	})
	if len(src) == 0 {
		return nil
	}
	pieces := make([]offsetPiece, len(src))
	for k, s := range src {
		pieces[k] = offsetSegment(s, d)
	}

	b := &pathBuilder{cur: pieces[0].seg.P0}
	for k := range pieces {
		b.segTo(pieces[k].seg)
		next := k + 1
		if next == len(pieces) {
			if !c.closed {
				break
			}
			next = 0
		}
		if !b.join(src[k], src[next], pieces[k], pieces[next], d, corners, maxError) {
			Logger().Debug("offset corner exceeds tolerance", "vertex", src[k].P1, "maxError", maxError)
			return nil
		}
	}
	if c.closed {
		b.lineTo(pieces[0].seg.P0)
	}

	path := trimOffset(b.segs, c.closed, c, math.Abs(d))
	if path == nil {
		Logger().Debug("offset side collapsed", "amount", d)
		return nil
	}
	out := &Chain{segs: path, closed: c.closed, width: c.width}
	if c.closed && checkClosed(path) != nil {
		Logger().Debug("offset side collapsed", "amount", d)
		return nil
	}
	return out
}

// join connects the offsets of two consecutive segments meeting at a
// vertex. It returns false if a corner fill can't be built within maxError.
func (b *pathBuilder) join(in, out Segment, pin, pout offsetPiece, d float64, corners CornerStrategy, maxError float64) bool {
	v := in.P1
	from, to := pin.seg.P1, pout.seg.P0
	if from == to {
		return true
	}
	if pin.collapsed || pout.collapsed {
		b.lineTo(v)
		b.lineTo(to)
		return true
	}
	_, tin := in.Tangents()
	tout, _ := out.Tangents()
	cross := tin.Cross(tout)
	dot := tin.Dot(tout)
	if from.Distance(to) <= 2 {
		// Tangent continuous, apart from rounding.
		b.lineTo(to)
		return true
	}
	const parallel = 1e-9
	convex := cross*d < 0 || (math.Abs(cross) < parallel && dot < 0)
	if !convex {
		// Route through the original vertex. The resulting loop lies closer
		// to the chain than the offset distance and is trimmed later.
		b.lineTo(v)
		b.lineTo(to)
		return true
	}

	ad := math.Abs(d)
	phi := math.Atan2(math.Abs(cross), dot)
	acute := phi > math.Pi/2
	var round, chamfer bool
	switch corners {
	case RoundAllCorners:
		round = true
	case ChamferAllCorners:
		chamfer = true
	case RoundAcuteCorners:
		round = acute
	case ChamferAcuteCorners:
		chamfer = acute
	}

	vv := v.Vec()
	switch {
	case round:
		bis := from.Vec().Sub(vv).Normalize().Add(to.Vec().Sub(vv).Normalize())
		if bis.Hypot() < parallel {
			bis = tin
		}
		if arc, dev := cornerArc(from, to, vv, ad, bis.Normalize()); dev <= maxError {
			b.segTo(arc.Seg())
			return true
		}
		// The corner is too small for an arc on the grid.
		if ad*(1/math.Cos(phi/4)-1)+roundingSlack > maxError {
			return false
		}
		b.chamfer(from, to, tin, tout, ad, phi)
	case chamfer || phi > math.Pi-1e-3:
		b.chamfer(from, to, tin, tout, ad, phi)
	default:
		k := ad * math.Tan(phi/2)
		b.lineTo(from.Vec().Add(tin.Mul(k)).Round())
		b.lineTo(to)
	}
	return true
}

// cornerArc returns the arc from from to to that best follows the circle of
// radius r about center, bulging in direction dir, and its largest distance
// from that circle. The arc's middle point is the best of the grid points
// around the ideal one.
func cornerArc(from, to Point, center Vec2, r float64, dir Vec2) (Arc, float64) {
	base := center.Add(dir.Mul(r)).Round()
	var best Arc
	bestDev := math.Inf(1)
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			a := Arc{from, base.Add(Pt(dx, dy)), to}
			if !a.IsValid() {
				continue
			}
			if dev := circleDeviation(a, center, r); dev < bestDev {
				best, bestDev = a, dev
			}
		}
	}
	return best, bestDev
}

// circleDeviation returns the largest distance between a and the circle of
// radius r about center.
func circleDeviation(a Arc, center Vec2, r float64) float64 {
	dev := max(math.Abs(a.Start.Vec().Distance(center)-r), math.Abs(a.End.Vec().Distance(center)-r))
	// On a's circle, the distance to center is extremal on the line
	// through both centers.
	c := a.Center()
	off := c.Sub(center)
	e := off.Hypot()
	if e == 0 {
		return max(dev, math.Abs(a.Radius()-r))
	}
	u := off.Mul(1 / e)
	for _, p := range [2]Vec2{c.Add(u.Mul(a.Radius())), c.Sub(u.Mul(a.Radius()))} {
		if a.ContainsAngle(p) {
			dev = max(dev, math.Abs(p.Distance(center)-r))
		}
	}
	return dev
}

// chamfer fills a convex corner with a line tangent to the circle of radius
// ad about the vertex, cutting the corner symmetrically.
func (b *pathBuilder) chamfer(from, to Point, tin, tout Vec2, ad, phi float64) {
	k := ad * math.Tan(phi/4)
	b.lineTo(from.Vec().Add(tin.Mul(k)).Round())
	b.lineTo(to.Vec().Sub(tout.Mul(k)).Round())
	b.lineTo(to)
}

// crossing is a point where a path meets itself, on segments i < j.
type crossing struct {
	i, j   int
	ti, tj float64
	p      Point
}

// sharedEnds returns the end points that segments i < j of a path share by
// being consecutive.
func sharedEnds(path []Segment, closed bool, i, j int) (shared [2]Point, n int) {
	if j == i+1 {
		shared[n] = path[i].P1
		n++
	}
	if closed && i == 0 && j == len(path)-1 {
		shared[n] = path[0].P0
		n++
	}
	return shared, n
}

func findCrossings(path []Segment, closed bool) []crossing {
	boxes := make([]Rect, len(path))
	for i, s := range path {
		boxes[i] = s.BoundingBox()
	}
	var out []crossing
	for i := range path {
		for j := i + 1; j < len(path); j++ {
			if !boxes[i].Intersects(boxes[j]) {
				continue
			}
			shared, ns := sharedEnds(path, closed, i, j)
			xs, n := path[i].Intersect(path[j])
			for _, x := range xs[:n] {
				if slices.Contains(shared[:ns], x.P) {
					continue
				}
				out = append(out, crossing{i, j, x.T0, x.T1, x.P})
			}
		}
	}
	return out
}

// subsegment returns the part of s between parameters t0 and t1, with the
// given end points.
func subsegment(s Segment, t0, t1 float64, p0, p1 Point) Segment {
	if s.IsArc() {
		a := Arc{p0, s.Eval((t0 + t1) / 2).Round(), p1}
		if a.IsValid() {
			return a.Seg()
		}
	}
	return Line{p0, p1}.Seg()
}

// splitPath cuts a path at a crossing into the loop between the two visits
// of the crossing point and the remainder.
func splitPath(path []Segment, closed bool, x crossing) (loop, rest []Segment) {
	keep := func(dst []Segment, s Segment) []Segment {
		if !s.IsArc() && s.P0 == s.P1 {
			return dst
		}
		return append(dst, s)
	}
	si, sj := path[x.i], path[x.j]
	head := subsegment(si, 0, x.ti, si.P0, x.p)
	tail := subsegment(sj, x.tj, 1, x.p, sj.P1)

	loop = keep(loop, subsegment(si, x.ti, 1, x.p, si.P1))
	loop = append(loop, path[x.i+1:x.j]...)
	loop = keep(loop, subsegment(sj, 0, x.tj, sj.P0, x.p))

	if closed {
		rest = keep(rest, tail)
		rest = append(rest, path[x.j+1:]...)
		rest = append(rest, path[:x.i]...)
		rest = keep(rest, head)
	} else {
		rest = append(rest, path[:x.i]...)
		rest = keep(rest, head)
		rest = keep(rest, tail)
		rest = append(rest, path[x.j+1:]...)
	}
	return loop, rest
}

// tooClose reports whether any part of path comes closer to orig than
// limit, probing the middle of every segment.
func tooClose(path []Segment, orig *Chain, limit float64) bool {
	if len(path) == 0 {
		return true
	}
	for _, s := range path {
		if orig.distanceVec(s.Eval(0.5)) < limit {
			return true
		}
	}
	return false
}

// trimOffset removes the loops of a raw offset path that come closer to
// orig than the offset distance ad. Crossings are resolved smallest loop
// first, so that local overlaps at corners are removed before the global
// shape is judged. It returns nil if nothing valid remains.
func trimOffset(path []Segment, closed bool, orig *Chain, ad float64) []Segment {
	eps := min(max(2, ad*1e-6), ad/2)
	limit := ad - eps
	accepted := map[Point]bool{}
	for range 4*len(path) + 16 {
		xs := slices.DeleteFunc(findCrossings(path, closed), func(x crossing) bool {
			return accepted[x.p]
		})
		if len(xs) == 0 {
			break
		}
		span := func(x crossing) int {
			n := x.j - x.i
			if closed {
				n = min(n, len(path)-n)
			}
			return n
		}
		x := slices.MinFunc(xs, func(a, b crossing) int { return span(a) - span(b) })
		small, large := splitPath(path, closed, x)
		if closed && len(large) < len(small) {
			small, large = large, small
		}
		switch {
		case tooClose(small, orig, limit):
			path = large
		case closed && tooClose(large, orig, limit):
			path = small
		default:
			accepted[x.p] = true
		}
	}
	if tooClose(path, orig, limit) {
		return nil
	}
	return path
}
