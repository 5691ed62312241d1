package shape

import "math"

// Collision describes the closest approach found by a collision test.
type Collision struct {
	// Distance between the operand and the chain. Zero if they touch or the
	// operand lies inside a closed chain.
	Distance float64
	// Location on the chain where the closest approach happens.
	Location Point
}

func collides(d float64, clearance int64) bool {
	return d == 0 || d < float64(clearance)
}

// Collide reports whether pt is closer than clearance to the chain, or
// touches it. For closed chains, points inside the chain collide with a
// distance of zero. Arcs are tested exactly.
func (c *Chain) Collide(pt Point, clearance int64) (Collision, bool) {
	bbox, ok := c.BBox()
	if !ok || !bbox.Inflate(max(clearance, 0)).Contains(pt) {
		return Collision{}, false
	}
	if c.closed && c.Winding(pt) != 0 {
		return Collision{Distance: 0, Location: pt}, true
	}
	if len(c.segs) == 0 {
		d := pt.Distance(c.first)
		return Collision{Distance: d, Location: c.first}, collides(d, clearance)
	}
	i, t, _ := c.nearest(pt, true)
	s := c.segs[i]
	d := pt.Vec().Distance(s.Eval(t))
	if !collides(d, clearance) {
		return Collision{}, false
	}
	return Collision{Distance: d, Location: s.EvalPoint(t)}, true
}

// CollideSegment reports whether seg comes closer than clearance to the
// chain, or touches it. For closed chains, a segment starting inside the
// chain collides with a distance of zero.
func (c *Chain) CollideSegment(seg Segment, clearance int64) (Collision, bool) {
	bbox, ok := c.BBox()
	if !ok || !bbox.Inflate(max(clearance, 0)).Intersects(seg.BoundingBox()) {
		return Collision{}, false
	}
	if c.closed && c.Winding(seg.P0) != 0 {
		return Collision{Distance: 0, Location: seg.P0}, true
	}
	if len(c.segs) == 0 {
		d := seg.Distance(c.first)
		return Collision{Distance: d, Location: c.first}, collides(d, clearance)
	}
	best := math.Inf(1)
	var loc Vec2
	for _, s := range c.segs {
		if !s.BoundingBox().Inflate(max(clearance, 0)).Intersects(seg.BoundingBox()) {
			continue
		}
		d, p := s.closest(seg)
		if d < best {
			best, loc = d, p
		}
		if d == 0 {
			break
		}
	}
	if !collides(best, clearance) {
		return Collision{}, false
	}
	return Collision{Distance: best, Location: loc.Round()}, true
}

// HitTest reports whether pt lies within accuracy of the chain's outline.
func (c *Chain) HitTest(pt Point, accuracy int64) bool {
	bbox, ok := c.BBox()
	if !ok || !bbox.Inflate(max(accuracy, 0)).Contains(pt) {
		return false
	}
	return c.distance(pt) <= float64(accuracy)
}

// HitTestRect tests the chain against r. With contained set, it reports
// whether the chain lies entirely inside r; otherwise whether the outline
// touches r at all.
func (c *Chain) HitTestRect(r Rect, contained bool) bool {
	bbox, ok := c.BBox()
	if !ok {
		return false
	}
	if contained {
		return r.ContainsRect(bbox)
	}
	if !r.Intersects(bbox) {
		return false
	}
	if r.ContainsRect(bbox) || r.Contains(c.pt(0)) {
		return true
	}
	edges := r.Edges()
	for _, s := range c.segs {
		if !r.Intersects(s.BoundingBox()) {
			continue
		}
		if r.Contains(s.P1) {
			return true
		}
		for _, e := range edges {
			if _, n := s.Intersect(e.Seg()); n > 0 {
				return true
			}
		}
	}
	return false
}

// subtendedAngle returns the signed angle by which the direction from pt
// turns while traveling along s.
func (s Segment) subtendedAngle(pt Point) float64 {
	a := s.P0.Sub(pt)
	b := s.P1.Sub(pt)
	th := math.Atan2(a.Cross(b), a.Dot(b))
	if !s.IsArc() {
		return th
	}
	arc := s.Arc()
	c := arc.Circle()
	// The arc and its chord enclose a circular segment on the side of the
	// chord away from which the arc turns. Seen from inside that region,
	// the arc sweeps a full turn more than the chord.
	side := s.Line().Side(pt)
	if pt.Vec().Distance(c.Center) < c.Radius {
		if arc.IsClockwise() && side > 0 {
			th -= 2 * math.Pi
		} else if !arc.IsClockwise() && side < 0 {
			th += 2 * math.Pi
		}
	}
	return th
}

// Winding returns the winding number of the chain around pt. Open chains
// are treated as if closed by a line from the last to the first point. The
// result is unspecified for points on the outline.
func (c *Chain) Winding(pt Point) int {
	if len(c.segs) == 0 {
		return 0
	}
	var total float64
	for _, s := range c.segs {
		total += s.subtendedAngle(pt)
	}
	if !c.closed {
		total += Line{c.segs[len(c.segs)-1].P1, c.segs[0].P0}.Seg().subtendedAngle(pt)
	}
	return int(math.Round(total / (2 * math.Pi)))
}

// Contains reports whether pt lies inside the closed chain. Points within
// accuracy of the outline, including points on it, count as inside.
func (c *Chain) Contains(pt Point, accuracy int64) bool {
	bbox, ok := c.BBox()
	if !ok || !c.closed || !bbox.Inflate(max(accuracy, 0)).Contains(pt) {
		return false
	}
	if c.distance(pt) <= float64(accuracy) {
		return true
	}
	return c.Winding(pt) != 0
}
