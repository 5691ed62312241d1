package shape

import "math"

// Circle is a full circle with a floating point center. It is the carrier of
// an [Arc] and is used for the arc intersection math.
type Circle struct {
	Center Vec2
	Radius float64
}

// tangentEpsilon is the relative slack under which a negative discriminant
// still counts as a tangency.
const tangentEpsilon = 1e-12

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) BoundingBox() Rect {
	r := math.Abs(c.Radius)
	return Rect{
		X0: int64(math.Floor(c.Center.X - r)),
		Y0: int64(math.Floor(c.Center.Y - r)),
		X1: int64(math.Ceil(c.Center.X + r)),
		Y1: int64(math.Ceil(c.Center.Y + r)),
	}
}

// Winding returns 1 if pt lies strictly inside the circle and 0 otherwise.
func (c Circle) Winding(pt Vec2) int {
	if pt.Sub(c.Center).Hypot2() < c.Radius*c.Radius {
		return 1
	} else {
		return 0
	}
}

// NearestPoint returns the position on the circle closest to pt. For a
// point at the center, the position at angle zero is returned.
func (c Circle) NearestPoint(pt Vec2) Vec2 {
	d := pt.Sub(c.Center)
	if d.Hypot2() == 0 {
		return c.Center.Add(Vec(c.Radius, 0))
	}
	return c.Center.Add(d.Normalize().Mul(c.Radius))
}

// IntersectLine returns the parameters along l at which the infinite
// extension of l meets the circle. Parameters are sorted.
func (c Circle) IntersectLine(l Line) ([2]float64, int) {
	p0 := l.P0.Vec()
	d := l.P1.Vec().Sub(p0)
	f := p0.Sub(c.Center)
	a := d.Dot(d)
	if a == 0 {
		return [2]float64{}, 0
	}
	b := 2 * d.Dot(f)
	cc := f.Dot(f) - c.Radius*c.Radius
	ts, n := SolveQuadratic(cc, b, a)
	if n == 0 {
		// Near-tangent lines lose their root to rounding; recover the
		// touching point from the foot of the perpendicular.
		t := -b / (2 * a)
		foot := p0.Add(d.Mul(t))
		h := foot.Distance(c.Center)
		if h-c.Radius <= tangentEpsilon*max(1, c.Radius*c.Radius) {
			return [2]float64{t}, 1
		}
	}
	return ts, n
}

// IntersectCircle returns the points shared by two circles. Concentric
// circles report no points, even when they coincide.
func (c Circle) IntersectCircle(o Circle) ([2]Vec2, int) {
	var out [2]Vec2
	dv := o.Center.Sub(c.Center)
	d := dv.Hypot()
	if d == 0 {
		return out, 0
	}
	r1, r2 := c.Radius, o.Radius
	slack := tangentEpsilon * max(1, r1+r2)
	if d > r1+r2+slack || d < math.Abs(r1-r2)-slack {
		return out, 0
	}
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h2 := r1*r1 - a*a
	u := dv.Mul(1 / d)
	base := c.Center.Add(u.Mul(a))
	if h2 <= slack*slack {
		out[0] = base
		return out, 1
	}
	h := math.Sqrt(h2)
	out[0] = base.Add(u.Turn90().Mul(h))
	out[1] = base.Sub(u.Turn90().Mul(h))
	return out, 2
}
