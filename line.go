package shape

import "math"

// MaxCoord bounds the magnitude of coordinates for which the integer
// predicates used by intersection tests are exact. Differences of two
// coordinates within ±MaxCoord fit in 31 bits, so the cross products of such
// differences can't overflow int64.
const MaxCoord = 1 << 30

// Line represents a straight line segment between two points.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// Eval returns the position at parameter t, where t = 0 is the start point
// and t = 1 is the end point.
func (l Line) Eval(t float64) Vec2 {
	return l.P0.Vec().Lerp(l.P1.Vec(), t)
}

func (l Line) Reversed() Line {
	return Line{l.P1, l.P0}
}

func (l Line) Translate(v Point) Line {
	return Line{
		P0: l.P0.Add(v),
		P1: l.P1.Add(v),
	}
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Tangents() (Vec2, Vec2) {
	d := l.P1.Sub(l.P0).Vec()
	return d, d
}

// Nearest returns the squared distance from pt to the line and the parameter
// of the nearest position on it.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0).Vec()
	v := pt.Sub(l.P0).Vec()
	dotp := d.Dot(v)
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return v.Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Vec().Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Vec().Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

// NearestPoint returns the point on the line closest to pt.
func (l Line) NearestPoint(pt Point) Point {
	_, t := l.Nearest(pt)
	switch t {
	case 0:
		return l.P0
	case 1:
		return l.P1
	default:
		return l.Eval(t).Round()
	}
}

// Distance returns the distance between pt and the line.
func (l Line) Distance(pt Point) float64 {
	d, _ := l.Nearest(pt)
	return math.Sqrt(d)
}

// LineDistance returns the minimum distance between two lines, which is zero
// if they intersect.
func (l Line) LineDistance(o Line) float64 {
	if _, n := l.IntersectLine(o); n > 0 {
		return 0
	}
	return min(
		l.Distance(o.P0),
		l.Distance(o.P1),
		o.Distance(l.P0),
		o.Distance(l.P1),
	)
}

// Side returns +1 if pt lies to the left of the line's direction, −1 if it
// lies to the right and 0 if it is collinear.
func (l Line) Side(pt Point) int {
	c := crossInt(l.P1.Sub(l.P0), pt.Sub(l.P0))
	switch {
	case c > 0:
		return 1
	case c < 0:
		return -1
	default:
		return 0
	}
}

// Contains reports whether pt lies exactly on the line.
func (l Line) Contains(pt Point) bool {
	if l.Side(pt) != 0 {
		return false
	}
	return pt.X >= min(l.P0.X, l.P1.X) && pt.X <= max(l.P0.X, l.P1.X) &&
		pt.Y >= min(l.P0.Y, l.P1.Y) && pt.Y <= max(l.P0.Y, l.P1.Y)
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross.
func (l Line) CrossingPoint(o Line) (Vec2, bool) {
	ab := l.P1.Sub(l.P0).Vec()
	cd := o.P1.Sub(o.P0).Vec()
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Vec2{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0).Vec()) / pcd
	return o.P0.Vec().Add(cd.Mul(h)), true
}

// SegmentIntersection describes one point shared by two segments.
type SegmentIntersection struct {
	P Point
	// Parameters of P on the receiver and the operand.
	T0, T1 float64
	// Colinear is set for the end points of an overlapping stretch.
	Colinear bool
}

// IntersectLine returns the points shared by l and o. Crossing lines share
// one point; colinear lines share either a single touching point or the two
// end points of their overlap, which are flagged as Colinear.
//
// The topological decisions are exact for coordinates within ±[MaxCoord].
func (l Line) IntersectLine(o Line) ([2]SegmentIntersection, int) {
	var out [2]SegmentIntersection
	d1 := l.P1.Sub(l.P0)
	d2 := o.P1.Sub(o.P0)
	qp := o.P0.Sub(l.P0)

	if d1 == (Point{}) {
		if o.Contains(l.P0) {
			_, u := o.Nearest(l.P0)
			out[0] = SegmentIntersection{P: l.P0, T0: 0, T1: u}
			return out, 1
		}
		return out, 0
	}
	if d2 == (Point{}) {
		if l.Contains(o.P0) {
			_, t := l.Nearest(o.P0)
			out[0] = SegmentIntersection{P: o.P0, T0: t, T1: 0}
			return out, 1
		}
		return out, 0
	}

	den := crossInt(d1, d2)
	if den == 0 {
		if crossInt(qp, d1) != 0 {
			return out, 0
		}
		// Colinear: project o onto l.
		dd := float64(dotInt(d1, d1))
		ta := float64(dotInt(qp, d1)) / dd
		tb := float64(dotInt(o.P1.Sub(l.P0), d1)) / dd
		lo := max(0, min(ta, tb))
		hi := min(1, max(ta, tb))
		if lo > hi {
			return out, 0
		}
		param := func(t float64) (Point, float64) {
			var p Point
			switch t {
			case 0:
				p = l.P0
			case 1:
				p = l.P1
			case ta:
				p = o.P0
			case tb:
				p = o.P1
			default:
				p = l.Eval(t).Round()
			}
			_, u := o.Nearest(p)
			return p, u
		}
		p, u := param(lo)
		if lo == hi {
			out[0] = SegmentIntersection{P: p, T0: lo, T1: u}
			return out, 1
		}
		out[0] = SegmentIntersection{P: p, T0: lo, T1: u, Colinear: true}
		p, u = param(hi)
		out[1] = SegmentIntersection{P: p, T0: hi, T1: u, Colinear: true}
		return out, 2
	}

	numT := crossInt(qp, d2)
	numU := crossInt(qp, d1)
	if den < 0 {
		den, numT, numU = -den, -numT, -numU
	}
	if numT < 0 || numT > den || numU < 0 || numU > den {
		return out, 0
	}
	t := float64(numT) / float64(den)
	u := float64(numU) / float64(den)
	var p Point
	switch {
	case numT == 0:
		p = l.P0
	case numT == den:
		p = l.P1
	case numU == 0:
		p = o.P0
	case numU == den:
		p = o.P1
	default:
		p = l.Eval(t).Round()
	}
	out[0] = SegmentIntersection{P: p, T0: t, T1: u}
	return out, 1
}

func crossInt(a, b Point) int64 {
	return a.X*b.Y - a.Y*b.X
}

func dotInt(a, b Point) int64 {
	return a.X*b.X + a.Y*b.Y
}
