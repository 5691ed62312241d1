package shape

import (
	"fmt"
	"math"
)

// Arc is a circular arc defined by three points on its carrier circle: the
// start point, a point somewhere strictly between the ends, and the end
// point. The three points fix the center, the radius and the direction of
// travel.
//
// The sweep of an arc is signed: positive sweeps are counter-clockwise in a
// y-up coordinate system (clockwise when y points down).
type Arc struct {
	Start Point
	Mid   Point
	End   Point
}

// roundingSlack is the largest distance between a position and its nearest
// integer grid point.
const roundingSlack = math.Sqrt2 / 2

// maxArcSegments bounds the number of lines an arc may be flattened into.
const maxArcSegments = 1 << 20

// DefaultMaxError is a default flattening tolerance, in internal units.
const DefaultMaxError = 5000

// NewArc returns the arc through start, mid and end. It fails with
// [ErrMalformedArc] if the three points are collinear or coincide, as no
// unique arc passes through them.
func NewArc(start, mid, end Point) (Arc, error) {
	a := Arc{start, mid, end}
	if !a.IsValid() {
		return Arc{}, fmt.Errorf("arc %v %v %v: %w", start, mid, end, ErrMalformedArc)
	}
	return a, nil
}

// NewArcFromCenter returns the arc around center that starts at start and
// sweeps by sweep radians.
func NewArcFromCenter(center Point, start Point, sweep float64) (Arc, error) {
	if start == center || sweep == 0 || math.Abs(sweep) >= 2*math.Pi {
		return Arc{}, fmt.Errorf("arc around %v from %v by %g: %w", center, start, sweep, ErrMalformedArc)
	}
	c := center.Vec()
	v := start.Vec().Sub(c)
	mid := c.Add(v.Rotate(sweep / 2)).Round()
	end := c.Add(v.Rotate(sweep)).Round()
	return NewArc(start, mid, end)
}

// NewArcFromChord returns the arc from start to end with the given signed
// sweep.
func NewArcFromChord(start, end Point, sweep float64) (Arc, error) {
	if start == end || sweep == 0 || math.Abs(sweep) >= 2*math.Pi {
		return Arc{}, fmt.Errorf("arc from %v to %v by %g: %w", start, end, sweep, ErrMalformedArc)
	}
	s := start.Vec()
	e := end.Vec()
	chord := e.Sub(s)
	half := math.Abs(sweep) / 2
	r := chord.Hypot() / (2 * math.Sin(half))
	left := chord.Normalize().Turn90()
	// For counter-clockwise travel the center lies to the left of the chord
	// while the arc is shorter than a half circle.
	c := s.Lerp(e, 0.5).Add(left.Mul(sign(sweep) * r * math.Cos(half)))
	mid := c.Add(s.Sub(c).Rotate(sweep / 2)).Round()
	return NewArc(start, mid, end)
}

// IsValid reports whether the three defining points describe a unique arc.
func (a Arc) IsValid() bool {
	return crossInt(a.Mid.Sub(a.Start), a.End.Sub(a.Start)) != 0
}

func (a Arc) String() string {
	return fmt.Sprintf("arc(%v %v %v)", a.Start, a.Mid, a.End)
}

// Center returns the center of the carrier circle.
func (a Arc) Center() Vec2 {
	// Circumcenter of the three points, computed relative to Start to keep
	// the magnitudes small.
	b := a.Mid.Sub(a.Start).Vec()
	c := a.End.Sub(a.Start).Vec()
	d := 2 * b.Cross(c)
	if d == 0 {
		return a.Start.Vec().Lerp(a.End.Vec(), 0.5)
	}
	b2 := b.Hypot2()
	c2 := c.Hypot2()
	ux := (c.Y*b2 - b.Y*c2) / d
	uy := (b.X*c2 - c.X*b2) / d
	return a.Start.Vec().Add(Vec(ux, uy))
}

// Radius returns the radius of the carrier circle.
func (a Arc) Radius() float64 {
	return a.Center().Distance(a.Start.Vec())
}

// Circle returns the carrier circle.
func (a Arc) Circle() Circle {
	c := a.Center()
	return Circle{Center: c, Radius: c.Distance(a.Start.Vec())}
}

// StartAngle returns the angle of the start point as seen from the center.
func (a Arc) StartAngle() float64 {
	return a.Start.Vec().Sub(a.Center()).Angle()
}

// EndAngle returns the angle of the end point as seen from the center.
func (a Arc) EndAngle() float64 {
	return a.End.Vec().Sub(a.Center()).Angle()
}

// IsClockwise reports whether the arc has a negative sweep.
func (a Arc) IsClockwise() bool {
	return crossInt(a.Mid.Sub(a.Start), a.End.Sub(a.Start)) < 0
}

// Sweep returns the signed central angle of the arc in radians, in
// (−2π, 2π).
func (a Arc) Sweep() float64 {
	c := a.Center()
	s := a.Start.Vec().Sub(c).Angle()
	e := a.End.Vec().Sub(c).Angle()
	if a.IsClockwise() {
		return -normalizeAngle(s - e)
	}
	return normalizeAngle(e - s)
}

// Length returns the arc length.
func (a Arc) Length() float64 {
	return a.Radius() * math.Abs(a.Sweep())
}

// Eval returns the position at parameter t ∈ [0, 1], measured by angle.
func (a Arc) Eval(t float64) Vec2 {
	switch t {
	case 0:
		return a.Start.Vec()
	case 1:
		return a.End.Vec()
	}
	c := a.Center()
	return c.Add(a.Start.Vec().Sub(c).Rotate(a.Sweep() * t))
}

// EvalPoint is like Eval but returns the nearest grid point, using the exact
// end points for t = 0 and t = 1.
func (a Arc) EvalPoint(t float64) Point {
	switch t {
	case 0:
		return a.Start
	case 1:
		return a.End
	}
	return a.Eval(t).Round()
}

// Param returns the parameter of the direction of pt as seen from the
// center, measured from the start in the direction of travel. The result is
// in [0, 2π/|sweep|); values above 1 lie outside the arc.
func (a Arc) Param(pt Vec2) float64 {
	c := a.Center()
	sweep := a.Sweep()
	th := pt.Sub(c).Angle() - a.Start.Vec().Sub(c).Angle()
	if sweep < 0 {
		th = -th
	}
	return normalizeAngle(th) / math.Abs(sweep)
}

// clampedParam is Param for positions known to lie on the arc, folding
// positions just outside either end onto that end.
func (a Arc) clampedParam(pt Vec2) float64 {
	t := a.Param(pt)
	if t <= 1 {
		return t
	}
	if t < 1+1e-9 {
		return 1
	}
	return 0
}

// ContainsAngle reports whether the ray from the center through pt passes
// through the arc.
func (a Arc) ContainsAngle(pt Vec2) bool {
	const eps = 1e-12
	t := a.Param(pt)
	return t <= 1+eps || t >= 2*math.Pi/math.Abs(a.Sweep())-eps
}

// Tangents returns the unit tangents at the start and end, in the direction
// of travel.
func (a Arc) Tangents() (Vec2, Vec2) {
	c := a.Center()
	t0 := a.Start.Vec().Sub(c).Normalize().Turn90()
	t1 := a.End.Vec().Sub(c).Normalize().Turn90()
	if a.IsClockwise() {
		return t0.Negate(), t1.Negate()
	}
	return t0, t1
}

// Nearest returns the squared distance from pt to the arc and the parameter
// of the nearest position on it.
func (a Arc) Nearest(pt Point) (distSq, t float64) {
	p := pt.Vec()
	c := a.Center()
	if p.Sub(c).Hypot2() > 0 && a.ContainsAngle(p) {
		t = a.clampedParam(p)
		r := c.Distance(a.Start.Vec())
		d := p.Distance(c) - r
		return d * d, t
	}
	d0 := pt.DistanceSquared(a.Start)
	d1 := pt.DistanceSquared(a.End)
	if d1 < d0 {
		return d1, 1
	}
	return d0, 0
}

// NearestPoint returns the point on the arc closest to pt.
func (a Arc) NearestPoint(pt Point) Point {
	_, t := a.Nearest(pt)
	return a.EvalPoint(t)
}

// Distance returns the distance between pt and the arc.
func (a Arc) Distance(pt Point) float64 {
	d, _ := a.Nearest(pt)
	return math.Sqrt(d)
}

// Contains reports whether pt lies on the arc within tol.
func (a Arc) Contains(pt Vec2, tol float64) bool {
	c := a.Circle()
	if math.Abs(pt.Distance(c.Center)-c.Radius) > tol {
		return false
	}
	return a.ContainsAngle(pt) ||
		pt.Distance(a.Start.Vec()) <= tol ||
		pt.Distance(a.End.Vec()) <= tol
}

// BoundingBox returns the smallest grid-aligned rectangle enclosing the arc.
func (a Arc) BoundingBox() Rect {
	bbox := NewRectFromPoints(a.Start, a.End)
	c := a.Circle()
	for _, dir := range [4]Vec2{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
		ext := c.Center.Add(dir.Mul(c.Radius))
		if !a.ContainsAngle(ext) {
			continue
		}
		bbox = bbox.Union(Rect{
			X0: int64(math.Floor(ext.X)),
			Y0: int64(math.Floor(ext.Y)),
			X1: int64(math.Ceil(ext.X)),
			Y1: int64(math.Ceil(ext.Y)),
		})
	}
	return bbox
}

// Reversed returns the same arc traveled in the opposite direction.
func (a Arc) Reversed() Arc {
	return Arc{a.End, a.Mid, a.Start}
}

func (a Arc) Translate(v Point) Arc {
	return Arc{a.Start.Add(v), a.Mid.Add(v), a.End.Add(v)}
}

// Transform applies aff to the defining points. Reflections flip the
// direction of travel as a matter of course.
func (a Arc) Transform(aff Affine) Arc {
	return Arc{aff.Apply(a.Start), aff.Apply(a.Mid), aff.Apply(a.End)}
}

// Chord returns the line between the arc's end points.
func (a Arc) Chord() Line {
	return Line{a.Start, a.End}
}

// ChordArea returns the signed area enclosed between the arc and its chord.
// It is positive for counter-clockwise arcs. Added to the shoelace term of
// the chord it yields the exact area contribution of the arc.
func (a Arc) ChordArea() float64 {
	r := a.Radius()
	th := a.Sweep()
	return 0.5 * r * r * (th - math.Sin(th))
}

// Subarc returns the part of the arc between parameters t0 and t1. If
// t1 < t0, the result travels in the opposite direction.
func (a Arc) Subarc(t0, t1 float64) Arc {
	return Arc{a.EvalPoint(t0), a.Eval((t0 + t1) / 2).Round(), a.EvalPoint(t1)}
}

// SegmentCount returns the number of lines needed to flatten the arc such
// that no position on the arc is further than maxError from the polyline,
// accounting for the rounding of the vertices to the grid.
func (a Arc) SegmentCount(maxError float64) (int, error) {
	budget := maxError - roundingSlack
	if budget <= 0 {
		return 0, fmt.Errorf("flattening with max error %g: %w", maxError, ErrToleranceUnreachable)
	}
	r := a.Radius()
	// A chord spanning θ deviates from the arc by r·(1 − cos(θ/2)).
	half := math.Acos(max(-1, min(1, 1-budget/r)))
	if half == 0 {
		return 0, fmt.Errorf("flattening radius %g with max error %g: %w", r, maxError, ErrToleranceUnreachable)
	}
	n := math.Ceil(math.Abs(a.Sweep()) / (2 * half))
	if n > maxArcSegments {
		return 0, fmt.Errorf("flattening radius %g with max error %g: %w", r, maxError, ErrToleranceUnreachable)
	}
	return max(1, int(n)), nil
}

// Polyline flattens the arc into a polyline whose maximum deviation from the
// arc is at most maxError. The result starts and ends at the arc's exact end
// points. The result is deterministic for a given arc and tolerance.
func (a Arc) Polyline(maxError float64) ([]Point, error) {
	n, err := a.SegmentCount(maxError)
	if err != nil {
		return nil, err
	}
	pts := make([]Point, 0, n+1)
	for i := range n + 1 {
		pts = append(pts, a.EvalPoint(float64(i)/float64(n)))
	}
	return pts, nil
}

// IntersectLine returns the positions where the arc meets l, together with
// their parameters on the arc and on l.
func (a Arc) IntersectLine(l Line) ([2]SegmentIntersection, int) {
	var out [2]SegmentIntersection
	var n int
	ts, m := a.Circle().IntersectLine(l)
	for _, u := range ts[:m] {
		if u < -tangentEpsilon || u > 1+tangentEpsilon {
			continue
		}
		p := l.Eval(u)
		if !a.ContainsAngle(p) {
			continue
		}
		out[n] = SegmentIntersection{P: snapEndpoints(p, a.Start, a.End, l.P0, l.P1), T0: a.clampedParam(p), T1: u}
		n++
	}
	return out, n
}

// IntersectArc returns the positions where two arcs meet. Arcs on the same
// carrier circle report the end points of their overlap, flagged as
// Colinear.
func (a Arc) IntersectArc(o Arc) ([2]SegmentIntersection, int) {
	var out [2]SegmentIntersection
	var n int
	ca := a.Circle()
	co := o.Circle()
	if ca.Center.Distance(co.Center) < 0.5 && math.Abs(ca.Radius-co.Radius) < 0.5 {
		for _, p := range [4]Point{a.Start, a.End, o.Start, o.End} {
			if n == 2 {
				break
			}
			v := p.Vec()
			if !a.Contains(v, 0.5) || !o.Contains(v, 0.5) {
				continue
			}
			if n == 1 && out[0].P == p {
				continue
			}
			out[n] = SegmentIntersection{P: p, T0: a.clampedParam(v), T1: o.clampedParam(v), Colinear: true}
			n++
		}
		if n == 1 {
			out[0].Colinear = false
		}
		return out, n
	}
	ps, m := ca.IntersectCircle(co)
	for _, p := range ps[:m] {
		if !a.ContainsAngle(p) || !o.ContainsAngle(p) {
			continue
		}
		out[n] = SegmentIntersection{P: snapEndpoints(p, a.Start, a.End, o.Start, o.End), T0: a.clampedParam(p), T1: o.clampedParam(p)}
		n++
	}
	return out, n
}

// snapEndpoints rounds p to the grid, preferring any of the candidate end
// points that p is within rounding distance of.
func snapEndpoints(p Vec2, candidates ...Point) Point {
	for _, c := range candidates {
		if p.Distance(c.Vec()) <= roundingSlack {
			return c
		}
	}
	return p.Round()
}
