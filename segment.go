package shape

import (
	"fmt"
	"math"
)

// SegmentKind discriminates the variants of [Segment].
type SegmentKind uint8

const (
	LineKind SegmentKind = iota
	ArcKind
)

func (k SegmentKind) String() string {
	switch k {
	case LineKind:
		return "line"
	case ArcKind:
		return "arc"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Segment is one element of a [Chain]: either a straight line from P0 to P1,
// or an arc from P0 through Mid to P1. Mid is unused for lines.
//
// Segment is a flat tagged union rather than an interface so that a chain's
// segments live in one contiguous slice.
type Segment struct {
	Kind SegmentKind
	P0   Point
	P1   Point
	Mid  Point
}

// Seg returns l as a segment.
func (l Line) Seg() Segment {
	return Segment{Kind: LineKind, P0: l.P0, P1: l.P1}
}

// Seg returns a as a segment.
func (a Arc) Seg() Segment {
	return Segment{Kind: ArcKind, P0: a.Start, P1: a.End, Mid: a.Mid}
}

func (s Segment) IsArc() bool { return s.Kind == ArcKind }

// Line returns the segment's chord. For line segments, that is the segment
// itself.
func (s Segment) Line() Line {
	return Line{s.P0, s.P1}
}

// Arc returns the arc view of an arc segment.
func (s Segment) Arc() Arc {
	return Arc{s.P0, s.Mid, s.P1}
}

func (s Segment) String() string {
	if s.Kind == ArcKind {
		return s.Arc().String()
	}
	return fmt.Sprintf("line(%v %v)", s.P0, s.P1)
}

func (s Segment) Length() float64 {
	if s.Kind == ArcKind {
		return s.Arc().Length()
	}
	return s.Line().Length()
}

func (s Segment) BoundingBox() Rect {
	if s.Kind == ArcKind {
		return s.Arc().BoundingBox()
	}
	return s.Line().BoundingBox()
}

// Eval returns the position at parameter t ∈ [0, 1]. Arcs are parametrized by
// angle, which is proportional to arc length.
func (s Segment) Eval(t float64) Vec2 {
	if s.Kind == ArcKind {
		return s.Arc().Eval(t)
	}
	return s.Line().Eval(t)
}

// EvalPoint is like Eval but rounds to the grid, returning the exact end
// points for t = 0 and t = 1.
func (s Segment) EvalPoint(t float64) Point {
	switch t {
	case 0:
		return s.P0
	case 1:
		return s.P1
	}
	return s.Eval(t).Round()
}

// Nearest returns the squared distance from pt to the segment and the
// parameter of the nearest position on it.
func (s Segment) Nearest(pt Point) (distSq, t float64) {
	if s.Kind == ArcKind {
		return s.Arc().Nearest(pt)
	}
	return s.Line().Nearest(pt)
}

// NearestPoint returns the point on the segment closest to pt.
func (s Segment) NearestPoint(pt Point) Point {
	_, t := s.Nearest(pt)
	return s.EvalPoint(t)
}

func (s Segment) Distance(pt Point) float64 {
	d, _ := s.Nearest(pt)
	return math.Sqrt(d)
}

// Tangents returns the unit tangents at the start and end, in the direction
// of travel. Zero-length lines have NaN tangents.
func (s Segment) Tangents() (Vec2, Vec2) {
	if s.Kind == ArcKind {
		return s.Arc().Tangents()
	}
	d := s.P1.Sub(s.P0).Vec().Normalize()
	return d, d
}

func (s Segment) Reversed() Segment {
	s.P0, s.P1 = s.P1, s.P0
	return s
}

func (s Segment) Translate(v Point) Segment {
	s.P0 = s.P0.Add(v)
	s.P1 = s.P1.Add(v)
	if s.Kind == ArcKind {
		s.Mid = s.Mid.Add(v)
	}
	return s
}

func (s Segment) Transform(aff Affine) Segment {
	s.P0 = aff.Apply(s.P0)
	s.P1 = aff.Apply(s.P1)
	if s.Kind == ArcKind {
		s.Mid = aff.Apply(s.Mid)
	}
	return s
}

// Subsegment returns the part of the segment between t0 and t1.
func (s Segment) Subsegment(t0, t1 float64) Segment {
	if s.Kind == ArcKind {
		sub := s.Arc().Subarc(t0, t1)
		if sub.IsValid() {
			return sub.Seg()
		}
		return Line{sub.Start, sub.End}.Seg()
	}
	return Line{s.EvalPoint(t0), s.EvalPoint(t1)}.Seg()
}

// withEnds returns the segment with its end points moved to p0 and p1. Arcs
// keep their sweep; an arc whose ends collapse becomes a line.
func (s Segment) withEnds(p0, p1 Point) Segment {
	if s.Kind != ArcKind {
		return Line{p0, p1}.Seg()
	}
	if p0 == s.P0 && p1 == s.P1 {
		return s
	}
	a, err := NewArcFromChord(p0, p1, s.Arc().Sweep())
	if err != nil {
		return Line{p0, p1}.Seg()
	}
	return a.Seg()
}

// signedArea returns the segment's contribution to the signed area of a
// closed chain: the shoelace term of its chord plus, for arcs, the exact
// area between arc and chord.
func (s Segment) signedArea() float64 {
	a := 0.5 * s.P0.Cross(s.P1)
	if s.Kind == ArcKind {
		a += s.Arc().ChordArea()
	}
	return a
}

// Intersect returns the points shared by two segments.
func (s Segment) Intersect(o Segment) ([2]SegmentIntersection, int) {
	switch {
	case s.Kind == LineKind && o.Kind == LineKind:
		return s.Line().IntersectLine(o.Line())
	case s.Kind == ArcKind && o.Kind == LineKind:
		return s.Arc().IntersectLine(o.Line())
	case s.Kind == LineKind && o.Kind == ArcKind:
		xs, n := o.Arc().IntersectLine(s.Line())
		for i := range xs[:n] {
			xs[i].T0, xs[i].T1 = xs[i].T1, xs[i].T0
		}
		return xs, n
	default:
		return s.Arc().IntersectArc(o.Arc())
	}
}

// SegmentDistance returns the exact minimum distance between two segments,
// which is zero if they intersect.
func (s Segment) SegmentDistance(o Segment) float64 {
	d, _ := s.closest(o)
	return d
}

// closest returns the minimum distance between s and o together with the
// position on s where it is attained.
func (s Segment) closest(o Segment) (float64, Vec2) {
	if xs, n := s.Intersect(o); n > 0 {
		return 0, xs[0].P.Vec()
	}
	best := math.Inf(1)
	var loc Vec2
	try := func(d float64, p Vec2) {
		if d < best {
			best, loc = d, p
		}
	}
	onS := func(p Vec2) {
		d, _ := o.nearestVec(p)
		try(d, p)
	}
	onO := func(p Vec2) {
		d, q := s.nearestVec(p)
		try(d, q)
	}
	onS(s.P0.Vec())
	onS(s.P1.Vec())
	onO(o.P0.Vec())
	onO(o.P1.Vec())

	// Apart from the end points, the closest approach involving the interior
	// of an arc lies on a line through the arc's center: perpendicular to
	// the other operand if it is a line, or along the line of centers if it
	// is an arc.
	probe := func(a Arc, dir Vec2, visit func(Vec2)) {
		if dir.IsNaN() {
			return
		}
		c := a.Circle()
		for _, sgn := range [2]float64{1, -1} {
			p := c.Center.Add(dir.Mul(sgn * c.Radius))
			if a.ContainsAngle(p) {
				visit(p)
			}
		}
	}
	normal := func(l Segment) Vec2 {
		return l.P1.Sub(l.P0).Vec().Normalize().Turn90()
	}
	switch {
	case s.Kind == ArcKind && o.Kind == LineKind:
		probe(s.Arc(), normal(o), onS)
	case s.Kind == LineKind && o.Kind == ArcKind:
		probe(o.Arc(), normal(s), onO)
	case s.Kind == ArcKind && o.Kind == ArcKind:
		u := o.Arc().Center().Sub(s.Arc().Center()).Normalize()
		probe(s.Arc(), u, onS)
		probe(o.Arc(), u, onO)
	}
	return best, loc
}

// nearestVec returns the distance from p, which need not lie on the grid,
// to the segment and the nearest position on the segment.
func (s Segment) nearestVec(p Vec2) (float64, Vec2) {
	if s.Kind == ArcKind {
		a := s.Arc()
		c := a.Circle()
		if p.Distance(c.Center) > 0 && a.ContainsAngle(p) {
			q := c.NearestPoint(p)
			return p.Distance(q), q
		}
		p0, p1 := s.P0.Vec(), s.P1.Vec()
		if d0, d1 := p.Distance(p0), p.Distance(p1); d1 < d0 {
			return d1, p1
		} else {
			return d0, p0
		}
	}
	d := s.P1.Vec().Sub(s.P0.Vec())
	dd := d.Hypot2()
	if dd == 0 {
		return p.Distance(s.P0.Vec()), s.P0.Vec()
	}
	t := max(0, min(1, d.Dot(p.Sub(s.P0.Vec()))/dd))
	q := s.P0.Vec().Add(d.Mul(t))
	return p.Distance(q), q
}
