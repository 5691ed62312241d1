package shape

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLineLength(t *testing.T) {
	l := Line{Pt(0, 0), Pt(3, 4)}
	if got := l.Length(); got != 5 {
		t.Errorf("got length %v, want 5", got)
	}
	diff(t, l.BoundingBox(), Rect{0, 0, 3, 4})
	diff(t, l.Reversed(), Line{Pt(3, 4), Pt(0, 0)})
}

func TestLineNearest(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	tests := []struct {
		pt   Point
		want Point
		dist float64
	}{
		{Pt(5, 5), Pt(5, 0), 5},
		{Pt(-3, 4), Pt(0, 0), 5},
		{Pt(13, -4), Pt(10, 0), 5},
		{Pt(7, 0), Pt(7, 0), 0},
	}
	for _, tt := range tests {
		if got := l.NearestPoint(tt.pt); got != tt.want {
			t.Errorf("nearest point to %v: got %v, want %v", tt.pt, got, tt.want)
		}
		if got := l.Distance(tt.pt); math.Abs(got-tt.dist) > 1e-12 {
			t.Errorf("distance to %v: got %v, want %v", tt.pt, got, tt.dist)
		}
	}
}

func TestLineSide(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	if s := l.Side(Pt(5, 5)); s != 1 {
		t.Errorf("got side %d, want 1", s)
	}
	if s := l.Side(Pt(5, -5)); s != -1 {
		t.Errorf("got side %d, want -1", s)
	}
	if s := l.Side(Pt(20, 0)); s != 0 {
		t.Errorf("got side %d, want 0", s)
	}
	if !l.Contains(Pt(5, 0)) || l.Contains(Pt(11, 0)) || l.Contains(Pt(5, 1)) {
		t.Error("Contains disagrees with the line's extent")
	}
}

func TestCrossingPoint(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 10)}
	o := Line{Pt(0, 10), Pt(10, 0)}
	p, ok := l.CrossingPoint(o)
	if !ok {
		t.Fatal("expected lines to cross")
	}
	assertNear(t, p, Vec(5, 5), 1e-9)

	if _, ok := l.CrossingPoint(Line{Pt(0, 1), Pt(10, 11)}); ok {
		t.Error("parallel lines shouldn't cross")
	}
}

func TestIntersectLine(t *testing.T) {
	hLine := Line{Pt(0, 0), Pt(100, 0)}
	vLine := Line{Pt(10, -10), Pt(10, 10)}
	xs, n := hLine.IntersectLine(vLine)
	want := []SegmentIntersection{{P: Pt(10, 0), T0: 0.1, T1: 0.5}}
	diff(t, want, xs[:n], cmpopts.EquateApprox(0, 1e-7))

	vLine = Line{Pt(-10, -10), Pt(-10, 10)}
	if xs, n := hLine.IntersectLine(vLine); n != 0 {
		t.Errorf("expected no intersections, got %v", xs[:n])
	}

	vLine = Line{Pt(10, 10), Pt(10, 20)}
	if xs, n := hLine.IntersectLine(vLine); n != 0 {
		t.Errorf("expected no intersections, got %v", xs[:n])
	}
}

func TestIntersectLineColinear(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}

	xs, n := l.IntersectLine(Line{Pt(5, 0), Pt(15, 0)})
	want := []SegmentIntersection{
		{P: Pt(5, 0), T0: 0.5, T1: 0, Colinear: true},
		{P: Pt(10, 0), T0: 1, T1: 0.5, Colinear: true},
	}
	diff(t, want, xs[:n], cmpopts.EquateApprox(0, 1e-9))

	// Touching end to end is a single ordinary point.
	xs, n = l.IntersectLine(Line{Pt(10, 0), Pt(20, 0)})
	diff(t, []SegmentIntersection{{P: Pt(10, 0), T0: 1, T1: 0}}, xs[:n])

	if xs, n := l.IntersectLine(Line{Pt(11, 0), Pt(20, 0)}); n != 0 {
		t.Errorf("expected no intersections, got %v", xs[:n])
	}
}

func TestIntersectLineEndpoints(t *testing.T) {
	// Intersections at end points report the exact end point, not a
	// rounded position.
	l := Line{Pt(0, 0), Pt(7, 3)}
	xs, n := l.IntersectLine(Line{Pt(7, 3), Pt(20, -11)})
	if n != 1 || xs[0].P != Pt(7, 3) {
		t.Errorf("got %v, want a single intersection at (7, 3)", xs[:n])
	}
}
