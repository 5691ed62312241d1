package shape

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// mustClosed returns a closed chain through pts, failing the test if it
// can't be built.
func mustClosed(t *testing.T, pts ...Point) *Chain {
	t.Helper()
	c, err := NewClosedChain(pts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// square returns the closed, counter-clockwise square with corner (x, y)
// and side length size.
func square(t *testing.T, x, y, size int64) *Chain {
	t.Helper()
	return mustClosed(t, Pt(x, y), Pt(x+size, y), Pt(x+size, y+size), Pt(x, y+size))
}

// quarterArc is the counter-clockwise quarter circle of radius 1000 about
// the origin, from the positive x axis to the positive y axis. All three of
// its points lie exactly on the circle.
var quarterArc = Arc{Pt(1000, 0), Pt(600, 800), Pt(0, 1000)}

// halfDisc returns the closed chain bounded by the diameter from (0, 0) to
// (2000, 0) and the upper half of the circle of radius 1000 about
// (1000, 0).
func halfDisc(t *testing.T) *Chain {
	t.Helper()
	c := NewChain(Pt(0, 0), Pt(2000, 0))
	if err := c.AppendArc(Arc{Pt(2000, 0), Pt(1000, 1000), Pt(0, 0)}); err != nil {
		t.Fatal(err)
	}
	if err := c.SetClosed(true); err != nil {
		t.Fatal(err)
	}
	return c
}

// disc returns a closed chain of two arcs forming the circle of radius r
// about the origin.
func disc(t *testing.T, r int64) *Chain {
	t.Helper()
	c := &Chain{}
	if err := c.AppendArc(Arc{Pt(r, 0), Pt(0, r), Pt(-r, 0)}); err != nil {
		t.Fatal(err)
	}
	if err := c.AppendArc(Arc{Pt(-r, 0), Pt(0, -r), Pt(r, 0)}); err != nil {
		t.Fatal(err)
	}
	if err := c.SetClosed(true); err != nil {
		t.Fatal(err)
	}
	return c
}

// checkContinuity fails the test if consecutive segments of c don't share
// their end points.
func checkContinuity(t *testing.T, c *Chain) {
	t.Helper()
	n := c.SegmentCount()
	for i := range n {
		if i == n-1 && !c.IsClosed() {
			break
		}
		s, _ := c.Segment(i)
		next, _ := c.Segment((i + 1) % n)
		if s.P1 != next.P0 {
			t.Errorf("segment %d ends at %v but segment %d starts at %v", i, s.P1, (i+1)%n, next.P0)
		}
	}
}

// polylineDeviation returns the largest distance from positions on a to the
// polyline pts, sampling the arc densely.
func polylineDeviation(a Arc, pts []Point) float64 {
	const samples = 2000
	var worst float64
	for k := range samples + 1 {
		p := a.Eval(float64(k) / samples)
		best := -1.0
		for i := 1; i < len(pts); i++ {
			d, _ := Line{pts[i-1], pts[i]}.Seg().nearestVec(p)
			if best < 0 || d < best {
				best = d
			}
		}
		worst = max(worst, best)
	}
	return worst
}
