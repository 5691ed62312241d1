package shape

import (
	"math"
	"testing"
)

func TestChainLength(t *testing.T) {
	if l := (&Chain{}).Length(); l != 0 {
		t.Errorf("empty chain has length %v", l)
	}
	if l := square(t, 0, 0, 10).Length(); l != 40 {
		t.Errorf("got length %v, want 40", l)
	}
	want := 2000 + 1000*math.Pi
	if l := halfDisc(t).Length(); math.Abs(l-want) > 1e-6 {
		t.Errorf("got length %v, want %v", l, want)
	}
}

func TestChainArea(t *testing.T) {
	sq := square(t, 0, 0, 10)
	if a := sq.SignedArea(); a != 100 {
		t.Errorf("got signed area %v, want 100", a)
	}
	sq.Reverse()
	if a := sq.SignedArea(); a != -100 {
		t.Errorf("got signed area %v after reversing, want -100", a)
	}
	if a := sq.Area(); a != 100 {
		t.Errorf("got area %v, want 100", a)
	}

	want := math.Pi * 1e6 / 2
	if a := halfDisc(t).SignedArea(); math.Abs(a-want) > 1e-6 {
		t.Errorf("got area %v, want %v", a, want)
	}
	want = math.Pi * 1e6
	if a := disc(t, 1000).Area(); math.Abs(a-want) > 1e-6 {
		t.Errorf("got area %v, want %v", a, want)
	}

	// Open chains are closed implicitly.
	open := NewChain(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	if a := open.SignedArea(); a != 50 {
		t.Errorf("got area %v, want 50", a)
	}
}

func TestChainNearestPoint(t *testing.T) {
	sq := square(t, 0, 0, 10)
	// All four sides are equally close; the lowest segment wins.
	p, ok := sq.NearestPoint(Pt(5, 5), true)
	if !ok {
		t.Fatal("expected a point")
	}
	diff(t, Pt(5, 0), p)
	if i, _ := sq.NearestSegment(Pt(5, 5)); i != 0 {
		t.Errorf("got nearest segment %d, want 0", i)
	}
	if i, _ := sq.NearestSegment(Pt(12, 4)); i != 1 {
		t.Errorf("got nearest segment %d, want 1", i)
	}

	hd := halfDisc(t)
	p, _ = hd.NearestPoint(Pt(1000, 1200), true)
	diff(t, Pt(1000, 1000), p)
	// Without arc interiors, the diameter is closer than the arc's ends.
	p, _ = hd.NearestPoint(Pt(1000, 1200), false)
	diff(t, Pt(1000, 0), p)

	if _, ok := (&Chain{}).NearestPoint(Pt(0, 0), true); ok {
		t.Error("empty chain has no nearest point")
	}
	p, ok = NewChain(Pt(3, 4)).NearestPoint(Pt(0, 0), true)
	if !ok {
		t.Fatal("expected a point")
	}
	diff(t, Pt(3, 4), p)
}

func TestChainPathLength(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	if l, ok := c.PathLength(Pt(10, 4), -1); !ok || l != 14 {
		t.Errorf("got (%v, %t), want (14, true)", l, ok)
	}
	if l, ok := c.PathLength(Pt(10, 4), 0); !ok || l != 10 {
		t.Errorf("got (%v, %t), want (10, true)", l, ok)
	}
	if _, ok := c.PathLength(Pt(10, 4), 2); ok {
		t.Error("expected out of range segment to fail")
	}
}

func TestChainPointAlong(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	tests := []struct {
		l    float64
		want Point
	}{
		{-1, Pt(0, 0)},
		{0, Pt(0, 0)},
		{4, Pt(4, 0)},
		{10, Pt(10, 0)},
		{14, Pt(10, 4)},
		{20, Pt(10, 10)},
		{100, Pt(10, 10)},
	}
	for _, tt := range tests {
		got, ok := c.PointAlong(tt.l)
		if !ok || got != tt.want {
			t.Errorf("PointAlong(%v) = (%v, %t), want %v", tt.l, got, ok, tt.want)
		}
	}
}

func TestChainPointAlongRoundTrip(t *testing.T) {
	c := halfDisc(t)
	for _, l := range []float64{0, 500, 1999, 2500, 3000, 4000, 5000} {
		p, _ := c.PointAlong(l)
		got, ok := c.PathLength(p, -1)
		if !ok {
			t.Fatalf("no path length for %v", p)
		}
		if math.Abs(got-l) > 1 {
			t.Errorf("PathLength(PointAlong(%v)) = %v", l, got)
		}
	}
}

func TestChainFind(t *testing.T) {
	sq := square(t, 0, 0, 10)
	if i, ok := sq.Find(Pt(11, 1), 2); !ok || i != 1 {
		t.Errorf("got (%d, %t), want (1, true)", i, ok)
	}
	if _, ok := sq.Find(Pt(5, 5), 1); ok {
		t.Error("found a point far from all corners")
	}
	if i, ok := sq.FindSegment(Pt(5, 1), 1); !ok || i != 0 {
		t.Errorf("got (%d, %t), want (0, true)", i, ok)
	}
}

func TestChainEdgeContainingPoint(t *testing.T) {
	sq := square(t, 0, 0, 10)
	tests := []struct {
		pt   Point
		acc  float64
		want int
		ok   bool
	}{
		{Pt(10, 5), 0, 1, true},
		// Corners belong to the first segment containing them.
		{Pt(10, 0), 0, 0, true},
		{Pt(0, 5), 0, 3, true},
		{Pt(11, 5), 0, 0, false},
		{Pt(11, 5), 1, 1, true},
	}
	for _, tt := range tests {
		got, ok := sq.EdgeContainingPoint(tt.pt, tt.acc)
		if got != tt.want || ok != tt.ok {
			t.Errorf("EdgeContainingPoint(%v, %v) = (%d, %t), want (%d, %t)", tt.pt, tt.acc, got, ok, tt.want, tt.ok)
		}
	}

	hd := halfDisc(t)
	for _, pt := range []Point{Pt(1000, 1000), Pt(1707, 707)} {
		if i, ok := hd.EdgeContainingPoint(pt, 0); !ok || i != 1 {
			t.Errorf("%v: got (%d, %t), want (1, true)", pt, i, ok)
		}
	}
	if hd.PointOnEdge(Pt(1000, 500), 0) {
		t.Error("interior point reported on the edge")
	}
}
