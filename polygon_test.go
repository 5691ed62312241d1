package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/ctessum/geom"
)

// bite returns a rectangle whose top edge is replaced by an arc bulging
// into it.
func bite(t *testing.T) *Chain {
	t.Helper()
	c := NewChain(Pt(0, 0), Pt(2000, 0), Pt(2000, 1000))
	if err := c.AppendArc(Arc{Pt(2000, 1000), Pt(1000, 500), Pt(0, 1000)}); err != nil {
		t.Fatal(err)
	}
	if err := c.SetClosed(true); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestTransformToPolygonLines(t *testing.T) {
	sq := square(t, 0, 0, 1000)
	for _, loc := range []ErrorLocation{ErrorInside, ErrorOutside, ErrorCenter} {
		p, err := sq.TransformToPolygon(1, loc)
		if err != nil {
			t.Fatal(err)
		}
		want := geom.Polygon{{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}, {X: 0, Y: 0}}}
		diff(t, want, p)
	}
}

func TestTransformToPolygonErrorLocation(t *testing.T) {
	const maxError = 1
	for _, tt := range []struct {
		name string
		c    *Chain
	}{
		{"convex", halfDisc(t)},
		{"concave", bite(t)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.c.Area()
			slack := maxError * tt.c.Length()
			areas := map[ErrorLocation]float64{}
			for _, loc := range []ErrorLocation{ErrorInside, ErrorOutside, ErrorCenter} {
				p, err := tt.c.TransformToPolygon(maxError, loc)
				if err != nil {
					t.Fatal(err)
				}
				areas[loc] = p.Area()
				if math.Abs(areas[loc]-want) > slack {
					t.Errorf("%v: got area %v, want %v", loc, areas[loc], want)
				}
			}
			if areas[ErrorInside] > want {
				t.Errorf("inside polygon has area %v, more than %v", areas[ErrorInside], want)
			}
			if areas[ErrorOutside] < want {
				t.Errorf("outside polygon has area %v, less than %v", areas[ErrorOutside], want)
			}
		})
	}
}

func TestTransformToPolygonDeviation(t *testing.T) {
	const maxError = 5
	hd := halfDisc(t)
	center := Vec(1000, 0)
	tests := []struct {
		loc      ErrorLocation
		min, max float64
	}{
		{ErrorInside, 1000 - 1e-6, 1000 + 1e-6},
		{ErrorOutside, 1000, 1000 + maxError},
		{ErrorCenter, 1000, 1000 + maxError},
	}
	for _, tt := range tests {
		p, err := hd.TransformToPolygon(maxError, tt.loc)
		if err != nil {
			t.Fatal(err)
		}
		ring := p[0]
		// Skip the end points of the diameter.
		for _, v := range ring[2 : len(ring)-1] {
			r := Vec(v.X, v.Y).Distance(center)
			if r < tt.min || r > tt.max {
				t.Errorf("%v: vertex %v is at radius %v", tt.loc, v, r)
			}
		}
	}
}

func TestTransformToPolygonErrors(t *testing.T) {
	open := NewChain(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	if _, err := open.TransformToPolygon(1, ErrorInside); !errors.Is(err, ErrNotClosed) {
		t.Errorf("got error %v, want ErrNotClosed", err)
	}
	hd := halfDisc(t)
	for _, maxError := range []float64{0, -1, math.NaN()} {
		if _, err := hd.TransformToPolygon(maxError, ErrorInside); !errors.Is(err, ErrToleranceUnreachable) {
			t.Errorf("max error %v: got error %v, want ErrToleranceUnreachable", maxError, err)
		}
	}
}

// ringSignedArea returns the signed area of a closed ring whose first
// point is repeated at the end.
func ringSignedArea(r []geom.Point) float64 {
	var a float64
	for i := 1; i < len(r); i++ {
		a += r[i-1].X*r[i].Y - r[i].X*r[i-1].Y
	}
	return a / 2
}

func TestPolygonSet(t *testing.T) {
	outer := square(t, 0, 0, 100)
	hole := square(t, 25, 25, 50)
	island := square(t, 40, 40, 20)
	// Holes are found by containment, not by orientation.
	for _, chains := range [][]*Chain{{outer, hole, island}, {island, hole, outer}} {
		p, err := PolygonSet(chains, 1, ErrorInside)
		if err != nil {
			t.Fatal(err)
		}
		if len(p) != 3 {
			t.Fatalf("got %d rings, want 3", len(p))
		}
		for i, c := range chains {
			a := ringSignedArea(p[i])
			if wantCW := c == hole; (a < 0) != wantCW {
				t.Errorf("ring %d has signed area %v", i, a)
			}
		}
		if a := p.Area(); a != 100*100-50*50+20*20 {
			t.Errorf("got area %v, want %v", a, 100*100-50*50+20*20)
		}
	}

	// A clockwise chain is still an outer ring.
	cw := square(t, 0, 0, 100)
	cw.Reverse()
	p, err := PolygonSet([]*Chain{cw}, 1, ErrorInside)
	if err != nil {
		t.Fatal(err)
	}
	if a := ringSignedArea(p[0]); a != 100*100 {
		t.Errorf("got signed area %v, want %v", a, 100*100)
	}

	open := NewChain(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	if _, err := PolygonSet([]*Chain{outer, open}, 1, ErrorInside); !errors.Is(err, ErrNotClosed) {
		t.Errorf("got error %v, want ErrNotClosed", err)
	}
}

func TestPolygonSetHoleError(t *testing.T) {
	const r = 1000
	outer := square(t, -5000, -5000, 10000)
	hole := disc(t, r)
	want := 1e8 - math.Pi*r*r
	for _, tt := range []struct {
		loc     ErrorLocation
		holeOut bool
	}{
		{ErrorInside, true},
		{ErrorOutside, false},
	} {
		p, err := PolygonSet([]*Chain{outer, hole}, 5, tt.loc)
		if err != nil {
			t.Fatal(err)
		}
		// Keeping the error inside the material widens the hole.
		for _, pt := range p[1] {
			d := math.Hypot(pt.X, pt.Y)
			if tt.holeOut && d < r-1e-6 || !tt.holeOut && d > r+1e-6 {
				t.Errorf("%v: hole vertex %v at distance %v from the center", tt.loc, pt, d)
			}
		}
		got := p.Area()
		if tt.holeOut && got > want || !tt.holeOut && got < want {
			t.Errorf("%v: got area %v, want it on the other side of %v", tt.loc, got, want)
		}
		if math.Abs(got-want) > 2*math.Pi*r*5 {
			t.Errorf("%v: got area %v, want about %v", tt.loc, got, want)
		}
	}
}
