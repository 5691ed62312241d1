package shape

import (
	"errors"
	"testing"
)

func TestChainPoints(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 0), Pt(10, 0), Pt(10, 10))
	// Consecutive duplicates are dropped.
	diff(t, []Point{{0, 0}, {10, 0}, {10, 10}}, c.Points())
	if n := c.SegmentCount(); n != 2 {
		t.Errorf("got %d segments, want 2", n)
	}

	p, err := c.Point(-1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(10, 10), p)
	if _, err := c.Point(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got error %v, want ErrIndexOutOfRange", err)
	}
	if _, err := c.Segment(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got error %v, want ErrIndexOutOfRange", err)
	}
}

func TestChainPendingFirstPoint(t *testing.T) {
	c := &Chain{}
	if n := c.PointCount(); n != 0 {
		t.Fatalf("empty chain has %d points", n)
	}
	c.Append(Pt(5, 5))
	if n, m := c.PointCount(), c.SegmentCount(); n != 1 || m != 0 {
		t.Errorf("got %d points and %d segments, want 1 and 0", n, m)
	}
	c.Append(Pt(6, 5))
	diff(t, []Point{{5, 5}, {6, 5}}, c.Points())
}

func TestChainClosedPointCount(t *testing.T) {
	c := square(t, 0, 0, 10)
	if n := c.PointCount(); n != 4 {
		t.Errorf("got %d points, want 4", n)
	}
	// The closing segment is stored.
	if n := c.SegmentCount(); n != 4 {
		t.Errorf("got %d segments, want 4", n)
	}
	last, _ := c.Segment(-1)
	diff(t, Line{Pt(0, 10), Pt(0, 0)}.Seg(), last)
	checkContinuity(t, c)
}

func TestNewClosedChainTooFew(t *testing.T) {
	if _, err := NewClosedChain(Pt(0, 0), Pt(10, 0)); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("got error %v, want ErrTooFewPoints", err)
	}
	// A repeated first point doesn't count.
	if _, err := NewClosedChain(Pt(0, 0), Pt(10, 0), Pt(0, 0)); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("got error %v, want ErrTooFewPoints", err)
	}
}

func TestChainAppendDuplicate(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 0))
	c.AppendDuplicate(Pt(10, 0))
	if n := c.PointCount(); n != 3 {
		t.Errorf("got %d points, want 3", n)
	}
	if err := c.RemoveDuplicatePoints(); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{0, 0}, {10, 0}}, c.Points())
}

func TestChainAppendToClosed(t *testing.T) {
	c := square(t, 0, 0, 10)
	c.Append(Pt(-5, 5))
	diff(t, []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {-5, 5}}, c.Points())
	checkContinuity(t, c)
	last, _ := c.Segment(-1)
	diff(t, Pt(0, 0), last.P1)
}

func TestChainAppendToClosedArc(t *testing.T) {
	hd := halfDisc(t)
	closing, _ := hd.Segment(-1)
	hd.Append(Pt(1000, -500))
	checkContinuity(t, hd)
	diff(t, []Point{{0, 0}, {1000, -500}, {2000, 0}}, hd.Points())
	if hd.ArcCount() != 1 {
		t.Fatalf("got %d arcs, want the closing arc kept", hd.ArcCount())
	}
	last, _ := hd.Segment(-1)
	diff(t, closing, last)

	// The arc leading into the closing arc's start gives way.
	d := disc(t, 1000)
	closing, _ = d.Segment(-1)
	d.AppendDuplicate(Pt(0, 2000))
	checkContinuity(t, d)
	diff(t, []Point{{1000, 0}, {0, 2000}, {-1000, 0}}, d.Points())
	if d.ArcCount() != 1 {
		t.Fatalf("got %d arcs, want 1", d.ArcCount())
	}
	last, _ = d.Segment(-1)
	diff(t, closing, last)
}

func TestChainAppendArc(t *testing.T) {
	c := NewChain(Pt(2000, 0))
	if err := c.AppendArc(quarterArc); err != nil {
		t.Fatal(err)
	}
	// A connecting line is added.
	diff(t, []Point{{2000, 0}, {1000, 0}, {0, 1000}}, c.Points())
	if !c.IsArcSegment(1) || c.IsArcSegment(0) {
		t.Error("expected segment 1 to be the arc")
	}
	checkContinuity(t, c)

	if err := c.AppendArc(Arc{Pt(0, 0), Pt(1, 1), Pt(2, 2)}); !errors.Is(err, ErrMalformedArc) {
		t.Errorf("got error %v, want ErrMalformedArc", err)
	}
	if n := c.SegmentCount(); n != 2 {
		t.Errorf("failed append changed the chain to %d segments", n)
	}
}

func TestChainAppendArcFlattened(t *testing.T) {
	c := &Chain{}
	if err := c.AppendArcFlattened(quarterArc, 10); err != nil {
		t.Fatal(err)
	}
	if c.HasArcs() {
		t.Error("flattened arc shouldn't leave arcs")
	}
	if d := polylineDeviation(quarterArc, c.Points()); d > 10 {
		t.Errorf("polyline deviates by %v", d)
	}

	before := c.Clone()
	if err := c.AppendArcFlattened(quarterArc, 0.1); !errors.Is(err, ErrToleranceUnreachable) {
		t.Errorf("got error %v, want ErrToleranceUnreachable", err)
	}
	if !c.CompareGeometry(before) {
		t.Error("failed append changed the chain")
	}
}

func TestChainInsert(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	if err := c.Insert(1, Pt(5, -5)); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{0, 0}, {5, -5}, {10, 0}, {10, 10}}, c.Points())
	if err := c.Insert(4, Pt(0, 10)); err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(0, 10), c.Points()[4])
	if err := c.Insert(6, Pt(0, 0)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got error %v, want ErrIndexOutOfRange", err)
	}
	checkContinuity(t, c)
}

func TestChainInsertBreaksArc(t *testing.T) {
	c := &Chain{}
	if err := c.AppendArc(quarterArc); err != nil {
		t.Fatal(err)
	}
	if err := c.Insert(1, Pt(707, 707)); err != nil {
		t.Fatal(err)
	}
	if c.HasArcs() {
		t.Error("inserting into an arc should turn it into lines")
	}
	diff(t, []Point{quarterArc.Start, {707, 707}, quarterArc.End}, c.Points())
}

func TestChainInsertArc(t *testing.T) {
	c := NewChain(Pt(2000, 0), Pt(0, 2000))
	if err := c.InsertArc(1, quarterArc); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{2000, 0}, {1000, 0}, {0, 1000}, {0, 2000}}, c.Points())
	if c.ArcCount() != 1 || !c.IsArcSegment(1) {
		t.Errorf("expected segment 1 to be the only arc, got %d arcs", c.ArcCount())
	}
}

func TestChainSetPoint(t *testing.T) {
	c := NewChain(Pt(0, 0))
	if err := c.AppendArc(Arc{Pt(0, 0), Pt(1000, 1000), Pt(2000, 0)}); err != nil {
		t.Fatal(err)
	}
	c.Append(Pt(3000, 0))
	if err := c.SetPoint(1, Pt(2000, 100)); err != nil {
		t.Fatal(err)
	}
	if !c.IsArcSegment(0) {
		t.Fatal("arc should follow its moved end point")
	}
	s, _ := c.Segment(0)
	diff(t, Pt(2000, 100), s.P1)
	checkContinuity(t, c)

	if err := c.SetPoint(3, Pt(0, 0)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got error %v, want ErrIndexOutOfRange", err)
	}
}

func TestChainRemove(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(30, 0))
	if err := c.Remove(1); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{0, 0}, {20, 0}, {30, 0}}, c.Points())
	if err := c.RemoveRange(0, 1); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{30, 0}}, c.Points())
	if err := c.RemoveRange(1, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got error %v, want ErrIndexOutOfRange", err)
	}
}

func TestChainRemoveTransactional(t *testing.T) {
	c := square(t, 0, 0, 10)
	before := c.Clone()
	if err := c.RemoveRange(0, 1); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("got error %v, want ErrTooFewPoints", err)
	}
	if !c.CompareGeometry(before) {
		t.Errorf("failed removal changed the chain to %v", c)
	}

	if err := c.Remove(2); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{0, 0}, {10, 0}, {0, 10}}, c.Points())
	checkContinuity(t, c)
}

func TestChainRemoveShape(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(30, 0), Pt(40, 0))
	if err := c.RemoveShape(1); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{0, 0}, {30, 0}, {40, 0}}, c.Points())

	sq := mustClosed(t, Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(5, 15), Pt(0, 10))
	// The closing segment runs from (0, 10) back to (0, 0).
	if err := sq.RemoveShape(4); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{10, 0}, {10, 10}, {5, 15}}, sq.Points())
}

func TestChainReplace(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(30, 0))
	if err := c.Replace(1, 2, Pt(15, 5)); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{0, 0}, {15, 5}, {30, 0}}, c.Points())

	o := &Chain{}
	if err := o.AppendArc(Arc{Pt(15, 5), Pt(20, 10), Pt(25, 5)}); err != nil {
		t.Fatal(err)
	}
	if err := c.ReplaceChain(1, 1, o); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{0, 0}, {15, 5}, {25, 5}, {30, 0}}, c.Points())
	if !c.IsArcSegment(1) {
		t.Error("expected the replacement's arc to be kept")
	}
	checkContinuity(t, c)
}

func TestChainSetClosed(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 0))
	if err := c.SetClosed(true); err != nil {
		t.Fatal(err)
	}
	// The repeated first point is folded into the closing segment.
	diff(t, []Point{{0, 0}, {10, 0}, {10, 10}}, c.Points())
	if err := c.SetClosed(false); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{0, 0}, {10, 0}, {10, 10}}, c.Points())
	if n := c.SegmentCount(); n != 2 {
		t.Errorf("got %d segments, want 2", n)
	}

	// Two points joined by an arc can be closed.
	h := NewChain(Pt(0, 0), Pt(2000, 0))
	if err := h.AppendArc(Arc{Pt(2000, 0), Pt(1000, 1000), Pt(0, 0)}); err != nil {
		t.Fatal(err)
	}
	if err := h.SetClosed(true); err != nil {
		t.Fatal(err)
	}
	// Opening keeps the closing arc.
	if err := h.SetClosed(false); err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{0, 0}, {2000, 0}, {0, 0}}, h.Points())
	if !h.IsArcSegment(1) {
		t.Error("expected the closing arc to be kept")
	}
}

func TestChainClone(t *testing.T) {
	c := square(t, 0, 0, 10)
	cc := c.Clone()
	if err := cc.SetPoint(0, Pt(-5, -5)); err != nil {
		t.Fatal(err)
	}
	p, _ := c.Point(0)
	diff(t, Pt(0, 0), p)
	if c.CompareGeometry(cc) {
		t.Error("clone shares geometry with the original")
	}
}

func TestChainClear(t *testing.T) {
	c := square(t, 0, 0, 10)
	c.SetWidth(250)
	c.Clear()
	if c.PointCount() != 0 || c.IsClosed() {
		t.Errorf("got %v, want an empty open chain", c)
	}
	if w := c.Width(); w != 250 {
		t.Errorf("Clear changed the width to %d", w)
	}
	if _, ok := c.BBox(); ok {
		t.Error("empty chain shouldn't have a bounding box")
	}
}

func TestChainBBoxCache(t *testing.T) {
	c := NewChain(Pt(0, 0), Pt(10, 5))
	bbox, ok := c.BBox()
	if !ok {
		t.Fatal("expected a bounding box")
	}
	diff(t, Rect{0, 0, 10, 5}, bbox)

	edits := []struct {
		name string
		edit func()
		want Rect
	}{
		{"Append", func() { c.Append(Pt(-5, 20)) }, Rect{-5, 0, 10, 20}},
		{"SetPoint", func() { _ = c.SetPoint(0, Pt(0, -10)) }, Rect{-5, -10, 10, 20}},
		{"Move", func() { c.Move(Pt(5, 0)) }, Rect{0, -10, 15, 20}},
		{"Remove", func() { _ = c.Remove(2) }, Rect{5, -10, 15, 5}},
		{"AppendArc", func() { _ = c.AppendArc(Arc{Pt(15, 5), Pt(25, 15), Pt(35, 5)}) }, Rect{5, -10, 35, 15}},
	}
	for _, e := range edits {
		e.edit()
		bbox, _ := c.BBox()
		if bbox != e.want {
			t.Errorf("after %s: got bounding box %v, want %v", e.name, bbox, e.want)
		}
	}

	c.Append(Pt(100, 100))
	if c.bboxState != bboxStale {
		t.Fatal("Append didn't mark the bounding box stale")
	}
	c.GenerateBBoxCache()
	if c.bboxState != bboxValid {
		t.Fatal("GenerateBBoxCache didn't validate the bounding box")
	}
	diff(t, Rect{5, -10, 100, 100}, c.bbox)
}

func TestChainCompareGeometry(t *testing.T) {
	a := square(t, 0, 0, 10)
	b := square(t, 0, 0, 10)
	b.SetWidth(7)
	if !a.CompareGeometry(b) {
		t.Error("width shouldn't affect geometric comparison")
	}
	if err := b.SetClosed(false); err != nil {
		t.Fatal(err)
	}
	if a.CompareGeometry(b) {
		t.Error("open and closed chains shouldn't compare equal")
	}
}

func TestChainSegmentsIterator(t *testing.T) {
	c := square(t, 0, 0, 10)
	var starts []Point
	for _, s := range c.Segments() {
		starts = append(starts, s.P0)
	}
	diff(t, c.Points(), starts)
}
