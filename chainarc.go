package shape

import (
	"fmt"
	"slices"
)

// ArcCount returns the number of arc segments.
func (c *Chain) ArcCount() int {
	n := 0
	for _, s := range c.segs {
		if s.IsArc() {
			n++
		}
	}
	return n
}

// HasArcs reports whether the chain contains at least one arc.
func (c *Chain) HasArcs() bool {
	return slices.ContainsFunc(c.segs, Segment.IsArc)
}

// Arc returns the k-th arc of the chain, counting only arc segments.
func (c *Chain) Arc(k int) (Arc, error) {
	if k >= 0 {
		n := k
		for _, s := range c.segs {
			if !s.IsArc() {
				continue
			}
			if n == 0 {
				return s.Arc(), nil
			}
			n--
		}
	}
	return Arc{}, fmt.Errorf("arc %d of %d: %w", k, c.ArcCount(), ErrIndexOutOfRange)
}

// IsArcSegment reports whether the i-th segment is an arc. Out of range
// indices report false.
func (c *Chain) IsArcSegment(i int) bool {
	return i >= 0 && i < len(c.segs) && c.segs[i].IsArc()
}

// ArcIndex returns the number of the arc that segment i is, as accepted by
// [Chain.Arc].
func (c *Chain) ArcIndex(i int) (int, bool) {
	if !c.IsArcSegment(i) {
		return 0, false
	}
	n := 0
	for _, s := range c.segs[:i] {
		if s.IsArc() {
			n++
		}
	}
	return n, true
}

// incoming returns the segment ending at point i.
func (c *Chain) incoming(i int) (Segment, bool) {
	n := len(c.segs)
	switch {
	case n == 0 || i < 0 || i >= c.PointCount():
		return Segment{}, false
	case i > 0:
		return c.segs[i-1], true
	case c.closed:
		return c.segs[n-1], true
	default:
		return Segment{}, false
	}
}

// outgoing returns the segment starting at point i.
func (c *Chain) outgoing(i int) (Segment, bool) {
	if i < 0 || i >= len(c.segs) {
		return Segment{}, false
	}
	return c.segs[i], true
}

// IsArcStart reports whether an arc starts at point i.
func (c *Chain) IsArcStart(i int) bool {
	s, ok := c.outgoing(i)
	return ok && s.IsArc()
}

// IsArcEnd reports whether an arc ends at point i.
func (c *Chain) IsArcEnd(i int) bool {
	s, ok := c.incoming(i)
	return ok && s.IsArc()
}

// IsSharedPt reports whether point i joins two arcs.
func (c *Chain) IsSharedPt(i int) bool {
	return c.IsArcStart(i) && c.IsArcEnd(i)
}

// spliceSegments replaces segments i through j−1 with repl, which must
// connect the same end points.
func (c *Chain) spliceSegments(i, j int, repl []Segment) error {
	segs := slices.Concat(c.segs[:i], repl, c.segs[j:])
	if c.closed {
		if err := checkClosed(segs); err != nil {
			return err
		}
	}
	c.segs = segs
	c.markStale()
	return nil
}

func flattenToLines(a Arc, maxError float64) ([]Segment, error) {
	pts, err := a.Polyline(maxError)
	if err != nil {
		return nil, err
	}
	out := make([]Segment, 0, len(pts)-1)
	for k := 1; k < len(pts); k++ {
		if pts[k] == pts[k-1] {
			continue
		}
		out = append(out, Line{pts[k-1], pts[k]}.Seg())
	}
	return out, nil
}

// ConvertArcToLines replaces the arc at segment i with lines deviating from
// it by at most maxError and returns the number of lines. The conversion is
// deterministic.
func (c *Chain) ConvertArcToLines(i int, maxError float64) (int, error) {
	if i < 0 || i >= len(c.segs) {
		return 0, fmt.Errorf("converting segment %d of %d: %w", i, len(c.segs), ErrIndexOutOfRange)
	}
	if !c.segs[i].IsArc() {
		return 0, fmt.Errorf("converting segment %d: %w", i, ErrNotArc)
	}
	lines, err := flattenToLines(c.segs[i].Arc(), maxError)
	if err != nil {
		return 0, err
	}
	if err := c.spliceSegments(i, i+1, lines); err != nil {
		return 0, err
	}
	return len(lines), nil
}

// ClearArcs replaces every arc with lines deviating from it by at most
// maxError. If any arc can't be converted, the chain is left unchanged.
func (c *Chain) ClearArcs(maxError float64) error {
	if !c.HasArcs() {
		return nil
	}
	segs := make([]Segment, 0, len(c.segs))
	for _, s := range c.segs {
		if !s.IsArc() {
			segs = append(segs, s)
			continue
		}
		lines, err := flattenToLines(s.Arc(), maxError)
		if err != nil {
			return err
		}
		segs = append(segs, lines...)
	}
	if c.closed {
		if err := checkClosed(segs); err != nil {
			return err
		}
	}
	c.segs = segs
	c.markStale()
	return nil
}

// arcHalves splits a at parameter t, with pt as the shared end point. A
// half too short to remain an arc becomes a line.
func arcHalves(a Arc, t float64, pt Point) (Segment, Segment) {
	half := func(start, end Point, tm float64) Segment {
		h := Arc{start, a.Eval(tm).Round(), end}
		if h.IsValid() {
			return h.Seg()
		}
		return Line{start, end}.Seg()
	}
	return half(a.Start, pt, t/2), half(pt, a.End, (1+t)/2)
}

func (c *Chain) splitArc(i int, t float64, pt Point, coincident bool) error {
	first, second := arcHalves(c.segs[i].Arc(), t, pt)
	repl := []Segment{first, second}
	if !coincident {
		repl = []Segment{first, Line{pt, pt}.Seg(), second}
	}
	return c.spliceSegments(i, i+1, repl)
}

func (c *Chain) checkArcSegment(i int) error {
	if i < 0 || i >= len(c.segs) {
		return fmt.Errorf("splitting segment %d of %d: %w", i, len(c.segs), ErrIndexOutOfRange)
	}
	if !c.segs[i].IsArc() {
		return fmt.Errorf("splitting segment %d: %w", i, ErrNotArc)
	}
	return nil
}

// SplitArcSegment splits the arc at segment i into two arcs meeting at pt.
// With coincident set, the halves share pt directly; otherwise they are
// separated by a zero-length line at pt, so that the point before and the
// point after the split have distinct indices.
//
// It returns false, leaving the chain unchanged, if pt doesn't lie on the
// arc or coincides with one of its end points.
func (c *Chain) SplitArcSegment(i int, pt Point, coincident bool) (bool, error) {
	if err := c.checkArcSegment(i); err != nil {
		return false, err
	}
	a := c.segs[i].Arc()
	if pt == a.Start || pt == a.End || !a.Contains(pt.Vec(), 1) {
		return false, nil
	}
	if err := c.splitArc(i, a.clampedParam(pt.Vec()), pt, coincident); err != nil {
		return false, err
	}
	return true, nil
}

// SplitArcSegmentAtT is like SplitArcSegment but splits at parameter t,
// which must lie strictly between 0 and 1.
func (c *Chain) SplitArcSegmentAtT(i int, t float64, coincident bool) (bool, error) {
	if err := c.checkArcSegment(i); err != nil {
		return false, err
	}
	if !(t > 0 && t < 1) {
		return false, nil
	}
	a := c.segs[i].Arc()
	pt := a.EvalPoint(t)
	if pt == a.Start || pt == a.End {
		return false, nil
	}
	if err := c.splitArc(i, t, pt, coincident); err != nil {
		return false, err
	}
	return true, nil
}
