package shape

import (
	"fmt"
	"iter"
	"slices"
)

type bboxState uint8

const (
	bboxStale bboxState = iota
	bboxValid
)

// Chain is an ordered sequence of connected line and arc segments, either
// open or closed.
//
// The segment sequence is the only stored geometry. Points are a derived
// view: an open chain of N segments has N+1 points, a closed chain has N
// points because its closing segment, which is stored like any other, ends
// at the first point. A chain without segments has either no points or a
// single pending first point, waiting for the second point to arrive.
//
// The zero value is an empty open chain. Chains are not safe for concurrent
// use; that includes concurrent reads, which may refresh the cached bounding
// box.
type Chain struct {
	segs          []Segment
	first         Point
	hasFirstPoint bool
	closed        bool
	width         int64

	bbox      Rect
	bboxState bboxState
}

// NewChain returns an open chain through pts. Consecutive duplicate points
// are dropped.
func NewChain(pts ...Point) *Chain {
	c := &Chain{}
	for _, pt := range pts {
		c.Append(pt)
	}
	return c
}

// NewClosedChain returns a closed chain through pts. It fails with
// [ErrTooFewPoints] if fewer than three distinct points remain.
func NewClosedChain(pts ...Point) (*Chain, error) {
	c := NewChain(pts...)
	if err := c.SetClosed(true); err != nil {
		return nil, err
	}
	return c, nil
}

// markStale is called by every mutation of the geometry.
func (c *Chain) markStale() {
	c.bboxState = bboxStale
}

func (c *Chain) IsClosed() bool { return c.closed }
func (c *Chain) Width() int64   { return c.width }

// SetWidth sets the chain's width. Width is carried for consumers that draw
// or clear around the chain; none of the geometric queries use it.
func (c *Chain) SetWidth(w int64) {
	c.width = w
}

// PointCount returns the number of points in the chain.
func (c *Chain) PointCount() int {
	switch {
	case len(c.segs) == 0 && c.hasFirstPoint:
		return 1
	case len(c.segs) == 0:
		return 0
	case c.closed:
		return len(c.segs)
	default:
		return len(c.segs) + 1
	}
}

// SegmentCount returns the number of segments, including the closing
// segment of a closed chain.
func (c *Chain) SegmentCount() int {
	return len(c.segs)
}

// pt returns the i-th point without bounds checking.
func (c *Chain) pt(i int) Point {
	if len(c.segs) == 0 {
		return c.first
	}
	if i == len(c.segs) {
		return c.segs[i-1].P1
	}
	return c.segs[i].P0
}

func resolveIndex(i, n int) (int, error) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %d of %d: %w", i, n, ErrIndexOutOfRange)
	}
	return i, nil
}

// Point returns the i-th point. Negative indices count from the end, so −1
// addresses the last point.
func (c *Chain) Point(i int) (Point, error) {
	i, err := resolveIndex(i, c.PointCount())
	if err != nil {
		return Point{}, err
	}
	return c.pt(i), nil
}

// Segment returns the i-th segment. Negative indices count from the end.
func (c *Chain) Segment(i int) (Segment, error) {
	i, err := resolveIndex(i, len(c.segs))
	if err != nil {
		return Segment{}, err
	}
	return c.segs[i], nil
}

// Points returns a copy of the chain's points.
func (c *Chain) Points() []Point {
	n := c.PointCount()
	out := make([]Point, n)
	for i := range n {
		out[i] = c.pt(i)
	}
	return out
}

// Segments returns an iterator over the chain's segments and their indices.
func (c *Chain) Segments() iter.Seq2[int, Segment] {
	return slices.All(c.segs)
}

// Clone returns a deep copy of c.
func (c *Chain) Clone() *Chain {
	cc := *c
	cc.segs = slices.Clone(c.segs)
	return &cc
}

// Clear removes all points and opens the chain. The width is kept.
func (c *Chain) Clear() {
	c.segs = c.segs[:0]
	c.first = Point{}
	c.hasFirstPoint = false
	c.closed = false
	c.markStale()
}

// BBox returns the chain's bounding box, recomputing it if the chain has
// changed since the last call. It returns false for an empty chain.
func (c *Chain) BBox() (Rect, bool) {
	if c.PointCount() == 0 {
		return Rect{}, false
	}
	if c.bboxState == bboxStale {
		c.GenerateBBoxCache()
	}
	return c.bbox, true
}

// GenerateBBoxCache recomputes the cached bounding box.
func (c *Chain) GenerateBBoxCache() {
	if len(c.segs) == 0 {
		c.bbox = NewRectFromPoints(c.first, c.first)
	} else {
		c.bbox = c.segs[0].BoundingBox()
		for _, s := range c.segs[1:] {
			c.bbox = c.bbox.Union(s.BoundingBox())
		}
	}
	c.bboxState = bboxValid
}

// lastPoint returns the point new content is appended to.
func (c *Chain) lastPoint() (Point, bool) {
	n := c.PointCount()
	if n == 0 {
		return Point{}, false
	}
	return c.pt(n - 1), true
}

// Append adds pt to the end of the chain. Appending the chain's current last
// point again is a no-op; use [Chain.AppendDuplicate] to keep it.
//
// On a closed chain, pt is added before the closing segment. If the closing
// segment is an arc, pt is added before the arc's start instead, so that the
// arc is kept; as with [Chain.Insert], an arc leading into that point is
// replaced by lines.
func (c *Chain) Append(pt Point) {
	if last, ok := c.lastPoint(); ok && last == pt {
		return
	}
	c.AppendDuplicate(pt)
}

// AppendDuplicate is like Append but adds pt even if it equals the last
// point, producing a zero-length line.
func (c *Chain) AppendDuplicate(pt Point) {
	switch {
	case c.closed:
		ns := c.nodes()
		i := len(ns)
		if c.segs[len(c.segs)-1].IsArc() {
			i--
		}
		ns = slices.Insert(ns, i, node{pt: pt})
		// A closed chain only grows, so it stays valid.
		_ = c.commit(ns, true)
		return
	case len(c.segs) == 0 && !c.hasFirstPoint:
		c.first = pt
		c.hasFirstPoint = true
	default:
		last, _ := c.lastPoint()
		c.segs = append(c.segs, Line{last, pt}.Seg())
	}
	c.markStale()
}

// AppendArc adds a to the end of the chain, connecting it with a line if
// the chain doesn't already end at the arc's start.
func (c *Chain) AppendArc(a Arc) error {
	if !a.IsValid() {
		return fmt.Errorf("appending %v: %w", a, ErrMalformedArc)
	}
	if c.closed {
		ns := c.nodes()
		ns = insertNodes(ns, len(ns), arcNodes(a), true)
		return c.commit(ns, true)
	}
	if last, ok := c.lastPoint(); ok && last != a.Start {
		c.segs = append(c.segs, Line{last, a.Start}.Seg())
	}
	c.segs = append(c.segs, a.Seg())
	c.first, c.hasFirstPoint = Point{}, false
	c.markStale()
	return nil
}

// AppendArcFlattened appends a as a polyline that deviates from the arc by
// at most maxError.
func (c *Chain) AppendArcFlattened(a Arc, maxError float64) error {
	if !a.IsValid() {
		return fmt.Errorf("appending %v: %w", a, ErrMalformedArc)
	}
	pts, err := a.Polyline(maxError)
	if err != nil {
		return err
	}
	for _, pt := range pts {
		c.Append(pt)
	}
	return nil
}

// Insert inserts pt so that it becomes the i-th point. i may equal
// PointCount, which appends. A line or arc spanning the insertion position
// is replaced by two lines meeting at pt.
func (c *Chain) Insert(i int, pt Point) error {
	ns := c.nodes()
	if i < 0 || i > len(ns) {
		return fmt.Errorf("inserting at %d of %d: %w", i, len(ns), ErrIndexOutOfRange)
	}
	ns = slices.Insert(ns, i, node{pt: pt})
	return c.commit(ns, c.closed)
}

// InsertArc inserts a before the i-th point, connecting it to its
// neighbors with lines where it doesn't already share their positions.
func (c *Chain) InsertArc(i int, a Arc) error {
	if !a.IsValid() {
		return fmt.Errorf("inserting %v: %w", a, ErrMalformedArc)
	}
	ns := c.nodes()
	if i < 0 || i > len(ns) {
		return fmt.Errorf("inserting at %d of %d: %w", i, len(ns), ErrIndexOutOfRange)
	}
	ns = insertNodes(ns, i, arcNodes(a), c.closed)
	return c.commit(ns, c.closed)
}

// SetPoint moves the i-th point to pt. Arcs starting or ending at the point
// follow it and keep their sweep. An arc whose end points would coincide
// becomes a zero-length line.
func (c *Chain) SetPoint(i int, pt Point) error {
	ns := c.nodes()
	if i < 0 || i >= len(ns) {
		return fmt.Errorf("setting point %d of %d: %w", i, len(ns), ErrIndexOutOfRange)
	}
	n := len(ns)
	if prev := i - 1; prev >= 0 || c.closed {
		prev = (prev + n) % n
		if s := ns[prev].out; s.P1 == ns[i].pt {
			ns[prev].out = s.withEnds(s.P0, pt)
		}
	}
	if s := ns[i].out; s.P0 == ns[i].pt {
		ns[i].out = s.withEnds(pt, s.P1)
	}
	ns[i].pt = pt
	return c.commit(ns, c.closed)
}

// Remove deletes the i-th point. Its neighbors are joined by a line.
func (c *Chain) Remove(i int) error {
	return c.RemoveRange(i, i)
}

// RemoveRange deletes the points start through end, inclusive. The points
// on either side of the range are joined by a line.
func (c *Chain) RemoveRange(start, end int) error {
	ns := c.nodes()
	if start < 0 || end >= len(ns) || start > end {
		return fmt.Errorf("removing points %d to %d of %d: %w", start, end, len(ns), ErrIndexOutOfRange)
	}
	ns = slices.Delete(ns, start, end+1)
	return c.commit(ns, c.closed)
}

// RemoveShape deletes the i-th segment together with both of its end
// points. The remaining neighbors are joined by a line.
func (c *Chain) RemoveShape(i int) error {
	if i < 0 || i >= len(c.segs) {
		return fmt.Errorf("removing segment %d of %d: %w", i, len(c.segs), ErrIndexOutOfRange)
	}
	ns := c.nodes()
	if c.closed && i == len(ns)-1 {
		// The closing segment ends at the first point.
		ns = ns[1 : len(ns)-1]
	} else {
		ns = slices.Delete(ns, i, i+2)
	}
	return c.commit(ns, c.closed)
}

// Replace replaces the points start through end, inclusive, with pt.
func (c *Chain) Replace(start, end int, pt Point) error {
	ns := c.nodes()
	if start < 0 || end >= len(ns) || start > end {
		return fmt.Errorf("replacing points %d to %d of %d: %w", start, end, len(ns), ErrIndexOutOfRange)
	}
	ns = slices.Delete(ns, start, end+1)
	ns = slices.Insert(ns, start, node{pt: pt})
	return c.commit(ns, c.closed)
}

// ReplaceChain replaces the points start through end, inclusive, with the
// points and segments of o. The arcs of o are kept.
func (c *Chain) ReplaceChain(start, end int, o *Chain) error {
	ns := c.nodes()
	if start < 0 || end >= len(ns) || start > end {
		return fmt.Errorf("replacing points %d to %d of %d: %w", start, end, len(ns), ErrIndexOutOfRange)
	}
	content := o.nodes()
	if o.closed && len(content) > 0 {
		content = append(content, node{pt: content[0].pt})
	}
	ns = slices.Delete(ns, start, end+1)
	ns = insertNodes(ns, start, content, c.closed)
	return c.commit(ns, c.closed)
}

// SetClosed opens or closes the chain. Closing adds a line from the last to
// the first point unless they already coincide; it fails with
// [ErrTooFewPoints] unless at least three points, or two points joined by
// an arc, remain. Opening drops a closing line but keeps a closing arc.
func (c *Chain) SetClosed(closed bool) error {
	if closed == c.closed {
		return nil
	}
	ns := c.nodes()
	if closed {
		if n := len(ns); n > 1 && ns[n-1].pt == ns[0].pt {
			ns = ns[:n-1]
		}
	} else if n := len(ns); n > 0 && ns[n-1].out.IsArc() {
		ns = append(ns, node{pt: ns[0].pt})
	}
	return c.commit(ns, closed)
}

// node is a point together with the segment leaving it. Edits operate on
// nodes; [link] turns them back into segments, keeping each stored segment
// only while it still connects its node to the following one.
type node struct {
	pt  Point
	out Segment
}

// nodes returns the chain as a list of nodes, one per point.
func (c *Chain) nodes() []node {
	if len(c.segs) == 0 {
		if c.hasFirstPoint {
			return []node{{pt: c.first}}
		}
		return nil
	}
	ns := make([]node, 0, len(c.segs)+1)
	for _, s := range c.segs {
		ns = append(ns, node{pt: s.P0, out: s})
	}
	if !c.closed {
		ns = append(ns, node{pt: c.segs[len(c.segs)-1].P1})
	}
	return ns
}

func arcNodes(a Arc) []node {
	return []node{{pt: a.Start, out: a.Seg()}, {pt: a.End}}
}

// insertNodes inserts content at position i, merging the first and last
// content nodes with neighbors at the same position.
func insertNodes(ns []node, i int, content []node, closed bool) []node {
	if len(content) == 0 {
		return ns
	}
	if len(ns) > 0 && (i > 0 || closed) {
		prev := (i - 1 + len(ns)) % len(ns)
		if ns[prev].pt == content[0].pt {
			ns[prev].out = content[0].out
			content = content[1:]
		}
	}
	if len(content) > 0 && len(ns) > 0 && (i < len(ns) || closed) {
		if ns[i%len(ns)].pt == content[len(content)-1].pt {
			content = content[:len(content)-1]
		}
	}
	return slices.Insert(ns, i, content...)
}

// link returns the segments connecting consecutive nodes.
func link(ns []node, closed bool) []Segment {
	n := len(ns)
	count := n - 1
	if closed {
		count = n
	}
	if count <= 0 {
		return nil
	}
	segs := make([]Segment, 0, count)
	for k := range count {
		from, to := ns[k].pt, ns[(k+1)%n].pt
		s := ns[k].out
		if s.P0 != from || s.P1 != to {
			s = Line{from, to}.Seg()
		}
		segs = append(segs, s)
	}
	return segs
}

// commit replaces the chain's geometry with ns. It leaves the chain
// unchanged and fails if ns can't form a chain of the requested kind.
func (c *Chain) commit(ns []node, closed bool) error {
	segs := link(ns, closed)
	if closed {
		if err := checkClosed(segs); err != nil {
			return err
		}
	}
	c.segs = segs
	c.closed = closed
	c.first, c.hasFirstPoint = Point{}, false
	if len(segs) == 0 && len(ns) == 1 {
		c.first, c.hasFirstPoint = ns[0].pt, true
	}
	c.markStale()
	return nil
}

// checkClosed verifies that segs can form a closed chain: at least three
// points, or two points if one of the segments is an arc.
func checkClosed(segs []Segment) error {
	switch {
	case len(segs) >= 3:
		return nil
	case len(segs) == 2 && (segs[0].IsArc() || segs[1].IsArc()):
		return nil
	default:
		return fmt.Errorf("closing chain of %d points: %w", len(segs), ErrTooFewPoints)
	}
}

// isCorner reports whether pt is one of the chain's points.
func (c *Chain) isCorner(pt Point) bool {
	for i := range c.PointCount() {
		if c.pt(i) == pt {
			return true
		}
	}
	return false
}

// CompareGeometry reports whether c and o have the same segments and the
// same open/closed state. Width is ignored.
func (c *Chain) CompareGeometry(o *Chain) bool {
	if c.closed != o.closed || c.PointCount() != o.PointCount() {
		return false
	}
	if len(c.segs) == 0 {
		return c.first == o.first
	}
	return slices.Equal(c.segs, o.segs)
}
