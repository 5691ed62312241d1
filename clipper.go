package shape

import (
	"fmt"
	"math"
	"slices"
)

// Point64 is a vertex of a path in the format exchanged with polygon
// clipping engines. Z carries provenance: 0 for none, otherwise one more
// than the index of a [ZTag] in the [ArcProvenance] the path was exported
// with.
type Point64 struct {
	X, Y, Z int64
}

// Path64 is a closed polygon in the clipping exchange format.
type Path64 []Point64

// signedArea returns twice the signed area of the path.
func (p Path64) signedArea() float64 {
	var a float64
	for i, pt := range p {
		next := p[(i+1)%len(p)]
		a += float64(pt.X)*float64(next.Y) - float64(pt.Y)*float64(next.X)
	}
	return a
}

// ZTag records which arcs an exported vertex was sampled from. First and
// Second are arc numbers relative to Offset, or −1. A vertex inside an arc
// uses First only; a vertex where two segments meet records the arc ending
// there in First and the arc starting there in Second. Index is the
// vertex's sample number on First, counting from 0 at the arc's start; on
// Second the vertex is always sample 0.
type ZTag struct {
	First, Second int
	Index         int
	Offset        int
}

// sample returns the vertex's sample number on the arc with absolute index
// arc.
func (t ZTag) sample(arc int) (int, bool) {
	switch {
	case t.First >= 0 && t.Offset+t.First == arc:
		return t.Index, true
	case t.Second >= 0 && t.Offset+t.Second == arc:
		return 0, true
	default:
		return 0, false
	}
}

// arcs returns the absolute arc indices of the tag, −1 for unused slots.
func (t ZTag) arcs() [2]int {
	out := [2]int{-1, -1}
	if t.First >= 0 {
		out[0] = t.Offset + t.First
	}
	if t.Second >= 0 {
		out[1] = t.Offset + t.Second
	}
	return out
}

type provenanceArc struct {
	arc Arc
	// Number of lines the arc was flattened to.
	steps int
}

// ArcProvenance is the side buffer that accompanies paths exported with
// [Chain.ConvertToClipper2]. It owns the exported arcs and the tags that
// the paths' Z values refer to. Buffers of separately exported paths are
// combined with [ArcProvenance.Merge], which rebases all indices.
type ArcProvenance struct {
	tags     []ZTag
	arcs     []provenanceArc
	maxError float64
}

// NewArcProvenance returns an empty buffer for exports that flatten arcs to
// within maxError.
func NewArcProvenance(maxError float64) (*ArcProvenance, error) {
	if maxError <= roundingSlack || math.IsNaN(maxError) {
		return nil, fmt.Errorf("provenance with max error %g: %w", maxError, ErrToleranceUnreachable)
	}
	return &ArcProvenance{maxError: maxError}, nil
}

func (p *ArcProvenance) MaxError() float64 { return p.maxError }

// ArcCount returns the number of exported arcs.
func (p *ArcProvenance) ArcCount() int { return len(p.arcs) }

// Arc returns the exported arc with absolute index i.
func (p *ArcProvenance) Arc(i int) (Arc, error) {
	if i < 0 || i >= len(p.arcs) {
		return Arc{}, fmt.Errorf("provenance arc %d of %d: %w", i, len(p.arcs), ErrIndexOutOfRange)
	}
	return p.arcs[i].arc, nil
}

// Tag returns the tag that a Z value refers to.
func (p *ArcProvenance) Tag(z int64) (ZTag, bool) {
	if z <= 0 || z > int64(len(p.tags)) {
		return ZTag{}, false
	}
	return p.tags[z-1], true
}

// Merge moves the contents of o into p. The Z values of paths, which must
// have been exported with o, are rebased in place to refer to p. o is
// empty afterwards.
func (p *ArcProvenance) Merge(o *ArcProvenance, paths ...Path64) {
	tagBase := int64(len(p.tags))
	arcBase := len(p.arcs)
	for _, t := range o.tags {
		t.Offset += arcBase
		p.tags = append(p.tags, t)
	}
	p.arcs = append(p.arcs, o.arcs...)
	for _, path := range paths {
		for i := range path {
			if path[i].Z != 0 {
				path[i].Z += tagBase
			}
		}
	}
	o.tags, o.arcs = nil, nil
}

// exportSamples flattens a for export. Arcs are split at least once, so
// that no edge of a path joins the two ends of an arc directly and a chord
// between them is never mistaken for the arc.
func exportSamples(a Arc, maxError float64) ([]Point, error) {
	pts, err := a.Polyline(maxError)
	if err != nil {
		return nil, err
	}
	if len(pts) == 2 {
		pts = []Point{a.Start, a.EvalPoint(0.5), a.End}
	}
	return pts, nil
}

// ConvertToClipper2 flattens the chain into a path for a clipping engine,
// recording in buf which arc every vertex was sampled from. The path's
// orientation is made positive (counter-clockwise in a y-up coordinate
// system) if requiredOrientation is set and negative otherwise. On error,
// buf is unchanged.
func (c *Chain) ConvertToClipper2(requiredOrientation bool, buf *ArcProvenance) (Path64, error) {
	base := len(buf.arcs)
	var arcs []provenanceArc
	samples := make([][]Point, len(c.segs))
	arcNo := make([]int, len(c.segs))
	for i, s := range c.segs {
		arcNo[i] = -1
		if !s.IsArc() {
			continue
		}
		a := s.Arc()
		pts, err := exportSamples(a, buf.maxError)
		if err != nil {
			return nil, err
		}
		arcNo[i] = len(arcs)
		samples[i] = pts
		arcs = append(arcs, provenanceArc{arc: a, steps: len(pts) - 1})
	}
	// last returns the final sample number of segment i's arc.
	last := func(i int) int {
		if arcNo[i] < 0 {
			return 0
		}
		return arcs[arcNo[i]].steps
	}

	var path Path64
	var tags []ZTag
	emit := func(pt Point, first, second, index int) {
		var z int64
		if first >= 0 || second >= 0 {
			tags = append(tags, ZTag{First: first, Second: second, Index: index, Offset: base})
			z = int64(len(buf.tags) + len(tags))
		}
		path = append(path, Point64{pt.X, pt.Y, z})
	}
	if len(c.segs) == 0 && c.hasFirstPoint {
		emit(c.first, -1, -1, 0)
	}
	for i, s := range c.segs {
		in, index := -1, 0
		if i > 0 {
			in, index = arcNo[i-1], last(i-1)
		} else if c.closed {
			in, index = arcNo[len(c.segs)-1], last(len(c.segs)-1)
		}
		emit(s.P0, in, arcNo[i], index)
		if pts := samples[i]; pts != nil {
			for k, pt := range pts[1 : len(pts)-1] {
				emit(pt, arcNo[i], -1, k+1)
			}
		}
	}
	if n := len(c.segs); n > 0 && !c.closed {
		emit(c.segs[n-1].P1, arcNo[n-1], -1, last(n-1))
	}

	if a := path.signedArea(); a != 0 && (a > 0) != requiredOrientation {
		slices.Reverse(path)
	}
	buf.arcs = append(buf.arcs, arcs...)
	buf.tags = append(buf.tags, tags...)
	return path, nil
}

// run labels a path edge with the arc it was sampled from, and the
// direction in which it travels along that arc.
type run struct {
	arc int
	dir int
}

// edgeRun returns the arc of which a and b are consecutive samples.
func (p *ArcProvenance) edgeRun(a, b Point64) run {
	ta, ok := p.Tag(a.Z)
	if !ok {
		return run{-1, 0}
	}
	tb, ok := p.Tag(b.Z)
	if !ok {
		return run{-1, 0}
	}
	for _, cand := range ta.arcs() {
		if cand < 0 {
			continue
		}
		ia, _ := ta.sample(cand)
		ib, ok := tb.sample(cand)
		if !ok {
			continue
		}
		switch ib - ia {
		case 1:
			return run{cand, 1}
		case -1:
			return run{cand, -1}
		}
	}
	return run{-1, 0}
}

// NewChainFromClipper2 builds a closed chain from a path returned by a
// clipping engine. Wherever consecutive vertices were sampled one after
// another from the same arc in buf, the arc is restored between the first
// and the last of them. Other edges, such as those introduced by clipping,
// become lines.
func NewChainFromClipper2(path Path64, buf *ArcProvenance) (*Chain, error) {
	n := len(path)
	if n < 2 {
		return nil, fmt.Errorf("path of %d points: %w", n, ErrTooFewPoints)
	}
	runs := make([]run, n)
	for k := range path {
		runs[k] = buf.edgeRun(path[k], path[(k+1)%n])
	}

	// Start at an edge that begins a run, so that no run wraps around.
	// Sample numbers change along every run, so one always exists.
	start := 0
	for k := range runs {
		prev := runs[(k-1+n)%n]
		if runs[k].arc < 0 || runs[k] != prev {
			start = k
			break
		}
	}

	vertex := func(k int) Point64 { return path[(start+k)%n] }
	pt := func(k int) Point {
		p := vertex(k)
		return Point{p.X, p.Y}
	}
	b := &pathBuilder{cur: pt(0)}
	for k := 0; k < n; {
		r := runs[(start+k)%n]
		end := k + 1
		for end < n && runs[(start+end)%n] == r {
			end++
		}
		if r.arc >= 0 {
			pa := buf.arcs[r.arc]
			t0, _ := buf.tags[vertex(k).Z-1].sample(r.arc)
			t1, _ := buf.tags[vertex(end).Z-1].sample(r.arc)
			if s, ok := restoreArc(pa, t0, t1, pt(k), pt(end)); ok {
				b.segTo(s)
				k = end
				continue
			}
			Logger().Debug("provenance run rejected", "arc", r.arc, "from", pt(k), "to", pt(end))
		}
		for ; k < end; k++ {
			b.lineTo(pt(k + 1))
		}
	}
	c := &Chain{segs: b.segs, closed: true}
	if err := checkClosed(c.segs); err != nil {
		return nil, err
	}
	return c, nil
}

// restoreArc returns the part of pa between its samples i0 and i1, which
// lie at from and to.
func restoreArc(pa provenanceArc, i0, i1 int, from, to Point) (Segment, bool) {
	a := pa.arc
	switch {
	case i0 == 0 && i1 == pa.steps:
		return a.Seg(), true
	case i0 == pa.steps && i1 == 0:
		return a.Reversed().Seg(), true
	}
	t := float64(i0+i1) / float64(2*pa.steps)
	sub := Arc{from, a.EvalPoint(t), to}
	if !sub.IsValid() {
		return Segment{}, false
	}
	return sub.Seg(), true
}
