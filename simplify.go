package shape

import (
	"math"

	"github.com/ctessum/geom"
)

// Simplify removes zero-length lines and merges consecutive lines that
// continue in the same direction. Arcs are kept as they are. If the result
// would be too small to stay closed, the chain is left unchanged and an
// error is returned.
func (c *Chain) Simplify() error {
	ns := c.nodes()
	if len(ns) < 2 {
		return nil
	}
	out := make([]node, 0, len(ns))
	for _, nd := range ns {
		if len(out) > 0 && out[len(out)-1].pt == nd.pt {
			// Zero-length segment; keep the outgoing segment of the later
			// node.
			out[len(out)-1].out = nd.out
			continue
		}
		out = append(out, nd)
	}
	if c.closed && len(out) > 1 && out[len(out)-1].pt == out[0].pt {
		out = out[:len(out)-1]
	}
	out = mergeColinear(out, c.closed)
	return c.commit(out, c.closed)
}

// mergeColinear drops nodes between two lines that continue in the same
// direction.
func mergeColinear(ns []node, closed bool) []node {
	for changed := true; changed && len(ns) > 2; {
		changed = false
		n := len(ns)
		for k := 0; k < n; k++ {
			if !closed && (k == 0 || k == n-1) {
				continue
			}
			prev, next := ns[(k-1+n)%n], ns[(k+1)%n]
			if prev.out.P0 == prev.pt && prev.out.P1 == ns[k].pt && prev.out.IsArc() {
				continue
			}
			if ns[k].out.P0 == ns[k].pt && ns[k].out.P1 == next.pt && ns[k].out.IsArc() {
				continue
			}
			l := Line{prev.pt, next.pt}
			d1 := ns[k].pt.Sub(prev.pt)
			d2 := next.pt.Sub(ns[k].pt)
			if l.Side(ns[k].pt) != 0 || dotInt(d1, d2) <= 0 {
				continue
			}
			ns = append(ns[:k], ns[k+1:]...)
			changed = true
			break
		}
	}
	return ns
}

// RemoveDuplicatePoints removes zero-length lines, such as those added by
// [Chain.AppendDuplicate].
func (c *Chain) RemoveDuplicatePoints() error {
	ns := c.nodes()
	out := make([]node, 0, len(ns))
	for _, nd := range ns {
		if len(out) > 0 && out[len(out)-1].pt == nd.pt {
			out[len(out)-1].out = nd.out
			continue
		}
		out = append(out, nd)
	}
	if c.closed && len(out) > 1 && out[len(out)-1].pt == out[0].pt {
		out = out[:len(out)-1]
	}
	return c.commit(out, c.closed)
}

// SimplifyTolerance removes points from runs of lines such that the result
// deviates from the original by at most tolerance, without introducing
// self-intersections within a run. Arcs and the points where runs meet arcs
// are kept.
func (c *Chain) SimplifyTolerance(tolerance float64) error {
	if len(c.segs) == 0 || tolerance <= 0 {
		return nil
	}
	ns := c.nodes()
	start := 0
	if c.closed {
		// Start at an arc so that no run of lines wraps around.
		for k, nd := range ns {
			if nd.out.IsArc() {
				start = k
				break
			}
		}
		ns = append(ns[start:], ns[:start]...)
		// Close the ring so that the last run ends at the first point.
		ns = append(ns, node{pt: ns[0].pt})
	}

	var out []node
	for k := 0; k < len(ns); {
		if ns[k].out.IsArc() || k == len(ns)-1 {
			out = append(out, ns[k])
			k++
			continue
		}
		end := k + 1
		for end < len(ns)-1 && !ns[end].out.IsArc() {
			end++
		}
		run := make(geom.LineString, 0, end-k+1)
		for _, nd := range ns[k : end+1] {
			run = append(run, geom.Point{X: float64(nd.pt.X), Y: float64(nd.pt.Y)})
		}
		simple := run.Simplify(tolerance).(geom.LineString)
		for _, p := range simple[:len(simple)-1] {
			out = append(out, node{pt: Point{int64(math.Round(p.X)), int64(math.Round(p.Y))}})
		}
		k = end
	}
	if c.closed {
		out = out[:len(out)-1]
	}
	return c.commit(out, c.closed)
}
