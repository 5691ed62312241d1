package shape

import (
	"iter"
	"math"
)

// SplitArclen cuts the chain into open chains of arc length l. The last
// piece holds the remainder and may be shorter. Lengths below one unit
// can't be represented on the grid; for them, and for chains without
// segments, the chain is yielded uncut.
func (c *Chain) SplitArclen(l float64) iter.Seq[*Chain] {
	return c.splitArclenMaxGroups(l, -1)
}

// SplitN cuts the chain into n open chains of equal arc length, up to the
// rounding of the cut points to the grid.
func (c *Chain) SplitN(n int) iter.Seq[*Chain] {
	if n <= 1 {
		return c.splitArclenMaxGroups(0, -1)
	}
	return c.splitArclenMaxGroups(c.Length()/float64(n), n)
}

func (c *Chain) splitArclenMaxGroups(l float64, n int) iter.Seq[*Chain] {
	return func(yield func(*Chain) bool) {
		if len(c.segs) == 0 {
			return
		}
		if l < 1 || math.IsInf(l, 0) || math.IsNaN(l) {
			open := &Chain{segs: c.Clone().segs, width: c.width}
			yield(open)
			return
		}

		// We cannot rely on the accumulated lengths alone to end the last
		// group because the cut points are rounded; with n groups, the last
		// one takes whatever is left.
		remainingLength := l
		remainingGroups := n
		cur := &Chain{width: c.width}
		for _, seg := range c.segs {
			for {
				a := seg.Length()
				if a < remainingLength || remainingGroups == 1 {
					remainingLength -= a
					cur.segs = append(cur.segs, seg)
					break
				}
				// Both lines and arcs are parametrized proportionally to
				// their length.
				t := remainingLength / a
				head, tail := seg.Subsegment(0, t), seg.Subsegment(t, 1)
				if head.P0 != head.P1 {
					cur.segs = append(cur.segs, head)
				}
				if len(cur.segs) > 0 {
					if !yield(cur) {
						return
					}
				}
				cur = &Chain{width: c.width}
				if remainingGroups > 0 {
					remainingGroups--
				}
				remainingLength = l
				if t >= 1 || tail.P0 == tail.P1 {
					break
				}
				seg = tail
			}
		}
		if len(cur.segs) > 0 {
			yield(cur)
		}
	}
}

// Split inserts a point at pt if it lies on the chain, splitting the line or
// arc it lies on, and returns the index of the point at pt. If pt already is
// one of the chain's points, the chain is unchanged.
func (c *Chain) Split(pt Point) (int, bool) {
	if i, ok := c.Find(pt, 0); ok {
		return i, true
	}
	for i, s := range c.segs {
		if s.IsArc() {
			if ok, _ := c.SplitArcSegment(i, pt, true); ok {
				return i + 1, true
			}
			continue
		}
		if s.Distance(pt) > roundingSlack {
			continue
		}
		if err := c.Insert(i+1, pt); err != nil {
			return 0, false
		}
		return i + 1, true
	}
	return 0, false
}
