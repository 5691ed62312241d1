package shape

import (
	"fmt"
	"slices"
)

// FlipDirection selects the axis of [Chain.Mirror].
type FlipDirection int

const (
	// Mirror across the vertical line through the reference point.
	FlipLeftRight FlipDirection = iota
	// Mirror across the horizontal line through the reference point.
	FlipTopBottom
)

// Move translates the chain by v.
func (c *Chain) Move(v Point) {
	for i, s := range c.segs {
		c.segs[i] = s.Translate(v)
	}
	c.first = c.first.Add(v)
	c.markStale()
}

// Transform applies aff to the chain's points, rounding to the grid. Arcs
// whose defining points become collinear turn into lines.
func (c *Chain) Transform(aff Affine) {
	for i, s := range c.segs {
		s = s.Transform(aff)
		if s.IsArc() && !s.Arc().IsValid() {
			s = s.Line().Seg()
		}
		c.segs[i] = s
	}
	c.first = aff.Apply(c.first)
	c.markStale()
}

// Rotate rotates the chain by angle radians about center.
func (c *Chain) Rotate(angle float64, center Point) {
	c.Transform(RotateAbout(angle, center))
}

// Mirror reflects the chain across an axis through ref. Reflection
// reverses the direction of travel of arcs, and the orientation of closed
// chains.
func (c *Chain) Mirror(ref Point, dir FlipDirection) {
	axis := Vec(0, 1)
	if dir == FlipTopBottom {
		axis = Vec(1, 0)
	}
	c.Transform(Reflect(ref, axis))
}

// Reverse reverses the direction of travel. The first point of a closed
// chain stays first.
func (c *Chain) Reverse() {
	slices.Reverse(c.segs)
	for i, s := range c.segs {
		c.segs[i] = s.Reversed()
	}
	c.markStale()
}

// Slice returns an open chain of the points start through end, inclusive.
// A negative end counts from the end of the chain. For closed chains, end
// may equal PointCount to include the closing segment.
func (c *Chain) Slice(start, end int) (*Chain, error) {
	n := c.PointCount()
	limit := n - 1
	if c.closed {
		limit = n
	}
	if end < 0 {
		end += n
	}
	if start < 0 || end > limit || start > end {
		return nil, fmt.Errorf("slicing points %d to %d of %d: %w", start, end, n, ErrIndexOutOfRange)
	}
	out := &Chain{width: c.width}
	if start == end {
		out.first, out.hasFirstPoint = c.pt(start%max(n, 1)), true
		return out, nil
	}
	out.segs = slices.Clone(c.segs[start:end])
	return out, nil
}
