package shape

import (
	"fmt"
	"math"
	"slices"

	"github.com/ctessum/geom"
)

// ErrorLocation selects on which side of a closed chain's outline the
// error of flattening its arcs may lie.
type ErrorLocation int

const (
	// The polygon lies inside the chain's area; flattened arcs cut corners.
	ErrorInside ErrorLocation = iota
	// The polygon encloses the chain's area.
	ErrorOutside
	// The polygon straddles the outline, halving the worst deviation for a
	// given number of vertices.
	ErrorCenter
)

func (loc ErrorLocation) String() string {
	switch loc {
	case ErrorInside:
		return "inside"
	case ErrorOutside:
		return "outside"
	case ErrorCenter:
		return "center"
	default:
		return fmt.Sprintf("ErrorLocation(%d)", int(loc))
	}
}

type flattenMode int

const (
	// Vertices on the circle; the polyline lies inside it.
	flattenChord flattenMode = iota
	// Edges tangent to the circle; the polyline lies outside it.
	flattenTangent
	// Vertices just outside the circle, edges dipping inside it.
	flattenCenter
)

// flattenBiased returns the interior vertices of a polyline that
// approximates a to within maxError, with the error on the side selected by
// mode. The end points are not included.
func flattenBiased(a Arc, maxError float64, mode flattenMode) ([]geom.Point, error) {
	r := a.Radius()
	b := maxError
	var limit float64
	switch mode {
	case flattenChord:
		limit = 1 - b/r
	case flattenTangent:
		limit = r / (r + b)
	case flattenCenter:
		limit = (r - b) / (r + b)
	}
	half := math.Acos(max(-1, min(1, limit)))
	if half == 0 {
		return nil, fmt.Errorf("flattening radius %g with max error %g: %w", r, maxError, ErrToleranceUnreachable)
	}
	sweep := a.Sweep()
	n := math.Ceil(math.Abs(sweep) / (2 * half))
	if n > maxArcSegments {
		return nil, fmt.Errorf("flattening radius %g with max error %g: %w", r, maxError, ErrToleranceUnreachable)
	}
	steps := max(1, int(n))
	th := sweep / float64(steps)
	c := a.Center()
	v := a.Start.Vec().Sub(c)

	var out []geom.Point
	add := func(angle, radius float64) {
		p := c.Add(v.Normalize().Mul(radius).Rotate(angle))
		out = append(out, geom.Point{X: p.X, Y: p.Y})
	}
	switch mode {
	case flattenChord:
		for k := 1; k < steps; k++ {
			add(float64(k)*th, r)
		}
	case flattenTangent:
		rt := r / math.Cos(th/2)
		for k := range steps {
			add((float64(k)+0.5)*th, rt)
		}
	case flattenCenter:
		rc := 2 * r / (1 + math.Cos(th/2))
		for k := 1; k < steps; k++ {
			add(float64(k)*th, rc)
		}
	}
	return out, nil
}

// ring flattens the chain into a closed ring. The first point is repeated
// at the end.
func (c *Chain) ring(maxError float64, loc ErrorLocation) ([]geom.Point, error) {
	orient := sign(c.SignedArea())
	ring := make([]geom.Point, 0, len(c.segs)+1)
	for _, s := range c.segs {
		ring = append(ring, geom.Point{X: float64(s.P0.X), Y: float64(s.P0.Y)})
		if !s.IsArc() {
			continue
		}
		a := s.Arc()
		// An arc bulges out of the area when it turns the same way as the
		// outline.
		convex := sign(a.Sweep()) == orient
		mode := flattenCenter
		switch loc {
		case ErrorInside:
			mode = flattenTangent
			if convex {
				mode = flattenChord
			}
		case ErrorOutside:
			mode = flattenChord
			if convex {
				mode = flattenTangent
			}
		}
		pts, err := flattenBiased(a, maxError, mode)
		if err != nil {
			return nil, err
		}
		ring = append(ring, pts...)
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

// TransformToPolygon flattens the closed chain into a polygon whose outline
// deviates from the chain by at most maxError, on the side given by loc.
// Lines are reproduced exactly.
func (c *Chain) TransformToPolygon(maxError float64, loc ErrorLocation) (geom.Polygon, error) {
	if !c.closed {
		return nil, fmt.Errorf("converting to polygon: %w", ErrNotClosed)
	}
	if maxError <= 0 || math.IsNaN(maxError) {
		return nil, fmt.Errorf("converting to polygon with max error %g: %w", maxError, ErrToleranceUnreachable)
	}
	r, err := c.ring(maxError, loc)
	if err != nil {
		return nil, err
	}
	return geom.Polygon{r}, nil
}

// encloses reports whether o lies inside c, judged by the first point of o
// that isn't on c's outline.
func (c *Chain) encloses(o *Chain) bool {
	for _, s := range o.segs {
		if c.distance(s.P0) == 0 {
			continue
		}
		return c.Winding(s.P0) != 0
	}
	return false
}

// PolygonSet flattens closed chains into a single polygon with one ring per
// chain. A chain inside an odd number of the others is a hole. Outer rings
// are counter-clockwise and holes clockwise, whatever the orientation of
// their chains. loc refers to the material: for a hole, ErrorInside puts
// the error outside the hole's chain.
func PolygonSet(chains []*Chain, maxError float64, loc ErrorLocation) (geom.Polygon, error) {
	for i, c := range chains {
		if !c.closed {
			return nil, fmt.Errorf("chain %d: converting to polygon: %w", i, ErrNotClosed)
		}
	}
	out := make(geom.Polygon, 0, len(chains))
	for i, c := range chains {
		depth := 0
		for j, o := range chains {
			if j != i && o.Area() > c.Area() && o.encloses(c) {
				depth++
			}
		}
		hole := depth%2 == 1
		l := loc
		if hole {
			switch loc {
			case ErrorInside:
				l = ErrorOutside
			case ErrorOutside:
				l = ErrorInside
			}
		}
		p, err := c.TransformToPolygon(maxError, l)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", i, err)
		}
		ring := p[0]
		if ccw := c.SignedArea() > 0; ccw == hole {
			slices.Reverse(ring)
		}
		out = append(out, ring)
	}
	return out, nil
}
