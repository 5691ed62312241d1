package shape

import (
	"errors"
	"fmt"
	"math"

	polyclip "github.com/ctessum/polyclip-go"
)

// BoolOp is a boolean operation on areas.
type BoolOp int

const (
	// The area covered by either operand.
	BoolUnion BoolOp = iota
	// The area covered by both operands.
	BoolIntersection
	// The area covered by the subject but not by the clip.
	BoolDifference
	// The area covered by exactly one of the operands.
	BoolXor
)

func (op BoolOp) String() string {
	switch op {
	case BoolUnion:
		return "union"
	case BoolIntersection:
		return "intersection"
	case BoolDifference:
		return "difference"
	case BoolXor:
		return "xor"
	default:
		return fmt.Sprintf("BoolOp(%d)", int(op))
	}
}

func (op BoolOp) polyclip() (polyclip.Op, bool) {
	switch op {
	case BoolUnion:
		return polyclip.UNION, true
	case BoolIntersection:
		return polyclip.INTERSECTION, true
	case BoolDifference:
		return polyclip.DIFFERENCE, true
	case BoolXor:
		return polyclip.XOR, true
	default:
		return 0, false
	}
}

// exportAll converts closed chains to paths, recording provenance in a new
// buffer.
func exportAll(chains []*Chain, maxError float64) ([]Path64, *ArcProvenance, error) {
	buf, err := NewArcProvenance(maxError)
	if err != nil {
		return nil, nil, err
	}
	paths := make([]Path64, 0, len(chains))
	for i, c := range chains {
		if !c.closed {
			return nil, nil, fmt.Errorf("boolean operand %d: %w", i, ErrNotClosed)
		}
		path, err := c.ConvertToClipper2(true, buf)
		if err != nil {
			return nil, nil, fmt.Errorf("boolean operand %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, buf, nil
}

type xy struct{ x, y int64 }

func toPolyclip(paths []Path64, zs map[xy]int64) polyclip.Polygon {
	poly := make(polyclip.Polygon, 0, len(paths))
	for _, path := range paths {
		contour := make(polyclip.Contour, len(path))
		for i, p := range path {
			contour[i] = polyclip.Point{X: float64(p.X), Y: float64(p.Y)}
			if k := (xy{p.X, p.Y}); zs[k] == 0 {
				zs[k] = p.Z
			}
		}
		poly = append(poly, contour)
	}
	return poly
}

// Boolean computes subject op clip on the areas enclosed by closed chains
// and returns the outlines of the result, holes included. Arcs of the
// operands are restored wherever the result follows them; arcs are
// flattened to within maxError for the computation.
func Boolean(op BoolOp, subject, clip []*Chain, maxError float64) ([]*Chain, error) {
	pop, ok := op.polyclip()
	if !ok {
		return nil, fmt.Errorf("unknown boolean operation %v", op)
	}
	spaths, buf, err := exportAll(subject, maxError)
	if err != nil {
		return nil, err
	}
	cpaths, cbuf, err := exportAll(clip, maxError)
	if err != nil {
		return nil, err
	}
	buf.Merge(cbuf, cpaths...)

	// Vertices that survive clipping keep their exact coordinates, which
	// is how their provenance is found again.
	zs := map[xy]int64{}
	result := toPolyclip(spaths, zs).Construct(pop, toPolyclip(cpaths, zs))

	var out []*Chain
	for _, contour := range result {
		path := make(Path64, len(contour))
		for i, p := range contour {
			x, y := int64(math.Round(p.X)), int64(math.Round(p.Y))
			path[i] = Point64{X: x, Y: y, Z: zs[xy{x, y}]}
		}
		c, err := NewChainFromClipper2(path, buf)
		if errors.Is(err, ErrTooFewPoints) {
			Logger().Debug("dropping degenerate boolean contour", "points", len(path))
			continue
		} else if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
