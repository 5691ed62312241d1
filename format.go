package shape

import (
	"fmt"
	"strconv"
	"strings"
)

// String returns a textual description of the chain that [Parse] turns back
// into an identical chain. The grammar is
//
//	chain (open|closed) width W [start X Y {line X Y | arc MX MY X Y}]
//
// where each line or arc continues from the end of the previous segment and
// an arc names its mid point before its end point. The closing segment of a
// closed chain is written like any other.
func (c *Chain) String() string {
	var sb strings.Builder
	state := "open"
	if c.closed {
		state = "closed"
	}
	fmt.Fprintf(&sb, "chain %s width %d", state, c.width)
	if c.PointCount() == 0 {
		return sb.String()
	}
	start := c.pt(0)
	fmt.Fprintf(&sb, " start %d %d", start.X, start.Y)
	for _, s := range c.segs {
		if s.IsArc() {
			fmt.Fprintf(&sb, " arc %d %d %d %d", s.Mid.X, s.Mid.Y, s.P1.X, s.P1.Y)
		} else {
			fmt.Fprintf(&sb, " line %d %d", s.P1.X, s.P1.Y)
		}
	}
	return sb.String()
}

func (c *Chain) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Chain) UnmarshalText(b []byte) error {
	o, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = *o
	return nil
}

type tokens struct {
	fields []string
	pos    int
}

func (t *tokens) done() bool { return t.pos >= len(t.fields) }

func (t *tokens) next() (string, error) {
	if t.done() {
		return "", fmt.Errorf("unexpected end of input: %w", ErrSyntax)
	}
	t.pos++
	return t.fields[t.pos-1], nil
}

func (t *tokens) keyword(want string) error {
	tok, err := t.next()
	if err != nil {
		return err
	}
	if tok != want {
		return fmt.Errorf("token %d: expected %q, got %q: %w", t.pos, want, tok, ErrSyntax)
	}
	return nil
}

func (t *tokens) int() (int64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token %d: %q is not an integer: %w", t.pos, tok, ErrSyntax)
	}
	return v, nil
}

func (t *tokens) point() (Point, error) {
	x, err := t.int()
	if err != nil {
		return Point{}, err
	}
	y, err := t.int()
	if err != nil {
		return Point{}, err
	}
	return Point{x, y}, nil
}

// Parse reads a chain in the format produced by [Chain.String]. Segments
// are taken as written; zero-length lines are kept. It fails with
// [ErrSyntax] for malformed input and [ErrMalformedArc] for arcs whose
// points don't define a circle.
func Parse(s string) (*Chain, error) {
	c, err := parse(&tokens{fields: strings.Fields(s)})
	if err != nil {
		Logger().Debug("parsing chain failed", "err", err)
		return nil, err
	}
	return c, nil
}

func parse(t *tokens) (*Chain, error) {
	if err := t.keyword("chain"); err != nil {
		return nil, err
	}
	state, err := t.next()
	if err != nil {
		return nil, err
	}
	c := &Chain{}
	switch state {
	case "open":
	case "closed":
		c.closed = true
	default:
		return nil, fmt.Errorf("token %d: expected open or closed, got %q: %w", t.pos, state, ErrSyntax)
	}
	if err := t.keyword("width"); err != nil {
		return nil, err
	}
	if c.width, err = t.int(); err != nil {
		return nil, err
	}
	if t.done() {
		if c.closed {
			return nil, fmt.Errorf("empty closed chain: %w", ErrTooFewPoints)
		}
		return c, nil
	}
	if err := t.keyword("start"); err != nil {
		return nil, err
	}
	start, err := t.point()
	if err != nil {
		return nil, err
	}
	cur := start
	for !t.done() {
		kind, _ := t.next()
		switch kind {
		case "line":
			p, err := t.point()
			if err != nil {
				return nil, err
			}
			c.segs = append(c.segs, Line{cur, p}.Seg())
			cur = p
		case "arc":
			mid, err := t.point()
			if err != nil {
				return nil, err
			}
			end, err := t.point()
			if err != nil {
				return nil, err
			}
			a, err := NewArc(cur, mid, end)
			if err != nil {
				return nil, err
			}
			c.segs = append(c.segs, a.Seg())
			cur = end
		default:
			return nil, fmt.Errorf("token %d: expected line or arc, got %q: %w", t.pos, kind, ErrSyntax)
		}
	}
	if len(c.segs) == 0 {
		if c.closed {
			return nil, fmt.Errorf("closed chain of one point: %w", ErrTooFewPoints)
		}
		c.first, c.hasFirstPoint = start, true
		return c, nil
	}
	if c.closed {
		if cur != start {
			return nil, fmt.Errorf("closed chain ends at %v, not at its start %v: %w", cur, start, ErrSyntax)
		}
		if err := checkClosed(c.segs); err != nil {
			return nil, err
		}
	}
	return c, nil
}
