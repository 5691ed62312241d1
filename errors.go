package shape

import "errors"

var (
	// ErrIndexOutOfRange is returned when a point, segment or arc index does
	// not address an element of the chain.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTooFewPoints is returned when an edit would leave a chain with fewer
	// points than its open/closed state can represent.
	ErrTooFewPoints = errors.New("too few points")

	// ErrMalformedArc is returned for arcs with collinear or coincident
	// defining points.
	ErrMalformedArc = errors.New("malformed arc")

	// ErrNotArc is returned when an arc operation addresses a line segment.
	ErrNotArc = errors.New("segment is not an arc")

	// ErrNotClosed is returned when an operation on areas is given an open
	// chain.
	ErrNotClosed = errors.New("chain is not closed")

	// ErrToleranceUnreachable is returned when an approximation can't be
	// produced within the requested maximum error.
	ErrToleranceUnreachable = errors.New("tolerance cannot be met")

	// ErrSyntax is returned by [Parse] for malformed input.
	ErrSyntax = errors.New("syntax error")
)
