// Package shape provides a geometry kernel for outlines made of lines and
// circular arcs on an integer grid. It is meant for the outlines found in
// printed circuit board design, such as tracks, copper zones and board
// edges, but has no knowledge of any of them.
//
// # Chains
//
// The central type is [Chain], an ordered sequence of connected segments
// that is either open or closed. Each [Segment] is either a [Line] or an
// [Arc]; arcs are defined by three grid points, which fix their center,
// radius and direction of travel.
//
// A chain stores its segments and nothing else. Points are a derived view:
// [Chain.Point] returns the start of a segment, or the end of the last
// segment of an open chain. Edits address points by index, and arcs that an
// edit breaks apart turn into lines. Edits that would leave the chain in an
// invalid state fail without changing it.
//
// # Coordinates
//
// All stored coordinates are integers. Floating point numbers are used for
// transcendental arc math and for derived quantities such as arc centers,
// see [Vec2]. Results that become stored geometry are rounded to the grid,
// and tolerances account for that rounding.
//
// # Features
//
// We provide the following notable features:
//
//   - Nearest points, path lengths and collision tests (see [Chain.NearestPoint], [Chain.Collide])
//   - Intersections between and within chains (see [Chain.Intersect], [Chain.SelfIntersecting])
//   - Offsetting with a choice of corner treatment (see [Chain.OffsetLine])
//   - Simplification (see [Chain.Simplify], [Chain.SimplifyTolerance])
//   - Boolean operations that keep arcs (see [Boolean])
//   - Exchange with polygon clipping engines (see [Chain.ConvertToClipper2], [NewChainFromClipper2])
//   - Conversion to polygons (see [Chain.TransformToPolygon])
//   - A textual format (see [Parse])
//
// # Arcs across clipping
//
// Polygon clipping engines only know straight edges. Before clipping, arcs
// are flattened, and each vertex of the flattened path records in its Z
// value which arcs it was sampled from. The records live in an
// [ArcProvenance] buffer. After clipping, runs of vertices sampled one after
// another from the same arc are replaced by that arc again.
//
// # Orientation
//
// Positive sweeps and positive areas are counter-clockwise in a y-up
// coordinate system, and thus clockwise when y points down, as it usually
// does on screen.
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package shape
