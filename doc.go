// Package pathlen measures the arc length of cubic Bézier paths.
//
// Paths are modeled the way vector-drawing applications model them: an
// ordered sequence of anchor points, each with an incoming and an outgoing
// control handle, plus a closed flag (see [Path] and [PathPoint]). Every
// consecutive pair of anchors defines one cubic Bézier segment; a closed
// path contributes one additional wrap-around segment from the last anchor
// back to the first.
//
// # Arc length
//
// Segment lengths are computed by integrating the curve's speed function
// with Simpson's composite rule (see [CubicBez.Arclen]). The squared speed
// of a cubic Bézier is a quartic polynomial in the curve parameter, so a
// single polynomial evaluation and a square root per sample point suffice.
// The subdivision count trades compute time for accuracy; [DefaultDivisions]
// gives sub-unit accuracy for typical document-scale paths. Degenerate
// segments are safe: a negative or NaN radicand is clamped to zero instead
// of propagating NaN into the sum.
//
// # Item trees
//
// Drawing documents nest paths inside groups and compound paths. [Item] is a
// tagged union over the three kinds, and [Collect] flattens an item tree
// into the measurable simple paths, depth first, excluding guides, clipping
// paths, and degenerate paths. [Measure] combines collection, measurement,
// and totaling into one call, configured by an immutable [Config] value.
//
// # SVG path data
//
// [ParsePathData] converts SVG path data (the "d" attribute) into paths,
// including elliptical arcs, which are approximated with cubic segments.
// [PathData] renders a path back to path data.
//
// Lengths are reported in the coordinate space's native unit, conventionally
// PostScript points; [Unit] converts to millimeters, centimeters, inches, or
// pixels for display, and [FormatLength] formats values with a fixed number
// of decimals and trailing zeros trimmed.
package pathlen
