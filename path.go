package pathlen

import (
	"iter"
)

// PathPoint is one anchor on a path, together with its incoming and
// outgoing control handles. Handles are absolute coordinates; a handle that
// coincides with its anchor exerts no curvature on the adjacent segment.
type PathPoint struct {
	Anchor Point
	// In is the control handle of the segment arriving at the anchor.
	In Point
	// Out is the control handle of the segment leaving the anchor.
	Out Point
}

// CornerPoint returns a path point with both handles retracted onto the
// anchor. A segment between two corner points is exactly the straight line
// between their anchors.
func CornerPoint(pt Point) PathPoint {
	return PathPoint{Anchor: pt, In: pt, Out: pt}
}

// Path is an ordered sequence of anchor points. Consecutive anchors are
// joined by cubic Bézier segments; if Closed is set, an additional segment
// joins the last anchor back to the first. The measurement routines never
// mutate a path.
type Path struct {
	Points []PathPoint
	Closed bool
}

// SegmentCount returns the number of Bézier segments the path consists of.
// A path with fewer than two points has no segments.
func (p Path) SegmentCount() int {
	if len(p.Points) < 2 {
		return 0
	}
	if p.Closed {
		return len(p.Points)
	}
	return len(p.Points) - 1
}

// Segments returns an iterator over the path's cubic Bézier segments, in
// path order. Each segment is built from a pair of consecutive points as
// (a.Anchor, a.Out, b.In, b.Anchor); for a closed path the final segment
// wraps from the last point back to the first.
func (p Path) Segments() iter.Seq[CubicBez] {
	return func(yield func(CubicBez) bool) {
		if len(p.Points) < 2 {
			return
		}
		for j := 0; j < len(p.Points)-1; j++ {
			if !yield(segmentBetween(p.Points[j], p.Points[j+1])) {
				return
			}
		}
		if p.Closed {
			yield(segmentBetween(p.Points[len(p.Points)-1], p.Points[0]))
		}
	}
}

func segmentBetween(a, b PathPoint) CubicBez {
	return CubicBez{a.Anchor, a.Out, b.In, b.Anchor}
}

// Arclen returns the total arc length of the path, the sum of its segments'
// arc lengths (see [CubicBez.Arclen]). A path with fewer than two points
// has length 0. divisions must be positive and even; otherwise
// [ErrInvalidDivisions] is returned.
func (p Path) Arclen(divisions int) (float64, error) {
	if err := checkDivisions(divisions); err != nil {
		return 0, err
	}
	var total float64
	for seg := range p.Segments() {
		total += seg.arclen(divisions)
	}
	return total, nil
}
