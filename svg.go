package pathlen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadPathData is returned when SVG path data cannot be parsed.
var ErrBadPathData = errors.New("malformed path data")

// arcTolerance bounds the distance between an elliptical arc and its cubic
// approximation, in coordinate units.
const arcTolerance = 1e-3

// ParsePathData parses SVG path data (the contents of a "d" attribute) and
// returns one [Path] per subpath. Subpaths terminated by Z/z are closed; a
// closing segment that returns exactly to the subpath's start is merged
// into the wrap-around segment instead of leaving a duplicate anchor.
//
// All of M, L, H, V, C, S, Q, T, A, and Z are supported, in absolute and
// relative form. Quadratic segments are raised to cubics; elliptical arcs
// are approximated with cubics to within [arcTolerance].
func ParsePathData(data string) ([]Path, error) {
	p := &pathDataParser{s: data}
	if err := p.run(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadPathData, err)
	}
	return p.paths, nil
}

type pathDataParser struct {
	s   string
	pos int

	paths []Path
	cur   []PathPoint
	start Point // first anchor of the current subpath
	pen   Point

	cmd       byte // current command, for implicit repetition
	cubicCtrl Point
	hasCubic  bool
	quadCtrl  Point
	hasQuad   bool
}

func (p *pathDataParser) run() error {
	p.skipSeparators()
	if p.pos < len(p.s) {
		if c := p.s[p.pos]; c != 'M' && c != 'm' {
			return fmt.Errorf("expected moveto at offset %d, got %q", p.pos, c)
		}
	}
	for {
		p.skipSeparators()
		if p.pos >= len(p.s) {
			break
		}
		c := p.s[p.pos]
		if isPathCommand(c) {
			p.cmd = c
			p.pos++
		} else {
			switch p.cmd {
			// Implicit repetition: extra coordinate pairs after a moveto
			// are treated as linetos.
			case 'M':
				p.cmd = 'L'
			case 'm':
				p.cmd = 'l'
			case 'Z', 'z', 0:
				return fmt.Errorf("expected command at offset %d, got %q", p.pos, c)
			}
		}
		if err := p.apply(); err != nil {
			return err
		}
	}
	p.flush(false)
	return nil
}

func isPathCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func (p *pathDataParser) apply() error {
	rel := p.cmd >= 'a'
	smooth := false
	switch p.cmd {
	case 'M', 'm':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.flush(false)
		p.cur = []PathPoint{CornerPoint(pt)}
		p.start = pt
		p.pen = pt
		p.clearCtrl()

	case 'L', 'l':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.lineTo(pt)

	case 'H', 'h':
		x, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			x += p.pen.X
		}
		p.lineTo(Pt(x, p.pen.Y))

	case 'V', 'v':
		y, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			y += p.pen.Y
		}
		p.lineTo(Pt(p.pen.X, y))

	case 'S', 's':
		smooth = true
		fallthrough
	case 'C', 'c':
		var c1 Point
		var err error
		if smooth {
			c1 = p.reflectedCubicCtrl()
		} else {
			c1, err = p.point(rel)
			if err != nil {
				return err
			}
		}
		c2, err := p.point(rel)
		if err != nil {
			return err
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.cubicTo(c1, c2, pt)

	case 'T', 't':
		smooth = true
		fallthrough
	case 'Q', 'q':
		var q Point
		var err error
		if smooth {
			q = p.reflectedQuadCtrl()
		} else {
			q, err = p.point(rel)
			if err != nil {
				return err
			}
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.quadTo(q, pt)

	case 'A', 'a':
		rx, err := p.number()
		if err != nil {
			return err
		}
		ry, err := p.number()
		if err != nil {
			return err
		}
		deg, err := p.number()
		if err != nil {
			return err
		}
		largeArc, err := p.flag()
		if err != nil {
			return err
		}
		sweep, err := p.flag()
		if err != nil {
			return err
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.arcTo(rx, ry, deg*(math.Pi/180.0), largeArc, sweep, pt)

	case 'Z', 'z':
		p.flush(true)
		p.pen = p.start
		p.clearCtrl()
	}
	return nil
}

// ensure makes sure a subpath is in progress. After a closepath, a drawing
// command starts a new subpath at the previous subpath's initial point.
func (p *pathDataParser) ensure() {
	if p.cur == nil {
		p.cur = []PathPoint{CornerPoint(p.pen)}
		p.start = p.pen
	}
}

func (p *pathDataParser) lineTo(pt Point) {
	p.ensure()
	p.cur = append(p.cur, CornerPoint(pt))
	p.pen = pt
	p.clearCtrl()
}

func (p *pathDataParser) cubicTo(c1, c2, pt Point) {
	p.ensure()
	p.cur[len(p.cur)-1].Out = c1
	p.cur = append(p.cur, PathPoint{Anchor: pt, In: c2, Out: pt})
	p.pen = pt
	p.clearCtrl()
	p.cubicCtrl = c2
	p.hasCubic = true
}

func (p *pathDataParser) quadTo(q, pt Point) {
	// Raise the quadratic to a cubic; the curves are identical.
	c1 := p.pen.Translate(q.Sub(p.pen).Mul(2.0 / 3.0))
	c2 := pt.Translate(q.Sub(pt).Mul(2.0 / 3.0))
	p.cubicTo(c1, c2, pt)
	p.hasCubic = false
	p.quadCtrl = q
	p.hasQuad = true
}

func (p *pathDataParser) reflectedCubicCtrl() Point {
	if !p.hasCubic {
		return p.pen
	}
	return p.pen.Translate(p.pen.Sub(p.cubicCtrl))
}

func (p *pathDataParser) reflectedQuadCtrl() Point {
	if !p.hasQuad {
		return p.pen
	}
	return p.pen.Translate(p.pen.Sub(p.quadCtrl))
}

func (p *pathDataParser) clearCtrl() {
	p.hasCubic = false
	p.hasQuad = false
}

// flush terminates the current subpath, if any, and appends it to the
// result. Closed subpaths whose last anchor coincides with the first are
// merged so that the wrap-around segment carries the closing geometry.
func (p *pathDataParser) flush(closed bool) {
	if p.cur == nil {
		return
	}
	pts := p.cur
	p.cur = nil
	if closed && len(pts) > 1 {
		first, last := pts[0], pts[len(pts)-1]
		if last.Anchor == first.Anchor {
			pts[0].In = last.In
			pts = pts[:len(pts)-1]
		}
	}
	p.paths = append(p.paths, Path{Points: pts, Closed: closed})
}

// arcTo appends an elliptical arc as a run of cubic segments. The endpoint
// parameterization is first converted to a center parameterization, then
// the sweep is subdivided so that each cubic stays within arcTolerance of
// the true ellipse.
func (p *pathDataParser) arcTo(rx, ry, xRotation float64, largeArc, sweep bool, pt Point) {
	if pt == p.pen {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.lineTo(pt)
		return
	}

	// Conversion from endpoint to center parameterization, as specified in
	// SVG 1.1 appendix F.6.5.
	mid := Vec2(p.pen).Sub(Vec2(pt)).Mul(0.5)
	prime := rotatePt(mid, -xRotation)
	x1, y1 := prime.X, prime.Y

	// Out-of-range radii are scaled up until the arc exists.
	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	factor := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		factor = -factor
	}
	cPrime := Vec2{X: factor * rx * y1 / ry, Y: -factor * ry * x1 / rx}
	center := p.pen.Midpoint(pt).Translate(rotatePt(cPrime, xRotation))

	theta1 := Vec2{X: (x1 - cPrime.X) / rx, Y: (y1 - cPrime.Y) / ry}.angle()
	theta2 := Vec2{X: (-x1 - cPrime.X) / rx, Y: (-y1 - cPrime.Y) / ry}.angle()
	dTheta := theta2 - theta1
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	radii := Vec2{X: rx, Y: ry}
	scaledError := math.Max(rx, ry) / arcTolerance
	// Number of subdivisions per full ellipse based on error tolerance.
	nError := math.Max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
	n := int(math.Ceil(nError * math.Abs(dTheta) * (1.0 / (2.0 * math.Pi))))
	angleStep := dTheta / float64(n)
	armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), dTheta)

	angle0 := theta1
	p0 := sampleEllipse(radii, xRotation, angle0)
	for i := range n {
		angle1 := angle0 + angleStep
		c1 := p0.Add(sampleEllipse(radii, xRotation, angle0+math.Pi/2).Mul(armLen))
		p3 := sampleEllipse(radii, xRotation, angle1)
		c2 := p3.Sub(sampleEllipse(radii, xRotation, angle1+math.Pi/2).Mul(armLen))
		end := center.Translate(p3)
		if i == n-1 {
			// Land exactly on the commanded endpoint.
			end = pt
		}
		p.cubicTo(center.Translate(c1), center.Translate(c2), end)
		angle0 = angle1
		p0 = p3
	}
	// Smooth curvetos reflect only C/S control points, not arc internals.
	p.clearCtrl()
}

func (v Vec2) angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// sampleEllipse takes the ellipse radii, how the radii are rotated, and an
// angle, and returns the point on the ellipse relative to its center.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotatePt(Vec2{X: u, Y: v}, xRotation)
}

// rotatePt rotates pt about the origin by angle radians.
func rotatePt(pt Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: pt.X*cos - pt.Y*sin,
		Y: pt.X*sin + pt.Y*cos,
	}
}

func (p *pathDataParser) skipSeparators() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			p.pos++
		default:
			return
		}
	}
}

func (p *pathDataParser) point(rel bool) (Point, error) {
	x, err := p.number()
	if err != nil {
		return Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return Point{}, err
	}
	pt := Pt(x, y)
	if rel {
		pt = pt.Translate(Vec2(p.pen))
	}
	return pt, nil
}

func (p *pathDataParser) number() (float64, error) {
	p.skipSeparators()
	start := p.pos
	i := p.pos
	if i < len(p.s) && (p.s[i] == '+' || p.s[i] == '-') {
		i++
	}
	digits := func() {
		for i < len(p.s) && p.s[i] >= '0' && p.s[i] <= '9' {
			i++
		}
	}
	digits()
	if i < len(p.s) && p.s[i] == '.' {
		i++
		digits()
	}
	if i > start && i < len(p.s) && (p.s[i] == 'e' || p.s[i] == 'E') {
		j := i + 1
		if j < len(p.s) && (p.s[j] == '+' || p.s[j] == '-') {
			j++
		}
		if j < len(p.s) && p.s[j] >= '0' && p.s[j] <= '9' {
			i = j
			digits()
		}
	}
	if i == start {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	v, err := strconv.ParseFloat(p.s[start:i], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q at offset %d", p.s[start:i], start)
	}
	p.pos = i
	return v, nil
}

// flag reads an arc flag. Flags are single characters and, unlike numbers,
// may directly abut the following value.
func (p *pathDataParser) flag() (bool, error) {
	p.skipSeparators()
	if p.pos >= len(p.s) {
		return false, fmt.Errorf("expected flag at offset %d", p.pos)
	}
	switch p.s[p.pos] {
	case '0':
		p.pos++
		return false, nil
	case '1':
		p.pos++
		return true, nil
	default:
		return false, fmt.Errorf("expected flag at offset %d, got %q", p.pos, p.s[p.pos])
	}
}

// PathData converts a path to SVG path data. Straight segments are written
// as linetos, curved ones as curvetos; closed paths end in Z, with an
// explicit curveto back to the start when the wrap-around segment is
// curved.
//
// maxPrecision is the maximum number of decimals used for coordinates. A
// value of 0 chooses the highest precision necessary to unambiguously
// represent any given coordinate.
func PathData(p Path, maxPrecision int) string {
	if len(p.Points) == 0 {
		return ""
	}
	format := func(n float64) string {
		if maxPrecision <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		return FormatLength(n, maxPrecision)
	}
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "M%s,%s", format(p.Points[0].Anchor.X), format(p.Points[0].Anchor.Y))
	n := p.SegmentCount()
	i := 0
	for seg := range p.Segments() {
		i++
		wrap := p.Closed && i == n
		straight := seg.P1 == seg.P0 && seg.P2 == seg.P3
		switch {
		case wrap && straight:
			// Z implies the closing line.
		case straight:
			fmt.Fprintf(sb, " L%s,%s", format(seg.P3.X), format(seg.P3.Y))
		default:
			fmt.Fprintf(sb, " C%s,%s %s,%s %s,%s",
				format(seg.P1.X), format(seg.P1.Y),
				format(seg.P2.X), format(seg.P2.Y),
				format(seg.P3.X), format(seg.P3.Y))
		}
	}
	if p.Closed {
		sb.WriteString(" Z")
	}
	return sb.String()
}
