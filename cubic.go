package pathlen

import (
	"errors"
	"math"
)

// DefaultDivisions is the default Simpson subdivision count. It gives
// sub-unit accuracy for document-scale paths.
const DefaultDivisions = 1024

// ErrInvalidDivisions is returned when a subdivision count is zero,
// negative, or odd. Simpson's composite rule requires an even number of
// subintervals; an invalid count is rejected rather than adjusted, so that
// the numeric behavior stays auditable.
var ErrInvalidDivisions = errors.New("divisions must be a positive, even integer")

// CubicBez is a cubic Bézier segment defined by its start anchor, two
// control points, and end anchor.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Chord returns the euclidean distance between the segment's anchors.
func (c CubicBez) Chord() float64 {
	return c.P3.Sub(c.P0).Hypot()
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec2(c.P0).Add(Vec2(c.P1).Mul(2.0)).Add(Vec2(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec2(c.P1).Add(Vec2(c.P2).Mul(2.0)).Add(Vec2(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

// Arclen returns the arc length of the cubic Bézier segment, computed by
// integrating the curve's speed with Simpson's composite rule over
// divisions subintervals. divisions must be positive and even; otherwise
// [ErrInvalidDivisions] is returned.
//
// Error decreases with the fourth power of divisions for smooth segments.
// A segment with all four control points coincident has length exactly 0.
// Non-finite control points yield a non-finite or zero length but never
// panic.
func (c CubicBez) Arclen(divisions int) (float64, error) {
	if err := checkDivisions(divisions); err != nil {
		return 0, err
	}
	return c.arclen(divisions), nil
}

func checkDivisions(divisions int) error {
	if divisions <= 0 || divisions%2 != 0 {
		return ErrInvalidDivisions
	}
	return nil
}

func (c CubicBez) arclen(divisions int) float64 {
	k := c.speedPoly()
	h := 1.0 / float64(divisions)
	sum := k.speed(0.0) + k.speed(1.0)
	for i := 1; i < divisions; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}
		sum += w * k.speed(float64(i)*h)
	}
	return sum * h / 3.0
}

// quartic holds the coefficients of the squared speed function of a cubic
// Bézier, k[0] being the constant term.
type quartic [5]float64

// speedPoly returns |B′(t)|² as a quartic polynomial in t.
func (c CubicBez) speedPoly() quartic {
	_, px1, px2, px3 := cubicBezCoefficients(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	_, py1, py2, py3 := cubicBezCoefficients(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)

	// B′(t) = u0 + u1·t + u2·t² per coordinate.
	ux0, ux1, ux2 := px1, 2.0*px2, 3.0*px3
	uy0, uy1, uy2 := py1, 2.0*py2, 3.0*py3

	return quartic{
		ux0*ux0 + uy0*uy0,
		2.0 * (ux0*ux1 + uy0*uy1),
		ux1*ux1 + uy1*uy1 + 2.0*(ux0*ux2+uy0*uy2),
		2.0 * (ux1*ux2 + uy1*uy2),
		ux2*ux2 + uy2*uy2,
	}
}

// speed evaluates sqrt(k4·t⁴ + k3·t³ + k2·t² + k1·t + k0). A negative or
// NaN radicand, which can arise from degenerate control polygons through
// floating-point cancellation, evaluates to 0 so that input degeneracy
// never propagates NaN into the integral.
func (k quartic) speed(t float64) float64 {
	v := (((k[4]*t+k[3])*t+k[2])*t+k[1])*t + k[0]
	if v < 0.0 || math.IsNaN(v) {
		return 0.0
	}
	return math.Sqrt(v)
}

// cubicBezCoefficients returns polynomial coefficients given cubic Bézier
// coordinates.
func cubicBezCoefficients(x0, x1, x2, x3 float64) (_, _, _, _ float64) {
	p0 := x0
	p1 := 3.0*x1 - 3.0*x0
	p2 := 3.0*x2 - 6.0*x1 + 3.0*x0
	p3 := x3 - 3.0*x2 + 3.0*x1 - x0
	return p0, p1, p2, p3
}
