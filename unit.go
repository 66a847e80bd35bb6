package pathlen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownUnit is returned by [ParseUnit] for unrecognized unit names.
var ErrUnknownUnit = errors.New("unknown unit")

// Unit is a linear display unit. Measured lengths are always in PostScript
// points (1/72 inch); units only affect display conversion.
type Unit int

const (
	UnitPt Unit = iota
	UnitMm
	UnitCm
	UnitIn
	UnitPx
)

// ParseUnit parses a unit name as accepted on the command line.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pt", "point", "points":
		return UnitPt, nil
	case "mm", "millimeter", "millimeters":
		return UnitMm, nil
	case "cm", "centimeter", "centimeters":
		return UnitCm, nil
	case "in", "inch", "inches":
		return UnitIn, nil
	case "px", "pixel", "pixels":
		return UnitPx, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

func (u Unit) String() string {
	switch u {
	case UnitPt:
		return "pt"
	case UnitMm:
		return "mm"
	case UnitCm:
		return "cm"
	case UnitIn:
		return "in"
	case UnitPx:
		return "px"
	default:
		return "invalid"
	}
}

// FromPoints converts a length in points to the unit. Pixels equal points,
// the convention of print-oriented drawing applications.
func (u Unit) FromPoints(pt float64) float64 {
	switch u {
	case UnitMm:
		return pt * (25.4 / 72.0)
	case UnitCm:
		return pt * (2.54 / 72.0)
	case UnitIn:
		return pt / 72.0
	case UnitPt, UnitPx:
		return pt
	default:
		return pt
	}
}

// FormatLength formats a length with at most digits decimals, trimming
// trailing zeros and a dangling decimal point. A negative digits value
// formats with the smallest number of decimals that round-trips.
func FormatLength(v float64, digits int) string {
	if digits < 0 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', digits, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
