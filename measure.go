package pathlen

// Config configures a measurement run. Configs are plain values; pass them
// by value and share them freely.
type Config struct {
	// Divisions is the Simpson subdivision count per segment. The zero
	// value means [DefaultDivisions]; negative or odd values are rejected
	// with [ErrInvalidDivisions].
	Divisions int
	// Digits is the number of decimals used when formatting lengths for
	// display.
	Digits int
	// Unit is the display unit lengths are converted to.
	Unit Unit
	// MinPoints is the degenerate-path threshold, see [CollectOptions].
	MinPoints int
}

// DefaultConfig returns the measurement defaults: 1024 divisions, 2 digits,
// lengths displayed in points.
func DefaultConfig() Config {
	return Config{
		Divisions: DefaultDivisions,
		Digits:    2,
		Unit:      UnitPt,
		MinPoints: DefaultMinPoints,
	}
}

func (cfg Config) divisions() int {
	if cfg.Divisions == 0 {
		return DefaultDivisions
	}
	return cfg.Divisions
}

// Measurement is the measured length of a single path, in the coordinate
// space's native unit.
type Measurement struct {
	Name   string
	Length float64
}

// Format returns the measurement's length converted to cfg.Unit and
// formatted with cfg.Digits decimals and a unit suffix.
func (m Measurement) Format(cfg Config) string {
	return FormatLength(cfg.Unit.FromPoints(m.Length), cfg.Digits) + " " + cfg.Unit.String()
}

// Report is the result of measuring a collection of items.
type Report struct {
	Paths []Measurement
	Total float64
}

// Measure collects the measurable paths of an item tree (see [Collect]) and
// measures each of them, in collection order. An empty item list yields an
// empty report with a total of zero.
func Measure(items []Item, cfg Config) (Report, error) {
	divisions := cfg.divisions()
	if err := checkDivisions(divisions); err != nil {
		return Report{}, err
	}
	var rep Report
	for _, item := range Collect(items, CollectOptions{MinPoints: cfg.MinPoints}) {
		length, err := item.Path.Arclen(divisions)
		if err != nil {
			return Report{}, err
		}
		rep.Paths = append(rep.Paths, Measurement{Name: item.Name, Length: length})
		rep.Total += length
	}
	return rep, nil
}
