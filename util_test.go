package pathlen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func arclen(t *testing.T, c CubicBez, divisions int) float64 {
	t.Helper()
	l, err := c.Arclen(divisions)
	if err != nil {
		t.Fatalf("Arclen(%d): %s", divisions, err)
	}
	return l
}

func pathArclen(t *testing.T, p Path, divisions int) float64 {
	t.Helper()
	l, err := p.Arclen(divisions)
	if err != nil {
		t.Fatalf("Arclen(%d): %s", divisions, err)
	}
	return l
}
