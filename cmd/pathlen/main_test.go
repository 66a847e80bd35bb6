package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSVGCommand(t *testing.T) {
	out, err := run(t, "svg", "M0,0 L100,0 L100,100 L0,100 Z")
	require.NoError(t, err)
	assert.Equal(t, "path 1\t400 pt\ntotal\t400 pt\n", out)
}

func TestSVGCommandUnit(t *testing.T) {
	out, err := run(t, "svg", "--unit", "mm", "--digits", "3", "M0,0 L72,0")
	require.NoError(t, err)
	assert.Equal(t, "path 1\t25.4 mm\ntotal\t25.4 mm\n", out)
}

func TestSVGCommandStdin(t *testing.T) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("M0,0 L10,0"))
	cmd.SetArgs([]string{"svg"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "total\t10 pt")
}

func TestSVGCommandJSON(t *testing.T) {
	out, err := run(t, "svg", "--json", "M0,0 L100,0")
	require.NoError(t, err)

	var rep struct {
		Unit  string `json:"unit"`
		Paths []struct {
			Name   string  `json:"name"`
			Length float64 `json:"length"`
		} `json:"paths"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "pt", rep.Unit)
	require.Len(t, rep.Paths, 1)
	assert.InDelta(t, 100.0, rep.Total, 1e-6)
}

func TestSVGCommandBadData(t *testing.T) {
	_, err := run(t, "svg", "not path data")
	assert.Error(t, err)
}

func TestMeasureCommand(t *testing.T) {
	doc := `
items:
  - kind: path
    name: square
    closed: true
    points: [[0, 0], [100, 0], [100, 100], [0, 100]]
  - kind: path
    name: ruler
    guide: true
    points: [[0, 0], [0, 500]]
`
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := run(t, "measure", path)
	require.NoError(t, err)
	assert.Equal(t, "square\t400 pt\ntotal\t400 pt\n", out)
}

func TestMeasureCommandMissingFile(t *testing.T) {
	_, err := run(t, "measure", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInvalidFlags(t *testing.T) {
	_, err := run(t, "svg", "--divisions", "7", "M0,0 L1,0")
	assert.Error(t, err)

	_, err = run(t, "svg", "--unit", "furlong", "M0,0 L1,0")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pathlen")
}
