package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/measurekit/pathlen"
)

const sampleYAML = `
items:
  - kind: group
    name: logo
    children:
      - kind: path
        name: square
        closed: true
        points:
          - [0, 0]
          - [100, 0]
          - [100, 100]
          - [0, 100]
      - kind: path
        name: swoosh
        data: "M0,0 C0,50 100,50 100,0"
  - kind: path
    name: margin
    guide: true
    points:
      - [0, 0]
      - [0, 800]
`

func TestDecode(t *testing.T) {
	items, err := Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, items, 2)

	group := items[0]
	assert.Equal(t, pathlen.GroupItem, group.Kind)
	assert.Equal(t, "logo", group.Name)
	require.Len(t, group.Items, 2)

	square := group.Items[0]
	assert.Equal(t, pathlen.PathItem, square.Kind)
	assert.True(t, square.Path.Closed)
	require.Len(t, square.Path.Points, 4)
	assert.Equal(t, pathlen.Pt(100, 100), square.Path.Points[2].Anchor)

	swoosh := group.Items[1]
	assert.Equal(t, pathlen.PathItem, swoosh.Kind)
	assert.False(t, swoosh.Path.Closed)

	guide := items[1]
	assert.True(t, guide.Guide)

	rep, err := pathlen.Measure(items, pathlen.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, rep.Paths, 2, "the guide must not be measured")
	assert.InDelta(t, 400.0, rep.Paths[0].Length, 1e-6)
}

func TestDecodePointWithHandles(t *testing.T) {
	items, err := Decode(strings.NewReader(`
items:
  - kind: path
    name: curved
    points:
      - [[0, 0], [0, 0], [30, 50]]
      - [[100, 0], [70, 50], [100, 0]]
`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	pts := items[0].Path.Points
	require.Len(t, pts, 2)
	assert.Equal(t, pathlen.Pt(30, 50), pts[0].Out)
	assert.Equal(t, pathlen.Pt(70, 50), pts[1].In)
}

func TestDecodeCompound(t *testing.T) {
	items, err := Decode(strings.NewReader(`
items:
  - kind: compound
    name: o
    paths:
      - kind: path
        closed: true
        points: [[0, 0], [100, 0], [100, 100], [0, 100]]
      - kind: path
        closed: true
        points: [[25, 25], [75, 25], [75, 75], [25, 75]]
`))
	require.NoError(t, err)
	collected := pathlen.Collect(items, pathlen.CollectOptions{})
	assert.Len(t, collected, 2)
}

func TestDecodeMultiSubpathData(t *testing.T) {
	items, err := Decode(strings.NewReader(`
items:
  - kind: path
    name: equals
    data: "M0,0 L100,0 M0,20 L100,20"
`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, pathlen.CompoundItem, items[0].Kind)
	assert.Len(t, items[0].Items, 2)
}

func TestDecodeErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":          ``,
		"missing kind":   `{"items": [{"name": "x"}]}`,
		"unknown kind":   `{"items": [{"kind": "text"}]}`,
		"points + data":  `{"items": [{"kind": "path", "data": "M0,0", "points": [[0, 0]]}]}`,
		"group w/ paths": `{"items": [{"kind": "group", "paths": [{"kind": "path"}]}]}`,
		"unknown field":  `{"items": [{"kind": "path", "color": "red"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestDecodeBadPathData(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"items": [{"kind": "path", "data": "Lnope"}]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, pathlen.ErrBadPathData)
}

func TestValidateJSON(t *testing.T) {
	valid := []byte(`{"items": [{"kind": "path", "points": [[0, 0], [10, 0]]}]}`)
	assert.NoError(t, ValidateJSON(valid))

	for name, doc := range map[string]string{
		"no items":       `{}`,
		"bad kind":       `{"items": [{"kind": "text"}]}`,
		"bad point":      `{"items": [{"kind": "path", "points": [[0]]}]}`,
		"extra property": `{"items": [{"kind": "path", "color": "red"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			err := ValidateJSON([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))
	items, err := DecodeFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	jsonPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"items": [{"kind": "path", "points": [[0, 0], [10, 0]]}]}`), 0o644))
	items, err = DecodeFile(jsonPath)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Schema validation runs for JSON files.
	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"items": [{"kind": "text"}]}`), 0o644))
	_, err = DecodeFile(badPath)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
