// Package document decodes measurement documents: YAML or JSON files
// describing a tree of paths, groups, and compound paths to measure.
//
// A document looks like this:
//
//	items:
//	  - kind: group
//	    name: logo
//	    children:
//	      - kind: path
//	        name: outline
//	        closed: true
//	        points:
//	          - [0, 0]                          # corner anchor
//	          - [[100, 0], [70, 50], [130, 50]] # anchor, in handle, out handle
//	      - kind: path
//	        name: swoosh
//	        data: "M0,0 C0,50 100,50 100,0"     # SVG path data
//
// JSON documents are validated against an embedded JSON Schema before
// decoding; YAML documents rely on the decoder's own strictness.
package document

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/measurekit/pathlen"
)

//go:embed schema.json
var schemaJSON string

// ErrInvalidDocument is returned when a document does not describe a valid
// item tree.
var ErrInvalidDocument = errors.New("invalid measurement document")

// File is the top-level structure of a measurement document.
type File struct {
	Items []Node `yaml:"items" json:"items"`
}

// Node is one item of a measurement document. Which fields are meaningful
// depends on Kind.
type Node struct {
	Kind     string      `yaml:"kind" json:"kind"`
	Name     string      `yaml:"name" json:"name"`
	Guide    bool        `yaml:"guide" json:"guide"`
	Clipping bool        `yaml:"clipping" json:"clipping"`
	Closed   bool        `yaml:"closed" json:"closed"`
	Points   []PointSpec `yaml:"points" json:"points"`
	Data     string      `yaml:"data" json:"data"`
	Children []Node      `yaml:"children" json:"children"`
	Paths    []Node      `yaml:"paths" json:"paths"`
}

// PointSpec is one anchor of a path node: either a bare [x, y] pair for a
// corner point or an [[ax, ay], [ix, iy], [ox, oy]] triple of anchor,
// incoming handle, and outgoing handle.
type PointSpec struct {
	Anchor pathlen.Point
	In     pathlen.Point
	Out    pathlen.Point
}

func (p *PointSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return fmt.Errorf("line %d: point must be [x, y] or [[ax, ay], [ix, iy], [ox, oy]]", node.Line)
	}
	if node.Content[0].Kind == yaml.ScalarNode {
		var xy [2]float64
		if err := node.Decode(&xy); err != nil {
			return fmt.Errorf("line %d: bad corner point: %w", node.Line, err)
		}
		anchor := pathlen.Pt(xy[0], xy[1])
		*p = PointSpec{Anchor: anchor, In: anchor, Out: anchor}
		return nil
	}
	var triple [3][2]float64
	if err := node.Decode(&triple); err != nil {
		return fmt.Errorf("line %d: bad point: %w", node.Line, err)
	}
	*p = PointSpec{
		Anchor: pathlen.Pt(triple[0][0], triple[0][1]),
		In:     pathlen.Pt(triple[1][0], triple[1][1]),
		Out:    pathlen.Pt(triple[2][0], triple[2][1]),
	}
	return nil
}

// DecodeFile reads and decodes the measurement document at path. Files with
// a .json extension are validated against the document schema first.
func DecodeFile(path string) ([]pathlen.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := ValidateJSON(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	items, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Decode decodes a YAML (or JSON, as YAML is a superset) measurement
// document.
func Decode(r io.Reader) ([]pathlen.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// ValidateJSON validates a JSON document against the embedded schema.
func ValidateJSON(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}
	return nil
}

func decode(data []byte) ([]pathlen.Item, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
	}
	items := make([]pathlen.Item, 0, len(f.Items))
	for i, n := range f.Items {
		item, err := n.toItem(fmt.Sprintf("items[%d]", i))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (n Node) toItem(at string) (pathlen.Item, error) {
	switch n.Kind {
	case "path":
		return n.toPathItem(at)
	case "group":
		if len(n.Paths) > 0 {
			return pathlen.Item{}, fmt.Errorf("%w: %s: groups take children, not paths", ErrInvalidDocument, at)
		}
		children, err := n.toItems(n.Children, at+".children")
		if err != nil {
			return pathlen.Item{}, err
		}
		return pathlen.GroupOf(n.Name, children...), nil
	case "compound":
		if len(n.Children) > 0 {
			return pathlen.Item{}, fmt.Errorf("%w: %s: compounds take paths, not children", ErrInvalidDocument, at)
		}
		subs, err := n.toItems(n.Paths, at+".paths")
		if err != nil {
			return pathlen.Item{}, err
		}
		return pathlen.CompoundOf(n.Name, subs...), nil
	case "":
		return pathlen.Item{}, fmt.Errorf("%w: %s: missing kind", ErrInvalidDocument, at)
	default:
		return pathlen.Item{}, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidDocument, at, n.Kind)
	}
}

func (n Node) toItems(nodes []Node, at string) ([]pathlen.Item, error) {
	items := make([]pathlen.Item, 0, len(nodes))
	for i, child := range nodes {
		item, err := child.toItem(fmt.Sprintf("%s[%d]", at, i))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (n Node) toPathItem(at string) (pathlen.Item, error) {
	if len(n.Children) > 0 || len(n.Paths) > 0 {
		return pathlen.Item{}, fmt.Errorf("%w: %s: paths have no sub-items", ErrInvalidDocument, at)
	}
	if n.Data != "" && len(n.Points) > 0 {
		return pathlen.Item{}, fmt.Errorf("%w: %s: specify either points or data, not both", ErrInvalidDocument, at)
	}

	if n.Data != "" {
		paths, err := pathlen.ParsePathData(n.Data)
		if err != nil {
			return pathlen.Item{}, fmt.Errorf("%s: %w", at, err)
		}
		switch len(paths) {
		case 0:
			return pathlen.Item{}, fmt.Errorf("%w: %s: empty path data", ErrInvalidDocument, at)
		case 1:
			p := paths[0]
			if n.Closed {
				p.Closed = true
			}
			return n.flagged(pathlen.PathOf(n.Name, p)), nil
		default:
			// Multi-subpath data describes a compound path.
			subs := make([]pathlen.Item, 0, len(paths))
			for _, p := range paths {
				subs = append(subs, n.flagged(pathlen.PathOf("", p)))
			}
			return pathlen.CompoundOf(n.Name, subs...), nil
		}
	}

	points := make([]pathlen.PathPoint, 0, len(n.Points))
	for _, ps := range n.Points {
		points = append(points, pathlen.PathPoint{Anchor: ps.Anchor, In: ps.In, Out: ps.Out})
	}
	p := pathlen.Path{Points: points, Closed: n.Closed}
	return n.flagged(pathlen.PathOf(n.Name, p)), nil
}

func (n Node) flagged(item pathlen.Item) pathlen.Item {
	item.Guide = n.Guide
	item.Clipping = n.Clipping
	return item
}
