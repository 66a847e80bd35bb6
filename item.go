package pathlen

type ItemKind int

const (
	// A simple path.
	PathItem ItemKind = iota + 1
	// A group of items.
	GroupItem
	// A compound path composed of multiple sub-paths.
	CompoundItem
)

func (k ItemKind) String() string {
	switch k {
	case PathItem:
		return "path"
	case GroupItem:
		return "group"
	case CompoundItem:
		return "compound"
	default:
		return "invalid"
	}
}

// Item is one entity in a drawing's item tree. This type acts as a tagged
// union over the three entity kinds the measurement core consumes: simple
// paths, groups, and compound paths.
type Item struct {
	Kind ItemKind
	// Name identifies the item in measurement reports. May be empty.
	Name string
	// Guide marks a non-printing guide. Guides are never measured.
	Guide bool
	// Clipping marks a clipping path, a mask rather than visible artwork.
	// Clipping paths are never measured.
	Clipping bool
	// Path is the item's geometry. Only meaningful for PathItem.
	Path Path
	// Items are the children of a GroupItem or the sub-paths of a
	// CompoundItem. Compound paths may nest further compound structure.
	Items []Item
}

// PathOf returns a simple path item.
func PathOf(name string, p Path) Item {
	return Item{Kind: PathItem, Name: name, Path: p}
}

// GroupOf returns a group item with the given children.
func GroupOf(name string, items ...Item) Item {
	return Item{Kind: GroupItem, Name: name, Items: items}
}

// CompoundOf returns a compound path item with the given sub-items.
func CompoundOf(name string, items ...Item) Item {
	return Item{Kind: CompoundItem, Name: name, Items: items}
}

// DefaultMinPoints is the default degenerate-path threshold: paths with one
// point, isolated anchors, are excluded from collection.
const DefaultMinPoints = 1

// CollectOptions configures [Collect].
type CollectOptions struct {
	// MinPoints excludes paths whose point count is at or below it. The
	// zero value means [DefaultMinPoints]; a negative value disables the
	// filter.
	MinPoints int
}

func (opts CollectOptions) minPoints() int {
	if opts.MinPoints == 0 {
		return DefaultMinPoints
	}
	return opts.MinPoints
}

// Collect flattens an item tree into the simple path items suitable for
// measurement. Groups and compound paths are expanded recursively, depth
// first and order-preserving, so the result is deterministic for a
// deterministic input order. Guides, clipping paths, and paths at or below
// the degenerate point-count threshold are excluded.
func Collect(items []Item, opts CollectOptions) []Item {
	var out []Item
	minPoints := opts.minPoints()
	var walk func(items []Item)
	walk = func(items []Item) {
		for _, item := range items {
			switch item.Kind {
			case PathItem:
				if item.Guide || item.Clipping {
					continue
				}
				if len(item.Path.Points) <= minPoints {
					continue
				}
				out = append(out, item)
			case GroupItem, CompoundItem:
				walk(item.Items)
			}
		}
	}
	walk(items)
	return out
}
