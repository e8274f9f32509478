// Package tree provides the node manager behind arbor's tree widget: it owns
// a nested forest of model.Node values, mirrors it into a flat projection for
// rendering, and exposes structural queries and mutations on top. Flattening
// and expansion state are pluggable capabilities so a widget can substitute
// its own.
package tree

import "github.com/vanderheijden86/arbor/pkg/model"

// FlatNode is the flat projection of one tree node. It never owns tree data;
// Node points back at the entry it mirrors. Level is the depth from a root
// (root = 0). Expandable is recomputed on every flatten from the current
// children slice.
//
// FlatNode identity is deliberately stable: the Manager hands out the same
// *FlatNode for the same *model.Node across re-flattens, so expansion state
// keyed by flat node survives a data refresh.
type FlatNode struct {
	Node       *model.Node
	Level      int
	Expandable bool
}

// TransformFunc produces or updates the flat projection for a node at the
// given depth. The Manager's Transform method is the canonical
// implementation; a Flattener invokes it once per node.
type TransformFunc func(n *model.Node, level int) *FlatNode

// Flattener turns a forest into its flat projection. Implementations must
// call transform exactly once per node and return the projections in
// traversal order.
type Flattener interface {
	Flatten(roots []*model.Node, transform TransformFunc) []*FlatNode
}

// DepthFirstFlattener is the default Flattener: pre-order depth-first over
// the whole forest, every node included regardless of expansion state.
// Visibility is the widget's concern, not the flattener's.
type DepthFirstFlattener struct{}

// NewDepthFirstFlattener returns the default flattener.
func NewDepthFirstFlattener() *DepthFirstFlattener {
	return &DepthFirstFlattener{}
}

// Flatten implements Flattener.
func (f *DepthFirstFlattener) Flatten(roots []*model.Node, transform TransformFunc) []*FlatNode {
	var out []*FlatNode
	var walk func(n *model.Node, level int)
	walk = func(n *model.Node, level int) {
		if n == nil {
			return
		}
		out = append(out, transform(n, level))
		for _, child := range n.Children {
			walk(child, level+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return out
}
