package tree

// Expander tracks which flat nodes are expanded. The Manager queries and
// drives it but does not own it — a widget typically shares one Expander
// between the manager and its renderer. DataNodes is the ordered sequence of
// all currently flattened nodes; the Manager replaces it after every
// re-flatten via SetDataNodes.
type Expander interface {
	IsExpanded(f *FlatNode) bool
	Expand(f *FlatNode)
	Collapse(f *FlatNode)
	DataNodes() []*FlatNode
	SetDataNodes(nodes []*FlatNode)
}

// ExpansionModel is the default Expander: a set keyed by flat node identity.
// Because the Manager keeps FlatNode pointers stable across refreshes,
// expansion survives data reloads without any ID bookkeeping.
type ExpansionModel struct {
	expanded  map[*FlatNode]struct{}
	dataNodes []*FlatNode
}

// NewExpansionModel returns an empty expansion model (everything collapsed).
func NewExpansionModel() *ExpansionModel {
	return &ExpansionModel{expanded: make(map[*FlatNode]struct{})}
}

// IsExpanded implements Expander.
func (e *ExpansionModel) IsExpanded(f *FlatNode) bool {
	if f == nil {
		return false
	}
	_, ok := e.expanded[f]
	return ok
}

// Expand implements Expander. Expanding a leaf is recorded like any other
// node; callers that care check Expandable first.
func (e *ExpansionModel) Expand(f *FlatNode) {
	if f == nil {
		return
	}
	e.expanded[f] = struct{}{}
}

// Collapse implements Expander.
func (e *ExpansionModel) Collapse(f *FlatNode) {
	if f == nil {
		return
	}
	delete(e.expanded, f)
}

// DataNodes implements Expander.
func (e *ExpansionModel) DataNodes() []*FlatNode {
	return e.dataNodes
}

// SetDataNodes implements Expander. Expansion entries for flat nodes that no
// longer appear in the sequence are dropped so the set cannot grow without
// bound across reloads.
func (e *ExpansionModel) SetDataNodes(nodes []*FlatNode) {
	e.dataNodes = nodes

	present := make(map[*FlatNode]struct{}, len(nodes))
	for _, f := range nodes {
		present[f] = struct{}{}
	}
	for f := range e.expanded {
		if _, ok := present[f]; !ok {
			delete(e.expanded, f)
		}
	}
}

// ExpandedCount returns how many nodes are currently expanded.
func (e *ExpansionModel) ExpandedCount() int {
	return len(e.expanded)
}

// CollapseAll clears all expansion state.
func (e *ExpansionModel) CollapseAll() {
	for f := range e.expanded {
		delete(e.expanded, f)
	}
}
