package tree

import (
	"errors"

	"github.com/vanderheijden86/arbor/pkg/model"
)

// ErrNotFound is returned by sibling-relative operations when the reference
// node is not present anywhere in the managed forest.
var ErrNotFound = errors.New("tree: reference node not found")

// Manager owns a forest of nodes and its flat projection. One manager serves
// one widget; construct it with the widget's flattener and expander rather
// than sharing an ambient instance.
//
// The manager is single-threaded by contract: every method must be called
// from the same goroutine that drives the UI loop, and callers must not
// splice Children slices behind the manager's back — the projection map and
// expansion state can only stay consistent through the manager's own update
// path. Change notifications fire synchronously, inside the mutating call.
type Manager struct {
	roots     []*model.Node
	flat      map[*model.Node]*FlatNode
	flatNodes []*FlatNode
	flattener Flattener
	expander  Expander

	subs   map[int]func([]*model.Node)
	nextID int
}

// NewManager creates a manager wired to the given capabilities. Nil
// arguments fall back to the package defaults.
func NewManager(fl Flattener, ex Expander) *Manager {
	if fl == nil {
		fl = NewDepthFirstFlattener()
	}
	if ex == nil {
		ex = NewExpansionModel()
	}
	return &Manager{
		flat:      make(map[*model.Node]*FlatNode),
		flattener: fl,
		expander:  ex,
		subs:      make(map[int]func([]*model.Node)),
	}
}

// SetData replaces the whole forest, re-flattens and notifies subscribers.
func (m *Manager) SetData(nodes []*model.Node) {
	m.roots = nodes
	m.refresh()
}

// Data returns the current forest by reference, not a copy. Mutate it only
// through the manager's methods.
func (m *Manager) Data() []*model.Node {
	return m.roots
}

// Subscribe registers fn to be called with the full forest after every
// mutation. There is no replay: a late subscriber sees nothing until the
// next change. The returned cancel function removes the subscription.
func (m *Manager) Subscribe(fn func([]*model.Node)) (cancel func()) {
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() { delete(m.subs, id) }
}

// FlatNodes returns the current flat projection in traversal order.
func (m *Manager) FlatNodes() []*FlatNode {
	return m.flatNodes
}

// Projection returns the flat node mirroring n, or nil if n has not been
// flattened.
func (m *Manager) Projection(n *model.Node) *FlatNode {
	return m.flat[n]
}

// Expander returns the expansion capability the manager drives.
func (m *Manager) Expander() Expander {
	return m.expander
}

// Parent returns the direct structural parent of n, found by depth-first
// search over the forest, or nil when n is a root or absent entirely.
func (m *Manager) Parent(n *model.Node) *model.Node {
	if n == nil {
		return nil
	}
	var parent *model.Node
	model.WalkAll(m.roots, func(candidate *model.Node) bool {
		for _, child := range candidate.Children {
			if child == n {
				parent = candidate
				return false
			}
		}
		return true
	})
	return parent
}

// Path returns the ancestors of n from root to n inclusive, or nil when n is
// not in the forest.
func (m *Manager) Path(n *model.Node) []*model.Node {
	if !m.contains(n) {
		return nil
	}
	var path []*model.Node
	for cur := n; cur != nil; cur = m.Parent(cur) {
		path = append([]*model.Node{cur}, path...)
	}
	return path
}

// IsSibling reports whether a and b share a parent. Two root-level nodes are
// siblings. Note the vacuous edge: two nodes absent from the forest both
// resolve to a nil parent and are therefore reported as siblings. That
// matches the historical contract; call contains-style checks first if it
// matters.
func (m *Manager) IsSibling(a, b *model.Node) bool {
	return m.Parent(a) == m.Parent(b)
}

// HasChildren reports the expandable flag already computed on the flat node.
func (m *Manager) HasChildren(f *FlatNode) bool {
	return f != nil && f.Expandable
}

// IsRoot reports whether the flat node projects a root-level entry.
func (m *Manager) IsRoot(f *FlatNode) bool {
	return f != nil && f.Level == 0
}

// IsParentExpanded reports whether n's parent is currently expanded. False
// when n is root-level, absent, or the parent has no projection yet.
func (m *Manager) IsParentExpanded(n *model.Node) bool {
	parent := m.Parent(n)
	if parent == nil {
		return false
	}
	f := m.flat[parent]
	if f == nil {
		return false
	}
	return m.expander.IsExpanded(f)
}

// InsertChild appends child to parent's children, creating the slice on
// first use, then re-flattens and notifies.
func (m *Manager) InsertChild(parent, child *model.Node) {
	if parent == nil || child == nil {
		return
	}
	parent.Children = append(parent.Children, child)
	m.refresh()
}

// InsertBefore inserts n immediately before sibling in whichever collection
// directly contains it (the root collection for root-level siblings).
// Returns ErrNotFound, without mutating anything, when sibling is absent.
func (m *Manager) InsertBefore(sibling, n *model.Node) error {
	return m.insertAt(sibling, n, 0)
}

// InsertAfter inserts n immediately after sibling. Returns ErrNotFound,
// without mutating anything, when sibling is absent.
func (m *Manager) InsertAfter(sibling, n *model.Node) error {
	return m.insertAt(sibling, n, 1)
}

func (m *Manager) insertAt(sibling, n *model.Node, offset int) error {
	if sibling == nil || n == nil {
		return ErrNotFound
	}
	owner, idx := m.locate(sibling)
	if idx < 0 {
		return ErrNotFound
	}

	at := idx + offset
	if owner == nil {
		m.roots = append(m.roots, nil)
		copy(m.roots[at+1:], m.roots[at:])
		m.roots[at] = n
	} else {
		owner.Children = append(owner.Children, nil)
		copy(owner.Children[at+1:], owner.Children[at:])
		owner.Children[at] = n
	}
	m.refresh()
	return nil
}

// Delete removes the first occurrence of n from whichever collection
// directly contains it and reports whether anything was removed. The
// projection entries for the removed subtree are dropped on the re-flatten.
func (m *Manager) Delete(n *model.Node) bool {
	owner, idx := m.locate(n)
	if idx < 0 {
		return false
	}
	if owner == nil {
		m.roots = append(m.roots[:idx], m.roots[idx+1:]...)
	} else {
		owner.Children = append(owner.Children[:idx], owner.Children[idx+1:]...)
	}
	m.refresh()
	return true
}

// CloneAsChild deep-copies original and appends the copy to parent's
// children. The copy is returned; it shares no memory with the source.
func (m *Manager) CloneAsChild(original, parent *model.Node) *model.Node {
	clone := original.Clone()
	if clone == nil {
		return nil
	}
	m.InsertChild(parent, clone)
	return clone
}

// CloneAsSiblingBefore deep-copies original and inserts the copy immediately
// before sibling.
func (m *Manager) CloneAsSiblingBefore(original, sibling *model.Node) (*model.Node, error) {
	clone := original.Clone()
	if clone == nil {
		return nil, ErrNotFound
	}
	if err := m.InsertBefore(sibling, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// CloneAsSiblingAfter deep-copies original and inserts the copy immediately
// after sibling.
func (m *Manager) CloneAsSiblingAfter(original, sibling *model.Node) (*model.Node, error) {
	clone := original.Clone()
	if clone == nil {
		return nil, ErrNotFound
	}
	if err := m.InsertAfter(sibling, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// Transform produces or updates in place the flat projection for n at the
// given level. Expandable is recomputed from the current children slice on
// every call. Existing projections keep their identity so expansion state
// keyed by flat node survives refreshes.
func (m *Manager) Transform(n *model.Node, level int) *FlatNode {
	f, ok := m.flat[n]
	if !ok {
		f = &FlatNode{Node: n}
		m.flat[n] = f
	}
	f.Level = level
	f.Expandable = len(n.Children) > 0
	return f
}

// ToggleNode applies the accordion policy. Collapsed target: expand it and
// every ancestor on its path, collapse everything else in the flattened
// sequence — expanding one path closes all unrelated subtrees at every
// level. Expanded target: collapse just that node, leaving its ancestors
// alone. Leaves participate like any other node; their recorded expansion has
// no visual effect but keeps the toggle contract uniform.
func (m *Manager) ToggleNode(f *FlatNode) {
	if f == nil {
		return
	}
	if m.expander.IsExpanded(f) {
		m.expander.Collapse(f)
		return
	}

	keep := make(map[*FlatNode]struct{})
	for _, ancestor := range m.Path(f.Node) {
		if proj := m.flat[ancestor]; proj != nil {
			keep[proj] = struct{}{}
		}
	}
	keep[f] = struct{}{}

	for _, dn := range m.expander.DataNodes() {
		if _, ok := keep[dn]; ok {
			m.expander.Expand(dn)
		} else {
			m.expander.Collapse(dn)
		}
	}
}

// ExpandLevel expands every flattened node at the given depth. Unlike
// ToggleNode this is additive: no other expansion state is touched.
func (m *Manager) ExpandLevel(level int) {
	for _, dn := range m.expander.DataNodes() {
		if dn.Level == level {
			m.expander.Expand(dn)
		}
	}
}

// contains reports whether n is anywhere in the forest.
func (m *Manager) contains(n *model.Node) bool {
	if n == nil {
		return false
	}
	found := false
	model.WalkAll(m.roots, func(candidate *model.Node) bool {
		if candidate == n {
			found = true
			return false
		}
		return true
	})
	return found
}

// locate finds the collection directly containing n: owner is the parent
// node, or nil when n sits in the root collection. idx is -1 when n is
// absent.
func (m *Manager) locate(n *model.Node) (owner *model.Node, idx int) {
	if n == nil {
		return nil, -1
	}
	for i, root := range m.roots {
		if root == n {
			return nil, i
		}
	}
	owner, idx = nil, -1
	model.WalkAll(m.roots, func(candidate *model.Node) bool {
		for i, child := range candidate.Children {
			if child == n {
				owner, idx = candidate, i
				return false
			}
		}
		return true
	})
	return owner, idx
}

// refresh re-flattens the forest, prunes projections for nodes that are
// gone, hands the new sequence to the expander and notifies subscribers —
// in that order, synchronously.
func (m *Manager) refresh() {
	m.flatNodes = m.flattener.Flatten(m.roots, m.Transform)

	next := make(map[*model.Node]*FlatNode, len(m.flatNodes))
	for _, f := range m.flatNodes {
		next[f.Node] = f
	}
	m.flat = next

	m.expander.SetDataNodes(m.flatNodes)

	for _, fn := range m.subs {
		fn(m.roots)
	}
}
