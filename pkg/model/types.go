package model

// Node is a single entry in a nested outline tree. Children are owned
// exclusively by their parent; a nil or empty Children slice means the node
// is a leaf. Nodes have no mandatory identity beyond their pointer — all
// structural operations in pkg/tree compare nodes by pointer equality. The
// optional ID only exists so UI state (expand/collapse) can survive a
// process restart.
type Node struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title"`
	Notes    string   `json:"notes,omitempty"` // markdown, rendered in the detail pane
	Tags     []string `json:"tags,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Clone creates a deep copy of the node and its entire subtree. The copy
// shares no memory with the original: new slices, new child nodes, all the
// way down. Mutating the clone never affects the source.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		ID:    n.ID,
		Title: n.Title,
		Notes: n.Notes,
	}

	if n.Tags != nil {
		clone.Tags = make([]string, len(n.Tags))
		copy(clone.Tags, n.Tags)
	}

	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}

	return clone
}

// Walk visits the node and its descendants depth-first, pre-order. The walk
// stops early when fn returns false. The return value reports whether the
// walk ran to completion.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// WalkAll visits every node in a forest depth-first, pre-order.
func WalkAll(roots []*Node, fn func(*Node) bool) {
	for _, root := range roots {
		if !root.Walk(fn) {
			return
		}
	}
}

// Count returns the total number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}

// Equal reports whether two subtrees have the same content (ID, Title,
// Notes, Tags and recursively equal children). It says nothing about
// identity — a node and its clone are Equal but never the same pointer.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.ID != other.ID || n.Title != other.Title || n.Notes != other.Notes {
		return false
	}
	if len(n.Tags) != len(other.Tags) {
		return false
	}
	for i := range n.Tags {
		if n.Tags[i] != other.Tags[i] {
			return false
		}
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
