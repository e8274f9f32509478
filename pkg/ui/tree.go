// tree.go - Tree widget over the pkg/tree manager: visible-row computation,
// navigation, rendering with branch glyphs.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/arbor/pkg/model"
	"github.com/vanderheijden86/arbor/pkg/tree"
)

// TreeView is the interactive tree pane. It owns one manager and one
// expansion model (explicitly injected pair, never shared between widgets)
// and keeps a cursor over the currently visible rows — the flattened nodes
// whose whole ancestor chain is expanded.
type TreeView struct {
	manager   *tree.Manager
	expansion *tree.ExpansionModel
	theme     Theme

	rows           []*tree.FlatNode // visible rows, derived from flat list + expansion
	cursor         int
	width          int
	height         int
	viewportOffset int // index of first visible row

	autoExpandDepth int
	stateDir        string // empty disables persistence
}

// NewTreeView creates a tree view with its own manager wired to the default
// flattener and expansion model.
func NewTreeView(theme Theme) *TreeView {
	expansion := tree.NewExpansionModel()
	t := &TreeView{
		manager:         tree.NewManager(tree.NewDepthFirstFlattener(), expansion),
		expansion:       expansion,
		theme:           theme,
		autoExpandDepth: 1,
	}
	t.manager.Subscribe(func([]*model.Node) { t.rebuildRows() })
	return t
}

// Manager exposes the underlying node manager for structural operations.
func (t *TreeView) Manager() *tree.Manager {
	return t.manager
}

// SetStateDir sets the directory used to persist expand/collapse state.
// Call before SetNodes; an empty dir disables persistence.
func (t *TreeView) SetStateDir(dir string) {
	t.stateDir = dir
}

// SetAutoExpandDepth sets how many levels are expanded by default.
func (t *TreeView) SetAutoExpandDepth(depth int) {
	if depth < 0 {
		depth = 0
	}
	t.autoExpandDepth = depth
}

// SetSize updates the available dimensions for the tree pane.
func (t *TreeView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

// SetNodes replaces the tree data, applies default and persisted expansion
// state, and tries to keep the cursor on the same node ID.
func (t *TreeView) SetNodes(nodes []*model.Node) {
	prevID := t.SelectedID()

	t.manager.SetData(nodes)
	t.loadState()
	t.rebuildRows()

	if prevID == "" || !t.SelectByID(prevID) {
		t.cursor = 0
		t.viewportOffset = 0
	}
}

// Rows returns the currently visible rows in display order.
func (t *TreeView) Rows() []*tree.FlatNode {
	return t.rows
}

// RowCount returns the number of visible rows.
func (t *TreeView) RowCount() int {
	return len(t.rows)
}

// SelectedFlat returns the flat node under the cursor, or nil.
func (t *TreeView) SelectedFlat() *tree.FlatNode {
	if t.cursor >= 0 && t.cursor < len(t.rows) {
		return t.rows[t.cursor]
	}
	return nil
}

// SelectedNode returns the tree node under the cursor, or nil.
func (t *TreeView) SelectedNode() *model.Node {
	if f := t.SelectedFlat(); f != nil {
		return f.Node
	}
	return nil
}

// SelectedID returns the ID of the node under the cursor, or empty.
func (t *TreeView) SelectedID() string {
	if n := t.SelectedNode(); n != nil {
		return n.ID
	}
	return ""
}

// SelectByID moves the cursor to the visible row with the given node ID.
func (t *TreeView) SelectByID(id string) bool {
	if id == "" {
		return false
	}
	for i, f := range t.rows {
		if f.Node.ID == id {
			t.cursor = i
			t.ensureCursorVisible()
			return true
		}
	}
	return false
}

// SelectedPath returns the titles from root to the selected node joined
// with " / ", for the status bar and clipboard yank.
func (t *TreeView) SelectedPath() string {
	n := t.SelectedNode()
	if n == nil {
		return ""
	}
	path := t.manager.Path(n)
	titles := make([]string, len(path))
	for i, p := range path {
		titles[i] = p.Title
	}
	return strings.Join(titles, " / ")
}

// MoveDown moves the cursor down one visible row.
func (t *TreeView) MoveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
		t.ensureCursorVisible()
	}
}

// MoveUp moves the cursor up one visible row.
func (t *TreeView) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		t.ensureCursorVisible()
	}
}

// PageDown moves the cursor down by half a viewport.
func (t *TreeView) PageDown() {
	t.cursor += t.pageSize()
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureCursorVisible()
}

// PageUp moves the cursor up by half a viewport.
func (t *TreeView) PageUp() {
	t.cursor -= t.pageSize()
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureCursorVisible()
}

// JumpToTop moves the cursor to the first row.
func (t *TreeView) JumpToTop() {
	t.cursor = 0
	t.ensureCursorVisible()
}

// JumpToBottom moves the cursor to the last row.
func (t *TreeView) JumpToBottom() {
	if len(t.rows) > 0 {
		t.cursor = len(t.rows) - 1
	}
	t.ensureCursorVisible()
}

// JumpToParent moves the cursor to the parent of the selected node. Root
// rows stay put.
func (t *TreeView) JumpToParent() {
	n := t.SelectedNode()
	if n == nil {
		return
	}
	parent := t.manager.Parent(n)
	if parent == nil {
		return
	}
	for i, f := range t.rows {
		if f.Node == parent {
			t.cursor = i
			t.ensureCursorVisible()
			return
		}
	}
}

// Toggle applies the accordion toggle to the selected node: expanding it
// opens its ancestor chain and closes every unrelated subtree; a second
// toggle collapses just the node.
func (t *TreeView) Toggle() {
	f := t.SelectedFlat()
	if f == nil {
		return
	}
	id := f.Node.ID

	t.manager.ToggleNode(f)
	t.rebuildRows()
	t.saveState()

	// The accordion may have hidden the previous cursor position.
	if !t.SelectByID(id) {
		t.clampCursor()
	}
}

// ExpandSelectedLevel additively expands every node at the selected row's
// depth.
func (t *TreeView) ExpandSelectedLevel() {
	f := t.SelectedFlat()
	if f == nil {
		return
	}
	t.manager.ExpandLevel(f.Level)
	t.rebuildRows()
	t.saveState()
}

// ExpandLevel additively expands every node at the given depth.
func (t *TreeView) ExpandLevel(level int) {
	t.manager.ExpandLevel(level)
	t.rebuildRows()
	t.saveState()
}

// InsertChild adds child under the selected node and moves the cursor to it.
func (t *TreeView) InsertChild(child *model.Node) {
	parent := t.SelectedNode()
	if parent == nil || child == nil {
		return
	}
	if f := t.SelectedFlat(); f != nil {
		t.expansion.Expand(f) // make the new child visible
	}
	t.manager.InsertChild(parent, child)
	t.rebuildRows()
	t.saveState()
	t.selectNode(child)
}

// InsertAfter adds n as the next sibling of the selected node.
func (t *TreeView) InsertAfter(n *model.Node) error {
	sibling := t.SelectedNode()
	if sibling == nil || n == nil {
		return tree.ErrNotFound
	}
	if err := t.manager.InsertAfter(sibling, n); err != nil {
		return err
	}
	t.rebuildRows()
	t.saveState()
	t.selectNode(n)
	return nil
}

// DeleteSelected removes the selected subtree. Reports whether anything was
// removed.
func (t *TreeView) DeleteSelected() bool {
	n := t.SelectedNode()
	if n == nil {
		return false
	}
	removed := t.manager.Delete(n)
	if removed {
		t.rebuildRows()
		t.saveState()
		t.clampCursor()
	}
	return removed
}

// CloneSelected duplicates the selected subtree as its next sibling and
// moves the cursor onto the copy. The clone's IDs are cleared so persisted
// state cannot alias the original.
func (t *TreeView) CloneSelected() *model.Node {
	n := t.SelectedNode()
	if n == nil {
		return nil
	}
	clone, err := t.manager.CloneAsSiblingAfter(n, n)
	if err != nil {
		return nil
	}
	clone.Walk(func(c *model.Node) bool {
		c.ID = ""
		return true
	})
	t.rebuildRows()
	t.saveState()
	t.selectNode(clone)
	return clone
}

// View renders the visible window of tree rows.
func (t *TreeView) View() string {
	if len(t.rows) == 0 {
		return t.renderEmptyState()
	}

	start, end := t.visibleRange()
	var sb strings.Builder
	for i := start; i < end; i++ {
		line := t.renderRow(t.rows[i])
		if i == t.cursor {
			line = t.theme.Selected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *TreeView) renderEmptyState() string {
	var sb strings.Builder
	sb.WriteString(t.theme.TitleBold.Render("Outline"))
	sb.WriteString("\n\n")
	sb.WriteString(t.theme.MutedText.Render("No nodes to display."))
	sb.WriteString("\n")
	sb.WriteString(t.theme.MutedText.Render("Press a to add a node, or load an outline file with -f."))
	return sb.String()
}

// renderRow renders one visible row: branch prefix, expand indicator, title
// and tags.
func (t *TreeView) renderRow(f *tree.FlatNode) string {
	var sb strings.Builder

	prefix := t.branchPrefix(f)
	sb.WriteString(t.theme.Branch.Render(prefix))

	sb.WriteString(t.theme.Indicator.Render(t.expandIndicator(f)))
	sb.WriteString(" ")

	maxTitle := t.width - lipgloss.Width(prefix) - 6
	if maxTitle < 16 {
		maxTitle = 16
	}
	sb.WriteString(truncate(f.Node.Title, maxTitle, "…"))

	if len(f.Node.Tags) > 0 {
		sb.WriteString(" ")
		sb.WriteString(t.theme.TagText.Render("[" + strings.Join(f.Node.Tags, " ") + "]"))
	}

	return sb.String()
}

// branchPrefix builds the indentation and branch glyphs for a row.
func (t *TreeView) branchPrefix(f *tree.FlatNode) string {
	if f.Level == 0 {
		return ""
	}

	path := t.manager.Path(f.Node)
	var parts []string

	// One column per ancestor level: a vertical bar when that ancestor has
	// siblings after it, blank otherwise.
	for i := 0; i < len(path)-2; i++ {
		if t.hasSiblingsBelow(path[i+1]) {
			parts = append(parts, "│   ")
		} else {
			parts = append(parts, "    ")
		}
	}

	if t.isLastChild(f.Node) {
		parts = append(parts, "└── ")
	} else {
		parts = append(parts, "├── ")
	}

	return strings.Join(parts, "")
}

func (t *TreeView) hasSiblingsBelow(n *model.Node) bool {
	siblings := t.siblingsOf(n)
	for i, s := range siblings {
		if s == n {
			return i < len(siblings)-1
		}
	}
	return false
}

func (t *TreeView) isLastChild(n *model.Node) bool {
	siblings := t.siblingsOf(n)
	return len(siblings) > 0 && siblings[len(siblings)-1] == n
}

func (t *TreeView) siblingsOf(n *model.Node) []*model.Node {
	if parent := t.manager.Parent(n); parent != nil {
		return parent.Children
	}
	return t.manager.Data()
}

func (t *TreeView) expandIndicator(f *tree.FlatNode) string {
	if !f.Expandable {
		return "•"
	}
	if t.expansion.IsExpanded(f) {
		return "▾"
	}
	return "▸"
}

// rebuildRows recomputes the visible rows from the flat projection: a row
// is visible when no collapsed ancestor sits above it.
func (t *TreeView) rebuildRows() {
	t.rows = t.rows[:0]
	skipBelow := -1 // collapse depth; rows deeper than this are hidden
	for _, f := range t.manager.FlatNodes() {
		if skipBelow >= 0 {
			if f.Level > skipBelow {
				continue
			}
			skipBelow = -1
		}
		t.rows = append(t.rows, f)
		if f.Expandable && !t.expansion.IsExpanded(f) {
			skipBelow = f.Level
		}
	}
	t.clampCursor()
}

func (t *TreeView) selectNode(n *model.Node) {
	for i, f := range t.rows {
		if f.Node == n {
			t.cursor = i
			t.ensureCursorVisible()
			return
		}
	}
}

func (t *TreeView) clampCursor() {
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureCursorVisible()
}

func (t *TreeView) pageSize() int {
	size := t.height / 2
	if size < 1 {
		size = 5
	}
	return size
}

// visibleRange returns the [start, end) window of rows that fit the pane.
func (t *TreeView) visibleRange() (start, end int) {
	if len(t.rows) == 0 {
		return 0, 0
	}

	count := t.height
	if count <= 0 {
		count = 20
	}

	start = t.viewportOffset
	end = start + count

	if end > len(t.rows) {
		end = len(t.rows)
		start = end - count
		if start < 0 {
			start = 0
		}
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

func (t *TreeView) ensureCursorVisible() {
	count := t.height
	if count <= 0 {
		count = 20
	}
	if t.cursor < t.viewportOffset {
		t.viewportOffset = t.cursor
	}
	if t.cursor >= t.viewportOffset+count {
		t.viewportOffset = t.cursor - count + 1
	}
	if t.viewportOffset < 0 {
		t.viewportOffset = 0
	}
}
