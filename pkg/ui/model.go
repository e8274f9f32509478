package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/arbor/pkg/loader"
	"github.com/vanderheijden86/arbor/pkg/model"
	"github.com/vanderheijden86/arbor/pkg/watcher"
)

// FileChangedMsg signals that the watched outline file changed on disk.
type FileChangedMsg struct{}

// ReloadedMsg carries a freshly loaded forest.
type ReloadedMsg struct {
	Nodes []*model.Node
	Err   error
}

// insertMode says where a node built by the add form goes.
type insertMode int

const (
	insertAsChild insertMode = iota
	insertAsSibling
)

// Options configures the app model.
type Options struct {
	StateDir        string
	AutoExpandDepth int
	ShowDetail      bool
	OutlinePath     string // file to reload on change; empty disables
	Watcher         *watcher.Watcher
}

// Model is the top-level bubbletea model: tree pane, markdown detail pane,
// add-node form and status bar.
type Model struct {
	tree   *TreeView
	theme  Theme
	opts   Options
	reload func() ([]*model.Node, error)

	renderer *glamour.TermRenderer
	detail   viewport.Model

	form     *huh.Form
	formMode insertMode

	width       int
	height      int
	ready       bool
	showDetail  bool
	statusMsg   string
	statusIsErr bool
}

// NewModel builds the app model around an initial forest.
func NewModel(nodes []*model.Node, theme Theme, opts Options) Model {
	tv := NewTreeView(theme)
	tv.SetStateDir(opts.StateDir)
	tv.SetAutoExpandDepth(opts.AutoExpandDepth)
	tv.SetNodes(nodes)

	m := Model{
		tree:       tv,
		theme:      theme,
		opts:       opts,
		showDetail: opts.ShowDetail,
	}
	if opts.OutlinePath != "" {
		m.reload = func() ([]*model.Node, error) {
			return loader.LoadFile(opts.OutlinePath)
		}
	}
	return m
}

// Tree exposes the tree widget, mostly for tests.
func (m *Model) Tree() *TreeView {
	return m.tree
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.opts.Watcher != nil {
		return waitForChange(m.opts.Watcher)
	}
	return nil
}

func waitForChange(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case FileChangedMsg:
		cmds := []tea.Cmd{}
		if m.opts.Watcher != nil {
			cmds = append(cmds, waitForChange(m.opts.Watcher))
		}
		if m.reload != nil {
			reload := m.reload
			cmds = append(cmds, func() tea.Msg {
				nodes, err := reload()
				return ReloadedMsg{Nodes: nodes, Err: err}
			})
		}
		return m, tea.Batch(cmds...)

	case ReloadedMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("reload failed: %v", msg.Err), true)
			return m, nil
		}
		m.tree.SetNodes(msg.Nodes)
		m.setStatus("outline reloaded", false)
		m.syncDetail()
		return m, nil
	}

	// An active form captures everything except the window resize above.
	if m.form != nil {
		return m.updateForm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.commitForm()
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.form = nil
		m.setStatus("add cancelled", false)
		return m, nil
	}
	return m, cmd
}

// commitForm builds the node described by the form and inserts it at the
// cursor.
func (m *Model) commitForm() {
	title := strings.TrimSpace(m.form.GetString("title"))
	if title == "" {
		m.setStatus("empty title, nothing added", false)
		return
	}
	node := &model.Node{Title: title}
	if tags := strings.Fields(m.form.GetString("tags")); len(tags) > 0 {
		node.Tags = tags
	}

	switch m.formMode {
	case insertAsChild:
		m.tree.InsertChild(node)
		m.setStatus(fmt.Sprintf("added %q as child", title), false)
	case insertAsSibling:
		if err := m.tree.InsertAfter(node); err != nil {
			m.setStatus(fmt.Sprintf("add failed: %v", err), true)
			return
		}
		m.setStatus(fmt.Sprintf("added %q as sibling", title), false)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.tree.MoveUp()
	case "down", "j":
		m.tree.MoveDown()
	case "pgup", "ctrl+u":
		m.tree.PageUp()
	case "pgdown", "ctrl+d":
		m.tree.PageDown()
	case "home", "g":
		m.tree.JumpToTop()
	case "end", "G":
		m.tree.JumpToBottom()
	case "p":
		m.tree.JumpToParent()

	case "enter", " ":
		m.tree.Toggle()
	case "L":
		m.tree.ExpandSelectedLevel()

	case "a":
		return m.openForm(insertAsChild)
	case "A":
		return m.openForm(insertAsSibling)

	case "d":
		if n := m.tree.SelectedNode(); n != nil {
			title := n.Title
			if m.tree.DeleteSelected() {
				m.setStatus(fmt.Sprintf("deleted %q", title), false)
			}
		}
	case "c":
		if clone := m.tree.CloneSelected(); clone != nil {
			m.setStatus(fmt.Sprintf("cloned %q", clone.Title), false)
		}

	case "y":
		if path := m.tree.SelectedPath(); path != "" {
			if err := clipboard.WriteAll(path); err != nil {
				m.setStatus(fmt.Sprintf("clipboard error: %v", err), true)
			} else {
				m.setStatus(fmt.Sprintf("copied %q", path), false)
			}
		}

	case "J":
		m.detail.ScrollDown(1)
	case "K":
		m.detail.ScrollUp(1)

	case "tab":
		m.showDetail = !m.showDetail
		m.layout()
	}
	m.syncDetail()
	return m, nil
}

func (m Model) openForm(mode insertMode) (tea.Model, tea.Cmd) {
	if m.tree.SelectedNode() == nil && mode == insertAsSibling {
		m.setStatus("nothing selected", true)
		return m, nil
	}

	m.formMode = mode
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title"),
			huh.NewInput().
				Key("tags").
				Title("Tags (space separated)"),
		),
	).WithWidth(min(m.width, 60))
	return m, m.form.Init()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.form != nil {
		return lipgloss.Place(m.width, m.height-2,
			lipgloss.Center, lipgloss.Center, m.form.View()) + "\n" + m.statusBar()
	}

	body := m.tree.View()
	if m.showDetail && m.detail.Width > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.detail.View())
	}

	return body + "\n" + m.statusBar() + "\n" + m.helpBar()
}

// syncDetail refreshes the detail viewport with the selected node's notes
// rendered as markdown.
func (m *Model) syncDetail() {
	if !m.showDetail || m.detail.Width == 0 {
		return
	}
	n := m.tree.SelectedNode()
	if n == nil || n.Notes == "" {
		m.detail.SetContent(m.theme.MutedText.Render("  (no notes)"))
		return
	}
	content := n.Notes
	if m.renderer != nil {
		if out, err := m.renderer.Render(n.Notes); err == nil {
			content = out
		}
	}
	m.detail.SetContent(content)
}

func (m *Model) statusBar() string {
	if m.statusMsg != "" {
		if m.statusIsErr {
			return m.theme.ErrorText.Render(m.statusMsg)
		}
		return m.theme.StatusBar.Render(m.statusMsg)
	}
	return m.theme.StatusBar.Render(m.tree.SelectedPath())
}

func (m *Model) helpBar() string {
	return m.theme.MutedText.Render(
		"enter toggle · L expand level · a/A add · d delete · c clone · y yank path · tab detail · J/K scroll notes · q quit")
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsErr = isErr
}

// layout splits the window between tree and detail panes and rebuilds the
// markdown renderer for the new wrap width.
func (m *Model) layout() {
	treeWidth := m.width
	detailWidth := 0
	if m.showDetail && m.width >= 80 {
		treeWidth = m.width / 2
		detailWidth = m.width - treeWidth
	}
	m.tree.SetSize(treeWidth, m.height-3)

	if detailWidth > 0 {
		m.detail = viewport.New(detailWidth, m.height-3)
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(detailWidth-2),
		)
		if err == nil {
			m.renderer = r
		}
		m.syncDetail()
	} else {
		m.detail = viewport.Model{}
	}
}
