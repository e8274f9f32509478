package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/arbor/pkg/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(outline(), testTheme(), Options{AutoExpandDepth: 1})
	return resize(m, 100, 30)
}

func resize(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := newTestModel(t)
		_, cmd := press(m, key)
		if cmd == nil {
			t.Fatalf("key %q: expected a quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q: expected tea.QuitMsg", key)
		}
	}
}

func TestViewBeforeFirstResize(t *testing.T) {
	m := NewModel(outline(), testTheme(), Options{})
	if got := m.View(); !strings.Contains(got, "loading") {
		t.Errorf("expected the loading placeholder, got %q", got)
	}
}

func TestNavigationKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, "j")
	if got := m.Tree().SelectedID(); got != "arbor" {
		t.Errorf("after j: selected %q, want arbor", got)
	}
	m, _ = press(m, "k")
	if got := m.Tree().SelectedID(); got != "projects" {
		t.Errorf("after k: selected %q, want projects", got)
	}
	m, _ = press(m, "G")
	if got := m.Tree().SelectedID(); got != "inbox" {
		t.Errorf("after G: selected %q, want inbox", got)
	}
	m, _ = press(m, "g")
	if got := m.Tree().SelectedID(); got != "projects" {
		t.Errorf("after g: selected %q, want projects", got)
	}
}

func TestToggleKey(t *testing.T) {
	m := newTestModel(t)
	m.Tree().SelectByID("arbor")

	m, _ = press(m, "enter")
	if !m.Tree().SelectByID("widget") {
		t.Error("expected 'widget' visible after toggling its parent")
	}
}

func TestDeleteKey(t *testing.T) {
	m := newTestModel(t)
	m.Tree().SelectByID("inbox")

	m, _ = press(m, "d")
	if m.Tree().SelectByID("inbox") {
		t.Error("expected 'inbox' removed")
	}
	if !strings.Contains(m.statusMsg, "deleted") {
		t.Errorf("status = %q, want delete confirmation", m.statusMsg)
	}
}

func TestCloneKey(t *testing.T) {
	m := newTestModel(t)
	m.Tree().SelectByID("kargo")

	m, _ = press(m, "c")
	if !strings.Contains(m.statusMsg, "cloned") {
		t.Errorf("status = %q, want clone confirmation", m.statusMsg)
	}
	if got := m.Tree().RowCount(); got != 5 {
		t.Errorf("rows after clone = %d, want 5", got)
	}
}

func TestFormCapturesNavigation(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(m, "a")
	if m.form == nil {
		t.Fatal("expected the add form to open")
	}
	if cmd == nil {
		t.Error("expected the form init command")
	}

	// While the form is up, tree keys must not reach the tree.
	before := m.Tree().SelectedID()
	m, _ = press(m, "j")
	if got := m.Tree().SelectedID(); got != before {
		t.Errorf("selection moved to %q while the form was active", got)
	}
}

func TestReloadedMsg(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(ReloadedMsg{Nodes: []*model.Node{{ID: "fresh", Title: "fresh"}}})
	m = next.(Model)
	if got := m.Tree().RowCount(); got != 1 {
		t.Errorf("rows after reload = %d, want 1", got)
	}
	if !strings.Contains(m.statusMsg, "reloaded") {
		t.Errorf("status = %q, want reload confirmation", m.statusMsg)
	}
}

func TestReloadedMsgError(t *testing.T) {
	m := newTestModel(t)
	before := m.Tree().RowCount()

	next, _ := m.Update(ReloadedMsg{Err: errors.New("parse outline: boom")})
	m = next.(Model)
	if m.Tree().RowCount() != before {
		t.Error("a failed reload must keep the current forest")
	}
	if !m.statusIsErr {
		t.Error("expected an error status")
	}
}

func TestViewContainsHelpBar(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "q quit") {
		t.Error("expected the help bar in the view")
	}
	if !strings.Contains(out, "projects") {
		t.Error("expected tree rows in the view")
	}
}

func TestTabTogglesDetail(t *testing.T) {
	m := newTestModel(t)

	wasDetail := m.showDetail
	m, _ = press(m, "tab")
	if m.showDetail == wasDetail {
		t.Error("expected tab to flip the detail pane")
	}
}
