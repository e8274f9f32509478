package ui

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/arbor/pkg/model"
)

func newPersistentView(t *testing.T, dir string) *TreeView {
	t.Helper()
	tv := NewTreeView(testTheme())
	tv.SetSize(80, 24)
	tv.SetStateDir(dir)
	tv.SetNodes(outline())
	return tv
}

func TestViewStatePath(t *testing.T) {
	if got := ViewStatePath("/tmp/state"); got != filepath.Join("/tmp/state", "view-state.json") {
		t.Errorf("ViewStatePath = %q", got)
	}
	if got := ViewStatePath(""); got != filepath.Join(".arbor", "view-state.json") {
		t.Errorf("default ViewStatePath = %q", got)
	}
}

func TestSaveStateStoresOnlyDeviations(t *testing.T) {
	dir := t.TempDir()
	tv := newPersistentView(t, dir)

	// 'arbor' expanded at level 1 deviates from the depth-1 default;
	// 'projects' expanded at level 0 does not.
	tv.SelectByID("arbor")
	tv.Toggle()

	data, err := os.ReadFile(ViewStatePath(dir))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var state ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("parse state: %v", err)
	}

	if state.Version != ViewStateVersion {
		t.Errorf("version = %d, want %d", state.Version, ViewStateVersion)
	}
	if v, ok := state.Expanded["arbor"]; !ok || !v {
		t.Errorf("expected arbor=true in %v", state.Expanded)
	}
	if _, ok := state.Expanded["projects"]; ok {
		t.Error("default-matching states must not be persisted")
	}
	if _, ok := state.Expanded["widget"]; ok {
		t.Error("leaves must not be persisted")
	}
}

func TestStateRoundTrip(t *testing.T) {
	dir := t.TempDir()

	first := newPersistentView(t, dir)
	first.SelectByID("arbor")
	first.Toggle() // expand a level-1 node, persisting the deviation

	// A fresh widget over the same document restores the expansion.
	second := newPersistentView(t, dir)
	assertRows(t, second, "projects", "arbor", "widget", "kargo", "inbox")
}

func TestStateCollapseDeviation(t *testing.T) {
	dir := t.TempDir()

	first := newPersistentView(t, dir)
	first.SelectByID("projects")
	first.Toggle() // collapse a level-0 node, deviating from the default

	second := newPersistentView(t, dir)
	assertRows(t, second, "projects", "inbox")
}

func TestLoadStateIgnoresStaleIDs(t *testing.T) {
	dir := t.TempDir()
	body := `{"version": 1, "expanded": {"arbor": true, "deleted-long-ago": true}}`
	if err := os.WriteFile(ViewStatePath(dir), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tv := newPersistentView(t, dir)
	assertRows(t, tv, "projects", "arbor", "widget", "kargo", "inbox")
}

func TestLoadStateCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(ViewStatePath(dir), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Corrupt state degrades to defaults, never fails.
	tv := newPersistentView(t, dir)
	assertRows(t, tv, "projects", "arbor", "kargo", "inbox")
}

func TestNoStateDirDisablesPersistence(t *testing.T) {
	tv := NewTreeView(testTheme())
	tv.SetNodes(outline())
	tv.SelectByID("arbor")
	tv.Toggle()

	if _, err := os.Stat(filepath.Join(".arbor", "view-state.json")); err == nil {
		t.Error("no state dir means nothing on disk")
	}
}

func TestSaveStateSkipsEmptyIDs(t *testing.T) {
	dir := t.TempDir()
	tv := NewTreeView(testTheme())
	tv.SetSize(80, 24)
	tv.SetStateDir(dir)
	tv.SetNodes([]*model.Node{
		{Title: "anonymous", Children: []*model.Node{{Title: "kid"}}},
	})

	tv.JumpToTop()
	tv.Toggle() // collapse the auto-expanded anonymous root

	data, err := os.ReadFile(ViewStatePath(dir))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var state ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("parse state: %v", err)
	}
	if len(state.Expanded) != 0 {
		t.Errorf("nodes without IDs must not be persisted, got %v", state.Expanded)
	}
}
