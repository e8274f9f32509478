package ui

import (
	"log"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// ViewState is the persisted expand/collapse state of the tree widget,
// written to <state dir>/view-state.json.
//
// File format (JSON):
//
//	{
//	  "version": 1,
//	  "expanded": {
//	    "projects/arbor": true,   // explicitly expanded
//	    "projects/other": false   // explicitly collapsed
//	  }
//	}
//
// Only explicit deviations from the default are stored; nodes not in the map
// use the default (expanded when shallower than the auto-expand depth).
// Nodes without an ID never participate. A corrupted or missing file means
// defaults — degraded, never fatal.
type ViewState struct {
	Version  int             `json:"version"`
	Expanded map[string]bool `json:"expanded"`
}

// ViewStateVersion is the current schema version for view-state persistence.
const ViewStateVersion = 1

const viewStateFileName = "view-state.json"

// ViewStatePath returns the path to the view state file inside stateDir.
func ViewStatePath(stateDir string) string {
	if stateDir == "" {
		stateDir = ".arbor"
	}
	return filepath.Join(stateDir, viewStateFileName)
}

// saveState persists the current expand/collapse state. Errors are logged
// but never interrupt the user.
func (t *TreeView) saveState() {
	if t.stateDir == "" {
		return
	}

	state := ViewState{
		Version:  ViewStateVersion,
		Expanded: make(map[string]bool),
	}

	for _, f := range t.manager.FlatNodes() {
		if f.Node.ID == "" || !f.Expandable {
			continue
		}
		defaultExpanded := f.Level < t.autoExpandDepth
		expanded := t.expansion.IsExpanded(f)
		if expanded != defaultExpanded {
			state.Expanded[f.Node.ID] = expanded
		}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Printf("warning: failed to marshal view state: %v", err)
		return
	}

	path := ViewStatePath(t.stateDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("warning: failed to create state directory: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("warning: failed to write view state to %s: %v", path, err)
	}
}

// loadState applies defaults, then overlays any persisted state. Missing
// file means first run; invalid file means defaults.
func (t *TreeView) loadState() {
	t.applyDefaultExpansion()

	if t.stateDir == "" {
		return
	}
	data, err := os.ReadFile(ViewStatePath(t.stateDir))
	if err != nil {
		return
	}

	var state ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("warning: invalid view state file, using defaults: %v", err)
		return
	}

	for _, f := range t.manager.FlatNodes() {
		if f.Node.ID == "" {
			continue
		}
		expanded, ok := state.Expanded[f.Node.ID]
		if !ok {
			continue // stale or absent ID, keep default
		}
		if expanded {
			t.expansion.Expand(f)
		} else {
			t.expansion.Collapse(f)
		}
	}
}

// applyDefaultExpansion expands every expandable node shallower than the
// auto-expand depth.
func (t *TreeView) applyDefaultExpansion() {
	for _, f := range t.manager.FlatNodes() {
		if f.Expandable && f.Level < t.autoExpandDepth {
			t.expansion.Expand(f)
		}
	}
}
