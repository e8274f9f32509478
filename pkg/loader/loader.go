// Package loader reads outline documents into model trees. An outline file
// is a JSON array of nodes:
//
//	[
//	  {"title": "Projects", "children": [
//	    {"id": "proj-arbor", "title": "arbor", "notes": "..."}
//	  ]}
//	]
//
// IDs are optional in the document; missing ones are synthesized from the
// node's position so expand/collapse state stays stable across reloads of
// the same file.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/arbor/pkg/model"
)

// LoadFile reads a single outline document.
func LoadFile(path string) ([]*model.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read outline %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes an outline document and fills in missing IDs.
func Parse(data []byte) ([]*model.Node, error) {
	var roots []*model.Node
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("parse outline: %w", err)
	}
	AssignIDs(roots)
	return roots, nil
}

// FileResult reports the outcome of loading one file during a directory
// merge.
type FileResult struct {
	Path  string
	Count int // nodes loaded, including descendants
	Err   error
}

// LoadDir merges every *.json outline in dir into one forest, in filename
// order. Files load in parallel; a file that fails to parse is reported in
// the results but does not fail the merge. The returned error is non-nil
// only when the directory itself cannot be read or no file loaded at all.
func LoadDir(dir string) ([]*model.Node, []FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read outline dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no outline files in %s", dir)
	}

	results := make([]FileResult, len(paths))
	forests := make([][]*model.Node, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			roots, err := LoadFile(path)
			results[i] = FileResult{Path: path, Err: err}
			if err != nil {
				return nil // per-file failures don't break the merge
			}
			for _, r := range roots {
				results[i].Count += r.Count()
			}
			forests[i] = roots
			return nil
		})
	}
	g.Wait()

	var merged []*model.Node
	loaded := 0
	for i := range forests {
		if results[i].Err != nil {
			continue
		}
		loaded++
		merged = append(merged, forests[i]...)
	}
	if loaded == 0 {
		return nil, results, fmt.Errorf("no outline file in %s could be loaded", dir)
	}

	// Re-assign across the merged forest so synthesized IDs from different
	// files cannot collide.
	AssignIDs(merged)
	return merged, results, nil
}

// AssignIDs fills in empty IDs with slugs derived from the node's title and
// its path from the root, de-duplicated among siblings. Explicit IDs are
// never touched.
func AssignIDs(roots []*model.Node) {
	assignIDs(roots, "")
}

func assignIDs(nodes []*model.Node, prefix string) {
	seen := make(map[string]int)
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.ID == "" {
			id := slugify(n.Title)
			if prefix != "" {
				id = prefix + "/" + id
			}
			seen[id]++
			if c := seen[id]; c > 1 {
				id = fmt.Sprintf("%s-%d", id, c)
			}
			n.ID = id
		}
		assignIDs(n.Children, n.ID)
	}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "node"
	}
	return out
}
