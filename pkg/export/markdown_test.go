package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/arbor/pkg/model"
)

func fixture() []*model.Node {
	return []*model.Node{
		{Title: "Projects", Children: []*model.Node{
			{Title: "arbor", Tags: []string{"go", "tui"}, Notes: "Outline viewer."},
		}},
		{Title: "Inbox"},
	}
}

func TestGenerateMarkdown(t *testing.T) {
	out, err := GenerateMarkdown(fixture(), "My Outline")
	if err != nil {
		t.Fatalf("GenerateMarkdown: %v", err)
	}

	for _, want := range []string{
		"# My Outline",
		"- **Nodes**: 3",
		"- **Leaves**: 2",
		"- **Depth**: 2",
		"- Projects\n  - arbor `[go tui]`\n- Inbox",
		"## arbor",
		"Outline viewer.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}

	// Nodes without notes get no section of their own.
	if strings.Contains(out, "## Inbox") {
		t.Error("note-less nodes must not produce a section")
	}
}

func TestSaveMarkdownToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.md")
	if err := SaveMarkdownToFile(fixture(), "Export", path); err != nil {
		t.Fatalf("SaveMarkdownToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Export") {
		t.Error("expected the rendered document on disk")
	}
}
