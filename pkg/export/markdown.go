// Package export renders an outline forest to non-interactive formats.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vanderheijden86/arbor/pkg/model"
)

// GenerateMarkdown creates a markdown document for the outline: a summary,
// then one nested list item per node with its tags, then a section per node
// that carries notes.
func GenerateMarkdown(roots []*model.Node, title string) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC1123)))

	sb.WriteString("## Summary\n\n")
	total := 0
	leaves := 0
	maxDepth := 0
	var measure func(n *model.Node, depth int)
	measure = func(n *model.Node, depth int) {
		total++
		if depth > maxDepth {
			maxDepth = depth
		}
		if n.IsLeaf() {
			leaves++
			return
		}
		for _, child := range n.Children {
			measure(child, depth+1)
		}
	}
	for _, root := range roots {
		measure(root, 0)
	}
	sb.WriteString(fmt.Sprintf("- **Nodes**: %d\n", total))
	sb.WriteString(fmt.Sprintf("- **Leaves**: %d\n", leaves))
	sb.WriteString(fmt.Sprintf("- **Depth**: %d\n\n", maxDepth+1))

	sb.WriteString("## Outline\n\n")
	var list func(n *model.Node, depth int)
	list = func(n *model.Node, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("- ")
		sb.WriteString(n.Title)
		if len(n.Tags) > 0 {
			sb.WriteString(" `[" + strings.Join(n.Tags, " ") + "]`")
		}
		sb.WriteString("\n")
		for _, child := range n.Children {
			list(child, depth+1)
		}
	}
	for _, root := range roots {
		list(root, 0)
	}
	sb.WriteString("\n---\n\n")

	// One section per node that carries notes, in traversal order.
	model.WalkAll(roots, func(n *model.Node) bool {
		if n.Notes == "" {
			return true
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", n.Title))
		if len(n.Tags) > 0 {
			sb.WriteString("Tags: `" + strings.Join(n.Tags, "` `") + "`\n\n")
		}
		sb.WriteString(n.Notes)
		sb.WriteString("\n\n")
		return true
	})

	return sb.String(), nil
}

// SaveMarkdownToFile writes the generated markdown to a file.
func SaveMarkdownToFile(roots []*model.Node, title, filename string) error {
	content, err := GenerateMarkdown(roots, title)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(content), 0644)
}
