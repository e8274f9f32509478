package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vanderheijden86/arbor/pkg/config"
	"github.com/vanderheijden86/arbor/pkg/export"
	"github.com/vanderheijden86/arbor/pkg/loader"
	"github.com/vanderheijden86/arbor/pkg/model"
	"github.com/vanderheijden86/arbor/pkg/ui"
	"github.com/vanderheijden86/arbor/pkg/watcher"
)

var version = "dev"

func main() {
	filePath := flag.String("f", "", "Outline file to open (JSON)")
	dirPath := flag.String("d", "", "Directory of outline files to merge")
	stateDir := flag.String("state", "", "Override the state directory for expand/collapse persistence")
	noWatch := flag.Bool("no-watch", false, "Disable live reload of the outline file")
	printTree := flag.Bool("print", false, "Print the fully expanded tree to stdout and exit")
	exportPath := flag.String("export", "", "Write the outline as markdown to the given file and exit")
	showVersion := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: arbor [options]")
		fmt.Println("\nA TUI outline tree viewer and editor.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Printf("arbor %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("warning: %v", err)
	}

	outline := *filePath
	if outline == "" && *dirPath == "" {
		outline = cfg.Outline
	}

	var nodes []*model.Node
	switch {
	case *dirPath != "":
		var results []loader.FileResult
		nodes, results, err = loader.LoadDir(*dirPath)
		for _, r := range results {
			if r.Err != nil {
				log.Printf("warning: %v", r.Err)
			}
		}
	case outline != "":
		nodes, err = loader.LoadFile(outline)
	default:
		fmt.Fprintln(os.Stderr, "arbor: no outline given (use -f, -d, or set outline in config)")
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "arbor: %v\n", err)
		os.Exit(1)
	}

	if *printTree {
		writeTree(os.Stdout, nodes)
		os.Exit(0)
	}

	if *exportPath != "" {
		title := "Outline"
		if outline != "" {
			title = filepath.Base(outline)
		}
		if err := export.SaveMarkdownToFile(nodes, title, *exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "arbor: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "arbor: stdout is not a terminal (use -print for non-interactive output)")
		os.Exit(1)
	}

	resolvedState := *stateDir
	if resolvedState == "" {
		resolvedState = cfg.ResolvedStateDir()
	}

	opts := ui.Options{
		StateDir:        resolvedState,
		AutoExpandDepth: cfg.UI.AutoExpandDepth,
		ShowDetail:      cfg.UI.ShowDetail == nil || *cfg.UI.ShowDetail,
		OutlinePath:     outline,
	}

	if outline != "" && !*noWatch {
		w, err := watcher.New(outline)
		if err != nil {
			log.Printf("warning: cannot watch %s: %v", outline, err)
		} else if err := w.Start(); err != nil {
			log.Printf("warning: cannot watch %s: %v", outline, err)
		} else {
			opts.Watcher = w
			defer w.Stop()
		}
	}

	theme := ui.DefaultTheme(lipgloss.DefaultRenderer())
	m := ui.NewModel(nodes, theme, opts)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "arbor: %v\n", err)
		os.Exit(1)
	}
}

// writeTree prints the forest fully expanded with branch glyphs, for piping
// and scripts.
func writeTree(w io.Writer, roots []*model.Node) {
	var walk func(n *model.Node, prefix string, last bool, root bool)
	walk = func(n *model.Node, prefix string, last bool, root bool) {
		branch := ""
		childPrefix := prefix
		if !root {
			if last {
				branch = "└── "
				childPrefix += "    "
			} else {
				branch = "├── "
				childPrefix += "│   "
			}
		}
		line := prefix + branch + n.Title
		if len(n.Tags) > 0 {
			line += " [" + strings.Join(n.Tags, " ") + "]"
		}
		fmt.Fprintln(w, line)
		for i, child := range n.Children {
			walk(child, childPrefix, i == len(n.Children)-1, false)
		}
	}
	for i, root := range roots {
		walk(root, "", i == len(roots)-1, true)
	}
}
