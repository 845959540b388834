package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tikkit/internal/app"
	"tikkit/internal/config"
	"tikkit/internal/model"
	"tikkit/internal/state"
	"tikkit/internal/store"
	"tikkit/internal/ui"
	"tikkit/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "version":
			fmt.Printf("tikkit v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	themeFlag := flag.String("theme", "", "Theme name (nord, gruvbox)")
	dbFlag := flag.String("db", "", "Path to the database file")
	flag.Parse()

	// Run TUI
	if err := runTUI(*themeFlag, *dbFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `tikkit - a small todo list for the terminal

Usage:
  tikkit                    Start the TUI
  tikkit add <task>         Quick add a task
  tikkit version            Show version
  tikkit help               Show this help

Quick Add Syntax:
  tikkit add "Buy milk @shopping"

  Category:  @work @studies @shopping   (default: work)

TUI Options:
  --theme <name>    Theme (nord, gruvbox)
  --db <path>       Database file (default: ~/.local/share/tikkit/tikkit.db)

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                g/G           Go to top/bottom

  Actions:      a             Add new task
                enter         Edit task
                space         Toggle done
                c             Cycle category
                A             Toggle all done
                d             Delete (with confirm)
                C             Clear completed

  Filters:      1/2/3         All / Active / Completed
                f             Cycle filter

  General:      ?             Help
                ctrl+t        Cycle theme
                q             Quit`

	fmt.Println(help)
}

// handleAdd appends a task without starting the TUI. The edit goes through
// the same reducer the TUI uses: stage the draft, submit it, persist the
// resulting state.
func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: tikkit add <task>")
		fmt.Fprintln(os.Stderr, "Example: tikkit add \"Buy milk @shopping\"")
		os.Exit(1)
	}

	text, category := parseQuickAdd(strings.Join(args, " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "Error: task text is empty")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	s, _ := store.LoadState(st, store.StateKey)
	prevDraft, prevCategory := s.DraftText, s.DraftCategory

	s = state.Reduce(s, state.SetDraftText{Text: text})
	s = state.Reduce(s, state.SetDraftCategory{Category: category})
	s = state.Reduce(s, state.AddEntry{})

	// Quick add must not clobber a draft typed in an earlier session.
	s = state.Reduce(s, state.SetDraftText{Text: prevDraft})
	s = state.Reduce(s, state.SetDraftCategory{Category: prevCategory})

	if err := store.SaveState(st, store.StateKey, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created: %s\n", text)
	if category != model.CategoryWork {
		fmt.Printf("Category: %s\n", category)
	}
}

// parseQuickAdd splits category markers (@work, @studies, @shopping) out of
// the task text. The last valid marker wins; unknown @words stay in the text.
func parseQuickAdd(text string) (string, model.Category) {
	category := model.CategoryWork

	var titleParts []string
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, "@") {
			if c, ok := model.ParseCategory(strings.TrimPrefix(word, "@")); ok {
				category = c
				continue
			}
		}
		titleParts = append(titleParts, word)
	}

	return strings.Join(titleParts, " "), category
}

func runTUI(themeName, dbPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if themeName != "" {
		cfg.Theme = themeName
	}

	if t, ok := theme.ByName(cfg.Theme); ok {
		theme.SetTheme(t)
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	root := ui.NewRootModel(application)

	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
