package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	name    string
	entries []helpEntry
	note    string
}

var helpSections = []helpSection{
	{name: "Navigation", entries: []helpEntry{
		{"↑/↓, j/k", "Move the cursor"},
		{"Home/End", "First/last row"},
		{"Tab", "Next screen"},
		{"1-4", "Home, Books, Users, About"},
	}},
	{name: "Pages", entries: []helpEntry{
		{"←/→, h/l, [/]", "Previous/next page"},
		{"PgUp/PgDn", "Previous/next page"},
		{"gg/G", "First/last page"},
		{":", "Go to page"},
		{"+/-", "Bigger/smaller pages"},
	}},
	{name: "Search & Filter", entries: []helpEntry{
		{"/", "Search books by title or author"},
		{"y", "Filter books by publication year"},
		{"c", "Clear filters"},
	}, note: "Year examples: 1990-2000, 1990-, -2000, 1965"},
	{name: "Books & Users", entries: []helpEntry{
		{"Enter, v", "Show book details"},
		{"a, n", "Add"},
		{"e", "Edit"},
		{"d, x", "Delete (asks first)"},
		{"r", "Reload"},
	}},
	{name: "Forms", entries: []helpEntry{
		{"Tab/Shift+Tab", "Next/previous field"},
		{"Enter, Ctrl+S", "Save"},
		{"Esc", "Cancel"},
	}},
	{name: "Other", entries: []helpEntry{
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}},
}

// RenderHelpContent renders the key reference shown in the pager and the help popup
func (r *HelpRenderer) RenderHelpContent() string {
	width := 0
	for _, s := range helpSections {
		for _, e := range s.entries {
			width = max(width, lipgloss.Width(e.keys))
		}
	}

	var help strings.Builder
	help.WriteString(r.title.Render("bookcat Help"))
	help.WriteString("\n")

	for i, s := range helpSections {
		help.WriteString(r.section.Render(s.name))
		help.WriteString("\n")
		for _, e := range s.entries {
			pad := strings.Repeat(" ", width-lipgloss.Width(e.keys)+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", r.key.Render(e.keys), pad, r.desc.Render(e.desc)))
		}
		if s.note != "" {
			help.WriteString(r.note.Render("  " + s.note))
			help.WriteString("\n")
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}

	return strings.TrimSuffix(help.String(), "\n")
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
