package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Confirm      lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	Filter       lipgloss.Style
	DetailBox    lipgloss.Style
	FormBox      lipgloss.Style
	InfoBox      lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Heading      lipgloss.Style
	Label        lipgloss.Style
	Highlight    lipgloss.Style
	HighlightBg  lipgloss.Style
	PageButton   lipgloss.Style
	PageCurrent  lipgloss.Style
	PageDisabled lipgloss.Style
	StatusError  lipgloss.Style
	StatusInfo   lipgloss.Style
	StatusOK     lipgloss.Style
	ToastBox     lipgloss.Style
	TableHeader  lipgloss.Style
	TableCursor  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Padding(0, 1),
		Confirm:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Dim:       lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		DetailBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(64).
			BorderForeground(lipgloss.Color("99")),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(64).
			BorderForeground(lipgloss.Color("214")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			Width(60).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Heading:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Highlight:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:  lipgloss.NewStyle().Background(lipgloss.Color("238")),
		PageButton:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		PageCurrent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("99")).Padding(0, 1),
		PageDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Padding(0, 1),
		StatusError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusInfo:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // blue
		StatusOK:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		ToastBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			BorderBottom(true),
		TableCursor: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")),
	}
}

// SeverityColor returns the color of a toast severity
func SeverityColor(severity string) string {
	switch severity {
	case "success":
		return "78" // green
	case "error":
		return "203" // red
	default:
		return "33" // blue
	}
}
