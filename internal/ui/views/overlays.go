package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ToastView is a notification ready for rendering
type ToastView struct {
	Message  string
	Severity string
}

// FieldView is one form field ready for rendering
type FieldView struct {
	Label    string
	Input    string
	Focused  bool
	Required bool
	Locked   bool
}

// FormView is the add/edit popup ready for rendering
type FormView struct {
	Title  string
	Fields []FieldView
	Error  string
}

// RenderToasts stacks toasts right-aligned, oldest first
func (r *Renderer) RenderToasts(toasts []ToastView, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	boxes := make([]string, 0, len(toasts))
	for _, t := range toasts {
		color := lipgloss.Color(SeverityColor(t.Severity))
		box := r.styles.ToastBox.
			BorderForeground(color).
			Foreground(color).
			Render(t.Message)
		boxes = append(boxes, box)
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, boxes...)
	// Leave room for the main container padding
	return lipgloss.PlaceHorizontal(max(width-4, lipgloss.Width(stack)), lipgloss.Right, stack)
}

// RenderForm renders the add/edit form body
func (r *Renderer) RenderForm(form FormView) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(form.Title))
	b.WriteString("\n\n")

	for _, f := range form.Fields {
		label := f.Label
		if f.Required {
			label += "*"
		}
		marker := "  "
		if f.Focused {
			marker = r.styles.Highlight.Render("▸ ")
		}
		b.WriteString(marker)
		b.WriteString(r.styles.Label.Render(fmt.Sprintf("%-18s", label)))
		if f.Locked {
			b.WriteString(r.styles.Dim.Render(f.Input + " (locked)"))
		} else {
			b.WriteString(f.Input)
		}
		b.WriteString("\n")
	}

	if form.Error != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.StatusError.Render(form.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("tab/shift+tab move · enter save · esc cancel"))
	return b.String()
}

// RenderAbout renders the about screen
func (r *Renderer) RenderAbout(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Heading.Render("About"))
	b.WriteString("\n")
	b.WriteString("bookcat browses and edits a book and user catalog from the terminal.\n\n")
	b.WriteString(r.styles.Label.Render("Backend   "))
	b.WriteString(OrNA(state.BaseURL))
	b.WriteString("\n")
	b.WriteString(r.styles.Label.Render("Page size "))
	b.WriteString(fmt.Sprintf("%d", state.PageSize))
	b.WriteString("\n")
	if state.Version != "" {
		b.WriteString(r.styles.Label.Render("Version   "))
		b.WriteString(state.Version)
		b.WriteString("\n")
	}
	return b.String()
}
