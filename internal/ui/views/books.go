package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"bookcat/internal/domain"
)

// BookRenderer handles rendering of book rows and details
type BookRenderer struct {
	styles *Styles
}

// NewBookRenderer creates a new book renderer
func NewBookRenderer(styles *Styles) *BookRenderer {
	return &BookRenderer{styles: styles}
}

// RenderList renders one row per book with the cursor on selected
func (br *BookRenderer) RenderList(books []domain.Book, selected, width int) string {
	lines := make([]string, 0, len(books))
	for i, book := range books {
		lines = append(lines, br.RenderRow(book, i == selected, width))
	}
	return strings.Join(lines, "\n")
}

// RenderRow renders a single book line
func (br *BookRenderer) RenderRow(book domain.Book, selected bool, width int) string {
	indicator := "  "
	if selected {
		indicator = "▸ "
	}

	year := ""
	if book.PublicationYear != nil {
		year = fmt.Sprintf(" (%d)", *book.PublicationYear)
	}
	line := fmt.Sprintf("%s%s by %s%s", indicator, book.Title, OrNA(book.Author), year)

	// Leave room for the main container padding
	if maxWidth := width - 4; maxWidth > 10 {
		line = ansi.Truncate(line, maxWidth, "…")
	}

	if selected {
		return br.styles.HighlightBg.Render(br.styles.Highlight.Render(line))
	}
	return line
}

// RenderDetail renders the detail popup body for a book
func (br *BookRenderer) RenderDetail(book domain.Book) string {
	var b strings.Builder

	b.WriteString(br.styles.Title.Render(book.Title))
	b.WriteString("\n\n")
	br.field(&b, "Author", OrNA(book.Author))
	br.field(&b, "Published", FormatYear(book.PublicationYear))
	br.field(&b, "ISBN", OrNA(book.ISBN))
	if book.UserID != nil {
		br.field(&b, "Added by", fmt.Sprintf("user #%d", *book.UserID))
	}
	if book.CreatedAt != "" {
		br.field(&b, "Created", book.CreatedAt)
	}
	if book.UpdatedAt != "" {
		br.field(&b, "Updated", book.UpdatedAt)
	}
	b.WriteString("\n")
	b.WriteString(br.styles.Label.Render("Description"))
	b.WriteString("\n")
	b.WriteString(OrNA(book.Description))
	b.WriteString("\n\n")
	b.WriteString(br.styles.Dim.Render("e edit · d delete · esc close"))

	return b.String()
}

func (br *BookRenderer) field(b *strings.Builder, label, value string) {
	b.WriteString(br.styles.Label.Render(fmt.Sprintf("%-10s", label)))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}
