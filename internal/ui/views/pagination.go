package views

import (
	"fmt"
	"strconv"
	"strings"
)

// Pager is the view of one list's pagination
type Pager struct {
	Page       int
	TotalPages int
	Total      int
	Range      []int
	HasPrev    bool
	HasNext    bool
	Noun       string // singular, e.g. "book"
	Nouns      string // plural
}

// PaginationRenderer draws the page buttons under a list
type PaginationRenderer struct {
	styles *Styles
}

// NewPaginationRenderer creates a new pagination renderer
func NewPaginationRenderer(styles *Styles) *PaginationRenderer {
	return &PaginationRenderer{styles: styles}
}

// Render returns the button row and the summary line. A single page
// renders only the summary.
func (pr *PaginationRenderer) Render(p Pager) string {
	summary := pr.styles.Status.Render(pr.Summary(p))
	if p.TotalPages <= 1 {
		return summary
	}
	return pr.Buttons(p) + "\n" + summary
}

// Buttons renders ‹ Prev, the window of page numbers and Next ›
func (pr *PaginationRenderer) Buttons(p Pager) string {
	parts := make([]string, 0, len(p.Range)+4)

	if p.HasPrev {
		parts = append(parts, pr.styles.PageButton.Render("‹ Prev"))
	} else {
		parts = append(parts, pr.styles.PageDisabled.Render("‹ Prev"))
	}

	if len(p.Range) > 0 && p.Range[0] > 1 {
		parts = append(parts, pr.styles.Dim.Render("…"))
	}
	for _, n := range p.Range {
		label := strconv.Itoa(n)
		if n == p.Page {
			parts = append(parts, pr.styles.PageCurrent.Render(label))
		} else {
			parts = append(parts, pr.styles.PageButton.Render(label))
		}
	}
	if len(p.Range) > 0 && p.Range[len(p.Range)-1] < p.TotalPages {
		parts = append(parts, pr.styles.Dim.Render("…"))
	}

	if p.HasNext {
		parts = append(parts, pr.styles.PageButton.Render("Next ›"))
	} else {
		parts = append(parts, pr.styles.PageDisabled.Render("Next ›"))
	}

	return strings.Join(parts, " ")
}

// Summary renders "Page 2 of 5 · 45 books"
func (pr *PaginationRenderer) Summary(p Pager) string {
	pages := p.TotalPages
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("Page %d of %d · %s", p.Page, pages, FormatCount(p.Total, p.Noun, p.Nouns))
}
