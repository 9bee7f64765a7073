package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"bookcat/internal/api"
	"bookcat/internal/domain"
	"bookcat/internal/ui/logic"
	"bookcat/internal/ui/views"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	currentStyle = lipgloss.NewStyle().Bold(true)
)

// newTable returns a bordered table with the shared header style
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// jsonPage mirrors the backend's list envelope
type jsonPage[T any] struct {
	Data []T             `json:"data"`
	Meta domain.PageMeta `json:"meta"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderBooks(w io.Writer, books []domain.Book) {
	t := newTable("ID", "Title", "Author", "Year")
	for _, b := range books {
		t.Row(strconv.Itoa(b.ID), b.Title, b.Author, views.FormatYear(b.PublicationYear))
	}
	fmt.Fprintln(w, t)
}

func renderUsers(w io.Writer, users []domain.User) {
	t := newTable("ID", "Username", "Email", "Name", "Active")
	for _, u := range users {
		t.Row(strconv.Itoa(u.ID), u.Username, u.Email, views.OrNA(u.FullName()), views.FormatActive(u))
	}
	fmt.Fprintln(w, t)
}

// renderFooter prints the page summary and the page links around the
// current page, e.g. "Page 3 of 9 · 84 books" and "… 1 2 [3] 4 5 …"
func renderFooter(w io.Writer, ps *logic.PageState, singular, plural string) {
	summary := fmt.Sprintf("Page %d of %d · %s", ps.Page(), ps.TotalPages(), views.FormatCount(ps.Total(), singular, plural))
	fmt.Fprintln(w, footerStyle.Render(summary))

	pages := ps.PageRange()
	if len(pages) == 0 {
		return
	}
	links := make([]string, 0, len(pages)+2)
	if pages[0] > 1 {
		links = append(links, "…")
	}
	for _, n := range pages {
		if n == ps.Page() {
			links = append(links, currentStyle.Render(fmt.Sprintf("[%d]", n)))
		} else {
			links = append(links, strconv.Itoa(n))
		}
	}
	if pages[len(pages)-1] < ps.TotalPages() {
		links = append(links, "…")
	}
	fmt.Fprintln(w, footerStyle.Render(strings.Join(links, " ")))
}

// renderFields prints label/value pairs with aligned values
func renderFields(w io.Writer, title string, fields [][2]string) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f[0]))
	}
	fmt.Fprintln(w, headerStyle.UnsetPadding().Render(title))
	for _, f := range fields {
		fmt.Fprintf(w, "  %-*s  %s\n", width+1, f[0]+":", f[1])
	}
}

// requestError reports a failed backend call with the message a user should
// see, while keeping the client error reachable through errors.Is and errors.As
type requestError struct {
	action string
	err    error
}

func (e *requestError) Error() string {
	return e.action + ": " + api.UserMessage(e.err)
}

func (e *requestError) Unwrap() error { return e.err }

func wrapRequestError(err error, format string, args ...any) error {
	return &requestError{action: fmt.Sprintf(format, args...), err: err}
}
