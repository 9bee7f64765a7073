package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"bookcat/internal/domain"
	"bookcat/internal/ui/state"
)

// ListView is the loading state and pagination of one list
type ListView struct {
	Status state.ListStatus
	Error  string
	Pager  Pager
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width   int
	Height  int
	Screen  state.Screen
	Spinner string

	Featured         []domain.Book
	FeaturedList     ListView
	SelectedFeatured int

	Books        []domain.Book
	BooksList    ListView
	SelectedBook int
	FilterText   string

	Users        []domain.User
	UsersList    ListView
	SelectedUser int

	Detail        *domain.Book
	Form          *FormView
	ConfirmPrompt string
	InputMode     string
	TextInput     string
	Toasts        []ToastView
	StatusMessage string

	ShowHelp         bool
	HelpContent      string
	HelpScrollOffset int
	HelpModel        help.Model
	Keys             KeyMap

	BaseURL  string
	PageSize int
	Version  string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	bookRender  *BookRenderer
	userRender  *UserRenderer
	pageRender  *PaginationRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		bookRender:  NewBookRenderer(styles),
		userRender:  NewUserRenderer(styles),
		pageRender:  NewPaginationRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(vs))
	content.WriteString("\n")
	content.WriteString(r.renderTabs(vs.Screen))
	content.WriteString("\n\n")

	// Prompt or confirmation
	if vs.ConfirmPrompt != "" {
		content.WriteString(r.styles.Confirm.Render(vs.ConfirmPrompt))
		content.WriteString("\n\n")
	} else if vs.TextInput != "" {
		content.WriteString(vs.TextInput)
		content.WriteString("\n\n")
	}

	content.WriteString(r.renderScreen(vs))

	if toasts := r.RenderToasts(vs.Toasts, vs.Width); toasts != "" {
		content.WriteString("\n\n")
		content.WriteString(toasts)
	}

	// Footer: status line and help, pushed to the bottom
	footer := r.renderFooter(vs)
	if footer != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := vs.Height - 2
		if availableLines <= 0 {
			availableLines = 22 // Default terminal height minus padding
		}

		paddingNeeded := availableLines - currentLines - (strings.Count(footer, "\n") + 1)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(footer)
	}

	mainStyle := r.styles.Main
	if vs.Height > 0 {
		mainStyle = mainStyle.MaxHeight(vs.Height)
	}
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if vs.ShowHelp {
		helpContent := r.renderHelpContent(vs.HelpContent, vs.Height, vs.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, vs.Height, vs.Width, r.styles.InfoBox)
	}

	if vs.Form != nil {
		return r.popupRender.RenderPopupOverlay(finalContent, r.RenderForm(*vs.Form), vs.Height, vs.Width, r.styles.FormBox)
	}

	if vs.Detail != nil {
		return r.popupRender.RenderPopupOverlay(finalContent, r.bookRender.RenderDetail(*vs.Detail), vs.Height, vs.Width, r.styles.DetailBox)
	}

	return finalContent
}

// renderTitleLine renders the logo with right-aligned indicators
func (r *Renderer) renderTitleLine(vs ViewState) string {
	logo := r.styles.Title.Render("bookcat")

	var indicators []string
	if loading := r.loadingLabel(vs); loading != "" {
		indicators = append(indicators, r.styles.Dim.Render(fmt.Sprintf("%s %s", vs.Spinner, loading)))
	}
	if vs.FilterText != "" && vs.Screen == state.ScreenBooks {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", vs.FilterText)))
	}
	if len(indicators) == 0 {
		return logo
	}

	rightContent := strings.Join(indicators, "  ")
	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return fmt.Sprintf("%s  %s", logo, rightContent)
}

func (r *Renderer) loadingLabel(vs ViewState) string {
	var parts []string
	if vs.FeaturedList.Status == state.StatusLoading {
		parts = append(parts, "featured")
	}
	if vs.BooksList.Status == state.StatusLoading {
		parts = append(parts, "books")
	}
	if vs.UsersList.Status == state.StatusLoading {
		parts = append(parts, "users")
	}
	if len(parts) == 0 {
		return ""
	}
	return "Loading " + strings.Join(parts, ", ")
}

// renderTabs renders the screen switcher
func (r *Renderer) renderTabs(current state.Screen) string {
	tabs := make([]string, 0, len(state.Screens))
	for i, s := range state.Screens {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == current {
			tabs = append(tabs, r.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, r.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderScreen renders the body of the active screen
func (r *Renderer) renderScreen(s ViewState) string {
	switch s.Screen {
	case state.ScreenHome:
		body := r.renderList(s.FeaturedList, s.Spinner, "featured books", len(s.Featured), false, func() string {
			return r.bookRender.RenderList(s.Featured, s.SelectedFeatured, s.Width)
		})
		return r.styles.Heading.Render("Featured books") + "\n" + body + "\n\n" +
			r.styles.Dim.Render("Press / to search the catalog, 2 to browse all books")

	case state.ScreenBooks:
		body := r.renderList(s.BooksList, s.Spinner, "books", len(s.Books), s.FilterText != "", func() string {
			return r.bookRender.RenderList(s.Books, s.SelectedBook, s.Width)
		})
		return r.styles.Heading.Render("Books") + "\n" + body

	case state.ScreenUsers:
		body := r.renderList(s.UsersList, s.Spinner, "users", len(s.Users), false, func() string {
			return r.userRender.Render(s.Users, s.SelectedUser)
		})
		return r.styles.Heading.Render("Users") + "\n" + body

	default:
		return r.RenderAbout(s)
	}
}

// renderList wraps a list body with its loading, error and empty
// placeholders and the pagination footer.
func (r *Renderer) renderList(list ListView, spinner, noun string, count int, filtered bool, body func() string) string {
	if count == 0 {
		switch list.Status {
		case state.StatusLoading, state.StatusIdle:
			return r.styles.Dim.Render(fmt.Sprintf("%s Loading %s...", spinner, noun))
		case state.StatusFailed:
			return r.styles.StatusError.Render(fmt.Sprintf("Error loading %s: %s", noun, list.Error)) + "\n" +
				r.styles.Dim.Render("Press r to retry")
		default:
			empty := r.styles.Dim.Render(fmt.Sprintf("No %s found.", noun))
			if filtered {
				empty += "\n" + r.styles.Dim.Render("Press c to clear filters")
			}
			return empty
		}
	}

	out := body()
	if list.Status == state.StatusFailed && list.Error != "" {
		out += "\n" + r.styles.StatusError.Render(list.Error)
	}
	if list.Pager.Nouns != "" {
		out += "\n\n" + r.pageRender.Render(list.Pager)
	}
	return out
}

// renderFooter renders the status message and the help line
func (r *Renderer) renderFooter(vs ViewState) string {
	var lines []string
	if vs.StatusMessage != "" {
		lines = append(lines, r.styles.StatusInfo.Render(vs.StatusMessage))
	}
	if !vs.ShowHelp && vs.Form == nil && vs.Detail == nil {
		if len(vs.Keys.ShortHelp()) > 0 {
			lines = append(lines, vs.HelpModel.ShortHelpView(vs.Keys.ShortHelp()))
		}
		lines = append(lines, r.styles.Help.Render("Press ? for help"))
	}
	return strings.Join(lines, "\n")
}

// renderHelpContent scrolls the help text to fit the popup
func (r *Renderer) renderHelpContent(content string, height int, scrollOffset int) string {
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// Calculate visible window (account for popup border and padding)
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines > visibleHeight {
		maxOffset := totalLines - visibleHeight
		if scrollOffset > maxOffset {
			scrollOffset = maxOffset
		}
		if scrollOffset < 0 {
			scrollOffset = 0
		}

		endLine := scrollOffset + visibleHeight
		if endLine > totalLines {
			endLine = totalLines
		}
		lines = lines[scrollOffset:endLine]

		if scrollOffset > 0 {
			lines[0] = r.styles.Status.Render("↑ (more above)")
		}
		if endLine < totalLines {
			lines[len(lines)-1] = r.styles.Status.Render("↓ (more below)")
		}
	}

	return strings.Join(lines, "\n")
}
