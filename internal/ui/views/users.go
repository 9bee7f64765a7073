package views

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"bookcat/internal/domain"
)

// UserRenderer renders the users screen as a table
type UserRenderer struct {
	styles *Styles
}

// NewUserRenderer creates a new user renderer
func NewUserRenderer(styles *Styles) *UserRenderer {
	return &UserRenderer{styles: styles}
}

// NewUserTable builds the table model for one page of users
func (ur *UserRenderer) NewUserTable(users []domain.User, selected int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Username", Width: 16},
		{Title: "Email", Width: 28},
		{Title: "Name", Width: 22},
		{Title: "Active", Width: 6},
	}

	rows := make([]table.Row, len(users))
	for i, u := range users {
		rows[i] = table.Row{
			strconv.Itoa(u.ID),
			u.Username,
			u.Email,
			OrNA(u.FullName()),
			FormatActive(u),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+2), // header and its border
	)

	s := table.DefaultStyles()
	s.Header = ur.styles.TableHeader
	s.Selected = ur.styles.TableCursor
	t.SetStyles(s)
	t.SetCursor(selected)

	return t
}

// Render renders the table for users
func (ur *UserRenderer) Render(users []domain.User, selected int) string {
	return ur.NewUserTable(users, selected).View()
}
