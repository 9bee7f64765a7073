package views

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bookcat/internal/domain"
)

// printer adds thousand separators to counts shown in the footer
var printer = message.NewPrinter(language.English)

// notAvailable stands in for optional fields the backend left empty
const notAvailable = "N/A"

// FormatCount renders "1 book", "1,204 books"
func FormatCount(n int, singular, plural string) string {
	word := plural
	if n == 1 {
		word = singular
	}
	return printer.Sprintf("%d %s", n, word)
}

// FormatYear renders an optional publication year
func FormatYear(year *int) string {
	if year == nil {
		return notAvailable
	}
	return strconv.Itoa(*year)
}

// OrNA returns s, or "N/A" when s is empty
func OrNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// FormatActive renders a user's active flag
func FormatActive(u domain.User) string {
	if u.IsActive {
		return "yes"
	}
	return "no"
}
