package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
)

// Severity selects the toast color
type Severity int

const (
	Info Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// DefaultTTL is how long a toast stays on screen
const DefaultTTL = 3 * time.Second

// MaxVisible caps the number of toasts rendered at once
const MaxVisible = 3

// Toast is a transient notification
type Toast struct {
	ID       string
	Message  string
	Severity Severity
	Created  time.Time
}

// DismissMsg removes the toast with the given ID
type DismissMsg struct {
	ID string
}

// Stack holds the live toasts, oldest first
type Stack struct {
	items []Toast
	ttl   time.Duration
}

// NewStack creates a stack whose toasts expire after ttl
func NewStack(ttl time.Duration) *Stack {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Stack{ttl: ttl}
}

// Push adds a toast and returns the command that dismisses it
func (s *Stack) Push(message string, severity Severity) tea.Cmd {
	t := Toast{
		ID:       ulid.Make().String(),
		Message:  message,
		Severity: severity,
		Created:  time.Now(),
	}
	s.items = append(s.items, t)
	return tea.Tick(s.ttl, func(time.Time) tea.Msg {
		return DismissMsg{ID: t.ID}
	})
}

func (s *Stack) Info(message string) tea.Cmd    { return s.Push(message, Info) }
func (s *Stack) Success(message string) tea.Cmd { return s.Push(message, Success) }
func (s *Stack) Error(message string) tea.Cmd   { return s.Push(message, Error) }

// Dismiss removes a toast; unknown IDs are ignored
func (s *Stack) Dismiss(id string) {
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Items returns the newest toasts, at most MaxVisible, oldest first
func (s *Stack) Items() []Toast {
	start := max(0, len(s.items)-MaxVisible)
	out := make([]Toast, len(s.items)-start)
	copy(out, s.items[start:])
	return out
}

// Len returns the number of live toasts, visible or not
func (s *Stack) Len() int { return len(s.items) }
