package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"bookcat/internal/domain"
	"bookcat/internal/eventbus"
	"bookcat/internal/ui/state"
	"bookcat/internal/ui/toast"
)

// Reloader refreshes the lists affected by a catalog change
type Reloader interface {
	ReloadBooks() tea.Cmd
	ReloadUsers() tea.Cmd
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state    *state.AppState
	toasts   *toast.Stack
	reloader Reloader
	logger   zerolog.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, toasts *toast.Stack, reloader Reloader, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		state:    appState,
		toasts:   toasts,
		reloader: reloader,
		logger:   logger,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.CatalogChangedEvent:
		h.logger.Debug().
			Str("entity", string(e.Entity)).
			Str("mutation", string(e.Mutation)).
			Int("id", e.ID).
			Msg("reloading after catalog change")
		switch e.Entity {
		case domain.EntityBook:
			return h.reloader.ReloadBooks()
		case domain.EntityUser:
			return h.reloader.ReloadUsers()
		}

	case eventbus.ErrorEvent:
		h.logger.Error().Err(e.Err).Msg(e.Message)
		return h.toasts.Error(e.Message)

	case eventbus.ConfigSavedEvent:
		h.state.StatusMessage = fmt.Sprintf("Settings saved to %s", e.Path)

	case eventbus.ConfigLoadedEvent:
		h.logger.Debug().Str("path", e.Path).Msg("config loaded")
	}

	return nil
}
