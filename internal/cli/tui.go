package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"bookcat/internal/config"
	"bookcat/internal/eventbus"
	"bookcat/internal/logging"
	"bookcat/internal/ui"
)

// errNoTerminal is returned when the UI is started without a terminal
var errNoTerminal = errors.New("the interactive UI needs a terminal; use a subcommand such as 'bookcat books list' instead")

// runTUI wires the event bus, the catalog service and the Bubble Tea program
func (a *app) runTUI(cmd *cobra.Command) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNoTerminal
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(a.logger)
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(a.configSvc.Path(), bus)
	cfg := a.cfg

	svc, err := a.newService(bus)
	if err != nil {
		return err
	}

	model := ui.NewModel(bus, cfg, svc, logging.Component(a.logger, "ui"))
	model.SetVersion(a.version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward UI-relevant events into the program
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventCatalogChanged, forward)
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventConfigSaved, forward)
	bus.Subscribe(eventbus.EventConfigLoaded, forward)

	// Page size changes are saved as they happen, in the order they were made
	saver := newPageSizeSaver(configSvc, bus, a.logger)
	bus.Subscribe(eventbus.EventConfigChanged, saver.Handle)

	bus.Publish(eventbus.ConfigLoadedEvent{Path: configSvc.Path()})

	a.logger.Info().Str("api", cfg.API.BaseURL).Msg("starting UI")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		a.logger.Error().Err(err).Msg("error running program")
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info().Msg("UI exited normally")

	// Let pending saves finish before the final one
	bus.Close()
	if cfg.UI.AutosaveOnExit {
		_ = saver.Save(model.State().BooksPage.PageSize())
	}

	return nil
}
