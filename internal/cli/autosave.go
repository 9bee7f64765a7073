package cli

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"bookcat/internal/config"
	"bookcat/internal/eventbus"
)

// pageSizeSaver writes page-size changes back to the config file. The file is
// re-read on every save and only ui.page_size changes, so overrides from
// flags, .env and BOOKCAT_* variables never end up on disk.
type pageSizeSaver struct {
	mu        sync.Mutex
	configSvc config.ConfigService
	bus       eventbus.EventBus
	logger    zerolog.Logger
}

func newPageSizeSaver(configSvc config.ConfigService, bus eventbus.EventBus, logger zerolog.Logger) *pageSizeSaver {
	return &pageSizeSaver{configSvc: configSvc, bus: bus, logger: logger}
}

// Save persists size. Failures are logged and published as an ErrorEvent.
func (s *pageSizeSaver) Save(size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.save(size)
	if err != nil {
		s.logger.Error().Err(err).Str("path", s.configSvc.Path()).Msg("failed to save config")
		if s.bus != nil {
			s.bus.Publish(eventbus.ErrorEvent{Message: "Could not save settings", Err: err})
		}
		return err
	}
	s.logger.Info().Str("path", s.configSvc.Path()).Int("page_size", size).Msg("config saved")
	return nil
}

func (s *pageSizeSaver) save(size int) error {
	path := s.configSvc.Path()
	cfg, err := s.configSvc.LoadFromPath(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.DefaultConfig()
	} else if err != nil {
		return fmt.Errorf("failed to reload config before saving: %w", err)
	}

	cfg.UI.PageSize = size
	return s.configSvc.Save(cfg)
}

// Handle saves the size carried by a ConfigChangedEvent
func (s *pageSizeSaver) Handle(e eventbus.DomainEvent) {
	if event, ok := e.(eventbus.ConfigChangedEvent); ok {
		_ = s.Save(event.PageSize)
	}
}
