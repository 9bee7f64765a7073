package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"bookcat/internal/eventbus"
)

const (
	// AppName is used for the config directory and log file names
	AppName = "bookcat"

	RoutesREST   = "rest"
	RoutesLegacy = "legacy"
)

// Config represents the application configuration
type Config struct {
	Version int         `toml:"version"`
	API     APISettings `toml:"api"`
	UI      UISettings  `toml:"ui"`
	Log     LogSettings `toml:"log"`
}

// APISettings describes how to reach the catalog backend
type APISettings struct {
	BaseURL        string `toml:"base_url"`
	Routes         string `toml:"routes"`          // "rest" or "legacy"
	TimeoutSeconds int    `toml:"timeout_seconds"` // 0 disables the client timeout
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize       int  `toml:"page_size"`
	PageWindow     int  `toml:"page_window"`
	FeaturedLimit  int  `toml:"featured_limit"`
	ToastSeconds   int  `toml:"toast_seconds"`
	AutosaveOnExit bool `toml:"autosave_on_exit"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultDir returns the directory holding the config file and the log
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, AppName)
}

// NewConfigService creates a config service backed by the given file.
// An empty path selects config.toml in DefaultDir.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = filepath.Join(DefaultDir(), "config.toml")
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Missing keys keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	switch c.API.Routes {
	case RoutesREST, RoutesLegacy:
	default:
		return fmt.Errorf("api.routes must be %q or %q, got %q", RoutesREST, RoutesLegacy, c.API.Routes)
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative")
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be positive")
	}
	return nil
}

// normalize replaces zero values that have no sensible meaning with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.Routes == "" {
		c.API.Routes = def.API.Routes
	}
	if c.UI.PageWindow <= 0 {
		c.UI.PageWindow = def.UI.PageWindow
	}
	if c.UI.FeaturedLimit <= 0 {
		c.UI.FeaturedLimit = def.UI.FeaturedLimit
	}
	if c.UI.ToastSeconds <= 0 {
		c.UI.ToastSeconds = def.UI.ToastSeconds
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL: "http://localhost:3000",
			Routes:  RoutesREST,
		},
		UI: UISettings{
			PageSize:       10,
			PageWindow:     2,
			FeaturedLimit:  5,
			ToastSeconds:   3,
			AutosaveOnExit: true,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}
