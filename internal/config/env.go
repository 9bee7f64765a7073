package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment override, e.g. BOOKCAT_API_URL
const EnvPrefix = "BOOKCAT"

// EnvOverrides holds the settings that may be supplied through the environment.
// Unset variables leave the file configuration untouched.
type EnvOverrides struct {
	// Env: BOOKCAT_API_URL
	APIURL string `envconfig:"API_URL"`

	// Env: BOOKCAT_API_ROUTES (rest or legacy)
	Routes string `envconfig:"API_ROUTES"`

	// Env: BOOKCAT_API_TIMEOUT_SECONDS
	TimeoutSeconds *int `envconfig:"API_TIMEOUT_SECONDS"`

	// Env: BOOKCAT_PAGE_SIZE
	PageSize int `envconfig:"PAGE_SIZE"`

	// Env: BOOKCAT_LOG_LEVEL
	LogLevel string `envconfig:"LOG_LEVEL"`

	// Env: BOOKCAT_LOG_FILE
	LogFile string `envconfig:"LOG_FILE"`
}

// LoadEnvOverrides reads BOOKCAT_* variables from the process environment
func LoadEnvOverrides() (EnvOverrides, error) {
	var env EnvOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return EnvOverrides{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// Apply copies every set override onto cfg and re-validates it
func (e EnvOverrides) Apply(cfg *Config) error {
	if e.APIURL != "" {
		cfg.API.BaseURL = e.APIURL
	}
	if e.Routes != "" {
		cfg.API.Routes = e.Routes
	}
	if e.TimeoutSeconds != nil {
		cfg.API.TimeoutSeconds = *e.TimeoutSeconds
	}
	if e.PageSize > 0 {
		cfg.UI.PageSize = e.PageSize
	}
	if e.LogLevel != "" {
		cfg.Log.Level = e.LogLevel
	}
	if e.LogFile != "" {
		cfg.Log.File = e.LogFile
	}
	cfg.normalize()
	return cfg.Validate()
}

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// A missing file is not an error. Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}
