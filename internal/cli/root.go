package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bookcat/internal/api"
	"bookcat/internal/catalog"
	"bookcat/internal/config"
	"bookcat/internal/eventbus"
	"bookcat/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// app holds what the persistent pre-run resolves for every subcommand
type app struct {
	version    string
	configPath string
	apiURL     string
	debug      bool

	configSvc config.ConfigService
	cfg       *config.Config
	logger    zerolog.Logger
	logFile   io.Closer
}

// NewRootCmd creates the root command. Without a subcommand it runs the
// interactive UI.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version, logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:     "bookcat",
		Short:   "Browse and manage a book catalog",
		Long:    "bookcat: a terminal client for a books and users catalog backend",
		Version: version,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,
		// Errors are reported once by Execute
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.cleanup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+defaultConfigPath()+")")
	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "backend base URL, overrides the config file and BOOKCAT_API_URL")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(a.newBooksCmd(), a.newUsersCmd(), a.newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Open the interactive catalog
  bookcat

  # List the second page of books matching "dune"
  bookcat books list --search dune --page 2

  # Books published in the nineties as JSON
  bookcat books list --start-year 1990 --end-year 1999 --json

  # Point at another backend
  bookcat --api-url http://catalog.internal:3000 users list

  # Write the default configuration
  bookcat config init`

// Execute runs the root command and returns the process exit code
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		return 1
	}
	return 0
}

func defaultConfigPath() string {
	return filepath.Join(config.DefaultDir(), "config.toml")
}

// setup loads the configuration, applies .env, environment and flag
// overrides in that order, and opens the log file
func (a *app) setup() error {
	if err := config.LoadDotEnv(""); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	a.configSvc = config.NewConfigService(a.configPath)
	cfg, err := a.configSvc.Load()
	if err != nil {
		return err
	}

	env, err := config.LoadEnvOverrides()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		env.APIURL = a.apiURL
	}
	if a.debug {
		env.LogLevel = "debug"
	}
	if err := env.Apply(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(a.configSvc.Path()), config.AppName+".log")
	}
	logger, closer, err := logging.Open(logPath, cfg.Log.Level)
	if err != nil {
		// Logging is best effort; commands still work without it
		logger = zerolog.Nop()
	}
	a.logger = logging.Component(logger, "cli")
	a.logFile = closer

	a.logger.Debug().
		Str("config", a.configSvc.Path()).
		Str("api", cfg.API.BaseURL).
		Str("routes", cfg.API.Routes).
		Msg("configuration loaded")
	return nil
}

func (a *app) cleanup() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// newClient builds the API client described by the configuration
func (a *app) newClient() (*api.Client, error) {
	routes, err := api.RoutesByName(a.cfg.API.Routes)
	if err != nil {
		return nil, err
	}
	return api.New(api.Options{
		BaseURL: a.cfg.API.BaseURL,
		Routes:  routes,
		Timeout: time.Duration(a.cfg.API.TimeoutSeconds) * time.Second,
		Logger:  logging.Component(a.logger, "api"),
	}), nil
}

// newService builds the catalog service used by the subcommands and the UI
func (a *app) newService(bus eventbus.EventBus) (*catalog.Service, error) {
	client, err := a.newClient()
	if err != nil {
		return nil, err
	}
	return catalog.NewService(client, bus, logging.Component(a.logger, "catalog")), nil
}
