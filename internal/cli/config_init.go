package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookcat/internal/config"
	"bookcat/internal/ui/views"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(a.newConfigInitCmd(), a.newConfigShowCmd())
	return cmd
}

// newConfigInitCmd writes the default configuration. Environment and flag
// overrides are not written; the file holds defaults only.
func (a *app) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create the configuration
  bookcat config init

  # Create configuration, overwriting existing
  bookcat config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configSvc.Path()

			// Check if config already exists and force isn't set
			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			if err := a.configSvc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

// newConfigShowCmd prints the effective settings after every override
func (a *app) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			renderFields(cmd.OutOrStdout(), a.configSvc.Path(), [][2]string{
				{"api.base_url", cfg.API.BaseURL},
				{"api.routes", cfg.API.Routes},
				{"api.timeout_seconds", fmt.Sprint(cfg.API.TimeoutSeconds)},
				{"ui.page_size", fmt.Sprint(cfg.UI.PageSize)},
				{"ui.page_window", fmt.Sprint(cfg.UI.PageWindow)},
				{"ui.featured_limit", fmt.Sprint(cfg.UI.FeaturedLimit)},
				{"ui.toast_seconds", fmt.Sprint(cfg.UI.ToastSeconds)},
				{"ui.autosave_on_exit", fmt.Sprint(cfg.UI.AutosaveOnExit)},
				{"log.level", cfg.Log.Level},
				{"log.file", views.OrNA(cfg.Log.File)},
			})
			return nil
		},
	}
}
