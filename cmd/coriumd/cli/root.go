// Package cli implements coriumd's command-line interface using
// Cobra: a single rootCmd carrying persistent verbose/json/config
// flags, which each subcommand's RunE reads when it builds its logger
// and loads its config (there is no PersistentPreRunE hook).
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/sciurus-wm/corium/config"
	"github.com/sciurus-wm/corium/internal/logging"
	"github.com/sciurus-wm/corium/loop"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	jsonLog    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "coriumd",
	Short: "corium is a scrollable-tiling Wayland compositor",
	Long: `corium arranges windows in horizontally scrolling columns
within workspaces, composed across outputs, with optional floating
windows, screencasting, and a yaml-configurable layout and animation
policy.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json", false, "emit logs as newline-delimited JSON")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (defaults to $XDG_CONFIG_HOME/corium/config.yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateConfigCmd)
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = defaultConfigPath()
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("reading config: %w", err)
	}
	return config.Parse(data)
}

func defaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = home + "/.config"
	}
	return dir + "/corium/config.yaml"
}

func newLogger() zerolog.Logger {
	return logging.New(logging.Options{Debug: verbose, JSON: jsonLog})
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "start the compositor",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log.Info().Msg("config loaded")

		l, err := loop.New()
		if err != nil {
			return fmt.Errorf("starting event loop: %w", err)
		}
		defer l.Close()

		return runCompositor(cmd.Context(), cfg, log, l)
	},
}

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "parse and print the effective config, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
