package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sdforge/promptkit/internal/app"
	"github.com/sdforge/promptkit/internal/config"
)

// Version information (set via ldflags during build).
var version = "dev"

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "promptkit",
		Short:        "Prompt tag suggestions and UI override tooling",
		SilenceUsage: true,
	}
	cmd.Version = version
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath(),
		"path to the promptkit.toml configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"override the configured log level (debug, info, warn, error)")

	cmd.AddCommand(
		newTagsCmd(opts),
		newUIConfCmd(),
	)

	return cmd
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "promptkit.toml"
	}
	return filepath.Join(dir, "promptkit", "promptkit.toml")
}

// loadConfig resolves the configuration for one CLI invocation. The flag
// beats the config file and the environment for the log level.
func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// newApp builds a started App for a one-shot command. Watching is always
// off; the process exits before a reload could matter.
func newApp(opts *rootOptions) (*app.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg.Tags.Watch = false

	log := app.NewLogger(os.Stderr, app.ParseLogLevel(cfg.Logging.Level))
	a := app.New(cfg, log)
	if err := a.Start(); err != nil {
		return nil, err
	}
	return a, nil
}
