// Package cli implements the mouser command-line interface.
//
// # Commands
//
//   - mfg: List every manufacturer as "name: id"
//   - part: Look up a part number, optionally scoped to a manufacturer id
//
// # Configuration
//
// The API key is read from MOUSER_API_KEY, optionally sourced from a local
// .env file. Base URL, timeout and user agent may also come from a TOML
// config file (~/.config/mouser/config.toml). See [loadConfig].
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mouser/pkg/buildinfo"
	"github.com/matzehuels/mouser/pkg/mouser"
)

// appName is the application name used for directories and display.
const appName = "mouser"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// globalOpts holds the persistent flags shared by all commands.
type globalOpts struct {
	configFile string        // TOML config path (default location if empty)
	envFile    string        // env file path (.env if empty)
	baseURL    string        // API root override
	timeout    time.Duration // HTTP timeout override (0 keeps the configured value)
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out    io.Writer
	errOut io.Writer
	opts   globalOpts
}

// New creates a new CLI writing results to out and diagnostics to errOut.
func New(out, errOut io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errOut, level),
		out:    out,
		errOut: errOut,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Search the Mouser electronic component catalog",
		Long:          `mouser is a command-line client for the Mouser Search API. It looks up parts by part number and lists manufacturers.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/mouser/config.toml)")
	flags.StringVar(&c.opts.envFile, "env-file", "", "env file to read MOUSER_API_KEY from (default .env if present)")
	flags.StringVar(&c.opts.baseURL, "base-url", "", "Mouser API root (default "+mouser.DefaultBaseURL+")")
	flags.DurationVar(&c.opts.timeout, "timeout", 0, "HTTP timeout (default 30s)")

	root.AddCommand(c.mfgCommand())
	root.AddCommand(c.partCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newSearch loads configuration and builds the search facade for one command.
func (c *CLI) newSearch(ctx context.Context) (*mouser.Search, error) {
	cfg, err := loadConfig(c.opts, loggerFromContext(ctx))
	if err != nil {
		return nil, err
	}

	client, err := mouser.NewClient(cfg.APIKey,
		mouser.WithBaseURL(cfg.BaseURL),
		mouser.WithTimeout(cfg.Timeout),
		mouser.WithUserAgent(cfg.UserAgent),
		mouser.WithLogger(loggerFromContext(ctx)),
	)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("client ready", "base_url", client.BaseURL(), "timeout", cfg.Timeout)
	return client.Search(), nil
}
