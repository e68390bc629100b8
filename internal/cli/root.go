/*
PURPOSE:
  Defines the root Cobra command for the ei-reports CLI.
  Handles global flags, configuration loading and logger setup.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Commands are built by constructors so tests can execute a fresh tree per case.
  - Log level/format flags must take effect before any subcommand logs.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/ei-reports/main.go
  - Calls: Child commands (generate, preview, sample)
  - Uses: internal/config, internal/output

ERROR HANDLING:
  - Returns error to main.go for exit code handling.
  - Errors are not printed here (SilenceErrors); main.go prints them once.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root only loads configuration.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to NewRootCmd() and apply them in load().

RELATED FILES:
  - cmd/ei-reports/main.go
  - internal/config/config.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"github.com/daryltucker/ei-reports/internal/config"
	"github.com/daryltucker/ei-reports/internal/output"
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags and the configuration they produce.
type rootOptions struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
}

// NewRootCmd builds the complete command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ei-reports",
		Short: "Batch PDF reports for emotional intelligence assessments",
		Long: `Reads an EI assessment workbook (one person per row) and produces one
PDF report per person, with charts of their component scores, wellbeing
indicators and position within the cohort.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./ei_reports.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(newGenerateCmd(opts), newPreviewCmd(opts), newSampleCmd(opts))
	return cmd
}

// Execute executes the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the configuration and configures logging. Logs go to stderr so
// stdout stays clean for command output.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if err := output.Configure(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}
