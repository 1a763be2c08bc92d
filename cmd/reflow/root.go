package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow/internal/applog"
	"github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow/internal/config"
)

// RootOptions holds the flags shared by every subcommand.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json"
	EnvFile string

	cfg *config.Config
	log *logrus.Logger
}

var validFormats = []string{"text", "json"}

// NewRootCommand builds the reflow CLI's command tree. It returns the shared
// RootOptions alongside the command so main can render a JSON error envelope
// on failure when --format=json was requested.
func NewRootCommand() (*cobra.Command, *RootOptions) {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "reflow",
		Short: "reflow revises a manufacturing schedule to satisfy its constraints",
		Long: `reflow reads work orders, work centers, and manufacturing orders and
produces a revised start/end timestamp assignment that satisfies due-date,
precedence, per-resource-exclusivity, and shift/maintenance constraints, or
reports that no such assignment exists.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, validFormats))
			}
			cfg, err := config.Load(opts.EnvFile)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err)
			}
			opts.cfg = cfg
			opts.log = applog.New(applog.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostic output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "path to a .env file (optional)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewBatchTestCommand(opts))

	return cmd, opts
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}
