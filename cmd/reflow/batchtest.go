package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow/internal/fixture"
)

// BatchTestOptions holds flags for the batch-test command.
type BatchTestOptions struct {
	*RootOptions
	Filter string
	Update bool
}

// NewBatchTestCommand creates the `reflow batch-test` command, a conformance
// harness over a directory of fixture scenarios compared against golden
// files.
func NewBatchTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchTestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch-test [scenarios-dir]",
		Short: "run every scenario in a directory against its golden file",
		Long: `batch-test walks a directory for scenario documents, reflows each one,
and compares the result against a golden file stored alongside it under a
"golden" subdirectory.

Exit codes:
  0 - every scenario passed
  1 - one or more scenarios failed
  2 - command error (missing directory, decode failure)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.cfg.ScenariosDir
			if len(args) == 1 {
				dir = args[0]
			}
			return runBatchTest(opts, dir, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob against their base name")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files instead of comparing")

	return cmd
}

func runBatchTest(opts *BatchTestOptions, dir string, cmd *cobra.Command) error {
	scenarios, err := fixture.Discover(dir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to discover scenarios", err)
	}
	if len(scenarios) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no scenarios found")
		return nil
	}

	update := opts.Update || opts.cfg.GoldenUpdateMode
	summary := fixture.Run(scenarios, update)

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), "", summary); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, r := range summary.Results {
			if r.Pass {
				fmt.Fprintf(w, "PASS %s\n", r.Name)
				continue
			}
			fmt.Fprintf(w, "FAIL %s\n", r.Name)
			for _, e := range r.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
		fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", summary.Passed, summary.Failed, summary.Total)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", summary.Failed))
	}
	return nil
}
