package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	reflow "github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow"
	"github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow/internal/applog"
	"github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow/internal/docs"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
}

// NewRunCommand creates the `reflow run` command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "run <document-file>",
		Short:         "reflow a document file's work orders and print the result",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReflow(opts, args[0], cmd)
		},
	}

	return cmd
}

func runReflow(opts *RunOptions, path string, cmd *cobra.Command) error {
	runID := uuid.NewString()
	entry := applog.WithRun(opts.log, runID)

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read document file", err)
	}

	var (
		workOrders  []reflow.WorkOrder
		workCenters []reflow.WorkCenter
		orders      []reflow.ManufacturingOrder
	)
	if filepath.Ext(path) == ".json" {
		workOrders, workCenters, orders, err = docs.DecodeJSON(data)
	} else {
		workOrders, workCenters, orders, err = docs.DecodeYAML(data)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to decode document file", err)
	}

	entry.WithField("work_orders", len(workOrders)).Info("starting reflow")
	result := reflow.Reflow(workOrders, workCenters, orders)
	entry.WithField("infeasible", result.Infeasible).Info("reflow complete")

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), runID, result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, result.Explanation)
	verbosef(w, opts.Verbose, "run id: %s", runID)
	for _, c := range result.Changes {
		fmt.Fprintf(w, "  %s: %s -> %s\n", c.WorkOrderID, c.OldStart.Format("2006-01-02T15:04:05Z07:00"), c.NewStart.Format("2006-01-02T15:04:05Z07:00"))
	}

	if result.Infeasible {
		return NewExitError(ExitFailure, "schedule is infeasible")
	}
	return nil
}
