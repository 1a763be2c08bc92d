package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	reflow "github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow"
	"github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow/internal/docs"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// NewValidateCommand creates the `reflow validate` command. It runs the
// constraint checker against a document file as-is, without reflowing it
// first (useful for checking whether a schedule already satisfies every
// constraint).
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "validate <document-file>",
		Short:         "check whether a document's schedule already satisfies every constraint",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	runID := uuid.NewString()

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

	ok, violations := reflow.ValidateAll(workOrders, workCenters, orders)

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), runID, map[string]interface{}{
			"valid":      ok,
			"violations": violations,
		})
	}

	w := cmd.OutOrStdout()
	if ok {
		fmt.Fprintln(w, "valid: no constraint violations")
		return nil
	}
	fmt.Fprintf(w, "invalid: %d violation(s)\n", len(violations))
	for _, v := range violations {
		fmt.Fprintf(w, "  - %s\n", v)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d constraint violation(s)", len(violations)))
}
