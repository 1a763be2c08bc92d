package main

import (
	"encoding/json"
	"fmt"
	"io"
)

// CLIResponse is the standard JSON envelope every subcommand writes when
// --format=json is set.
type CLIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
	RunID  string      `json:"run_id,omitempty"`
}

type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// writeJSON encodes v as a CLIResponse with status "ok".
func writeJSON(w io.Writer, runID string, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{Status: "ok", Data: data, RunID: runID})
}

// writeJSONError encodes an error as a CLIResponse with status "error".
func writeJSONError(w io.Writer, runID, code, message string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{Status: "error", RunID: runID, Error: &CLIError{Code: code, Message: message}})
}

func verbosef(w io.Writer, verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
