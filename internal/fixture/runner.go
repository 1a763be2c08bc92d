// Package fixture discovers scenario files under a directory, runs each
// through reflow.Reflow, and compares the result against a golden file,
// mirroring the conformance-harness shape used elsewhere in the ecosystem
// for deterministic-engine testing.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	reflow "github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow"
	"github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow/internal/docs"
)

// Scenario is one decoded fixture file: the collections to reflow plus its
// file path, for error reporting.
type Scenario struct {
	Name                string
	Path                string
	WorkOrders          []reflow.WorkOrder
	WorkCenters         []reflow.WorkCenter
	ManufacturingOrders []reflow.ManufacturingOrder
}

// ScenarioResult holds the outcome of running a single scenario, named to
// match the shape the CLI reports back to the user.
type ScenarioResult struct {
	Name   string   `json:"name"`
	RunID  string   `json:"run_id"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// Summary aggregates every ScenarioResult from one Run invocation.
type Summary struct {
	Results []ScenarioResult `json:"results"`
	Passed  int              `json:"passed"`
	Failed  int              `json:"failed"`
	Total   int              `json:"total"`
}

// GoldenOutput is the canonical, comparable shape written to and read from
// golden files: only the fields a reflow invocation is expected to
// reproduce exactly, never a run id or other run-specific noise. Untagged,
// matching model.go's WorkOrder/WorkOrderChange, which carry no json tags
// either; golden files compare on Go's default field-name encoding.
type GoldenOutput struct {
	Explanation string
	Infeasible  bool
	WorkOrders  []reflow.WorkOrder
	Changes     []reflow.WorkOrderChange
}

// Discover walks dir for *.yaml/*.yml/*.json scenario files matching filter
// (a filepath.Match glob against the base name without extension; empty
// matches everything), decodes each, and returns them sorted by path.
func Discover(dir, filter string) ([]Scenario, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.Contains(path, string(filepath.Separator)+"golden"+string(filepath.Separator)) {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			return nil
		}
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("fixture: invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixture: walking %s: %w", dir, err)
	}

	scenarios := make([]Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Load decodes a single scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("fixture: reading %s: %w", path, err)
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
		return Scenario{}, fmt.Errorf("fixture: decoding %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Scenario{
		Name: name, Path: path,
		WorkOrders: workOrders, WorkCenters: workCenters, ManufacturingOrders: orders,
	}, nil
}

// Run executes Reflow over every scenario and, unless update is true,
// compares each result against its golden file. With update true it
// (re)writes the golden file instead of comparing against it.
func Run(scenarios []Scenario, update bool) Summary {
	summary := Summary{Results: make([]ScenarioResult, 0, len(scenarios)), Total: len(scenarios)}
	for _, s := range scenarios {
		result := runOne(s, update)
		summary.Results = append(summary.Results, result)
		if result.Pass {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	return summary
}

func runOne(s Scenario, update bool) ScenarioResult {
	runID := uuid.NewString()
	result := reflow.Reflow(s.WorkOrders, s.WorkCenters, s.ManufacturingOrders)
	goldenOut := GoldenOutput{
		Explanation: result.Explanation,
		Infeasible:  result.Infeasible,
		WorkOrders:  result.WorkOrders,
		Changes:     result.Changes,
	}

	goldenPath := goldenFilePath(s.Path)
	if update {
		if err := writeGolden(goldenPath, goldenOut); err != nil {
			return ScenarioResult{Name: s.Name, RunID: runID, Pass: false, Errors: []string{err.Error()}}
		}
		return ScenarioResult{Name: s.Name, RunID: runID, Pass: true}
	}

	match, err := compareGolden(goldenPath, goldenOut)
	if err != nil {
		return ScenarioResult{Name: s.Name, RunID: runID, Pass: false, Errors: []string{err.Error()}}
	}
	if !match {
		return ScenarioResult{Name: s.Name, RunID: runID, Pass: false, Errors: []string{"result does not match golden file"}}
	}
	return ScenarioResult{Name: s.Name, RunID: runID, Pass: true}
}

func goldenFilePath(scenarioPath string) string {
	dir := filepath.Dir(scenarioPath)
	base := filepath.Base(scenarioPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden.json")
}

func writeGolden(path string, out GoldenOutput) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("fixture: creating golden dir: %w", err)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("fixture: marshaling golden output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("fixture: writing golden file: %w", err)
	}
	return nil
}

func compareGolden(path string, out GoldenOutput) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("fixture: reading golden file %s: %w", path, err)
	}
	got, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return false, fmt.Errorf("fixture: marshaling result: %w", err)
	}
	return string(want) == string(got), nil
}
