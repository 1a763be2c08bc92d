package reflow

import "fmt"

// Reflow revises the start/end timestamps of workOrders so that due-date,
// precedence, per-center exclusivity, and shift/maintenance availability
// constraints hold, or reports that the algorithm could not reach a
// feasible schedule. The input collections are never mutated; the result's
// work orders are a fresh, deep-copied set.
//
// Dependency order within the pipeline: the time calculator is used by
// every phase and by the final feasibility check; phases run strictly in
// order (0, 1, 2, 2.5, 3) over the insertion order of workOrders.
func Reflow(workOrders []WorkOrder, workCenters []WorkCenter, manufacturingOrders []ManufacturingOrder) ReflowResult {
	l := buildLookups(workCenters, manufacturingOrders)
	ws := cloneWorkOrders(workOrders)
	snaps := takeSnapshots(ws)

	phase0NormalizeEnds(ws, l)
	phase1DueDateViolations(ws, l)
	phase2Precedence(ws, l)
	phase25PrecedenceDueDateOptimization(ws, l)
	phase3ResolveOverlaps(ws, l)

	feasible, _ := ValidateAll(ws, workCenters, manufacturingOrders)
	changes := computeChanges(ws, snaps)

	return ReflowResult{
		WorkOrders:  ws,
		Changes:     changes,
		Explanation: explain(feasible, changes, len(ws)),
		Infeasible:  !feasible,
	}
}

func explain(feasible bool, changes []WorkOrderChange, total int) string {
	if !feasible {
		return ExplanationInfeasible
	}
	if len(changes) == 0 {
		return ExplanationNoChanges
	}
	return fmt.Sprintf("%d of %d work orders rescheduled to satisfy constraints.", len(changes), total)
}

// Summarize turns a ReflowResult into a short, human-readable per-work-center
// report: how many work orders moved and the net minutes their starts
// shifted. It performs no constraint reasoning of its own: it is a report
// over data Reflow already produced.
func Summarize(result ReflowResult, workOrders []WorkOrder) string {
	byCenter := make(map[string]string, len(workOrders))
	for _, w := range workOrders {
		byCenter[w.ID] = w.WorkCenterID
	}

	type stat struct {
		moved     int
		netMinute int
	}
	stats := make(map[string]*stat)
	order := make([]string, 0)
	for _, c := range result.Changes {
		center := byCenter[c.WorkOrderID]
		s, ok := stats[center]
		if !ok {
			s = &stat{}
			stats[center] = s
			order = append(order, center)
		}
		s.moved++
		s.netMinute += minutesBetween(c.OldStart, c.NewStart)
	}

	if len(order) == 0 {
		return "no work centers affected"
	}

	out := ""
	for i, center := range order {
		s := stats[center]
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s: %d moved, %d min net shift", center, s.moved, s.netMinute)
	}
	return out
}
