package reflow

import (
	"sort"
	"time"
)

// lookups bundles the id-indexed maps every phase needs, built once at the
// start of a reflow invocation.
type lookups struct {
	centers map[string]WorkCenter
	orders  map[string]ManufacturingOrder
}

func buildLookups(centers []WorkCenter, orders []ManufacturingOrder) lookups {
	return lookups{centers: indexCenters(centers), orders: indexOrders(orders)}
}

func (l lookups) center(id string) (WorkCenter, bool) {
	c, ok := l.centers[id]
	return c, ok
}

func (l lookups) order(id string) (ManufacturingOrder, bool) {
	o, ok := l.orders[id]
	return o, ok
}

// tryCommitStart attempts to move w to newStart, recomputing its end via
// Advance against its own work center's calendar. On success it mutates w
// and returns true. On failure (unknown center or "cannot place") it leaves
// w entirely unchanged and returns false, matching the pipeline's failure
// semantics of leaving a work order at its current timestamps rather than
// committing a partial move.
func tryCommitStart(w *WorkOrder, newStart time.Time, l lookups) bool {
	center, ok := l.center(w.WorkCenterID)
	if !ok {
		return false
	}
	newEnd, ok := Advance(newStart, w.DurationMinutes, center.Shifts, center.MaintenanceWindows)
	if !ok {
		return false
	}
	w.Start = newStart
	w.End = newEnd
	return true
}

// phase0NormalizeEnds overwrites every non-maintenance work order's end
// with the calculator's result for its current start, aligning naively
// computed (start + duration) end dates with shift/maintenance pauses
// before later phases reason about them.
func phase0NormalizeEnds(ws []WorkOrder, l lookups) {
	for i := range ws {
		w := &ws[i]
		if w.IsMaintenance {
			continue
		}
		center, ok := l.center(w.WorkCenterID)
		if !ok {
			continue
		}
		newEnd, ok := Advance(w.Start, w.DurationMinutes, center.Shifts, center.MaintenanceWindows)
		if !ok {
			continue
		}
		w.End = newEnd
	}
}

// phase1DueDateViolations moves every non-maintenance work order whose
// current end exceeds its parent's due date to start at
// (due date - duration), via naive minute subtraction, then recomputes its
// end. A work order may end up earlier than its pre-pipeline start; that is
// intentional.
func phase1DueDateViolations(ws []WorkOrder, l lookups) {
	for i := range ws {
		w := &ws[i]
		if w.IsMaintenance {
			continue
		}
		mo, ok := l.order(w.ManufacturingOrderID)
		if !ok {
			continue
		}
		if !w.End.After(mo.DueDate) {
			continue
		}
		tentativeStart := mo.DueDate.Add(-time.Duration(w.DurationMinutes) * time.Minute)
		tryCommitStart(w, tentativeStart, l)
	}
}

// phase2Precedence iterates to a fixed point, bounded by len(ws): for every
// non-maintenance work order with dependencies, if the latest end among its
// present dependencies is after its current start, the start is pulled
// forward to that instant and the end recomputed. This propagates chains
// like A -> B -> C without an explicit topological pass.
func phase2Precedence(ws []WorkOrder, l lookups) {
	iterCap := len(ws)
	byID := make(map[string]*WorkOrder, len(ws))
	for i := range ws {
		byID[ws[i].ID] = &ws[i]
	}

	for iter := 0; iter < iterCap; iter++ {
		changed := false
		for i := range ws {
			w := &ws[i]
			if w.IsMaintenance || len(w.DependsOn) == 0 {
				continue
			}
			maxEnd, ok := latestDependencyEnd(w.DependsOn, byID)
			if !ok {
				continue
			}
			if maxEnd.After(w.Start) {
				if tryCommitStart(w, maxEnd, l) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
}

func latestDependencyEnd(depIDs []string, byID map[string]*WorkOrder) (time.Time, bool) {
	var max time.Time
	found := false
	for _, id := range depIDs {
		dep, ok := byID[id]
		if !ok {
			continue
		}
		if !found || dep.End.After(max) {
			max = dep.End
			found = true
		}
	}
	return max, found
}

// phase25PrecedenceDueDateOptimization iterates to a fixed point, bounded by
// len(ws). For every non-maintenance work order still violating its own due
// date with at least one non-maintenance dependency, it identifies the
// limiting dependency (the one whose end equals the maximum dependency
// end), and tries to pull that dependency's end earlier so the dependent
// can in turn start earlier. This is an opportunistic, single-dependency
// optimization, not a global critical-path computation.
func phase25PrecedenceDueDateOptimization(ws []WorkOrder, l lookups) {
	iterCap := len(ws)
	byID := make(map[string]*WorkOrder, len(ws))
	for i := range ws {
		byID[ws[i].ID] = &ws[i]
	}

	for iter := 0; iter < iterCap; iter++ {
		changed := false
		for i := range ws {
			w := &ws[i]
			if w.IsMaintenance || len(w.DependsOn) == 0 {
				continue
			}
			mo, ok := l.order(w.ManufacturingOrderID)
			if !ok || !w.End.After(mo.DueDate) {
				continue
			}

			limiting, ok := limitingDependency(w.DependsOn, byID)
			if !ok || limiting.IsMaintenance {
				continue
			}

			depMO, ok := l.order(limiting.ManufacturingOrderID)
			if !ok {
				continue
			}

			targetStart := mo.DueDate.Add(-time.Duration(w.DurationMinutes) * time.Minute)
			if !limiting.End.After(targetStart) {
				continue
			}

			newEnd := targetStart
			if depMO.DueDate.Before(newEnd) {
				newEnd = depMO.DueDate
			}
			if !newEnd.Before(limiting.End) {
				continue
			}

			newStart := newEnd.Add(-time.Duration(limiting.DurationMinutes) * time.Minute)
			if !tryCommitStart(limiting, newStart, l) {
				continue
			}
			tryCommitStart(w, limiting.End, l)
			changed = true
		}
		if !changed {
			break
		}
	}
}

func limitingDependency(depIDs []string, byID map[string]*WorkOrder) (*WorkOrder, bool) {
	var limiting *WorkOrder
	for _, id := range depIDs {
		dep, ok := byID[id]
		if !ok {
			continue
		}
		if limiting == nil || dep.End.After(limiting.End) {
			limiting = dep
		}
	}
	return limiting, limiting != nil
}

// phase3ResolveOverlaps partitions work orders by center, sorts each
// partition ascending by current start (stable), and sweeps a cursor across
// it: maintenance work orders are fixed blockers that advance the cursor
// without moving; the first non-maintenance work order initializes the
// cursor; every subsequent non-maintenance work order starting before the
// cursor is pushed to the cursor and its end recomputed.
func phase3ResolveOverlaps(ws []WorkOrder, l lookups) {
	byCenter := make(map[string][]int)
	for i, w := range ws {
		byCenter[w.WorkCenterID] = append(byCenter[w.WorkCenterID], i)
	}

	for _, idxs := range byCenter {
		sort.SliceStable(idxs, func(a, b int) bool { return ws[idxs[a]].Start.Before(ws[idxs[b]].Start) })

		var cursor time.Time
		cursorSet := false
		for _, idx := range idxs {
			w := &ws[idx]
			if w.IsMaintenance {
				cursor = w.End
				cursorSet = true
				continue
			}
			if !cursorSet {
				cursor = w.End
				cursorSet = true
				continue
			}
			if w.Start.Before(cursor) {
				if tryCommitStart(w, cursor, l) {
					cursor = w.End
				}
				continue
			}
			cursor = w.End
		}
	}
}

// snapshot records a work order's pre-pipeline start/end, the source of
// truth for change detection only.
type snapshot struct {
	start time.Time
	end   time.Time
}

func takeSnapshots(ws []WorkOrder) map[string]snapshot {
	m := make(map[string]snapshot, len(ws))
	for _, w := range ws {
		m[w.ID] = snapshot{start: w.Start, end: w.End}
	}
	return m
}

// computeChanges returns a WorkOrderChange for every work order whose start
// or end differs from its snapshot, compared as parsed instants.
func computeChanges(ws []WorkOrder, snaps map[string]snapshot) []WorkOrderChange {
	var changes []WorkOrderChange
	for _, w := range ws {
		snap, ok := snaps[w.ID]
		if !ok {
			continue
		}
		if snap.start.Equal(w.Start) && snap.end.Equal(w.End) {
			continue
		}
		changes = append(changes, WorkOrderChange{
			WorkOrderID: w.ID,
			OldStart:    snap.start,
			NewStart:    w.Start,
			OldEnd:      snap.end,
			NewEnd:      w.End,
		})
	}
	return changes
}
