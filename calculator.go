package reflow

import "time"

// maxCalculatorIterations bounds the time-advancement loop in Advance. Each
// iteration crosses one constraint boundary (a shift edge or a maintenance
// window edge), never a single minute, so this cap is generous for any
// realistic calendar while still making termination unconditional.
const maxCalculatorIterations = 1000

// shiftLookaheadDays bounds how far Advance searches for the next shift
// occurrence when the current instant falls outside every shift.
const shiftLookaheadDays = 7

// Advance computes the instant at which durationMinutes of working time
// elapses starting at start, given a weekly shift calendar (possibly empty)
// and a set of absolute maintenance windows (possibly empty, assumed
// non-overlapping). It returns the resulting instant and true, or a zero
// time and false if no such instant is reachable (no shift found within the
// lookahead window, or the iteration cap is exceeded).
//
// Maintenance windows take precedence over shifts: no work progresses
// during an active window even if a shift is also active. If shifts is
// empty, every instant outside a maintenance window is working time. If
// both are empty, the result is simply start plus durationMinutes.
func Advance(start time.Time, durationMinutes int, shifts []Shift, windows []MaintenanceWindow) (time.Time, bool) {
	if durationMinutes <= 0 {
		return start, true
	}

	t := start
	remaining := durationMinutes

	for iter := 0; iter < maxCalculatorIterations; iter++ {
		if w, ok := maintenanceWindowContaining(windows, t); ok {
			t = w.End
			continue
		}

		if len(shifts) == 0 {
			nw, ok := nextMaintenanceWindowAfter(windows, t)
			if !ok {
				return t.Add(time.Duration(remaining) * time.Minute), true
			}
			avail := minutesBetween(t, nw.Start)
			consume := remaining
			if avail < consume {
				consume = avail
			}
			t = t.Add(time.Duration(consume) * time.Minute)
			remaining -= consume
			if remaining == 0 {
				return t, true
			}
			t = nw.End
			continue
		}

		sh, occDate, ok := activeShift(shifts, t)
		if !ok {
			next, ok2 := nextShiftStart(shifts, t)
			if !ok2 {
				return time.Time{}, false
			}
			t = skipToShiftOrMaintenance(windows, t, next)
			continue
		}

		shiftEnd := shiftEndInstant(sh, occDate)
		boundary := shiftEnd
		var atWindow *MaintenanceWindow
		if nw, ok3 := nextMaintenanceWindowAfter(windows, t); ok3 && nw.Start.Before(boundary) {
			boundary = nw.Start
			atWindow = &nw
		}

		avail := minutesBetween(t, boundary)
		consume := remaining
		if avail < consume {
			consume = avail
		}
		t = t.Add(time.Duration(consume) * time.Minute)
		remaining -= consume
		if remaining == 0 {
			return t, true
		}

		if atWindow != nil {
			t = atWindow.End
			continue
		}

		next, ok2 := nextShiftStart(shifts, t)
		if !ok2 {
			return time.Time{}, false
		}
		t = skipToShiftOrMaintenance(windows, t, next)
	}

	return time.Time{}, false
}

// skipToShiftOrMaintenance advances to next, or to the end of a maintenance
// window that begins before next, whichever comes first.
func skipToShiftOrMaintenance(windows []MaintenanceWindow, after, next time.Time) time.Time {
	if nw, ok := nextMaintenanceWindowAfter(windows, after); ok && nw.Start.Before(next) {
		return nw.End
	}
	return next
}

func minutesBetween(from, to time.Time) int {
	return int(to.Sub(from) / time.Minute)
}

// maintenanceWindowContaining returns the first window (in input order)
// whose half-open interval contains t.
func maintenanceWindowContaining(windows []MaintenanceWindow, t time.Time) (MaintenanceWindow, bool) {
	for _, w := range windows {
		if w.contains(t) {
			return w, true
		}
	}
	return MaintenanceWindow{}, false
}

// nextMaintenanceWindowAfter returns the window with the earliest Start
// strictly after t. Windows containing t are never returned here (by the
// time this is called, t is not inside any window, since the caller already
// advanced past it).
func nextMaintenanceWindowAfter(windows []MaintenanceWindow, t time.Time) (MaintenanceWindow, bool) {
	found := false
	var best MaintenanceWindow
	for _, w := range windows {
		if w.Start.After(t) && (!found || w.Start.Before(best.Start)) {
			best = w
			found = true
		}
	}
	return best, found
}

// dayOfWeek returns 1..7 for Monday..Sunday, matching Shift.DayOfWeek.
func dayOfWeek(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// dateOnly truncates t to midnight UTC of its calendar day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func hours(h int) time.Duration {
	return time.Duration(h) * time.Hour
}

// activeShift returns the shift containing t, if any, along with occDate:
// the calendar date (midnight UTC) on which that shift occurrence began.
// occDate lets the caller recompute the shift's end instant even when the
// shift spans midnight and t falls on the day after the shift started.
func activeShift(shifts []Shift, t time.Time) (Shift, time.Time, bool) {
	today := dateOnly(t)
	todayDOW := dayOfWeek(t)
	yesterdayDOW := todayDOW - 1
	if yesterdayDOW == 0 {
		yesterdayDOW = 7
	}

	for _, s := range shifts {
		if s.empty() {
			continue
		}
		if !s.spansMidnight() {
			if s.DayOfWeek != todayDOW {
				continue
			}
			start := today.Add(hours(s.StartHour))
			end := today.Add(hours(s.EndHour))
			if !t.Before(start) && t.Before(end) {
				return s, today, true
			}
			continue
		}

		// Midnight-spanning shift: either t is on the start day, past the
		// start hour, or t is on the following day, before the end hour.
		if s.DayOfWeek == todayDOW {
			start := today.Add(hours(s.StartHour))
			if !t.Before(start) {
				return s, today, true
			}
		}
		if s.DayOfWeek == yesterdayDOW {
			occDate := today.AddDate(0, 0, -1)
			end := today.Add(hours(s.EndHour))
			if t.Before(end) {
				return s, occDate, true
			}
		}
	}
	return Shift{}, time.Time{}, false
}

// shiftEndInstant computes the absolute end instant of the shift occurrence
// that began on occDate.
func shiftEndInstant(s Shift, occDate time.Time) time.Time {
	if s.spansMidnight() {
		return occDate.AddDate(0, 0, 1).Add(hours(s.EndHour))
	}
	return occDate.Add(hours(s.EndHour))
}

// nextShiftStart returns the earliest shift-occurrence start strictly after
// t, searching the same day first and then up to shiftLookaheadDays
// following days.
func nextShiftStart(shifts []Shift, t time.Time) (time.Time, bool) {
	found := false
	var best time.Time
	base := dateOnly(t)

	for d := 0; d <= shiftLookaheadDays; d++ {
		date := base.AddDate(0, 0, d)
		dow := dayOfWeek(date)
		for _, s := range shifts {
			if s.empty() || s.DayOfWeek != dow {
				continue
			}
			start := date.Add(hours(s.StartHour))
			if !start.After(t) {
				continue
			}
			if !found || start.Before(best) {
				best = start
				found = true
			}
		}
	}
	return best, found
}
