package reflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUTC(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestAdvance_NoShiftsNoMaintenance(t *testing.T) {
	start := mustUTC(t, "2024-01-15T08:00:00Z")
	end, ok := Advance(start, 240, nil, nil)
	require.True(t, ok)
	assert.True(t, end.Equal(start.Add(240*time.Minute)))
}

func TestAdvance_SingleShiftNoOp(t *testing.T) {
	// Scenario 1: one center, one shift {Mon, 8-16}.
	shifts := []Shift{{DayOfWeek: 1, StartHour: 8, EndHour: 16}}
	start := mustUTC(t, "2024-01-15T08:00:00Z") // a Monday
	end, ok := Advance(start, 240, shifts, nil)
	require.True(t, ok)
	assert.True(t, end.Equal(mustUTC(t, "2024-01-15T12:00:00Z")))
}

func TestAdvance_PauseAcrossShiftBoundary_NextDayShiftDefined(t *testing.T) {
	shifts := []Shift{
		{DayOfWeek: 1, StartHour: 8, EndHour: 17},
		{DayOfWeek: 2, StartHour: 8, EndHour: 17},
	}
	start := mustUTC(t, "2024-01-15T16:00:00Z") // Monday 16:00
	end, ok := Advance(start, 120, shifts, nil)
	require.True(t, ok)
	assert.True(t, end.Equal(mustUTC(t, "2024-01-16T09:00:00Z")))
}

func TestAdvance_PauseAcrossShiftBoundary_NextDayNoShift(t *testing.T) {
	shifts := []Shift{
		{DayOfWeek: 1, StartHour: 8, EndHour: 17},
		// no Tuesday shift; next availability is the following Monday
		{DayOfWeek: 1, StartHour: 8, EndHour: 17},
	}
	start := mustUTC(t, "2024-01-15T16:00:00Z")
	end, ok := Advance(start, 120, shifts, nil)
	require.True(t, ok)
	// 1h worked Monday to 17:00, then the next Monday occurrence at 08:00,
	// 1h more consumed to 09:00.
	assert.True(t, end.Equal(mustUTC(t, "2024-01-22T09:00:00Z")))
}

func TestAdvance_MidnightSpanningShift(t *testing.T) {
	shifts := []Shift{{DayOfWeek: 1, StartHour: 22, EndHour: 6}}
	start := mustUTC(t, "2024-01-15T23:00:00Z") // Monday 23:00
	end, ok := Advance(start, 180, shifts, nil)
	require.True(t, ok)
	assert.True(t, end.Equal(mustUTC(t, "2024-01-16T02:00:00Z")))
}

func TestAdvance_MaintenanceWindowPausesWork(t *testing.T) {
	shifts := []Shift{{DayOfWeek: 1, StartHour: 8, EndHour: 18}}
	windows := []MaintenanceWindow{{
		Start: mustUTC(t, "2024-01-15T10:00:00Z"),
		End:   mustUTC(t, "2024-01-15T11:00:00Z"),
	}}
	start := mustUTC(t, "2024-01-15T09:00:00Z")
	end, ok := Advance(start, 180, shifts, windows)
	require.True(t, ok)
	assert.True(t, end.Equal(mustUTC(t, "2024-01-15T13:00:00Z")))
}

func TestAdvance_MaintenanceOnly_NoShifts(t *testing.T) {
	windows := []MaintenanceWindow{{
		Start: mustUTC(t, "2024-01-15T10:00:00Z"),
		End:   mustUTC(t, "2024-01-15T11:00:00Z"),
	}}
	start := mustUTC(t, "2024-01-15T09:00:00Z")
	end, ok := Advance(start, 180, nil, windows)
	require.True(t, ok)
	// 1h worked to 10:00, paused to 11:00, 2h more worked -> 13:00.
	assert.True(t, end.Equal(mustUTC(t, "2024-01-15T13:00:00Z")))
}

func TestAdvance_TouchingIntervalsDoNotBlock(t *testing.T) {
	shifts := []Shift{{DayOfWeek: 1, StartHour: 8, EndHour: 18}}
	windows := []MaintenanceWindow{{
		Start: mustUTC(t, "2024-01-15T08:00:00Z"),
		End:   mustUTC(t, "2024-01-15T09:00:00Z"),
	}}
	start := mustUTC(t, "2024-01-15T09:00:00Z") // exactly the window's end
	end, ok := Advance(start, 60, shifts, windows)
	require.True(t, ok)
	assert.True(t, end.Equal(mustUTC(t, "2024-01-15T10:00:00Z")))
}

func TestAdvance_ZeroLengthShiftSkipped(t *testing.T) {
	shifts := []Shift{
		{DayOfWeek: 1, StartHour: 9, EndHour: 9}, // empty, ignored
		{DayOfWeek: 1, StartHour: 8, EndHour: 16},
	}
	start := mustUTC(t, "2024-01-15T08:00:00Z")
	end, ok := Advance(start, 60, shifts, nil)
	require.True(t, ok)
	assert.True(t, end.Equal(mustUTC(t, "2024-01-15T09:00:00Z")))
}

func TestAdvance_IterationCapExceeded_CannotPlace(t *testing.T) {
	// A single 1h/week shift cannot accumulate a duration this large
	// within maxCalculatorIterations boundary crossings.
	shifts := []Shift{{DayOfWeek: 1, StartHour: 8, EndHour: 9}}
	start := mustUTC(t, "2024-01-15T08:00:00Z")
	_, ok := Advance(start, 100000, shifts, nil)
	assert.False(t, ok)
}

// P4: with empty shifts and maintenance, Advance(s, d, nil, nil) == s + d.
func TestProperty_EmptyCalendarIsLinear(t *testing.T) {
	start := mustUTC(t, "2024-03-04T05:00:00Z")
	for _, d := range []int{1, 5, 59, 61, 500, 10000} {
		end, ok := Advance(start, d, nil, nil)
		require.True(t, ok)
		assert.True(t, end.Equal(start.Add(time.Duration(d)*time.Minute)))
	}
}

// P5: Advance is monotone in duration for a fixed calendar.
func TestProperty_MonotoneInDuration(t *testing.T) {
	shifts := []Shift{{DayOfWeek: 1, StartHour: 8, EndHour: 18}}
	windows := []MaintenanceWindow{{
		Start: mustUTC(t, "2024-01-15T10:00:00Z"),
		End:   mustUTC(t, "2024-01-15T11:00:00Z"),
	}}
	start := mustUTC(t, "2024-01-15T08:00:00Z")

	prev, ok := Advance(start, 30, shifts, windows)
	require.True(t, ok)
	for _, d := range []int{60, 90, 200, 300} {
		cur, ok := Advance(start, d, shifts, windows)
		require.True(t, ok)
		assert.False(t, cur.Before(prev))
		prev = cur
	}
}
