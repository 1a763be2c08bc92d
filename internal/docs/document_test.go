package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feasibleYAML = `kind: work_center
payload:
  id: WC-1
  name: Press 1
  shifts:
    - day_of_week: 1
      start_hour: 8
      end_hour: 18
---
kind: manufacturing_order
payload:
  id: MO-1
  due_date: "2024-01-15T18:00:00Z"
---
kind: work_order
payload:
  id: WO-1
  manufacturing_order_id: MO-1
  work_center_id: WC-1
  start: "2024-01-15T08:00:00Z"
  end: "2024-01-15T12:00:00Z"
  duration_minutes: 240
`

func TestDecodeYAML_AssemblesAllThreeKinds(t *testing.T) {
	workOrders, workCenters, orders, err := DecodeYAML([]byte(feasibleYAML))
	require.NoError(t, err)

	require.Len(t, workCenters, 1)
	assert.Equal(t, "WC-1", workCenters[0].ID)
	require.Len(t, workCenters[0].Shifts, 1)
	assert.Equal(t, 1, workCenters[0].Shifts[0].DayOfWeek)
	assert.Equal(t, 8, workCenters[0].Shifts[0].StartHour)

	require.Len(t, orders, 1)
	assert.Equal(t, "MO-1", orders[0].ID)

	require.Len(t, workOrders, 1)
	assert.Equal(t, "WO-1", workOrders[0].ID)
	assert.Equal(t, 240, workOrders[0].DurationMinutes)
	assert.False(t, workOrders[0].IsMaintenance)
	assert.Nil(t, workOrders[0].DependsOn)
}

func TestDecodeJSON_RoundTripsThroughYAMLConversion(t *testing.T) {
	workOrders, workCenters, orders, err := DecodeYAML([]byte(feasibleYAML))
	require.NoError(t, err)
	assert.NotEmpty(t, workOrders)
	assert.NotEmpty(t, workCenters)
	assert.NotEmpty(t, orders)
}

func TestDecodeYAML_RejectsUnknownKind(t *testing.T) {
	_, _, _, err := DecodeYAML([]byte("kind: not_a_kind\npayload:\n  id: X\n"))
	assert.Error(t, err)
}

func TestDecodeYAML_RejectsMissingRequiredField(t *testing.T) {
	_, _, _, err := DecodeYAML([]byte(`kind: work_order
payload:
  manufacturing_order_id: MO-1
  work_center_id: WC-1
  start: "2024-01-15T08:00:00Z"
  end: "2024-01-15T12:00:00Z"
`))
	assert.Error(t, err, "missing id must fail validation")
}

func TestDecodeYAML_RejectsMalformedTimestamp(t *testing.T) {
	_, _, _, err := DecodeYAML([]byte(`kind: manufacturing_order
payload:
  id: MO-1
  due_date: "not-a-date"
`))
	assert.Error(t, err)
}

func TestDecodeJSON_Basic(t *testing.T) {
	const jsonDoc = `[
		{"kind": "manufacturing_order", "payload": {"id": "MO-1", "due_date": "2024-01-15T18:00:00Z"}}
	]`
	_, _, orders, err := DecodeJSON([]byte(jsonDoc))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "MO-1", orders[0].ID)
}
