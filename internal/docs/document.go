// Package docs decodes the discriminated-union document format used to
// describe work orders, work centers, and manufacturing orders in fixture
// files and CLI input, and validates their shape before they ever reach the
// reflow package.
package docs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	reflow "github.com/mitchellhein25/mitch-hein-naologic-prod-sched-reflow"
)

// Kind identifies which concrete type a Document's Payload decodes into.
type Kind string

const (
	KindWorkOrder          Kind = "work_order"
	KindWorkCenter         Kind = "work_center"
	KindManufacturingOrder Kind = "manufacturing_order"
)

// Document is the wire-level envelope: a discriminated union keyed by Kind,
// with Payload left raw until the caller knows which concrete shape to
// decode it as.
type Document struct {
	Kind    Kind            `json:"kind" yaml:"kind" validate:"required,oneof=work_order work_center manufacturing_order"`
	Payload json.RawMessage `json:"payload" yaml:"payload"`
}

// shiftDoc and friends are the wire shapes: plain strings/ints in, time.Time
// out, validated before conversion to the reflow package's internal types.
type shiftDoc struct {
	DayOfWeek int `json:"day_of_week" yaml:"day_of_week" validate:"required,min=1,max=7"`
	StartHour int `json:"start_hour" yaml:"start_hour" validate:"min=0,max=23"`
	EndHour   int `json:"end_hour" yaml:"end_hour" validate:"min=0,max=24"`
}

type maintenanceWindowDoc struct {
	Start string `json:"start" yaml:"start" validate:"required"`
	End   string `json:"end" yaml:"end" validate:"required"`
}

type workCenterDoc struct {
	ID                 string                 `json:"id" yaml:"id" validate:"required"`
	Name               string                 `json:"name" yaml:"name"`
	Shifts             []shiftDoc             `json:"shifts" yaml:"shifts" validate:"dive"`
	MaintenanceWindows []maintenanceWindowDoc `json:"maintenance_windows" yaml:"maintenance_windows" validate:"dive"`
}

type manufacturingOrderDoc struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	DueDate string `json:"due_date" yaml:"due_date" validate:"required"`
}

type workOrderDoc struct {
	ID                   string   `json:"id" yaml:"id" validate:"required"`
	ManufacturingOrderID string   `json:"manufacturing_order_id" yaml:"manufacturing_order_id" validate:"required"`
	WorkCenterID         string   `json:"work_center_id" yaml:"work_center_id" validate:"required"`
	Start                string   `json:"start" yaml:"start" validate:"required"`
	End                  string   `json:"end" yaml:"end" validate:"required"`
	DurationMinutes      int      `json:"duration_minutes" yaml:"duration_minutes" validate:"min=0"`
	IsMaintenance        bool     `json:"is_maintenance" yaml:"is_maintenance"`
	DependsOn            []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

var validate = validator.New()

// DecodeYAML parses a YAML document stream (one or more "---"-separated
// Document envelopes) into the three reflow collections. Each YAML document
// is decoded into native Go values first, then re-marshaled to JSON so the
// same Document/payload decoding path as DecodeJSON handles both formats.
func DecodeYAML(data []byte) ([]reflow.WorkOrder, []reflow.WorkCenter, []reflow.ManufacturingOrder, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var raw []map[string]interface{}
	for {
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, nil, fmt.Errorf("docs: decoding yaml document: %w", err)
		}
		raw = append(raw, m)
	}

	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("docs: converting yaml to json: %w", err)
	}
	return DecodeJSON(jsonBytes)
}

// DecodeJSON parses a JSON array of Document envelopes into the three
// reflow collections.
func DecodeJSON(data []byte) ([]reflow.WorkOrder, []reflow.WorkCenter, []reflow.ManufacturingOrder, error) {
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, nil, nil, fmt.Errorf("docs: decoding json documents: %w", err)
	}
	return assemble(docs)
}

func assemble(docs []Document) ([]reflow.WorkOrder, []reflow.WorkCenter, []reflow.ManufacturingOrder, error) {
	var (
		workOrders          []reflow.WorkOrder
		workCenters         []reflow.WorkCenter
		manufacturingOrders []reflow.ManufacturingOrder
	)

	for i, d := range docs {
		if err := validate.Struct(d); err != nil {
			return nil, nil, nil, fmt.Errorf("docs: document %d: %w", i, err)
		}

		switch d.Kind {
		case KindWorkOrder:
			wo, err := decodeWorkOrder(d.Payload)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("docs: document %d (work_order): %w", i, err)
			}
			workOrders = append(workOrders, wo)
		case KindWorkCenter:
			wc, err := decodeWorkCenter(d.Payload)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("docs: document %d (work_center): %w", i, err)
			}
			workCenters = append(workCenters, wc)
		case KindManufacturingOrder:
			mo, err := decodeManufacturingOrder(d.Payload)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("docs: document %d (manufacturing_order): %w", i, err)
			}
			manufacturingOrders = append(manufacturingOrders, mo)
		default:
			return nil, nil, nil, fmt.Errorf("docs: document %d: unknown kind %q", i, d.Kind)
		}
	}

	return workOrders, workCenters, manufacturingOrders, nil
}

func decodeWorkOrder(payload json.RawMessage) (reflow.WorkOrder, error) {
	var d workOrderDoc
	if err := json.Unmarshal(payload, &d); err != nil {
		return reflow.WorkOrder{}, err
	}
	if err := validate.Struct(d); err != nil {
		return reflow.WorkOrder{}, err
	}
	start, err := time.Parse(time.RFC3339, d.Start)
	if err != nil {
		return reflow.WorkOrder{}, fmt.Errorf("start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, d.End)
	if err != nil {
		return reflow.WorkOrder{}, fmt.Errorf("end: %w", err)
	}
	return reflow.WorkOrder{
		ID:                   d.ID,
		ManufacturingOrderID: d.ManufacturingOrderID,
		WorkCenterID:         d.WorkCenterID,
		Start:                start,
		End:                  end,
		DurationMinutes:      d.DurationMinutes,
		IsMaintenance:        d.IsMaintenance,
		DependsOn:            d.DependsOn,
	}, nil
}

func decodeWorkCenter(payload json.RawMessage) (reflow.WorkCenter, error) {
	var d workCenterDoc
	if err := json.Unmarshal(payload, &d); err != nil {
		return reflow.WorkCenter{}, err
	}
	if err := validate.Struct(d); err != nil {
		return reflow.WorkCenter{}, err
	}

	shifts := make([]reflow.Shift, 0, len(d.Shifts))
	for _, s := range d.Shifts {
		shifts = append(shifts, reflow.Shift{DayOfWeek: s.DayOfWeek, StartHour: s.StartHour, EndHour: s.EndHour})
	}

	windows := make([]reflow.MaintenanceWindow, 0, len(d.MaintenanceWindows))
	for _, w := range d.MaintenanceWindows {
		start, err := time.Parse(time.RFC3339, w.Start)
		if err != nil {
			return reflow.WorkCenter{}, fmt.Errorf("maintenance window start: %w", err)
		}
		end, err := time.Parse(time.RFC3339, w.End)
		if err != nil {
			return reflow.WorkCenter{}, fmt.Errorf("maintenance window end: %w", err)
		}
		windows = append(windows, reflow.MaintenanceWindow{Start: start, End: end})
	}

	return reflow.WorkCenter{
		ID:                 d.ID,
		Name:               d.Name,
		Shifts:             shifts,
		MaintenanceWindows: windows,
	}, nil
}

func decodeManufacturingOrder(payload json.RawMessage) (reflow.ManufacturingOrder, error) {
	var d manufacturingOrderDoc
	if err := json.Unmarshal(payload, &d); err != nil {
		return reflow.ManufacturingOrder{}, err
	}
	if err := validate.Struct(d); err != nil {
		return reflow.ManufacturingOrder{}, err
	}
	due, err := time.Parse(time.RFC3339, d.DueDate)
	if err != nil {
		return reflow.ManufacturingOrder{}, fmt.Errorf("due_date: %w", err)
	}
	return reflow.ManufacturingOrder{ID: d.ID, DueDate: due}, nil
}
