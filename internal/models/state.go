package models

import "time"

// Refill modes reported in Status.
const (
	ModeAutomatic    = "AUTOMATIC"
	ModeManualRefill = "MANUAL_REFILL"
)

// ControlState is the controller's working memory. It is owned by the control
// core and only mutated while a single message is being handled.
type ControlState struct {
	TargetTemperature  float64
	PumpRunning        bool
	ManualRefillTarget *float64 // nil = automatic mode
	LastWaterLevel     *float64
	LastTemperature    *float64
	UpdatedAt          time.Time
}

// Mode returns the fluid-level regulator mode implied by the state.
func (s ControlState) Mode() string {
	if s.ManualRefillTarget != nil {
		return ModeManualRefill
	}
	return ModeAutomatic
}

// Clone returns a deep copy; pointer fields are not shared with s.
func (s ControlState) Clone() ControlState {
	out := s
	out.ManualRefillTarget = cloneFloat(s.ManualRefillTarget)
	out.LastWaterLevel = cloneFloat(s.LastWaterLevel)
	out.LastTemperature = cloneFloat(s.LastTemperature)
	return out
}

// Status is the read-only view of ControlState served to operators.
type Status struct {
	TargetTemperatureC float64   `json:"target_temperature_c"`
	PumpRunning        bool      `json:"pump_running"`
	Mode               string    `json:"mode"` // AUTOMATIC | MANUAL_REFILL
	ManualRefillTarget *float64  `json:"manual_refill_target,omitempty"`
	WaterLevelPercent  *float64  `json:"water_level_percent,omitempty"`
	TemperatureC       *float64  `json:"temperature_c,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// StatusOf converts a state snapshot into its operator view.
func StatusOf(s ControlState) Status {
	c := s.Clone()
	return Status{
		TargetTemperatureC: c.TargetTemperature,
		PumpRunning:        c.PumpRunning,
		Mode:               c.Mode(),
		ManualRefillTarget: c.ManualRefillTarget,
		WaterLevelPercent:  c.LastWaterLevel,
		TemperatureC:       c.LastTemperature,
		UpdatedAt:          c.UpdatedAt,
	}
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
