package control

import (
	"strconv"
	"strings"

	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
)

// ThermalSettings are the thermostat constants.
type ThermalSettings struct {
	HysteresisC float64
	ColdAlertC  float64 // WARNING below this
	HotAlertC   float64 // WARNING above this
}

// ThermalDecision is the heater/cooler pair commanded for one reading.
type ThermalDecision struct {
	Heater bool
	Cooler bool
}

// DecideThermal applies the hysteresis band [target-h, target+h]: heat below
// it, cool above it, both off inside it (boundaries included).
func DecideThermal(t, target, h float64) ThermalDecision {
	switch {
	case t < target-h:
		return ThermalDecision{Heater: true}
	case t > target+h:
		return ThermalDecision{Cooler: true}
	default:
		return ThermalDecision{}
	}
}

// ThermalRegulator is re-evaluated from scratch on every reading; the only
// state it depends on is the set-point.
type ThermalRegulator struct {
	settings ThermalSettings
	out      *actuators
	alerts   *AlertEmitter
	log      *logger.Logger
}

// OnReading publishes the heater/cooler pair unconditionally, then the
// independent too-cold / too-hot warnings.
func (r *ThermalRegulator) OnReading(st *models.ControlState, t float64) {
	d := DecideThermal(t, st.TargetTemperature, r.settings.HysteresisC)
	r.log.Debugw("thermal_decision",
		"temp_c", t, "target_c", st.TargetTemperature, "hysteresis_c", r.settings.HysteresisC,
		"heater", d.Heater, "cooler", d.Cooler)

	// the side being switched on goes first
	if d.Cooler {
		r.out.send(models.CoolerCommand{On: true})
		r.out.send(models.HeaterCommand{On: false})
	} else {
		r.out.send(models.HeaterCommand{On: d.Heater})
		r.out.send(models.CoolerCommand{On: false})
	}

	if t < r.settings.ColdAlertC {
		r.alerts.Emitf(models.AlertWarning, "Water too cold: %sC", formatCelsius(t))
	}
	if t > r.settings.HotAlertC {
		r.alerts.Emitf(models.AlertWarning, "Water too hot: %sC", formatCelsius(t))
	}

	v := t
	st.LastTemperature = &v
}

// OnSetTarget stores a new set-point. No command is issued; the next reading applies it.
func (r *ThermalRegulator) OnSetTarget(st *models.ControlState, target float64) {
	st.TargetTemperature = target
	r.alerts.Emitf(models.AlertInfo, "Target temp set to %sC", formatCelsius(target))
}

// formatCelsius prints the shortest exact decimal, always with a fractional
// part: 17 -> "17.0", 24.35 -> "24.35".
func formatCelsius(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}
