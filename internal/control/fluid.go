package control

import (
	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
)

// LevelSettings are the refill thresholds, in percent. Critical < Low < Target.
type LevelSettings struct {
	Critical     float64
	Low          float64
	Target       float64
	ManualMargin float64 // manual refill completes at target - margin
}

// FluidRegulator runs the refill pump in one of two modes:
//
//	AUTOMATIC      edge-triggered on the Low/Target thresholds, using PumpRunning
//	               to avoid redundant start/stop commands.
//	MANUAL_REFILL  re-affirms the pump command on every reading until the
//	               operator's target is reached, then returns to AUTOMATIC.
//
// A manual refill command pre-empts automatic mode immediately.
type FluidRegulator struct {
	settings LevelSettings
	out      *actuators
	alerts   *AlertEmitter
	log      *logger.Logger
}

// OnReading handles one level sample.
func (r *FluidRegulator) OnReading(st *models.ControlState, level float64) {
	r.log.Debugw("level_reading", "level", level, "pump_running", st.PumpRunning, "mode", st.Mode())

	switch {
	case level <= r.settings.Critical:
		r.alerts.Emitf(models.AlertCritical, "CRITICAL: Water level at %.1f%%!", level)
	case level <= r.settings.Low:
		r.alerts.Emitf(models.AlertWarning, "Low water level: %.1f%%", level)
	}

	if st.ManualRefillTarget != nil {
		r.manual(st, level)
	} else {
		r.automatic(st, level)
	}

	v := level
	st.LastWaterLevel = &v
}

func (r *FluidRegulator) manual(st *models.ControlState, level float64) {
	target := *st.ManualRefillTarget
	if level >= target-r.settings.ManualMargin {
		r.setPump(st, false, nil)
		r.alerts.Emitf(models.AlertInfo, "Manual refill complete: %.1f%%", level)
		st.ManualRefillTarget = nil
		return
	}
	r.setPump(st, true, &target)
}

func (r *FluidRegulator) automatic(st *models.ControlState, level float64) {
	switch {
	case level <= r.settings.Low && !st.PumpRunning:
		target := r.settings.Target
		r.setPump(st, true, &target)
		r.alerts.Emitf(models.AlertInfo, "Auto-refill started (level: %.1f%%)", level)
	case level >= r.settings.Target && st.PumpRunning:
		r.setPump(st, false, nil)
		r.alerts.Emitf(models.AlertInfo, "Auto-refill complete (level: %.1f%%)", level)
	}
}

// OnRefill starts a manual refill toward target, or toward the automatic
// Target when none is given, regardless of the current mode.
func (r *FluidRegulator) OnRefill(st *models.ControlState, target *float64) {
	m := r.settings.Target
	if target != nil {
		m = *target
	}
	st.ManualRefillTarget = &m
	r.setPump(st, true, &m)
	r.alerts.Emitf(models.AlertInfo, "Manual refill started, target %.1f%%", m)
}

func (r *FluidRegulator) setPump(st *models.ControlState, on bool, target *float64) {
	st.PumpRunning = on
	r.out.send(models.PumpCommand{On: on, Target: target})
}
