package models

// Actuator names a physical output driven by the controller.
type Actuator string

const (
	ActuatorHeater Actuator = "heater"
	ActuatorCooler Actuator = "cooler"
	ActuatorPump   Actuator = "pump"
	ActuatorFeeder Actuator = "feeder"
)

// Wire values for the "status" field of actuator payloads.
const (
	StatusOn  = "on"
	StatusOff = "off"
)

// Command is an outbound actuator command.
type Command interface {
	Actuator() Actuator
	Payload() ActuatorPayload
}

// ActuatorPayload is the JSON body published on actuator topics.
type ActuatorPayload struct {
	Status  string   `json:"status"`            // on | off
	Target  *float64 `json:"target,omitempty"`  // pump only
	Seconds *int     `json:"seconds,omitempty"` // feeder only
}

// On reports whether the payload switches the actuator on.
func (p ActuatorPayload) On() bool { return p.Status == StatusOn }

// HeaterCommand switches the heater.
type HeaterCommand struct{ On bool }

// CoolerCommand switches the cooler.
type CoolerCommand struct{ On bool }

// PumpCommand drives the refill pump. Target is only sent when switching on.
type PumpCommand struct {
	On     bool
	Target *float64
}

// FeederCommand runs the feeder. Seconds is advisory for the actuator side.
type FeederCommand struct {
	On      bool
	Seconds int
}

func (HeaterCommand) Actuator() Actuator { return ActuatorHeater }
func (CoolerCommand) Actuator() Actuator { return ActuatorCooler }
func (PumpCommand) Actuator() Actuator   { return ActuatorPump }
func (FeederCommand) Actuator() Actuator { return ActuatorFeeder }

func (c HeaterCommand) Payload() ActuatorPayload { return ActuatorPayload{Status: status(c.On)} }
func (c CoolerCommand) Payload() ActuatorPayload { return ActuatorPayload{Status: status(c.On)} }

func (c PumpCommand) Payload() ActuatorPayload {
	p := ActuatorPayload{Status: status(c.On)}
	if c.On && c.Target != nil {
		t := *c.Target
		p.Target = &t
	}
	return p
}

func (c FeederCommand) Payload() ActuatorPayload {
	p := ActuatorPayload{Status: status(c.On)}
	if c.On {
		s := c.Seconds
		p.Seconds = &s
	}
	return p
}

func status(on bool) string {
	if on {
		return StatusOn
	}
	return StatusOff
}
