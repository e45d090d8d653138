package models

// Subject identifies what an inbound message is about, independent of the
// transport topic it arrived on.
type Subject int

const (
	SubjectUnknown Subject = iota
	SubjectTemperature
	SubjectLevel
	SubjectTargetTemp
	SubjectFeed
	SubjectRefill
)

// String returns the string representation of Subject.
func (s Subject) String() string {
	switch s {
	case SubjectTemperature:
		return "temperature"
	case SubjectLevel:
		return "level"
	case SubjectTargetTemp:
		return "target_temp"
	case SubjectFeed:
		return "feed"
	case SubjectRefill:
		return "refill"
	default:
		return "unknown"
	}
}

// Message is a decoded inbound message. The set of implementations is closed.
type Message interface {
	Subject() Subject
	isMessage()
}

// TemperatureReading is a water temperature sample in °C.
type TemperatureReading struct {
	Celsius float64
}

// LevelReading is a water level sample in percent of tank capacity.
type LevelReading struct {
	Percent float64
}

// SetTargetCommand changes the thermostat set-point. Target is nil when the
// payload carried no usable target.
type SetTargetCommand struct {
	Target *float64
}

// FeedCommand asks for the feeder to run. Seconds is nil when not specified.
type FeedCommand struct {
	Feed    bool
	Seconds *int
}

// RefillCommand starts a manual refill. Target is nil when not specified.
type RefillCommand struct {
	Refill bool
	Target *float64
}

// Invalid is produced by strict decoding for payloads that cannot be acted on.
type Invalid struct {
	From   Subject
	Reason string
}

func (TemperatureReading) Subject() Subject { return SubjectTemperature }
func (LevelReading) Subject() Subject       { return SubjectLevel }
func (SetTargetCommand) Subject() Subject   { return SubjectTargetTemp }
func (FeedCommand) Subject() Subject        { return SubjectFeed }
func (RefillCommand) Subject() Subject      { return SubjectRefill }
func (m Invalid) Subject() Subject          { return m.From }

func (TemperatureReading) isMessage() {}
func (LevelReading) isMessage()       {}
func (SetTargetCommand) isMessage()   {}
func (FeedCommand) isMessage()        {}
func (RefillCommand) isMessage()      {}
func (Invalid) isMessage()            {}
