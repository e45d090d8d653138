package models

import "time"

// Reading kinds stored by the recorder.
const (
	KindTemperature = "TEMPERATURE"
	KindWaterLevel  = "WATER_LEVEL"
)

// ReadingRecord is a single persisted sensor sample.
type ReadingRecord struct {
	ID         string    `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
	Kind       string    `json:"kind"` // TEMPERATURE | WATER_LEVEL
	Value      float64   `json:"value"`
}

// ReadingStats summarizes readings of one kind over a time range.
type ReadingStats struct {
	Kind  string  `json:"kind"`
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// Operator is an account allowed to issue control commands.
type Operator struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}
