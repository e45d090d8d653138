package service

import (
	"time"

	"aquarium_controller/internal/models"
)

// ReadingQuery filters recorded sensor readings.
type ReadingQuery struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Kind  string    // "", "TEMPERATURE", "WATER_LEVEL"
	Limit int       // 0 means DefaultHistoryLimit
}

// AlertQuery filters recorded alerts.
type AlertQuery struct {
	From  time.Time
	To    time.Time
	Level models.AlertLevel // "", INFO, WARNING, CRITICAL
	Limit int
}

// command bodies published by Controls; they match what the panel sends.
type targetBody struct {
	Target float64 `json:"target"`
}

type feedBody struct {
	Feed    bool `json:"feed"`
	Seconds *int `json:"seconds,omitempty"`
}

type refillBody struct {
	Refill bool     `json:"refill"`
	Target *float64 `json:"target,omitempty"`
}
