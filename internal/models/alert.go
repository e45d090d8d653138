package models

import "time"

// AlertLevel is the severity of an operator alert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "INFO"
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
)

// Valid reports whether l is one of the known levels.
func (l AlertLevel) Valid() bool {
	switch l {
	case AlertInfo, AlertWarning, AlertCritical:
		return true
	}
	return false
}

// Alert is the JSON body published on the alerts topic.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"msg"`
}

// AlertRecord is a persisted alert.
type AlertRecord struct {
	ID       string     `json:"id"`
	RaisedAt time.Time  `json:"raised_at"`
	Level    AlertLevel `json:"level"`
	Message  string     `json:"message"`
}
