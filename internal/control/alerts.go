package control

import (
	"encoding/json"
	"fmt"

	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
)

// AlertEmitter publishes operator alerts. Every call produces exactly one
// outbound message; nothing is buffered or deduplicated.
type AlertEmitter struct {
	pub     Publisher
	topic   string
	log     *logger.Logger
	metrics *Metrics
}

// NewAlertEmitter returns an emitter publishing on topic.
func NewAlertEmitter(pub Publisher, topic string, log *logger.Logger, metrics *Metrics) *AlertEmitter {
	return &AlertEmitter{pub: pub, topic: topic, log: log.Named("alerts"), metrics: metrics}
}

// Emit publishes {level, msg} on the alerts topic.
func (e *AlertEmitter) Emit(level models.AlertLevel, msg string) {
	switch level {
	case models.AlertCritical:
		e.log.Errorw("alert", "level", level, "msg", msg)
	case models.AlertWarning:
		e.log.Warnw("alert", "level", level, "msg", msg)
	default:
		e.log.Infow("alert", "level", level, "msg", msg)
	}

	body, err := json.Marshal(models.Alert{Level: level, Message: msg})
	if err != nil {
		e.log.Errorw("alert_marshal_failed", "err", err)
		return
	}
	if err := e.pub.Publish(e.topic, body); err != nil {
		e.log.Errorw("publish_failed", "topic", e.topic, "err", err)
		e.metrics.publishError(e.topic)
		return
	}
	e.metrics.alert(level)
}

// Emitf formats the message with fmt.Sprintf.
func (e *AlertEmitter) Emitf(level models.AlertLevel, format string, args ...any) {
	e.Emit(level, fmt.Sprintf(format, args...))
}
