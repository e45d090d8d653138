package control

import (
	"encoding/json"

	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
)

// Publisher is the outbound side of the bus. Publishing is fire-and-forget:
// an error is reported to the caller but never retried.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// ActuatorTopics resolves the topic for each actuator.
type ActuatorTopics interface {
	Actuator(a models.Actuator) string
}

// actuators publishes actuator commands.
type actuators struct {
	pub     Publisher
	topics  ActuatorTopics
	log     *logger.Logger
	metrics *Metrics
}

func (a *actuators) send(cmd models.Command) {
	topic := a.topics.Actuator(cmd.Actuator())
	p := cmd.Payload()
	body, err := json.Marshal(p)
	if err != nil {
		a.log.Errorw("command_marshal_failed", "actuator", cmd.Actuator(), "err", err)
		return
	}
	if err := a.pub.Publish(topic, body); err != nil {
		a.log.Errorw("publish_failed", "topic", topic, "actuator", cmd.Actuator(), "err", err)
		a.metrics.publishError(topic)
		return
	}
	a.log.Debugw("command_published", "actuator", cmd.Actuator(), "payload", string(body))
	a.metrics.command(cmd.Actuator(), p.Status)
}
