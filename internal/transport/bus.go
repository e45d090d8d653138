// Package transport connects the controller to the publish/subscribe bus.
package transport

import (
	"errors"
	"fmt"

	"aquarium_controller/internal/config"
	"aquarium_controller/internal/logger"
)

// Handler receives one message. Handlers must return quickly.
type Handler func(topic string, payload []byte)

// Bus is a topic-based publish/subscribe connection. Delivery is ordered per
// topic only; there is no ordering guarantee across topics.
type Bus interface {
	Publish(topic string, payload []byte) error
	Subscribe(topic string, h Handler) error
	Close() error
}

var (
	ErrClosed      = errors.New("transport closed")
	ErrEmptyTopic  = errors.New("empty topic")
	ErrNilHandler  = errors.New("nil handler")
	ErrUnknownKind = errors.New("unknown transport kind")
)

// Open connects the bus selected by cfg.Kind. onLost is invoked at most once
// if an established connection drops; the controller treats that as fatal.
func Open(cfg config.TransportConfig, log *logger.Logger, onLost func(error)) (Bus, error) {
	switch cfg.Kind {
	case config.TransportMQTT:
		b, err := DialMQTT(cfg.MQTT, log, onLost)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.TransportNATS:
		b, err := DialNATS(cfg.NATS, log, onLost)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.TransportMemory:
		return NewMemory(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

func validate(topic string, h Handler) error {
	if topic == "" {
		return ErrEmptyTopic
	}
	if h == nil {
		return ErrNilHandler
	}
	return nil
}
