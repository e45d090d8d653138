package transport

import (
	"fmt"
	"strings"
	"sync"

	"aquarium_controller/internal/config"
	"aquarium_controller/internal/logger"

	"github.com/nats-io/nats.go"
)

// NATS is a Bus backed by a NATS server. Topics use '/' separators like MQTT;
// they are mapped to '.'-separated subjects on the wire.
type NATS struct {
	conn *nats.Conn
	log  *logger.Logger
}

// subjectFor converts an MQTT-style topic into a NATS subject.
func subjectFor(topic string) string {
	return strings.ReplaceAll(strings.Trim(topic, "/"), "/", ".")
}

// DialNATS connects without automatic reconnects; see MQTT for the rationale.
func DialNATS(cfg config.NATSConfig, log *logger.Logger, onLost func(error)) (*NATS, error) {
	log = log.Named("bus.nats")
	var once sync.Once

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.NoReconnect(),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Errorw("nats_disconnected", "url", cfg.URL, "err", err)
			if onLost != nil && err != nil {
				once.Do(func() { onLost(err) })
			}
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			log.Errorw("nats_async_error", "subject", subject, "err", err)
		}),
	}
	if cfg.ConnectTimeout > 0 {
		opts = append(opts, nats.Timeout(cfg.ConnectTimeout))
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.URL, err)
	}
	log.Infow("nats_connected", "url", conn.ConnectedUrl())
	return &NATS{conn: conn, log: log}, nil
}

func (n *NATS) Publish(topic string, payload []byte) error {
	if topic == "" {
		return ErrEmptyTopic
	}
	return n.conn.Publish(subjectFor(topic), payload)
}

// Subscribe delivers messages with the original topic string, not the subject.
func (n *NATS) Subscribe(topic string, h Handler) error {
	if err := validate(topic, h); err != nil {
		return err
	}
	subject := subjectFor(topic)
	if _, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		h(topic, msg.Data)
	}); err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	n.log.Infow("nats_subscribed", "topic", topic, "subject", subject)
	return nil
}

// Close drains pending messages before closing the connection.
func (n *NATS) Close() error {
	return n.conn.Drain()
}
