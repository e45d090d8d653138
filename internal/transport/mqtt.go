package transport

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"aquarium_controller/internal/config"
	"aquarium_controller/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

var errTimeout = errors.New("timed out waiting for broker")

// MQTT is a Bus backed by an MQTT broker (tcp://, ssl:// or ws:// URLs).
// Reconnection is disabled: a lost connection is reported through onLost and
// left to the process supervisor.
type MQTT struct {
	client  mqtt.Client
	qos     byte
	timeout time.Duration
	log     *logger.Logger
}

// clientID keeps the configured prefix readable in broker logs while avoiding
// collisions between several controller instances.
func clientID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func mqttOptions(cfg config.MQTTConfig, log *logger.Logger, onLost func(error)) *mqtt.ClientOptions {
	var once sync.Once
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID(cfg.ClientID)).
		SetCleanSession(true).
		SetOrderMatters(true).
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetKeepAlive(cfg.KeepAlive).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Errorw("mqtt_connection_lost", "broker", cfg.Broker, "err", err)
			if onLost != nil {
				once.Do(func() { onLost(err) })
			}
		})
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	return opts
}

// DialMQTT connects to the broker and waits for the CONNACK.
func DialMQTT(cfg config.MQTTConfig, log *logger.Logger, onLost func(error)) (*MQTT, error) {
	log = log.Named("bus.mqtt")
	client := mqtt.NewClient(mqttOptions(cfg, log, onLost))

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, errTimeout)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}
	log.Infow("mqtt_connected", "broker", cfg.Broker, "qos", cfg.QoS)

	return &MQTT{client: client, qos: cfg.QoS, timeout: timeout, log: log}, nil
}

// Publish hands the message to the client without waiting for delivery.
// Only an error that is already known is returned.
func (m *MQTT) Publish(topic string, payload []byte) error {
	if topic == "" {
		return ErrEmptyTopic
	}
	tok := m.client.Publish(topic, m.qos, false, payload)
	select {
	case <-tok.Done():
		return tok.Error()
	default:
		return nil
	}
}

// Subscribe waits for the SUBACK so the caller knows the subscription is live.
func (m *MQTT) Subscribe(topic string, h Handler) error {
	if err := validate(topic, h); err != nil {
		return err
	}
	tok := m.client.Subscribe(topic, m.qos, func(_ mqtt.Client, msg mqtt.Message) {
		h(msg.Topic(), msg.Payload())
	})
	if !tok.WaitTimeout(m.timeout) {
		return fmt.Errorf("subscribe %s: %w", topic, errTimeout)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	m.log.Infow("mqtt_subscribed", "topic", topic)
	return nil
}

func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
