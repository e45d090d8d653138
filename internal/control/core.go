// Package control is the decision-making part of the controller: it turns
// inbound telemetry and operator commands into actuator commands and alerts.
package control

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"aquarium_controller/internal/config"
	"aquarium_controller/internal/decoder"
	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
)

// ErrStopped is returned by Submit once Run has exited.
var ErrStopped = errors.New("control core stopped")

// Settings are the constants the regulators run with.
type Settings struct {
	DefaultTargetC float64
	Thermal        ThermalSettings
	Level          LevelSettings
	MaxFeedSeconds int
	StrictDecode   bool
	QueueSize      int
}

// SettingsFrom maps the control section of the configuration.
func SettingsFrom(cc config.ControlConfig) Settings {
	return Settings{
		DefaultTargetC: cc.DefaultTargetC,
		Thermal: ThermalSettings{
			HysteresisC: cc.HysteresisC,
			ColdAlertC:  cc.ColdAlertC,
			HotAlertC:   cc.HotAlertC,
		},
		Level: LevelSettings{
			Critical:     cc.LevelCritical,
			Low:          cc.LevelLow,
			Target:       cc.LevelTarget,
			ManualMargin: cc.ManualMargin,
		},
		MaxFeedSeconds: cc.MaxFeedSeconds,
		StrictDecode:   cc.StrictDecode,
		QueueSize:      cc.QueueSize,
	}
}

type inbound struct {
	topic   string
	payload []byte
}

// Core owns the ControlState and is its only writer. Messages are handled
// one at a time under mu, in the order Run receives them.
type Core struct {
	mu    sync.RWMutex
	state models.ControlState

	routes  map[string]models.Subject
	decoder *decoder.Decoder
	thermal *ThermalRegulator
	fluid   *FluidRegulator
	feed    *FeedRelay

	inbox chan inbound
	done  chan struct{}

	log     *logger.Logger
	metrics *Metrics
	now     func() time.Time
}

// New builds a core publishing through pub. metrics may be nil.
func New(s Settings, topics config.Topics, pub Publisher, log *logger.Logger, metrics *Metrics) *Core {
	log = log.Named("control")
	out := &actuators{pub: pub, topics: topics, log: log, metrics: metrics}
	alerts := NewAlertEmitter(pub, topics.Alerts, log, metrics)

	queue := s.QueueSize
	if queue <= 0 {
		queue = 1
	}

	c := &Core{
		state:   models.ControlState{TargetTemperature: s.DefaultTargetC},
		routes:  topics.Inbound(),
		decoder: decoder.New(s.StrictDecode),
		thermal: &ThermalRegulator{settings: s.Thermal, out: out, alerts: alerts, log: log.Named("thermal")},
		fluid:   &FluidRegulator{settings: s.Level, out: out, alerts: alerts, log: log.Named("fluid")},
		feed:    &FeedRelay{maxSeconds: s.MaxFeedSeconds, out: out, alerts: alerts, log: log.Named("feed")},
		inbox:   make(chan inbound, queue),
		done:    make(chan struct{}),
		log:     log,
		metrics: metrics,
		now:     time.Now,
	}
	c.state.UpdatedAt = c.now().UTC()
	metrics.observeState(&c.state)
	return c
}

// Topics lists the inbound topics the core must be subscribed to.
func (c *Core) Topics() []string {
	out := make([]string, 0, len(c.routes))
	for t := range c.routes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Submit queues a raw message for Run. It blocks while the queue is full and
// is safe to call from any goroutine, e.g. transport callbacks.
func (c *Core) Submit(ctx context.Context, topic string, payload []byte) error {
	in := inbound{topic: topic, payload: bytes.Clone(payload)}
	select {
	case <-c.done:
		return ErrStopped
	default:
	}
	select {
	case c.inbox <- in:
		c.metrics.queue(len(c.inbox))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrStopped
	}
}

// Run handles queued messages until ctx is canceled. It must be called once.
func (c *Core) Run(ctx context.Context) {
	defer close(c.done)
	c.log.Infow("control_loop_started", "topics", c.Topics())
	for {
		select {
		case <-ctx.Done():
			c.log.Infow("control_loop_stopped", "pending", len(c.inbox))
			return
		case in := <-c.inbox:
			c.metrics.queue(len(c.inbox))
			c.HandleRaw(in.topic, in.payload)
		}
	}
}

// HandleRaw decodes a payload received on topic and handles it.
func (c *Core) HandleRaw(topic string, payload []byte) {
	subject, ok := c.routes[topic]
	if !ok {
		c.log.Warnw("unrouted_message", "topic", topic)
		return
	}
	c.Handle(c.decoder.Decode(subject, payload))
}

// Handle applies one decoded message to the state.
func (c *Core) Handle(msg models.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics.message(msg.Subject())

	switch m := msg.(type) {
	case models.TemperatureReading:
		c.thermal.OnReading(&c.state, m.Celsius)
	case models.LevelReading:
		c.fluid.OnReading(&c.state, m.Percent)
	case models.SetTargetCommand:
		if m.Target == nil {
			c.log.Debugw("target_ignored", "reason", "no target in payload")
			return
		}
		c.thermal.OnSetTarget(&c.state, *m.Target)
	case models.FeedCommand:
		c.feed.OnFeed(m)
	case models.RefillCommand:
		if !m.Refill {
			c.log.Debugw("refill_ignored", "reason", "refill flag not set")
			return
		}
		c.fluid.OnRefill(&c.state, m.Target)
	case models.Invalid:
		c.metrics.invalidMessage(m.From)
		c.log.Warnw("invalid_message", "subject", m.From, "reason", m.Reason)
		return
	default:
		c.log.Warnw("unhandled_message", "subject", msg.Subject())
		return
	}

	c.state.UpdatedAt = c.now().UTC()
	c.metrics.observeState(&c.state)
}

// Snapshot returns a copy of the current state.
func (c *Core) Snapshot() models.ControlState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}
