package transport

import (
	"sync"

	"aquarium_controller/internal/logger"
)

// Memory is an in-process bus. Handlers run synchronously on the publishing
// goroutine, in subscription order, which keeps per-topic ordering trivially.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string][]Handler
	closed bool
	log    *logger.Logger
}

func NewMemory(log *logger.Logger) *Memory {
	return &Memory{
		subs: make(map[string][]Handler),
		log:  log.Named("bus.memory"),
	}
}

func (m *Memory) Subscribe(topic string, h Handler) error {
	if err := validate(topic, h); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.subs[topic] = append(m.subs[topic], h)
	m.log.Debugw("subscribed", "topic", topic, "subscribers", len(m.subs[topic]))
	return nil
}

// Publish delivers payload to every subscriber of topic. Handlers are called
// without the lock held so they may publish or subscribe themselves.
func (m *Memory) Publish(topic string, payload []byte) error {
	if topic == "" {
		return ErrEmptyTopic
	}
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrClosed
	}
	handlers := append([]Handler(nil), m.subs[topic]...)
	m.mu.RUnlock()

	for _, h := range handlers {
		h(topic, append([]byte(nil), payload...))
	}
	m.log.Debugw("published", "topic", topic, "subscribers", len(handlers), "size", len(payload))
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.subs = make(map[string][]Handler)
	return nil
}
