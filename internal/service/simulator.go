package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"aquarium_controller/internal/config"
	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
	"aquarium_controller/internal/transport"
)

// ----------- Tank model constants -----------
const (
	InitialTempC       = 26.0
	InitialLevel       = 100.0
	HeaterCPerTick     = 0.1
	CoolerCPerTick     = 0.1
	AmbientSwingC      = 0.05 // applied every AmbientSwingTicks
	AmbientSwingTicks  = 2
	NoiseC             = 0.01
	EvaporationPerTick = 0.02
	LevelNoise         = 0.001
	RefillPerTick      = 0.05
	DefaultPumpTarget  = 85.0
	MinTempC           = 15.0
	MaxTempC           = 35.0
	MinLevel           = 10.0
	MaxLevel           = 100.0
)

// Tank is the simulated hardware state.
type Tank struct {
	TemperatureC float64
	LevelPercent float64
	Heater       bool
	Cooler       bool
	Pump         bool
	PumpTarget   float64
}

// SimulatorService plays the part of the tank: it obeys actuator commands and
// publishes sensor readings every tick.
type SimulatorService struct {
	bus    transport.Bus
	topics config.Topics
	log    *logger.Logger

	mu    sync.Mutex
	rng   *rand.Rand
	tank  Tank
	ticks int
}

func NewSimulatorService(bus transport.Bus, topics config.Topics, log *logger.Logger, rng *rand.Rand) *SimulatorService {
	return &SimulatorService{
		bus:    bus,
		topics: topics,
		log:    log.Named("simulator"),
		rng:    rng,
		tank: Tank{
			TemperatureC: InitialTempC,
			LevelPercent: InitialLevel,
			PumpTarget:   DefaultPumpTarget,
		},
	}
}

// Attach subscribes to the actuator topics.
func (s *SimulatorService) Attach() error {
	for _, a := range []models.Actuator{models.ActuatorHeater, models.ActuatorCooler, models.ActuatorPump, models.ActuatorFeeder} {
		a := a
		topic := s.topics.Actuator(a)
		if err := s.bus.Subscribe(topic, func(_ string, payload []byte) { s.apply(a, payload) }); err != nil {
			return fmt.Errorf("simulator subscribe %s: %w", topic, err)
		}
	}
	return nil
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	s.log.Infow("simulator_started", "tick", tick)
	for {
		select {
		case <-ctx.Done():
			s.log.Infow("simulator_stopped")
			return
		case <-t.C:
			s.Step()
		}
	}
}

// Step advances the model by one tick and publishes both sensor readings.
func (s *SimulatorService) Step() {
	s.mu.Lock()
	temp := s.stepTemperature()
	level := s.stepLevel()
	s.mu.Unlock()

	// publish without holding mu: subscribers may answer with actuator
	// commands on the same goroutine
	s.publish(s.topics.Temperature, map[string]any{"temperature": temp, "temp": temp, "unit": "C"})
	s.publish(s.topics.Level, map[string]any{"level": level})
}

// Tank returns a copy of the current model state.
func (s *SimulatorService) Tank() Tank {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tank
}

func (s *SimulatorService) stepTemperature() float64 {
	s.ticks++
	change := 0.0
	if s.ticks >= AmbientSwingTicks {
		s.ticks = 0
		change = AmbientSwingC
		if s.rng.Intn(2) == 0 {
			change = -AmbientSwingC
		}
	}
	change += (s.rng.Float64()*2 - 1) * NoiseC
	if s.tank.Heater {
		change += HeaterCPerTick
	}
	if s.tank.Cooler {
		change -= CoolerCPerTick
	}
	s.tank.TemperatureC = clamp(s.tank.TemperatureC+change, MinTempC, MaxTempC)
	return round2(s.tank.TemperatureC)
}

func (s *SimulatorService) stepLevel() float64 {
	s.tank.LevelPercent -= EvaporationPerTick
	s.tank.LevelPercent += (s.rng.Float64()*2 - 1) * LevelNoise
	if s.tank.Pump {
		s.tank.LevelPercent += RefillPerTick
		if s.tank.LevelPercent >= s.tank.PumpTarget {
			s.tank.Pump = false
			s.log.Infow("pump_target_reached", "target", s.tank.PumpTarget)
		}
	}
	s.tank.LevelPercent = clamp(s.tank.LevelPercent, MinLevel, MaxLevel)
	return round2(s.tank.LevelPercent)
}

func (s *SimulatorService) apply(a models.Actuator, payload []byte) {
	var p models.ActuatorPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.log.Warnw("actuator_payload_ignored", "actuator", a, "err", err)
		return
	}
	on := p.On()

	s.mu.Lock()
	defer s.mu.Unlock()
	switch a {
	case models.ActuatorHeater:
		s.tank.Heater = on
	case models.ActuatorCooler:
		s.tank.Cooler = on
	case models.ActuatorPump:
		s.tank.Pump = on
		s.tank.PumpTarget = DefaultPumpTarget
		if p.Target != nil {
			s.tank.PumpTarget = *p.Target
		}
	case models.ActuatorFeeder:
		// the feeder has no effect on the model
		if on && p.Seconds != nil {
			s.log.Infow("feeder_on", "seconds", *p.Seconds)
		}
		return
	}
	s.log.Debugw("actuator_switched", "actuator", a, "status", p.Status)
}

func (s *SimulatorService) publish(topic string, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		s.log.Errorw("reading_marshal_failed", "topic", topic, "err", err)
		return
	}
	if err := s.bus.Publish(topic, payload); err != nil {
		s.log.Errorw("reading_publish_failed", "topic", topic, "err", err)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
