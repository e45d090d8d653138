package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"aquarium_controller/internal/config"
	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/transport"
)

// Limits accepted from operators.
const (
	MinTargetC = 15.0
	MaxTargetC = 35.0
)

var (
	ErrInvalidTarget       = fmt.Errorf("invalid target: must be between %g and %g", MinTargetC, MaxTargetC)
	ErrInvalidFeedSeconds  = errors.New("invalid seconds: must be > 0")
	ErrInvalidRefillTarget = errors.New("invalid refill target: must be in (0, 100]")
)

type ControlsService struct {
	bus    transport.Bus
	topics config.Topics
	log    *logger.Logger
}

func NewControlsService(bus transport.Bus, topics config.Topics, log *logger.Logger) *ControlsService {
	return &ControlsService{bus: bus, topics: topics, log: log.Named("controls")}
}

// SetTarget publishes a new thermal set-point.
func (s *ControlsService) SetTarget(ctx context.Context, celsius float64) error {
	if math.IsNaN(celsius) || celsius < MinTargetC || celsius > MaxTargetC {
		return ErrInvalidTarget
	}
	return s.publish(ctx, s.topics.TargetCmd, targetBody{Target: celsius})
}

// Feed requests a feeding. A nil duration lets the controller use its maximum.
func (s *ControlsService) Feed(ctx context.Context, seconds *int) error {
	if seconds != nil && *seconds <= 0 {
		return ErrInvalidFeedSeconds
	}
	return s.publish(ctx, s.topics.FeedCmd, feedBody{Feed: true, Seconds: seconds})
}

// Refill starts a manual refill. A nil target uses the controller's default.
func (s *ControlsService) Refill(ctx context.Context, target *float64) error {
	if target != nil && (math.IsNaN(*target) || *target <= 0 || *target > 100) {
		return ErrInvalidRefillTarget
	}
	return s.publish(ctx, s.topics.RefillCmd, refillBody{Refill: true, Target: target})
}

func (s *ControlsService) publish(ctx context.Context, topic string, body any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode command: %w", err)
	}
	if err := s.bus.Publish(topic, payload); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	s.log.Infow("operator_command", "topic", topic, "payload", string(payload))
	return nil
}
