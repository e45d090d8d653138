package service

import (
	"context"
	"math/rand"
	"time"

	"aquarium_controller/internal/config"
	"aquarium_controller/internal/logger"
	"aquarium_controller/internal/models"
	"aquarium_controller/internal/repository"
	"aquarium_controller/internal/transport"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Controls issues operator commands onto the bus. The control core consumes
// them like any other inbound message.
type Controls interface {
	SetTarget(ctx context.Context, celsius float64) error
	Feed(ctx context.Context, seconds *int) error
	Refill(ctx context.Context, target *float64) error
}

// Monitoring exposes the live controller state.
type Monitoring interface {
	GetStatus(ctx context.Context) (models.Status, error)
}

// History exposes recorded readings and alerts.
type History interface {
	ListReadings(ctx context.Context, q ReadingQuery) ([]models.ReadingRecord, error)
	ListAlerts(ctx context.Context, q AlertQuery) ([]models.AlertRecord, error)
	Stats(ctx context.Context, from, to time.Time) ([]models.ReadingStats, error)
}

// Recorder persists bus traffic for History.
type Recorder interface {
	Attach(bus transport.Bus) error
}

// Simulator stands in for the tank hardware. Stop it by cancelling ctx.
type Simulator interface {
	Attach() error
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Controls
	Monitoring
	History
	Recorder
	Simulator
	Authorization
}

// Deps are the non-repository collaborators of the services.
type Deps struct {
	Bus    transport.Bus
	Status StatusSource
	Topics config.Topics
	Auth   config.AuthConfig
	Log    *logger.Logger
	Rand   *rand.Rand
}

func NewService(repos *repository.Repository, d Deps) *Service {
	rng := d.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		Controls:      NewControlsService(d.Bus, d.Topics, d.Log),
		Monitoring:    NewMonitoringService(d.Status),
		History:       NewHistoryService(repos.Readings, repos.Alerts),
		Recorder:      NewRecorderService(repos.Readings, repos.Alerts, d.Topics, d.Log),
		Simulator:     NewSimulatorService(d.Bus, d.Topics, d.Log, rng),
		Authorization: NewAuthService(repos.Operators, d.Auth.SigningKey, d.Auth.TokenTTL),
	}
}
