package service

import (
	"context"
	"errors"

	"aquarium_controller/internal/models"
)

// StatusSource is implemented by the control core.
type StatusSource interface {
	Snapshot() models.ControlState
}

var errNoStatusSource = errors.New("controller state is not available")

type MonitoringService struct {
	source StatusSource
}

func NewMonitoringService(source StatusSource) *MonitoringService {
	return &MonitoringService{source: source}
}

// GetStatus returns a copy of the live controller state.
func (s *MonitoringService) GetStatus(ctx context.Context) (models.Status, error) {
	if err := ctx.Err(); err != nil {
		return models.Status{}, err
	}
	if s.source == nil {
		return models.Status{}, errNoStatusSource
	}
	st := models.StatusOf(s.source.Snapshot())
	st.UpdatedAt = normalizeToUTC(st.UpdatedAt)
	return st, nil
}
