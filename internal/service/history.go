package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"aquarium_controller/internal/models"
	"aquarium_controller/internal/repository"
)

const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 1000
)

type HistoryService struct {
	readings repository.ReadingRepo
	alerts   repository.AlertRepo
}

func NewHistoryService(readings repository.ReadingRepo, alerts repository.AlertRepo) *HistoryService {
	return &HistoryService{readings: readings, alerts: alerts}
}

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrInvalidLimit     = errors.New("invalid limit: must be >= 0")
	ErrInvalidKind      = errors.New("invalid kind: must be TEMPERATURE or WATER_LEVEL")
	ErrInvalidLevel     = errors.New("invalid level: must be INFO, WARNING or CRITICAL")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeFilterValue(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

func normalizeRange(from, to time.Time) (time.Time, time.Time, error) {
	from, to = normalizeToUTC(from), normalizeToUTC(to)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return from, to, nil
}

func normalizeLimit(n int) (int, error) {
	switch {
	case n < 0:
		return 0, ErrInvalidLimit
	case n == 0:
		return DefaultHistoryLimit, nil
	case n > MaxHistoryLimit:
		return MaxHistoryLimit, nil
	}
	return n, nil
}

func (s *HistoryService) ListReadings(ctx context.Context, q ReadingQuery) ([]models.ReadingRecord, error) {
	from, to, err := normalizeRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	limit, err := normalizeLimit(q.Limit)
	if err != nil {
		return nil, err
	}
	kind := normalizeFilterValue(q.Kind)
	if kind != "" && kind != models.KindTemperature && kind != models.KindWaterLevel {
		return nil, ErrInvalidKind
	}
	return s.readings.List(ctx, repository.ReadingFilter{From: from, To: to, Kind: kind, Limit: limit})
}

func (s *HistoryService) ListAlerts(ctx context.Context, q AlertQuery) ([]models.AlertRecord, error) {
	from, to, err := normalizeRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	limit, err := normalizeLimit(q.Limit)
	if err != nil {
		return nil, err
	}
	level := models.AlertLevel(normalizeFilterValue(string(q.Level)))
	if level != "" && !level.Valid() {
		return nil, ErrInvalidLevel
	}
	return s.alerts.List(ctx, repository.AlertFilter{From: from, To: to, Level: level, Limit: limit})
}

// Stats summarizes readings per kind over [from, to].
func (s *HistoryService) Stats(ctx context.Context, from, to time.Time) ([]models.ReadingStats, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.readings.Stats(ctx, from, to)
}
