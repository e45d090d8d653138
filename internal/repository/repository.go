package repository

import (
	"context"
	"database/sql"
	"time"

	"aquarium_controller/internal/models"
)

// ReadingFilter selects readings in [From, To]; zero values disable a bound.
type ReadingFilter struct {
	From  time.Time
	To    time.Time
	Kind  string
	Limit int
}

// AlertFilter selects alerts in [From, To]; zero values disable a bound.
type AlertFilter struct {
	From  time.Time
	To    time.Time
	Level models.AlertLevel
	Limit int
}

type Operators interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.Operator, error)
}

type ReadingRepo interface {
	Append(ctx context.Context, r models.ReadingRecord) error
	List(ctx context.Context, f ReadingFilter) ([]models.ReadingRecord, error)
	Stats(ctx context.Context, from, to time.Time) ([]models.ReadingStats, error)
}

type AlertRepo interface {
	Append(ctx context.Context, a models.AlertRecord) error
	List(ctx context.Context, f AlertFilter) ([]models.AlertRecord, error)
}

type Repository struct {
	Readings  ReadingRepo
	Alerts    AlertRepo
	Operators Operators
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Readings:  NewReadingSQLite(db),
		Alerts:    NewAlertSQLite(db),
		Operators: NewOperatorRepository(db),
	}
}

// timeRange appends the bounds of [from, to] to a WHERE clause under construction.
func timeRange(column string, from, to time.Time, conds []string, args []any) ([]string, []any) {
	if !from.IsZero() {
		conds = append(conds, column+" >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, column+" <= ?")
		args = append(args, to.UTC())
	}
	return conds, args
}
