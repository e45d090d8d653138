package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"aquarium_controller/internal/models"

	"github.com/google/uuid"
)

type AlertSQLite struct {
	db *sql.DB
}

func NewAlertSQLite(db *sql.DB) *AlertSQLite { return &AlertSQLite{db: db} }

const insertAlertSQL = `INSERT INTO alerts (id, raised_at, level, message) VALUES (?, ?, ?, ?)`

func (r *AlertSQLite) Append(ctx context.Context, a models.AlertRecord) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.RaisedAt.IsZero() {
		a.RaisedAt = time.Now().UTC()
	} else {
		a.RaisedAt = a.RaisedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertAlertSQL,
		a.ID,
		a.RaisedAt,
		strings.ToUpper(strings.TrimSpace(string(a.Level))),
		a.Message,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// List returns matching alerts, newest first.
func (r *AlertSQLite) List(ctx context.Context, f AlertFilter) ([]models.AlertRecord, error) {
	conds, args := timeRange("raised_at", f.From, f.To, nil, nil)
	if lvl := strings.ToUpper(strings.TrimSpace(string(f.Level))); lvl != "" {
		conds = append(conds, "level = ?")
		args = append(args, lvl)
	}

	q := `SELECT id, raised_at, level, message FROM alerts`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY raised_at DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select alerts: %w", err)
	}
	defer rows.Close()

	out := make([]models.AlertRecord, 0, 32)
	for rows.Next() {
		var a models.AlertRecord
		if err := rows.Scan(&a.ID, &a.RaisedAt, &a.Level, &a.Message); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.RaisedAt = a.RaisedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
