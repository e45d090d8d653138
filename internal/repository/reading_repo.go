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

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

const insertReadingSQL = `INSERT INTO sensor_readings (id, recorded_at, kind, value) VALUES (?, ?, ?, ?)`

// Append stores one reading, filling in the ID and timestamp when missing.
func (r *ReadingSQLite) Append(ctx context.Context, rec models.ReadingRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	} else {
		rec.RecordedAt = rec.RecordedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		rec.ID,
		rec.RecordedAt,
		strings.ToUpper(strings.TrimSpace(rec.Kind)),
		rec.Value,
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// List returns matching readings, newest first.
func (r *ReadingSQLite) List(ctx context.Context, f ReadingFilter) ([]models.ReadingRecord, error) {
	conds, args := timeRange("recorded_at", f.From, f.To, nil, nil)
	if kind := strings.ToUpper(strings.TrimSpace(f.Kind)); kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, kind)
	}

	q := `SELECT id, recorded_at, kind, value FROM sensor_readings`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY recorded_at DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select readings: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReadingRecord, 0, 64)
	for rows.Next() {
		var rec models.ReadingRecord
		if err := rows.Scan(&rec.ID, &rec.RecordedAt, &rec.Kind, &rec.Value); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		rec.RecordedAt = rec.RecordedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats aggregates readings per kind. Kinds without samples are omitted.
func (r *ReadingSQLite) Stats(ctx context.Context, from, to time.Time) ([]models.ReadingStats, error) {
	conds, args := timeRange("recorded_at", from, to, nil, nil)

	q := `SELECT kind, COUNT(*), MIN(value), MAX(value), AVG(value) FROM sensor_readings`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " GROUP BY kind ORDER BY kind ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select reading stats: %w", err)
	}
	defer rows.Close()

	var out []models.ReadingStats
	for rows.Next() {
		var s models.ReadingStats
		if err := rows.Scan(&s.Kind, &s.Count, &s.Min, &s.Max, &s.Avg); err != nil {
			return nil, fmt.Errorf("scan reading stats: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
