// Package metrics summarises and prunes the recognition audit tables.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Summary aggregates recognitions since a point in time.
type Summary struct {
	Since        time.Time `json:"since"`
	Requests     int64     `json:"requests"`
	Failed       int64     `json:"failed"`
	Faces        int64     `json:"faces"`
	AvgLatencyMS float64   `json:"avg_latency_ms"`
	P99LatencyMS float64   `json:"p99_latency_ms"`
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Summary(ctx context.Context, since time.Time) (*Summary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT success),
			COALESCE(SUM(face_count), 0),
			COALESCE(AVG(latency_ms), 0),
			COALESCE(PERCENTILE_CONT(0.99) WITHIN GROUP (ORDER BY latency_ms), 0)
		FROM recognitions
		WHERE created_at >= $1
	`

	s := &Summary{Since: since}
	err := r.db.QueryRow(ctx, query, since).Scan(
		&s.Requests,
		&s.Failed,
		&s.Faces,
		&s.AvgLatencyMS,
		&s.P99LatencyMS,
	)
	if err != nil {
		return nil, fmt.Errorf("summarise recognitions: %w", err)
	}

	return s, nil
}

// DeleteOlderThan removes recognitions (and their faces, by cascade) older
// than the given age.
func (r *Repository) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	query := `
		DELETE FROM recognitions
		WHERE created_at < $1
	`

	result, err := r.db.Exec(ctx, query, time.Now().Add(-age))
	if err != nil {
		return 0, fmt.Errorf("delete old recognitions: %w", err)
	}

	return result.RowsAffected(), nil
}
