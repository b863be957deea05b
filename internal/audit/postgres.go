package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresLogger stores each event in recognitions and one row per region in
// recognition_faces.
type PostgresLogger struct {
	db              DB
	storeEmbeddings bool
	logger          *slog.Logger
}

func NewPostgresLogger(db DB, storeEmbeddings bool, logger *slog.Logger) *PostgresLogger {
	return &PostgresLogger{
		db:              db,
		storeEmbeddings: storeEmbeddings,
		logger:          logger.With("component", "audit_store"),
	}
}

const insertRecognition = `
	INSERT INTO recognitions (
		id, created_at, event_type, request_id, transport, peer, backend,
		success, error_code, error, face_count, image_bytes, latency_ms, metadata
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

const insertFace = `
	INSERT INTO recognition_faces (recognition_id, position, x, y, width, height, embedding)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (l *PostgresLogger) Log(ctx context.Context, event Event) error {
	event.Prepare()

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin audit tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertRecognition,
		event.ID,
		event.Timestamp,
		string(event.EventType),
		event.RequestID,
		string(event.Transport),
		event.Peer,
		event.Backend,
		event.Success,
		event.ErrorCode,
		event.Error,
		len(event.Regions),
		event.ImageBytes,
		event.LatencyMS,
		event.Metadata,
	)
	if err != nil {
		return fmt.Errorf("insert recognition: %w", err)
	}

	for i, r := range event.Regions {
		var embedding *pgvector.Vector
		if l.storeEmbeddings && i < len(event.Identities) {
			embedding = toVector(event.Identities[i].Embedding)
		}

		if _, err := tx.Exec(ctx, insertFace, event.ID, i, r.X, r.Y, r.Width, r.Height, embedding); err != nil {
			return fmt.Errorf("insert recognition face %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit audit tx: %w", err)
	}

	l.logger.DebugContext(ctx, "audit event stored",
		slog.String("event_id", event.ID.String()),
		slog.Int("faces", len(event.Regions)),
	)
	return nil
}

func toVector(embedding []float64) *pgvector.Vector {
	if len(embedding) == 0 {
		return nil
	}
	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}
	vec := pgvector.NewVector(floats)
	return &vec
}
