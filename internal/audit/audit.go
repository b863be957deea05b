package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

// EventType defines the type of auditable event
type EventType string

const (
	EventFaceRecognised    EventType = "FACE_RECOGNISED"
	EventRecognitionFailed EventType = "RECOGNITION_FAILED"
)

// Transport names the surface a request arrived on.
type Transport string

const (
	TransportGRPC Transport = "grpc"
	TransportHTTP Transport = "http"
)

// Event is one recognition request, successful or not.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	EventType  EventType         `json:"event_type"`
	RequestID  string            `json:"request_id,omitempty"`
	Transport  Transport         `json:"transport,omitempty"`
	Peer       string            `json:"peer,omitempty"`
	Backend    string            `json:"backend"`
	Success    bool              `json:"success"`
	ErrorCode  string            `json:"error_code,omitempty"`
	Error      string            `json:"error,omitempty"`
	Regions    []domain.Region   `json:"regions"`
	ImageBytes int               `json:"image_bytes"`
	LatencyMS  int64             `json:"latency_ms"`
	Metadata   map[string]string `json:"metadata,omitempty"`

	// Identities are never logged; only stores that opt in persist them.
	Identities []domain.Identity `json:"-"`
}

// Logger defines the interface for audit logging
type Logger interface {
	Log(ctx context.Context, event Event) error
}

// Prepare fills the ID and timestamp when they are unset.
func (e *Event) Prepare() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}

// SlogLogger implements Logger using slog
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{
		logger: logger.With("component", "audit"),
	}
}

func (l *SlogLogger) Log(ctx context.Context, event Event) error {
	event.Prepare()

	eventJSON, err := json.Marshal(event)
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to marshal audit event",
			slog.String("error", err.Error()),
			slog.String("event_type", string(event.EventType)),
		)
		return err
	}

	l.logger.InfoContext(ctx, "audit_event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.EventType)),
		slog.String("request_id", event.RequestID),
		slog.String("backend", event.Backend),
		slog.Bool("success", event.Success),
		slog.Int("faces", len(event.Regions)),
		slog.String("event_data", string(eventJSON)),
	)

	return nil
}

// NoOpLogger is a logger that does nothing (for testing or when audit is disabled)
type NoOpLogger struct{}

func (l *NoOpLogger) Log(_ context.Context, _ Event) error {
	return nil
}

// MultiLogger fans an event out to every logger and joins their errors.
type MultiLogger []Logger

func (m MultiLogger) Log(ctx context.Context, event Event) error {
	event.Prepare()

	var errs []error
	for _, l := range m {
		if err := l.Log(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type requestKey struct{}

// MaxRequestIDLength matches the recognitions.request_id column.
const MaxRequestIDLength = 128

// RequestID keeps a caller-supplied id when it fits the audit store and
// mints a new one otherwise.
func RequestID(id string) string {
	if id == "" || len(id) > MaxRequestIDLength {
		return uuid.NewString()
	}
	return id
}

// RequestInfo travels in the context from the transport layer to the audit
// event.
type RequestInfo struct {
	ID        string
	Transport Transport
	Peer      string
}

func WithRequest(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestKey{}, info)
}

func RequestFromContext(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestKey{}).(RequestInfo)
	return info, ok
}
