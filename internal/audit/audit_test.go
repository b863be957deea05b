package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

func TestSlogLogger_Log(t *testing.T) {
	tests := []struct {
		name          string
		event         Event
		wantEventType string
		wantSuccess   bool
		wantHasError  bool
	}{
		{
			name: "recognition with two faces",
			event: Event{
				EventType: EventFaceRecognised,
				RequestID: "req-1",
				Transport: TransportGRPC,
				Backend:   "fake",
				Success:   true,
				Regions:   []domain.Region{{X: 1, Y: 1, Width: 10, Height: 10}, {X: 20, Y: 1, Width: 10, Height: 10}},
			},
			wantEventType: string(EventFaceRecognised),
			wantSuccess:   true,
		},
		{
			name: "failed recognition",
			event: Event{
				EventType: EventRecognitionFailed,
				Transport: TransportHTTP,
				Backend:   "dlib",
				Success:   false,
				ErrorCode: "DECODE_ERROR",
				Error:     "Image data could not be decoded",
			},
			wantEventType: string(EventRecognitionFailed),
			wantSuccess:   false,
			wantHasError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

			require.NoError(t, logger.Log(context.Background(), tt.event))

			var logEntry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

			assert.Equal(t, "audit_event", logEntry["msg"])
			assert.Equal(t, "audit", logEntry["component"])
			assert.Equal(t, tt.wantEventType, logEntry["event_type"])
			assert.Equal(t, tt.wantSuccess, logEntry["success"])
			assert.NotEmpty(t, logEntry["event_id"])

			eventData, ok := logEntry["event_data"].(string)
			require.True(t, ok)
			assert.Equal(t, tt.wantHasError, strings.Contains(eventData, `"error"`))
		})
	}
}

func TestSlogLogger_NeverLogsEmbeddings(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := logger.Log(context.Background(), Event{
		EventType:  EventFaceRecognised,
		Success:    true,
		Identities: []domain.Identity{{Embedding: []float64{0.123456789}}},
	})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "0.123456789")
}

func TestEvent_Prepare(t *testing.T) {
	var e Event
	e.Prepare()
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.WithinDuration(t, time.Now().UTC(), e.Timestamp, time.Second)

	fixed := Event{ID: uuid.New(), Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	before := fixed
	fixed.Prepare()
	assert.Equal(t, before, fixed)
}

type recordingLogger struct {
	events []Event
	err    error
}

func (r *recordingLogger) Log(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestMultiLogger(t *testing.T) {
	first := &recordingLogger{}
	failing := &recordingLogger{err: errors.New("db down")}
	last := &recordingLogger{}

	err := MultiLogger{first, failing, last}.Log(context.Background(), Event{EventType: EventFaceRecognised})

	assert.ErrorContains(t, err, "db down")
	require.Len(t, first.events, 1)
	require.Len(t, last.events, 1)
	assert.Equal(t, first.events[0].ID, last.events[0].ID)
	assert.NotEqual(t, uuid.Nil, first.events[0].ID)
}

func TestNoOpLogger(t *testing.T) {
	logger := &NoOpLogger{}
	assert.NoError(t, logger.Log(context.Background(), Event{}))
}

func TestRequestContext(t *testing.T) {
	_, ok := RequestFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithRequest(context.Background(), RequestInfo{ID: "abc", Transport: TransportGRPC, Peer: "10.0.0.1:5000"})
	info, ok := RequestFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", info.ID)
	assert.Equal(t, TransportGRPC, info.Transport)
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keep bool
	}{
		{name: "caller id kept", in: "trace-123", keep: true},
		{name: "id at the column limit kept", in: strings.Repeat("x", MaxRequestIDLength), keep: true},
		{name: "empty id replaced", in: "", keep: false},
		{name: "oversized id replaced", in: strings.Repeat("x", MaxRequestIDLength+1), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequestID(tt.in)
			if tt.keep {
				assert.Equal(t, tt.in, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}
