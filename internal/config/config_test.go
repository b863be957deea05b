package config

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name: "loads with explicit vars",
			envVars: map[string]string{
				"GRPC_PORT":       "6000",
				"ENV":             "production",
				"WORKERS":         "4",
				"REQUEST_TIMEOUT": "5s",
				"VISION_BACKEND":  "fake",
				"DATABASE_URL":    "postgres://localhost/test",
			},
			wantErr: false,
			check: func(c *Config) bool {
				return c.GRPCPort == 6000 &&
					c.Environment == "production" &&
					c.Workers == 4 &&
					c.RequestTimeout == 5*time.Second &&
					c.VisionBackend == "fake" &&
					c.AuditEnabled()
			},
		},
		{
			name:    "uses defaults when optional vars missing",
			envVars: map[string]string{},
			wantErr: false,
			check: func(c *Config) bool {
				return c.GRPCPort == 50051 &&
					c.HTTPPort == 3000 &&
					c.Environment == "development" &&
					c.Workers == 10 &&
					c.MaxImageBytes == 10*1024*1024 &&
					c.MaxImagePixels == 25_000_000 &&
					c.RegionParallelism == 1 &&
					c.VisionBackend == "dlib" &&
					c.LandmarkBackend == "" &&
					c.LandmarkModelPath == "models/shape_predictor_5_face_landmarks.dat" &&
					c.RecognitionModelPath == "models/dlib_face_recognition_resnet_model_v1.dat" &&
					!c.AuditEnabled()
			},
		},
		{
			name: "fails on zero workers",
			envVars: map[string]string{
				"WORKERS": "0",
			},
			wantErr: true,
		},
		{
			name: "fails on negative queue size",
			envVars: map[string]string{
				"QUEUE_SIZE": "-1",
			},
			wantErr: true,
		},
		{
			name: "parses audit retention",
			envVars: map[string]string{
				"AUDIT_RETENTION": "720h",
			},
			check: func(c *Config) bool {
				return c.AuditRetention == 30*24*time.Hour
			},
		},
		{
			name: "fails on negative audit retention",
			envVars: map[string]string{
				"AUDIT_RETENTION": "-1h",
			},
			wantErr: true,
		},
		{
			name: "fails on negative pixel limit",
			envVars: map[string]string{
				"MAX_IMAGE_PIXELS": "-1",
			},
			wantErr: true,
		},
		{
			name: "zero pixel limit disables the cap",
			envVars: map[string]string{
				"MAX_IMAGE_PIXELS": "0",
			},
			check: func(c *Config) bool {
				return c.MaxImagePixels == 0
			},
		},
		{
			name: "fails on malformed duration",
			envVars: map[string]string{
				"REQUEST_TIMEOUT": "soon",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Load() config check failed, got: %+v", cfg)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"development", "development", true},
		{"production", "production", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Environment: tt.env}
			if got := c.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"production", "production", true},
		{"development", "development", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Environment: tt.env}
			if got := c.IsProduction(); got != tt.want {
				t.Errorf("IsProduction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("production", &buf)

	logger.Debug("hidden")
	logger.Info("visible", "port", 50051)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "visible" || entry["service"] != "faceid" {
		t.Errorf("unexpected entry: %v", entry)
	}
}
