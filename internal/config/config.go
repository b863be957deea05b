package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	GRPCPort    int    `envconfig:"GRPC_PORT" default:"50051"`
	HTTPPort    int    `envconfig:"HTTP_PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Request handling
	Workers           int           `envconfig:"WORKERS" default:"10"`
	QueueSize         int           `envconfig:"QUEUE_SIZE" default:"20"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	MaxImageBytes     int           `envconfig:"MAX_IMAGE_BYTES" default:"10485760"`
	MaxImagePixels    int           `envconfig:"MAX_IMAGE_PIXELS" default:"25000000"`
	RegionParallelism int           `envconfig:"REGION_PARALLELISM" default:"1"`

	// Vision backend
	VisionBackend   string `envconfig:"VISION_BACKEND" default:"dlib"`
	LandmarkBackend string `envconfig:"LANDMARK_BACKEND"`

	LandmarkModelPath    string `envconfig:"LANDMARK_MODEL_PATH" default:"models/shape_predictor_5_face_landmarks.dat"`
	RecognitionModelPath string `envconfig:"RECOGNITION_MODEL_PATH" default:"models/dlib_face_recognition_resnet_model_v1.dat"`
	DetectorModelPath    string `envconfig:"DETECTOR_MODEL_PATH" default:"models/mmod_human_face_detector.dat"`

	OpenCVDetectorModelPath   string `envconfig:"OPENCV_DETECTOR_MODEL_PATH" default:"models/face_detection_yunet_2023mar.onnx"`
	OpenCVRecognizerModelPath string `envconfig:"OPENCV_RECOGNIZER_MODEL_PATH" default:"models/face_recognition_sface_2021dec.onnx"`

	DeepFaceURL   string `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceModel string `envconfig:"DEEPFACE_MODEL" default:"Facenet512"`

	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Audit (optional)
	DatabaseURL          string `envconfig:"DATABASE_URL"`
	AuditStoreEmbeddings bool   `envconfig:"AUDIT_STORE_EMBEDDINGS" default:"false"`
	// AuditRetention prunes older audit rows; 0 keeps them forever.
	AuditRetention time.Duration `envconfig:"AUDIT_RETENTION" default:"0"`
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("WORKERS must be positive, got %d", c.Workers)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("QUEUE_SIZE must not be negative, got %d", c.QueueSize)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", c.MaxImageBytes)
	}
	if c.MaxImagePixels < 0 {
		return fmt.Errorf("MAX_IMAGE_PIXELS must not be negative, got %d", c.MaxImagePixels)
	}
	if c.RegionParallelism <= 0 {
		return fmt.Errorf("REGION_PARALLELISM must be positive, got %d", c.RegionParallelism)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative, got %s", c.RequestTimeout)
	}
	if c.AuditRetention < 0 {
		return fmt.Errorf("AUDIT_RETENTION must not be negative, got %s", c.AuditRetention)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuditEnabled reports whether recognitions are persisted to Postgres.
func (c *Config) AuditEnabled() bool {
	return c.DatabaseURL != ""
}
