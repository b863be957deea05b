// Package docs describes the HTTP routes for Swagger UI.
package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"0.1.0"`
	Backend string `json:"backend" example:"dlib"`
}

type IdentityResponse struct {
	Identity []float64 `json:"identity" example:"0.013,-0.092,0.041"`
}

type RecognizeResponse struct {
	ID         string             `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Identities []IdentityResponse `json:"identities"`
	LatencyMs  int64              `json:"latency_ms" example:"38"`
}

type StatsResponse struct {
	Since        string  `json:"since" example:"2026-01-01T00:00:00Z"`
	Requests     int64   `json:"requests" example:"1200"`
	Failed       int64   `json:"failed" example:"14"`
	Faces        int64   `json:"faces" example:"3100"`
	AvgLatencyMS float64 `json:"avg_latency_ms" example:"41.5"`
	P99LatencyMS float64 `json:"p99_latency_ms" example:"180"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"DECODE_ERROR"`
	Message string `json:"message" example:"Image data could not be decoded"`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "faceid",
		Version:     "v1.0.0",
		Description: "Face embedding extraction. The streaming API is gRPC (faceid.FaceRecognition); these routes cover health checks and single-request recognition.",
		Host:        "localhost:3000",
	})

	endpoints := []*endpoint.EndPoint{
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness check"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Process is up"),
			}),
		),
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness check"),
			endpoint.WithDescription("Pings the audit database when one is configured."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{Status: "ready"}, "200", "Ready to serve"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(HealthResponse{Status: "unavailable"}, "503", "Database unreachable"),
			}),
		),
		endpoint.New(
			endpoint.POST,
			"/v1/recognize",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Compute one identity embedding per face box"),
			endpoint.WithDescription("Multipart form: `image` is the encoded image file, `faces` is a JSON array of {x,y,w,h} boxes. Identities come back in box order."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RecognizeResponse{}, "200", "Faces recognised"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Missing image or malformed faces"),
				response.New(ErrorResponse{Code: "IMAGE_TOO_LARGE", Message: "Image exceeds the maximum allowed size"}, "413", "Payload Too Large"),
				response.New(ErrorResponse{Code: "DECODE_ERROR", Message: "Image data could not be decoded"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "REGION_ERROR", Message: "Face region is empty or outside the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "SERVER_OVERLOADED", Message: "Server is at capacity, please retry later"}, "503", "Service Unavailable"),
				response.New(ErrorResponse{Code: "INFERENCE_ERROR", Message: "Face inference failed"}, "500", "Internal Server Error"),
			}),
		),
		endpoint.New(
			endpoint.GET,
			"/v1/stats",
			endpoint.WithTags("Audit"),
			endpoint.WithSummary("Recognition summary over a trailing window"),
			endpoint.WithDescription("Only available when the audit database is configured."),
			endpoint.WithParams(
				parameter.StrParam("window", parameter.Query, parameter.WithDescription("Trailing window as a Go duration (default: 24h, max: 2160h)")),
			),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(StatsResponse{}, "200", "Summary computed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Invalid window"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)
	return sw
}
