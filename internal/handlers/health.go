package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// Pinger is anything whose connectivity can be checked.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

// HealthCheck calls f.
func (f PingerFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

// HealthHandler handles health check requests.
type HealthHandler struct {
	db    Pinger
	cache Pinger
	stage string
}

// NewHealthHandler creates a new health handler. Either dependency may be nil.
func NewHealthHandler(db, cache Pinger, stage string) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, stage: stage}
}

// HealthResponse is the response structure for health checks.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Stage     string `json:"stage"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
}

// Check builds the health report.
func (h *HealthHandler) Check(ctx context.Context) HealthResponse {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "compatibility-engine",
		Version:   getEnvOrDefault("SERVICE_VERSION", "1.0.0"),
		Stage:     h.stage,
		Database:  "not configured",
		Cache:     "disabled",
	}

	// The database is required; the cache only degrades performance.
	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			response.Database = "disconnected"
			response.Status = "degraded"
		} else {
			response.Database = "connected"
		}
	} else {
		response.Status = "degraded"
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(ctx); err != nil {
			response.Cache = "disconnected"
		} else {
			response.Cache = "connected"
		}
	}

	return response
}

// Handle processes health check requests.
func (h *HealthHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	response := h.Check(ctx)

	statusCode := http.StatusOK
	if response.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	body, _ := json.Marshal(response)

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    corsHeaders(),
		Body:       string(body),
	}, nil
}

// getEnvOrDefault returns environment variable or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
