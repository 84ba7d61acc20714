// Package telemetry delivers usage-statistics payloads to the analytics
// sink. Emission is fire-and-forget: callers hand a payload off and never
// wait for, or learn about, delivery.
package telemetry

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// telemetryLogger wraps slog.Logger to automatically prepend "[Telemetry]" to all messages
type telemetryLogger struct {
	logger *slog.Logger
}

func newTelemetryLogger(logger *slog.Logger) *telemetryLogger {
	return &telemetryLogger{logger: logger}
}

func (tl *telemetryLogger) Debug(msg string, args ...any) {
	tl.logger.Debug("[Telemetry] "+msg, args...)
}

func (tl *telemetryLogger) Info(msg string, args ...any) {
	tl.logger.Info("[Telemetry] "+msg, args...)
}

func (tl *telemetryLogger) Error(msg string, args ...any) {
	tl.logger.Error("[Telemetry] "+msg, args...)
}

func (tl *telemetryLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return tl.logger.Enabled(ctx, level)
}

// HTTPClient interface for making HTTP requests (allows mocking in tests)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends payloads to the analytics endpoint.
type Client struct {
	logger     *telemetryLogger
	enabled    bool
	debugMode  bool // Print payloads instead of only sending
	httpClient HTTPClient
	endpoint   string
	apiKey     string
	header     string
	version    string
}

func newClient(logger *slog.Logger, enabled, debugMode bool, version string, customHTTPClient ...*http.Client) *Client {
	telemetryLogger := newTelemetryLogger(logger)

	if !enabled {
		return &Client{
			logger:  telemetryLogger,
			enabled: false,
			version: version,
		}
	}

	header := "x-api-key"

	endpoint := "https://tracking.serverlessteam.com/v1/track"
	apiKey := "XKjQA62lKBiJM4O5hvW2C1FqK0wzi7pf0RhGc24N"

	// Use staging configuration in debug mode
	if debugMode {
		endpoint = "https://tracking-stage.serverlessteam.com/v1/track"
		apiKey = "h8glmNQdpY0ni2jq0cLu1Rd0A7WpS2PlDJbQcOjW"
	}

	if v := os.Getenv("SERVERLESS_TELEMETRY_ENDPOINT"); v != "" {
		endpoint = v
	}
	if v := os.Getenv("SERVERLESS_TELEMETRY_API_KEY"); v != "" {
		apiKey = v
	}

	var httpClient *http.Client
	if len(customHTTPClient) > 0 && customHTTPClient[0] != nil {
		httpClient = customHTTPClient[0]
	} else {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	client := &Client{
		logger:     telemetryLogger,
		enabled:    enabled,
		debugMode:  debugMode,
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		header:     header,
		version:    version,
	}

	telemetryLogger.Debug("Enabled:", "enabled", enabled)

	return client
}
