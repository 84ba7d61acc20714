package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Emit hands a payload to the analytics sink. Delivery runs on its own
// goroutine with no join point; failures are logged at debug level and never
// surface to the caller.
func (tc *Client) Emit(payload any) {
	if !tc.enabled {
		tc.logger.Debug("Skipping emission - telemetry disabled")
		return
	}

	if tc.debugMode {
		tc.printPayload(payload)
	}

	go func() {
		if err := tc.performHTTPRequest(payload); err != nil {
			tc.logger.Debug("Failed to send usage payload", "error", err)
		} else {
			tc.logger.Debug("Successfully sent usage payload")
		}
	}()
}

// printPayload prints the payload in debug mode
func (tc *Client) printPayload(payload any) {
	output, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		tc.logger.Error("Failed to marshal usage payload", "error", err)
		return
	}
	tc.logger.Info("payload", "payload", string(output))
}

// performHTTPRequest handles the actual HTTP request to the analytics API
func (tc *Client) performHTTPRequest(payload any) error {
	// The analytics API ingests batches; wrap the payload in a records array
	requestBody := map[string]any{
		"records": []any{payload},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request to JSON: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, tc.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("serverless/%s", tc.version))
	if tc.apiKey != "" && tc.header != "" {
		req.Header.Set(tc.header, tc.apiKey)
	}

	tc.logger.Debug("HTTP request details",
		"method", req.Method,
		"url", req.URL.String(),
		"payload_size", len(jsonData),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := make([]byte, 1024) // Read up to 1KB of error response
		n, _ := resp.Body.Read(body)

		tc.logger.Debug("HTTP error response details",
			"status_code", resp.StatusCode,
			"status_text", resp.Status,
			"response_body", string(body[:n]),
		)

		return fmt.Errorf("HTTP request failed with status %d: %s", resp.StatusCode, string(body[:n]))
	}

	return nil
}
