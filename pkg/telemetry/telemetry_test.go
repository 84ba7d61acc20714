package telemetry

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockHTTPClient captures HTTP requests for testing
type MockHTTPClient struct {
	*http.Client
	mu       sync.Mutex
	requests []*http.Request
	bodies   [][]byte
	response *http.Response
}

// NewMockHTTPClient creates a new mock HTTP client with a default success response
func NewMockHTTPClient() *MockHTTPClient {
	mock := &MockHTTPClient{
		response: &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader([]byte(`{"success": true}`))),
			Header:     make(http.Header),
		},
	}
	mock.Client = &http.Client{Transport: mock}
	return mock
}

// RoundTrip implements http.RoundTripper and captures the request
func (m *MockHTTPClient) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		m.bodies = append(m.bodies, body)
		req.Body = io.NopCloser(bytes.NewReader(body))
	} else {
		m.bodies = append(m.bodies, nil)
	}

	return m.response, nil
}

// GetRequests returns all captured requests
func (m *MockHTTPClient) GetRequests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request{}, m.requests...)
}

// GetBodies returns all captured request bodies
func (m *MockHTTPClient) GetBodies() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte{}, m.bodies...)
}

// GetRequestCount returns the number of HTTP requests made
func (m *MockHTTPClient) GetRequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestEmit_Disabled(t *testing.T) {
	mockHTTP := NewMockHTTPClient()
	client := newClient(testLogger(), false, false, "test-version", mockHTTP.Client)

	client.Emit(map[string]any{"event": "framework_stat"})

	// Give any stray goroutine a chance to run
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, mockHTTP.GetRequestCount())
}

func TestEmit_SendsRecordsEnvelope(t *testing.T) {
	mockHTTP := NewMockHTTPClient()
	client := newClient(testLogger(), true, false, "test-version", mockHTTP.Client)
	client.endpoint = "https://tracking.test/v1/track"
	client.apiKey = "test-key"

	client.Emit(map[string]any{"event": "framework_stat", "userId": "fw"})

	require.Eventually(t, func() bool {
		return mockHTTP.GetRequestCount() == 1
	}, time.Second, 5*time.Millisecond, "expected one HTTP request")

	req := mockHTTP.GetRequests()[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://tracking.test/v1/track", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "test-key", req.Header.Get("x-api-key"))
	assert.Equal(t, "serverless/test-version", req.Header.Get("User-Agent"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(mockHTTP.GetBodies()[0], &body))

	records, ok := body["records"].([]any)
	require.True(t, ok)
	require.Len(t, records, 1)

	record, ok := records[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "framework_stat", record["event"])
	assert.Equal(t, "fw", record["userId"])
}

func TestEmit_HTTPErrorDoesNotPanic(t *testing.T) {
	mockHTTP := NewMockHTTPClient()
	mockHTTP.response = &http.Response{
		StatusCode: http.StatusInternalServerError,
		Status:     "500 Internal Server Error",
		Body:       io.NopCloser(bytes.NewReader([]byte(`{"error": "boom"}`))),
		Header:     make(http.Header),
	}
	client := newClient(testLogger(), true, false, "test-version", mockHTTP.Client)
	client.endpoint = "https://tracking.test/v1/track"

	client.Emit(map[string]any{"event": "framework_stat"})

	require.Eventually(t, func() bool {
		return mockHTTP.GetRequestCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestGetTelemetryEnabled_DisabledInTests(t *testing.T) {
	// flag.Lookup("test.v") is always present under go test
	assert.False(t, GetTelemetryEnabled())
}

func TestGetTelemetryEnabledFromEnv(t *testing.T) {
	t.Setenv("SERVERLESS_TELEMETRY_DISABLED", "")
	assert.True(t, getTelemetryEnabledFromEnv())

	t.Setenv("SERVERLESS_TELEMETRY_DISABLED", "1")
	assert.False(t, getTelemetryEnabledFromEnv())
}
