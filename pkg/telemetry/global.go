package telemetry

import (
	"flag"
	"log/slog"
	"os"
	"sync"
)

// GetTelemetryEnabled reports whether emission is allowed at the process
// level. The persisted per-user tracking preference is checked separately by
// the stats assembler; this gate covers tests and the environment
// kill-switch.
func GetTelemetryEnabled() bool {
	// Disable telemetry when running in tests to prevent HTTP calls
	if flag.Lookup("test.v") != nil {
		return false
	}
	return getTelemetryEnabledFromEnv()
}

// getTelemetryEnabledFromEnv checks only the environment variable,
// without the test detection bypass. This allows testing the env var logic.
func getTelemetryEnabledFromEnv() bool {
	return os.Getenv("SERVERLESS_TELEMETRY_DISABLED") == ""
}

// Global variables for the shared emit client
var (
	globalClient          *Client
	globalClientOnce      sync.Once
	globalClientVersion   = "unknown"
	globalClientDebugMode = false
)

// GetGlobalClient returns the shared emit client, initializing it on first
// use.
func GetGlobalClient() *Client {
	EnsureGlobalClientInitialized()
	return globalClient
}

// SetGlobalVersion sets the version for automatic client initialization.
// This should be called by the root package before the first emission.
func SetGlobalVersion(version string) {
	if globalClient != nil {
		globalClient.version = version
	}
	globalClientVersion = version
}

// SetGlobalDebugMode passes the --debug flag state to the client.
func SetGlobalDebugMode(debug bool) {
	globalClientDebugMode = debug
}

// EnsureGlobalClientInitialized initializes the shared client exactly once.
func EnsureGlobalClientInitialized() {
	globalClientOnce.Do(func() {
		logger := slog.Default()
		enabled := GetTelemetryEnabled()

		globalClient = newClient(logger, enabled, globalClientDebugMode, globalClientVersion)

		if globalClientDebugMode {
			newTelemetryLogger(logger).Info("Auto-initialized telemetry", "enabled", enabled)
		}
	})
}
