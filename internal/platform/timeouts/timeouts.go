// Package timeouts defines shared timeout constants for the board process.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryShutdown limits how long pending spans may take to flush.
const TelemetryShutdown = 5 * time.Second

// SessionSweep is how often idle board sessions are evicted.
const SessionSweep = time.Minute

// LiveWrite caps one websocket frame write.
const LiveWrite = 10 * time.Second
