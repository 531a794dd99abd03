package model

import "time"

// Shared defaults used by the dashboard, the CLI commands and the mock API.
const (
	// DefaultStreamInterval drives the high-frequency sources (log and port streams).
	DefaultStreamInterval = 500 * time.Millisecond
	// DefaultInventoryInterval drives slower-changing collections (IP inventory, port lists).
	DefaultInventoryInterval = 5 * time.Second
	// DefaultTailWindow caps the roster and network-log streams.
	DefaultTailWindow = 100

	DefaultRequestTimeout = 10 * time.Second
	DefaultLLMURL         = "http://localhost:11434"
	DefaultLLMModel       = "syncflow:v1"
	DefaultMockAddr       = "127.0.0.1:8080"
)

// AssigneeIDs are the employee ids a task can be assigned to.
var AssigneeIDs = []string{
	"123456789",
	"234567890",
	"345678901",
	"456789012",
	"567890123",
	"678901234",
	"789012345",
	"890123456",
	"901234567",
	"012345678",
}
