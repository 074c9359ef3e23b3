// Package types holds the wire-level DTOs shared by the device-memory
// manager, the HTTP API, and the model registry.
package types

// Model describes a discoverable model file the daemon can preload.
type Model struct {
	// Stable identifier, derived from the filename.
	ID string `json:"id"`
	// Human-friendly name.
	Name string `json:"name"`
	// Absolute path to the weights file on disk.
	Path string `json:"path"`
	// File size in bytes; doubles as the residency footprint estimate.
	SizeBytes uint64 `json:"size_bytes"`
}

// ResidentStatus summarizes one resident resource for /status.
type ResidentStatus struct {
	// Name of the resource, when it reports one.
	Name string `json:"name"`
	// Resource footprint in bytes.
	SizeBytes uint64 `json:"size_bytes"`
	// Number of in-flight computations holding the resource.
	Refs int `json:"refs"`
	// Last time a load touched the resource (unix seconds).
	LastUsed int64 `json:"last_used_unix"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Currently resident resources.
	Resident []ResidentStatus `json:"resident"`
	// Device budget in bytes (0 = unlimited).
	BudgetBytes uint64 `json:"budget_bytes"`
	// Reserved margin in bytes kept free under the budget.
	MarginBytes uint64 `json:"margin_bytes"`
	// Bytes accounted to resident resources.
	UsedBytes uint64 `json:"used_bytes"`
	// Total load requests admitted.
	LoadsTotal uint64 `json:"loads_total"`
	// Total load requests rejected for memory.
	ExhaustedTotal uint64 `json:"exhausted_total"`
	// Total evictions performed to make room.
	EvictionsTotal uint64 `json:"evictions_total"`
	// Server time in unix seconds.
	ServerTimeUnix int64 `json:"server_time_unix"`
	// Uptime of the manager in seconds.
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// ModelsResponse wraps the registry listing returned by GET /models.
type ModelsResponse struct {
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
