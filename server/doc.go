// Package server exposes the orchestration engine over HTTP. It owns the
// transport concerns the core deliberately leaves out: request/response
// schemas, session persistence around each turn, per-client rate limiting
// and the health/metrics endpoints.
package server
