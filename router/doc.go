// Package router maps classified intent labels to flow names through a
// mutable registry with a default fallback. The registry is an explicit
// instance constructed once at process start and injected into the
// orchestrator; there is no package-level global. Reads are safe for
// concurrent use and registration writes are synchronized.
package router
