// Package session houses concrete implementations of core.SessionStore. The
// interface itself lives in core to centralize domain contracts; keeping only
// implementations here prevents higher level packages from depending on
// concrete storage.
//
// Add additional backends (Redis, Postgres, etc.) alongside the in-memory
// store without changing any calling code - only the wiring layer decides
// which implementation to instantiate.
package session
