// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. Domain helpers record the recurring events of a turn:
// classification, generation and the turn itself.
package logging
