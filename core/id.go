package core

import "github.com/google/uuid"

// NewID returns a random identifier suitable for messages and turn tracking.
func NewID() string { return uuid.NewString() }
