package core

// SessionStore persists sessions and their message histories between turns.
// The core never requires any particular wire format, only that round-tripping
// a session through the store preserves key/value fidelity.
//
// Implementations must return defensive copies so callers cannot mutate
// stored state through aliases.
type SessionStore interface {
	// Load returns the stored session, or a fresh one (New=true) if the id
	// has never been seen.
	Load(id string) (Session, error)

	// Save stores a snapshot of the session. Saving marks the session as no
	// longer new.
	Save(session Session) error

	// History returns the ordered message history for a session, empty for
	// an unknown id.
	History(id string) ([]Message, error)

	// AppendHistory appends messages to a session's history in order.
	AppendHistory(id string, messages ...Message) error
}
