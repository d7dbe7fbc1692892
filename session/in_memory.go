package session

import (
	"sync"

	"github.com/y3s-labs/povo/core"
)

// InMemoryStore is a volatile SessionStore keeping sessions and message
// histories in process-local maps. It is safe for concurrent access and best
// suited for tests or ephemeral demo servers. Every value crossing the store
// boundary is cloned so callers can never mutate stored state through an
// alias.
type InMemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]core.Session
	histories   map[string][]core.Message
	maxMessages int
}

// Options configure the in-memory store.
type Options struct {
	// MaxMessages bounds the per-session history; 0 means unbounded. When the
	// bound is exceeded the oldest messages are dropped.
	MaxMessages int
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{
		sessions:    make(map[string]core.Session),
		histories:   make(map[string][]core.Message),
		maxMessages: opts.MaxMessages,
	}
}

// Load returns a copy of the stored session, or a fresh one (New=true) if the
// id has never been seen.
func (s *InMemoryStore) Load(id string) (core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return sess.Clone(), nil
	}
	return core.NewSession(id), nil
}

// Save stores a snapshot of the session and marks it as no longer new.
func (s *InMemoryStore) Save(sess core.Session) error {
	if sess.ID == "" {
		return core.ErrMissingSessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := sess.Clone()
	stored.New = false
	s.sessions[sess.ID] = stored
	return nil
}

// History returns a copy of the ordered message history for a session.
func (s *InMemoryStore) History(id string) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.histories[id]
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// AppendHistory appends messages to a session's history in order, trimming
// the oldest entries when a bound is configured.
func (s *InMemoryStore) AppendHistory(id string, messages ...core.Message) error {
	if id == "" {
		return core.ErrMissingSessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[id] = append(s.histories[id], messages...)
	s.trimLocked(id)
	return nil
}

func (s *InMemoryStore) trimLocked(id string) {
	if s.maxMessages <= 0 {
		return
	}
	msgs := s.histories[id]
	if len(msgs) <= s.maxMessages {
		return
	}
	trimmed := make([]core.Message, s.maxMessages)
	copy(trimmed, msgs[len(msgs)-s.maxMessages:])
	s.histories[id] = trimmed
}
