package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// ErrSessionNotFound indicates an unknown session identifier
var ErrSessionNotFound = errors.New("session not found")

// Registry tracks the sessions of the HTTP API
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *utils.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *utils.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create registers a new session under a random UUID
func (r *Registry) Create() *Session {
	s := New(Options{ID: uuid.NewString(), Logger: r.logger})

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	return s
}

// Get returns the session with id
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes the session with id
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune removes sessions idle for longer than maxIdle and returns how many
// were removed
func (r *Registry) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.UpdatedAt().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
