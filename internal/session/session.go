// Package session holds the listing produced by the latest URL submission.
// Every submission takes a ticket; only the newest ticket may store its
// result, so a slow response never replaces a newer listing.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// Ticket identifies one submission
type Ticket struct {
	Generation uint64
}

// Session is the state of one user working on one listing at a time
type Session struct {
	id         string
	mu         sync.RWMutex
	generation uint64
	listing    *domain.Listing
	updatedAt  time.Time
	logger     *utils.Logger
}

// Options contains options for creating a Session
type Options struct {
	ID     string
	Logger *utils.Logger
}

// New creates an empty session
func New(opts Options) *Session {
	s := &Session{id: opts.ID, updatedAt: time.Now()}
	if opts.Logger != nil {
		s.logger = opts.Logger.WithSession(opts.ID)
	}
	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Begin starts a submission. The previous listing is cleared immediately.
func (s *Session) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.listing = nil
	s.updatedAt = time.Now()

	return Ticket{Generation: s.generation}
}

// Commit stores listing if t is still the latest submission
func (s *Session) Commit(t Ticket, listing *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Generation != s.generation {
		if s.logger != nil {
			s.logger.Debug().
				Uint64("ticket", t.Generation).
				Uint64("current", s.generation).
				Msg("Discarding stale listing")
		}
		return fmt.Errorf("%w: generation %d, current %d", domain.ErrStaleSubmission, t.Generation, s.generation)
	}

	s.listing = listing
	s.updatedAt = time.Now()
	return nil
}

// Current reports whether t is the latest submission
func (s *Session) Current(t Ticket) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.Generation == s.generation
}

// Listing returns the committed listing, or nil
func (s *Session) Listing() *domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listing
}

// UpdatedAt returns the time of the last submission or commit
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
