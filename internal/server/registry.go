// Package server exposes live trial sessions over a JSON HTTP API.
package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/courtcraft/mocktrial/internal/trial"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("server: session not found")

// Registry owns live sessions keyed by id. Separate classrooms get separate
// sessions and share nothing. The core assumes one writer per session, so
// every access goes through With, which holds that session's lock.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *trial.Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*sessionEntry)}
}

// Create starts a fresh session sized to roundCount and returns its id.
func (r *Registry) Create(roundCount int) string {
	s := trial.NewSession()
	if roundCount > 0 {
		// Resize only rejects counts below one.
		_ = s.Rounds.Resize(roundCount)
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &sessionEntry{session: s}
	r.mu.Unlock()
	return id
}

// With runs fn with exclusive access to the session.
func (r *Registry) With(id string, fn func(*trial.Session) error) error {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// Delete tears a session down.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
