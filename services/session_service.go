package services

import (
	"sync"
	"time"

	"nfl-rankings-go/logging"
	"nfl-rankings-go/models"
)

// SessionService keeps each visitor's in-flight simulation. Sessions are
// purely transient: they live in process memory for the session TTL and are
// never persisted, so a restart (like a reset) starts everyone clean.
// Each session carries its own mutex; overlapping requests for the same
// cookie (a double-submitted form, a second tab) serialize their PickSet
// access through WithPickSet.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*simulationSession
	ttl      time.Duration
	logger   *logging.Logger
}

type simulationSession struct {
	mu       sync.Mutex
	pickSet  *models.PickSet
	lastSeen time.Time
}

// NewSessionService creates a session service with the given idle TTL
func NewSessionService(ttl time.Duration) *SessionService {
	return &SessionService{
		sessions: make(map[string]*simulationSession),
		ttl:      ttl,
		logger:   logging.WithPrefix("SessionService"),
	}
}

// WithPickSet runs fn against the session's PickSet under the session's
// lock, creating an empty session for new ids. Every read and mutation of a
// PickSet goes through here; the pointer must not escape fn.
func (s *SessionService) WithPickSet(sessionID string, fn func(*models.PickSet) error) error {
	session := s.session(sessionID)
	session.mu.Lock()
	defer session.mu.Unlock()
	return fn(session.pickSet)
}

// Reset replaces the session's PickSet wholesale. Idempotent; a no-op for
// sessions that were never seen.
func (s *SessionService) Reset(sessionID string) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if ok {
		session.lastSeen = time.Now()
	}
	s.mu.Unlock()

	if ok {
		session.mu.Lock()
		session.pickSet.Reset()
		session.mu.Unlock()
	}
}

// Count returns the number of live sessions
func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// session returns the live session for the id, creating one when absent.
// Expired sessions are pruned opportunistically on access.
func (s *SessionService) session(sessionID string) *simulationSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	session, ok := s.sessions[sessionID]
	if !ok {
		session = &simulationSession{pickSet: models.NewPickSet()}
		s.sessions[sessionID] = session
		s.logger.Debugf("Created simulation session %s", sessionID)
	}
	session.lastSeen = time.Now()
	return session
}

func (s *SessionService) pruneLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	for id, session := range s.sessions {
		if session.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			s.logger.Debugf("Expired simulation session %s", id)
		}
	}
}
