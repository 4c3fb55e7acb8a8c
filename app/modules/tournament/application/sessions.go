package tournamentservice

import (
	"sync"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/app/shared/clock"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// Stage is the question a creation dialog is waiting on.
type Stage string

const (
	StageAwaitingStartDate Stage = "awaiting_start_date"
	StageAwaitingDays      Stage = "awaiting_days"
)

// DialogSession is one participant's in-progress tournament creation.
type DialogSession struct {
	ParticipantID sharedtypes.ParticipantID
	GroupID       sharedtypes.GroupID
	ChatID        string
	Stage         Stage
	StartDate     time.Time
	UpdatedAt     time.Time
}

// SessionStore keeps dialog sessions in memory, keyed by participant.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[sharedtypes.ParticipantID]*DialogSession
	ttl      time.Duration
	clock    clock.Clock
}

// NewSessionStore creates a store whose sessions expire after ttl of inactivity. A zero ttl
// keeps sessions until they are discarded.
func NewSessionStore(ttl time.Duration, c clock.Clock) *SessionStore {
	if c == nil {
		c = clock.RealClock{}
	}
	return &SessionStore{
		sessions: make(map[sharedtypes.ParticipantID]*DialogSession),
		ttl:      ttl,
		clock:    c,
	}
}

// Get returns a copy of the participant's live session.
func (m *SessionStore) Get(id sharedtypes.ParticipantID) (DialogSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok || m.expired(s) {
		return DialogSession{}, false
	}
	return *s, true
}

// Put stores the session, replacing any earlier one for the same participant.
func (m *SessionStore) Put(session DialogSession) {
	session.UpdatedAt = m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ParticipantID] = &session
	m.sweepLocked()
}

// Discard removes the participant's session and reports whether a live one existed.
func (m *SessionStore) Discard(id sharedtypes.ParticipantID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	delete(m.sessions, id)
	return !m.expired(s)
}

// Len returns the number of stored sessions, expired ones included.
func (m *SessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *SessionStore) expired(s *DialogSession) bool {
	return m.ttl > 0 && m.clock.Now().Sub(s.UpdatedAt) > m.ttl
}

func (m *SessionStore) sweepLocked() {
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
		}
	}
}
