package view

import (
	"log"
	"sync"
	"time"
)

// Manager is the in-memory session registry. Nothing here survives a
// restart; idle sessions are evicted so abandoned browsers do not pin
// their batches in memory forever.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	illustrator Illustrator
	idleTTL     time.Duration
	done        chan struct{}
	closeOnce   sync.Once
}

// NewManager creates a Manager and starts its eviction loop. idleTTL <= 0
// disables eviction.
func NewManager(ill Illustrator, idleTTL time.Duration) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		illustrator: ill,
		idleTTL:     idleTTL,
		done:        make(chan struct{}),
	}
	if idleTTL > 0 {
		go m.evictLoop()
	}
	return m
}

// Get returns the session with the given id, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Create registers and returns a fresh session.
func (m *Manager) Create() *Session {
	s := NewSession(m.illustrator)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops the eviction loop.
func (m *Manager) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}

func (m *Manager) evictLoop() {
	ticker := time.NewTicker(m.idleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictIdle(time.Now().Add(-m.idleTTL))
		}
	}
}

func (m *Manager) evictIdle(cutoff time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			delete(m.sessions, id)
			log.Printf("INFO: evicted idle session %s", id)
		}
	}
}
