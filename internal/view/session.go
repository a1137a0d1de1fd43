package view

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mode selects which of the two views the shell is showing.
type Mode string

const (
	ModeGenerator Mode = "generator"
	ModeGrader    Mode = "grader"
)

// Session is one browser session's entire state: the shell's mode toggle
// and the two views. The views never talk to each other; a generation
// batch and a grading report belong to mutually exclusive view sessions.
type Session struct {
	ID string

	Questions *QuestionView
	Homework  *HomeworkView

	mu       sync.Mutex
	mode     Mode
	lastSeen time.Time
}

// NewSession creates a session showing the generator view.
func NewSession(ill Illustrator) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Questions: NewQuestionView(ill),
		Homework:  NewHomeworkView(),
		mode:      ModeGenerator,
		lastSeen:  time.Now(),
	}
}

// SetMode switches the active view.
func (s *Session) SetMode(m Mode) error {
	if m != ModeGenerator && m != ModeGrader {
		return fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	return nil
}

// Mode returns the active view mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Touch records activity for idle eviction.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// Snapshot is the renderable state of the whole session.
type Snapshot struct {
	Mode      Mode             `json:"mode"`
	Questions QuestionSnapshot `json:"questions"`
	Homework  HomeworkSnapshot `json:"homework"`
}

// Snapshot returns a copy of the session's current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Mode:      s.Mode(),
		Questions: s.Questions.Snapshot(),
		Homework:  s.Homework.Snapshot(),
	}
}
