package view_test

import (
	"errors"
	"testing"

	"smartstudy/internal/view"
)

func TestSessionDefaultsToGenerator(t *testing.T) {
	s := view.NewSession(nil)
	if s.Mode() != view.ModeGenerator {
		t.Errorf("expected generator mode, got %q", s.Mode())
	}
	if s.ID == "" {
		t.Error("expected a session id")
	}
}

func TestSessionModeToggle(t *testing.T) {
	s := view.NewSession(nil)
	if err := s.SetMode(view.ModeGrader); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if s.Mode() != view.ModeGrader {
		t.Errorf("expected grader mode, got %q", s.Mode())
	}
	if err := s.SetMode("dashboard"); !errors.Is(err, view.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestSessionSnapshotCarriesBothViews(t *testing.T) {
	s := view.NewSession(nil)
	snap := s.Snapshot()
	if snap.Mode != view.ModeGenerator {
		t.Errorf("unexpected mode %q", snap.Mode)
	}
	if snap.Questions.State != view.QuestionIdle {
		t.Errorf("unexpected generator state %q", snap.Questions.State)
	}
	if snap.Homework.State != view.HomeworkEmpty {
		t.Errorf("unexpected grader state %q", snap.Homework.State)
	}
}

func TestManagerCreateAndGet(t *testing.T) {
	m := view.NewManager(nil, 0)
	defer m.Close()

	s := m.Create()
	got, ok := m.Get(s.ID)
	if !ok || got != s {
		t.Fatal("created session not retrievable")
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("unknown id should not resolve")
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 session, got %d", m.Len())
	}
}
