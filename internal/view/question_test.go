package view_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"smartstudy/internal/models"
	"smartstudy/internal/view"
)

type fakeGateway struct {
	mu sync.Mutex

	generateCalls int
	questions     []models.Question
	genErr        error

	gradeCalls  int
	gotPayload  string
	gradeResult models.GradingResult
	gradeErr    error

	// entered/block coordinate in-flight tests.
	entered chan struct{}
	block   chan struct{}
}

func (f *fakeGateway) GenerateQuestions(ctx context.Context, topic string, difficulty models.Difficulty, types []models.QuestionType, count int) ([]models.Question, error) {
	f.mu.Lock()
	f.generateCalls++
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.questions, nil
}

func (f *fakeGateway) GradeHomework(ctx context.Context, base64Image string) (models.GradingResult, error) {
	f.mu.Lock()
	f.gradeCalls++
	f.gotPayload = base64Image
	f.mu.Unlock()
	if f.gradeErr != nil {
		return models.GradingResult{}, f.gradeErr
	}
	return f.gradeResult, nil
}

func (f *fakeGateway) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generateCalls
}

type fakeIllustrator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	url     string
}

func (f *fakeIllustrator) Illustrate(ctx context.Context, prompt string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.url
}

func (f *fakeIllustrator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func choiceBatch(n int) []models.Question {
	batch := make([]models.Question, n)
	for i := range batch {
		batch[i] = models.Question{
			ID:          string(rune('a' + i)),
			Type:        models.TypeChoice,
			Content:     "question",
			Options:     []string{"A", "B", "C", "D"},
			Answer:      "A",
			Explanation: "because",
		}
	}
	return batch
}

func TestGenerateRejectsEmptyTopic(t *testing.T) {
	gw := &fakeGateway{questions: choiceBatch(3)}

	for _, topic := range []string{"", "   ", "\t\n"} {
		v := view.NewQuestionView(nil)
		v.SetTopic(topic)

		err := v.Generate(context.Background(), gw, 3)
		if !errors.Is(err, view.ErrEmptyTopic) {
			t.Errorf("topic %q: expected ErrEmptyTopic, got %v", topic, err)
		}
	}
	if gw.calls() != 0 {
		t.Errorf("gateway was invoked %d times for invalid submissions", gw.calls())
	}
}

func TestGenerateRejectsEmptyTypeSet(t *testing.T) {
	gw := &fakeGateway{questions: choiceBatch(3)}
	v := view.NewQuestionView(nil)
	v.SetTopic("Pythagorean theorem")
	// Choice is preselected; toggle it off to empty the set.
	if err := v.ToggleType(models.TypeChoice); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := v.Generate(context.Background(), gw, 3); !errors.Is(err, view.ErrNoTypes) {
		t.Fatalf("expected ErrNoTypes, got %v", err)
	}
	if gw.calls() != 0 {
		t.Errorf("gateway was invoked despite empty type set")
	}
}

func TestGenerateRendersReturnedBatch(t *testing.T) {
	gw := &fakeGateway{questions: choiceBatch(3)}
	v := view.NewQuestionView(nil)
	v.SetTopic("Pythagorean theorem")

	if err := v.Generate(context.Background(), gw, 3); err != nil {
		t.Fatalf("generate: %v", err)
	}

	snap := v.Snapshot()
	if snap.State != view.QuestionResults {
		t.Errorf("expected state %q, got %q", view.QuestionResults, snap.State)
	}
	if len(snap.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(snap.Cards))
	}
	for i, card := range snap.Cards {
		if card.Question.Type != models.TypeChoice {
			t.Errorf("card %d: expected type choice, got %q", i, card.Question.Type)
		}
		if card.Revealed {
			t.Errorf("card %d: answer revealed on fresh batch", i)
		}
	}
}

func TestGenerateEmptyBatchStillReachesResults(t *testing.T) {
	gw := &fakeGateway{questions: []models.Question{}}
	v := view.NewQuestionView(nil)
	v.SetTopic("obscure topic")

	if err := v.Generate(context.Background(), gw, 3); err != nil {
		t.Fatalf("generate: %v", err)
	}
	snap := v.Snapshot()
	if snap.State != view.QuestionResults {
		t.Errorf("expected Results with zero cards, got state %q", snap.State)
	}
	if len(snap.Cards) != 0 {
		t.Errorf("expected no cards, got %d", len(snap.Cards))
	}
}

func TestGenerateFailureRevertsToConfiguring(t *testing.T) {
	gw := &fakeGateway{genErr: errors.New("boom")}
	v := view.NewQuestionView(nil)
	v.SetTopic("fractions")

	if err := v.Generate(context.Background(), gw, 3); err == nil {
		t.Fatal("expected an error")
	}
	snap := v.Snapshot()
	if snap.State != view.QuestionConfiguring {
		t.Errorf("expected state configuring, got %q", snap.State)
	}
	if len(snap.Cards) != 0 {
		t.Errorf("partial results retained after failure: %d cards", len(snap.Cards))
	}
	if snap.Warning == "" {
		t.Error("expected a user-visible warning")
	}
}

func TestGenerateRejectsConcurrentSubmission(t *testing.T) {
	gw := &fakeGateway{
		questions: choiceBatch(1),
		entered:   make(chan struct{}),
		block:     make(chan struct{}),
	}
	v := view.NewQuestionView(nil)
	v.SetTopic("photosynthesis")

	done := make(chan error, 1)
	go func() {
		done <- v.Generate(context.Background(), gw, 3)
	}()
	<-gw.entered

	if err := v.Generate(context.Background(), gw, 3); !errors.Is(err, view.ErrBusy) {
		t.Errorf("expected ErrBusy for second submission, got %v", err)
	}

	close(gw.block)
	if err := <-done; err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if gw.calls() != 1 {
		t.Errorf("expected exactly one gateway call, got %d", gw.calls())
	}
}

func TestToggleTypeIsInvolution(t *testing.T) {
	v := view.NewQuestionView(nil)
	before := v.Snapshot().Types

	if err := v.ToggleType(models.TypeFillIn); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := v.ToggleType(models.TypeFillIn); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	after := v.Snapshot().Types
	if len(before) != len(after) {
		t.Fatalf("selection changed after double toggle: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("selection changed after double toggle: %v -> %v", before, after)
		}
	}
}

func TestToggleTypeRejectsUnknownType(t *testing.T) {
	v := view.NewQuestionView(nil)
	if err := v.ToggleType("essay"); !errors.Is(err, view.ErrBadType) {
		t.Errorf("expected ErrBadType, got %v", err)
	}
}

func TestClearDiscardsBatch(t *testing.T) {
	gw := &fakeGateway{questions: choiceBatch(2)}
	v := view.NewQuestionView(nil)
	v.SetTopic("algebra")
	if err := v.Generate(context.Background(), gw, 2); err != nil {
		t.Fatalf("generate: %v", err)
	}

	v.Clear()

	snap := v.Snapshot()
	if snap.State != view.QuestionConfiguring {
		t.Errorf("expected configuring after clear, got %q", snap.State)
	}
	if len(snap.Cards) != 0 {
		t.Errorf("cards retained after clear: %d", len(snap.Cards))
	}
}

func TestSetTopicLeavesIdleOnce(t *testing.T) {
	v := view.NewQuestionView(nil)
	if got := v.Snapshot().State; got != view.QuestionIdle {
		t.Fatalf("fresh view should be idle, got %q", got)
	}
	v.SetTopic("   ")
	if got := v.Snapshot().State; got != view.QuestionIdle {
		t.Errorf("whitespace topic should not leave idle, got %q", got)
	}
	v.SetTopic("geometry")
	if got := v.Snapshot().State; got != view.QuestionConfiguring {
		t.Errorf("expected configuring after topic entry, got %q", got)
	}
}

func TestToggleRevealUnknownQuestion(t *testing.T) {
	v := view.NewQuestionView(nil)
	if _, err := v.ToggleReveal("nope"); !errors.Is(err, view.ErrUnknownQuestion) {
		t.Errorf("expected ErrUnknownQuestion, got %v", err)
	}
}
