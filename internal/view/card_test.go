package view_test

import (
	"context"
	"testing"

	"smartstudy/internal/models"
	"smartstudy/internal/view"
)

func illustratedBatch() []models.Question {
	return []models.Question{
		{
			ID:          "q1",
			Type:        models.TypeChoice,
			Content:     "Which triangle is right-angled?",
			Answer:      "B",
			Explanation: "...",
			NeedsImage:  true,
			ImagePrompt: "a right triangle with squares on each side",
		},
		{
			ID:          "q2",
			Type:        models.TypeFillIn,
			Content:     "a^2 + b^2 = ____",
			Answer:      "c^2",
			Explanation: "...",
			NeedsImage:  false,
		},
	}
}

func TestNoIllustrationCallWithoutNeedsImage(t *testing.T) {
	ill := &fakeIllustrator{url: "https://img.example/x.png"}
	gw := &fakeGateway{questions: []models.Question{illustratedBatch()[1]}}
	v := view.NewQuestionView(ill)
	v.SetTopic("pythagoras")

	if err := v.Generate(context.Background(), gw, 1); err != nil {
		t.Fatalf("generate: %v", err)
	}
	v.WaitForIllustrations()

	if ill.callCount() != 0 {
		t.Errorf("illustrator invoked %d times for a question without needsImage", ill.callCount())
	}
	if got := v.Snapshot().Cards[0].Image; got != view.ImageNone {
		t.Errorf("expected image status none, got %q", got)
	}
}

func TestExactlyOneIllustrationCallPerCard(t *testing.T) {
	ill := &fakeIllustrator{url: "https://img.example/x.png"}
	gw := &fakeGateway{questions: illustratedBatch()}
	v := view.NewQuestionView(ill)
	v.SetTopic("pythagoras")

	if err := v.Generate(context.Background(), gw, 2); err != nil {
		t.Fatalf("generate: %v", err)
	}
	v.WaitForIllustrations()

	// Flipping the reveal toggle must never trigger another fetch.
	for i := 0; i < 5; i++ {
		if _, err := v.ToggleReveal("q1"); err != nil {
			t.Fatalf("toggle reveal: %v", err)
		}
	}

	if ill.callCount() != 1 {
		t.Errorf("expected exactly one illustration call, got %d", ill.callCount())
	}

	snap := v.Snapshot()
	if snap.Cards[0].Image != view.ImageReady {
		t.Errorf("expected image ready, got %q", snap.Cards[0].Image)
	}
	if snap.Cards[0].Question.ImageURL != "https://img.example/x.png" {
		t.Errorf("unexpected image url %q", snap.Cards[0].Question.ImageURL)
	}
	if snap.Cards[1].Image != view.ImageNone {
		t.Errorf("card without needsImage should stay at none, got %q", snap.Cards[1].Image)
	}
}

func TestAbsentIllustrationDegradesSilently(t *testing.T) {
	ill := &fakeIllustrator{url: ""}
	gw := &fakeGateway{questions: illustratedBatch()[:1]}
	v := view.NewQuestionView(ill)
	v.SetTopic("pythagoras")

	if err := v.Generate(context.Background(), gw, 1); err != nil {
		t.Fatalf("generate: %v", err)
	}
	v.WaitForIllustrations()

	snap := v.Snapshot()
	if snap.Cards[0].Image != view.ImageNone {
		t.Errorf("expected none after absent illustration, got %q", snap.Cards[0].Image)
	}
	if snap.Cards[0].Question.ImageURL != "" {
		t.Errorf("image url should stay empty, got %q", snap.Cards[0].Question.ImageURL)
	}
	if snap.Warning != "" {
		t.Errorf("absent illustration must not surface a warning, got %q", snap.Warning)
	}
}

func TestNilIllustratorResolvesPendingCards(t *testing.T) {
	gw := &fakeGateway{questions: illustratedBatch()[:1]}
	v := view.NewQuestionView(nil)
	v.SetTopic("pythagoras")

	if err := v.Generate(context.Background(), gw, 1); err != nil {
		t.Fatalf("generate: %v", err)
	}
	v.WaitForIllustrations()

	if got := v.Snapshot().Cards[0].Image; got != view.ImageNone {
		t.Errorf("expected none with nil illustrator, got %q", got)
	}
}
