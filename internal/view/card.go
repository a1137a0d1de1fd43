package view

import (
	"context"
	"time"

	"smartstudy/internal/models"
)

// ImageStatus tracks a card's illustration fetch.
type ImageStatus string

const (
	// ImageNone means no illustration exists and none is coming: either
	// the question never asked for one, or the fetch came back empty.
	ImageNone ImageStatus = "none"
	// ImagePending means the fetch task is still running.
	ImagePending ImageStatus = "pending"
	// ImageReady means the question's ImageURL is populated.
	ImageReady ImageStatus = "ready"
)

// illustrationTimeout bounds the detached fetch task. The original had no
// timeout at all; a detached goroutine with no deadline can leak forever,
// so the fetch gets one here.
const illustrationTimeout = 2 * time.Minute

// Card is the per-question presentation state: the question itself, the
// answer-reveal flag and the lifecycle of its illustration. Cards are
// independent of each other and of their parent view; the illustration
// task is spawned once at creation and never retried.
type Card struct {
	question models.Question
	revealed bool
	image    ImageStatus
}

func newCard(q models.Question) *Card {
	c := &Card{question: q, image: ImageNone}
	if q.NeedsImage && q.ImagePrompt != "" {
		c.image = ImagePending
	}
	return c
}

// needsIllustration reports whether the card's fetch task should run.
func (c *Card) needsIllustration() bool {
	return c.image == ImagePending
}

// fetchIllustration resolves the card's image. It runs on a detached
// context because the task outlives the HTTP request that created the
// batch. Callers must hold the owning view's lock when invoking complete.
func fetchIllustration(ill Illustrator, prompt string) string {
	ctx, cancel := context.WithTimeout(context.Background(), illustrationTimeout)
	defer cancel()
	return ill.Illustrate(ctx, prompt)
}

// completeIllustration records the fetch outcome. An empty URL degrades to
// "no illustration" with no error and no retry.
func (c *Card) completeIllustration(url string) {
	if url == "" {
		c.image = ImageNone
		return
	}
	c.question.ImageURL = url
	c.image = ImageReady
}

// toggleReveal flips the answer-reveal flag and returns the new value.
func (c *Card) toggleReveal() bool {
	c.revealed = !c.revealed
	return c.revealed
}

// CardSnapshot is the renderable state of one card.
type CardSnapshot struct {
	Question models.Question `json:"question"`
	Revealed bool            `json:"revealed"`
	Image    ImageStatus     `json:"image"`
}

func (c *Card) snapshot() CardSnapshot {
	return CardSnapshot{
		Question: c.question,
		Revealed: c.revealed,
		Image:    c.image,
	}
}
