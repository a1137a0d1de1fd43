package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"smartstudy/internal/models"
)

// QuestionState is the generator view's phase.
type QuestionState string

const (
	// QuestionIdle means no topic has been entered yet.
	QuestionIdle QuestionState = "idle"
	// QuestionConfiguring means the form is being edited.
	QuestionConfiguring QuestionState = "configuring"
	// QuestionGenerating means a generation call is in flight.
	QuestionGenerating QuestionState = "generating"
	// QuestionResults means a batch is rendered (possibly empty).
	QuestionResults QuestionState = "results"
)

// maxConcurrentIllustrations bounds the per-batch illustration fan-out so a
// large batch cannot open one connection per card at once.
const maxConcurrentIllustrations = 3

// QuestionView owns the generation form and the rendered batch. All state
// is guarded by mu; the generation call itself runs outside the lock so a
// slow service never blocks reads, and a second submission while one is in
// flight is rejected with ErrBusy.
type QuestionView struct {
	mu          sync.Mutex
	state       QuestionState
	topic       string
	difficulty  models.Difficulty
	types       []models.QuestionType
	cards       []*Card
	warning     string
	illustrator Illustrator

	// illustrations tracks the batch's detached fetch tasks so tests and
	// shutdown can wait for them.
	illustrations sync.WaitGroup
}

// NewQuestionView creates a generator view with the original defaults:
// medium difficulty, multiple choice preselected.
func NewQuestionView(ill Illustrator) *QuestionView {
	return &QuestionView{
		state:       QuestionIdle,
		difficulty:  models.DifficultyMedium,
		types:       []models.QuestionType{models.TypeChoice},
		illustrator: ill,
	}
}

// SetTopic updates the topic field. A non-empty topic moves the view out
// of Idle; editing never touches an existing result batch.
func (v *QuestionView) SetTopic(topic string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topic = topic
	v.warning = ""
	if v.state == QuestionIdle && strings.TrimSpace(topic) != "" {
		v.state = QuestionConfiguring
	}
}

// SetDifficulty updates the difficulty selector.
func (v *QuestionView) SetDifficulty(d models.Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %q", ErrBadDifficulty, d)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.difficulty = d
	return nil
}

// ToggleType adds t to the selected-types set if absent and removes it if
// present. Toggling twice restores the prior selection.
func (v *QuestionView) ToggleType(t models.QuestionType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrBadType, t)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, existing := range v.types {
		if existing == t {
			v.types = append(v.types[:i], v.types[i+1:]...)
			return nil
		}
	}
	v.types = append(v.types, t)
	return nil
}

// Generate validates the form, invokes the gateway and replaces the batch.
// Validation failures happen before any gateway call and leave the view
// untouched. A gateway failure reverts the view to Configuring with no
// partial results. On success each question that asks for an illustration
// gets its own detached fetch task.
func (v *QuestionView) Generate(ctx context.Context, gw Gateway, count int) error {
	v.mu.Lock()
	if v.state == QuestionGenerating {
		v.mu.Unlock()
		return ErrBusy
	}
	topic := strings.TrimSpace(v.topic)
	if topic == "" {
		v.warning = ErrEmptyTopic.Error()
		v.mu.Unlock()
		return ErrEmptyTopic
	}
	if len(v.types) == 0 {
		v.warning = ErrNoTypes.Error()
		v.mu.Unlock()
		return ErrNoTypes
	}
	difficulty := v.difficulty
	types := append([]models.QuestionType(nil), v.types...)
	v.state = QuestionGenerating
	v.warning = ""
	v.mu.Unlock()

	batch, err := gw.GenerateQuestions(ctx, topic, difficulty, types, count)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = QuestionConfiguring
		v.warning = "generation failed, please try again"
		return fmt.Errorf("generate questions: %w", err)
	}

	cards := make([]*Card, 0, len(batch))
	for _, q := range batch {
		cards = append(cards, newCard(q))
	}
	v.cards = cards
	v.state = QuestionResults
	v.spawnIllustrationsLocked()
	return nil
}

// spawnIllustrationsLocked starts one fetch task per card that wants an
// illustration, bounded by a shared semaphore. Caller holds v.mu.
func (v *QuestionView) spawnIllustrationsLocked() {
	if v.illustrator == nil {
		for _, c := range v.cards {
			if c.needsIllustration() {
				c.completeIllustration("")
			}
		}
		return
	}
	sem := make(chan struct{}, maxConcurrentIllustrations)
	for _, c := range v.cards {
		if !c.needsIllustration() {
			continue
		}
		v.illustrations.Add(1)
		go func(c *Card, prompt string) {
			defer v.illustrations.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			url := fetchIllustration(v.illustrator, prompt)

			v.mu.Lock()
			defer v.mu.Unlock()
			c.completeIllustration(url)
		}(c, c.question.ImagePrompt)
	}
}

// WaitForIllustrations blocks until all of the current batch's fetch tasks
// have finished.
func (v *QuestionView) WaitForIllustrations() {
	v.illustrations.Wait()
}

// Clear discards the batch and returns to Configuring.
func (v *QuestionView) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cards = nil
	v.warning = ""
	if v.state == QuestionResults {
		v.state = QuestionConfiguring
	}
}

// ToggleReveal flips the answer-reveal flag on the card with the given
// question id and returns the new value.
func (v *QuestionView) ToggleReveal(questionID string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.cards {
		if c.question.ID == questionID {
			return c.toggleReveal(), nil
		}
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
}

// QuestionSnapshot is the renderable state of the generator view.
type QuestionSnapshot struct {
	State      QuestionState         `json:"state"`
	Topic      string                `json:"topic"`
	Difficulty models.Difficulty     `json:"difficulty"`
	Types      []models.QuestionType `json:"types"`
	Cards      []CardSnapshot        `json:"cards"`
	Warning    string                `json:"warning,omitempty"`
}

// Snapshot returns a copy of the view's current state.
func (v *QuestionView) Snapshot() QuestionSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	cards := make([]CardSnapshot, len(v.cards))
	for i, c := range v.cards {
		cards[i] = c.snapshot()
	}
	return QuestionSnapshot{
		State:      v.state,
		Topic:      v.topic,
		Difficulty: v.difficulty,
		Types:      append([]models.QuestionType(nil), v.types...),
		Cards:      cards,
		Warning:    v.warning,
	}
}
