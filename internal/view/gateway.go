package view

import (
	"context"
	"errors"

	"smartstudy/internal/models"
)

// Gateway is the view-side contract with the generative service.
// Implementations may call Gemini or return canned results (for tests).
type Gateway interface {
	// GenerateQuestions returns one generation batch. A parse failure is
	// not an error; it surfaces as an empty batch.
	GenerateQuestions(ctx context.Context, topic string, difficulty models.Difficulty, types []models.QuestionType, count int) ([]models.Question, error)
	// GradeHomework grades one photographed sheet. base64Image is the raw
	// base64 payload with any data-URI prefix already stripped.
	GradeHomework(ctx context.Context, base64Image string) (models.GradingResult, error)
}

// Illustrator resolves a question's image prompt into a displayable URL.
// The empty string means "no illustration"; the operation never fails.
type Illustrator interface {
	Illustrate(ctx context.Context, imagePrompt string) string
}

// Validation and sequencing errors. Handlers map these to HTTP statuses;
// anything else coming out of a view is a service failure.
var (
	ErrEmptyTopic      = errors.New("topic must not be empty")
	ErrNoTypes         = errors.New("at least one question type must be selected")
	ErrBusy            = errors.New("a request is already in flight")
	ErrNoImage         = errors.New("no homework image loaded")
	ErrAlreadyGraded   = errors.New("homework already graded; remove the image to start over")
	ErrUnknownQuestion = errors.New("unknown question id")
	ErrUnknownMode     = errors.New("unknown view mode")
	ErrBadDifficulty   = errors.New("unknown difficulty")
	ErrBadType         = errors.New("unknown question type")
	ErrBadImage        = errors.New("image payload is not a data URI")
)
