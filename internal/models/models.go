package models

// Difficulty selects how hard generated questions should be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuestionType names the kind of exercise a question is.
type QuestionType string

const (
	TypeFillIn     QuestionType = "fill_in"
	TypeChoice     QuestionType = "choice"
	TypeTrueFalse  QuestionType = "true_false"
	TypeSubjective QuestionType = "subjective"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeFillIn, TypeChoice, TypeTrueFalse, TypeSubjective:
		return true
	}
	return false
}

// Label returns a human-readable description of the type for prompt text.
func (t QuestionType) Label() string {
	switch t {
	case TypeFillIn:
		return "fill in the blank"
	case TypeChoice:
		return "multiple choice"
	case TypeTrueFalse:
		return "true or false"
	case TypeSubjective:
		return "open-ended"
	}
	return string(t)
}

// QuestionTypeValues lists all question type values, in declaration order.
// Used to constrain the enum in the generation response schema.
func QuestionTypeValues() []string {
	return []string{
		string(TypeFillIn),
		string(TypeChoice),
		string(TypeTrueFalse),
		string(TypeSubjective),
	}
}

// Question is one generated exercise. The ID is opaque and only unique
// within a single generation batch. ImageURL is not part of the generation
// response; it is resolved lazily once the illustration has been fetched.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Content     string       `json:"content"`
	Options     []string     `json:"options,omitempty"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation"`
	NeedsImage  bool         `json:"needsImage"`
	ImagePrompt string       `json:"imagePrompt,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
}

// GradingDetail is the finding for a single question as perceived from the
// submitted photo. QuestionNumber is whatever the model read off the sheet
// and is not guaranteed to be unique or sequential.
type GradingDetail struct {
	QuestionNumber int    `json:"questionNumber"`
	IsCorrect      bool   `json:"isCorrect"`
	Feedback       string `json:"feedback"`
	Correction     string `json:"correction,omitempty"`
}

// GradingResult is the outcome of grading one submitted homework image.
type GradingResult struct {
	Score           float64         `json:"score"`
	TotalPoints     float64         `json:"totalPoints"`
	OverallFeedback string          `json:"overallFeedback"`
	Details         []GradingDetail `json:"details"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
