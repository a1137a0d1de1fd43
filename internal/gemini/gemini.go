package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"smartstudy/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// questionPrompt is the instruction sent for question generation. The
// response shape is enforced separately through the response schema.
const questionPrompt = `You are an experienced educator. Generate exactly %d practice questions about the topic "%s" at %s difficulty.
The questions must span the following types: %s.
Provide the answer and a detailed explanation for every question.
If a question benefits from an illustration (geometry figures, science experiment diagrams, flow charts and the like), set needsImage to true and provide a detailed imagePrompt in English suitable for an image generation model. Otherwise set needsImage to false.`

// illustrationStyle wraps a question's image prompt before submission.
// Fixed policy, not caller-configurable.
const illustrationStyle = `A clean, minimalist educational illustration for a school textbook: %s. White background, 2D flat style, professional, no text labels, square aspect ratio.`

// gradingPrompt is the instruction sent along with a homework photo.
const gradingPrompt = `You are a professional teacher grading the student homework shown in this image.
1. Identify every question on the sheet and the student's answer to it.
2. Judge each answer as correct or incorrect and give specific feedback. When an answer is wrong, or a better explanation is warranted, include a correction with the proper solution.
3. Give an aggregate score out of 100 total points and an overall comment on the work.`

// Config carries the settings the gateway needs. The API key is injected
// rather than read from the environment here.
type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

// Client is the sole point of contact with the Gemini API. It holds one
// preconfigured model per operation so response schemas never bleed
// between them.
type Client struct {
	client    *genai.Client
	questions *genai.GenerativeModel
	grading   *genai.GenerativeModel
	image     *genai.GenerativeModel
}

// NewClient creates a new Gemini gateway client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	questions := client.GenerativeModel(cfg.TextModel)
	questions.ResponseMIMEType = "application/json"
	questions.ResponseSchema = questionSchema()
	questions.SetTemperature(0.4)

	grading := client.GenerativeModel(cfg.TextModel)
	grading.ResponseMIMEType = "application/json"
	grading.ResponseSchema = gradingSchema()
	grading.SetTemperature(0.2)

	image := client.GenerativeModel(cfg.ImageModel)

	return &Client{
		client:    client,
		questions: questions,
		grading:   grading,
		image:     image,
	}, nil
}

// Close closes the underlying Gemini client.
func (c *Client) Close() {
	c.client.Close()
}

// GenerateQuestions asks the model for count questions about topic at the
// given difficulty, spanning the given types. A malformed or missing
// payload is not an error: it is logged and an empty batch is returned.
// Transport failures propagate to the caller. There is no retry.
func (c *Client) GenerateQuestions(ctx context.Context, topic string, difficulty models.Difficulty, types []models.QuestionType, count int) ([]models.Question, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("at least one question type is required")
	}
	if count < 1 {
		return nil, fmt.Errorf("question count must be positive, got %d", count)
	}

	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = fmt.Sprintf("%s (%s)", t, t.Label())
	}
	prompt := fmt.Sprintf(questionPrompt, count, topic, difficulty, strings.Join(labels, ", "))

	resp, err := c.questions.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	raw := responseText(resp)
	if raw == "" {
		log.Printf("WARN: question generation returned no text payload")
		return []models.Question{}, nil
	}

	var batch []models.Question
	if err := json.Unmarshal([]byte(extractJSON(raw)), &batch); err != nil {
		log.Printf("WARN: discarding malformed question payload: %v", err)
		return []models.Question{}, nil
	}

	// The id is only a list key; fill gaps the model left.
	for i := range batch {
		if batch[i].ID == "" {
			batch[i].ID = uuid.New().String()
		}
	}
	return batch, nil
}

// GenerateQuestionImage renders an illustration for the given prompt and
// returns it as a data:image/png;base64 URI. Every failure degrades to the
// empty string; this operation never reports an error to its caller.
func (c *Client) GenerateQuestionImage(ctx context.Context, imagePrompt string) string {
	resp, err := c.image.GenerateContent(ctx, genai.Text(fmt.Sprintf(illustrationStyle, imagePrompt)))
	if err != nil {
		log.Printf("WARN: illustration generation failed: %v", err)
		return ""
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return "data:image/png;base64," + base64.StdEncoding.EncodeToString(blob.Data)
			}
		}
	}

	log.Printf("WARN: illustration response carried no inline image data")
	return ""
}

// GradeHomework submits a photographed homework sheet for grading.
// base64Image must be the raw base64 payload of a JPEG, without a data-URI
// prefix. An empty response payload parses to a zero-shaped result rather
// than a hard fault; a malformed non-empty payload is an error.
func (c *Client) GradeHomework(ctx context.Context, base64Image string) (models.GradingResult, error) {
	data, err := base64.StdEncoding.DecodeString(base64Image)
	if err != nil {
		return models.GradingResult{}, fmt.Errorf("invalid base64 image payload: %w", err)
	}

	resp, err := c.grading.GenerateContent(ctx,
		genai.Blob{MIMEType: "image/jpeg", Data: data},
		genai.Text(gradingPrompt),
	)
	if err != nil {
		return models.GradingResult{}, fmt.Errorf("failed to grade homework: %w", err)
	}

	raw := responseText(resp)
	if raw == "" {
		log.Printf("WARN: grading returned no text payload, reporting empty result")
		return models.GradingResult{}, nil
	}

	var result models.GradingResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return models.GradingResult{}, fmt.Errorf("failed to parse grading result: %w", err)
	}
	return result, nil
}

// responseText gathers the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

// extractJSON strips markdown fences and surrounding prose from a response
// that should be a single JSON value. JSON mode usually makes this a no-op,
// but models occasionally wrap the payload anyway.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if end := strings.LastIndex(text, "```"); end >= 0 {
			text = text[:end]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return text
	}
	var end int
	if text[start] == '[' {
		end = strings.LastIndex(text, "]")
	} else {
		end = strings.LastIndex(text, "}")
	}
	if end > start {
		return text[start : end+1]
	}
	return text
}

// questionSchema constrains the generation response to an array of
// questions. imageUrl is deliberately absent: it is resolved downstream.
func questionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":          {Type: genai.TypeString},
				"type":        {Type: genai.TypeString, Enum: models.QuestionTypeValues()},
				"content":     {Type: genai.TypeString},
				"options":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"answer":      {Type: genai.TypeString},
				"explanation": {Type: genai.TypeString},
				"needsImage":  {Type: genai.TypeBoolean},
				"imagePrompt": {Type: genai.TypeString},
			},
			Required: []string{"id", "type", "content", "answer", "explanation", "needsImage"},
		},
	}
}

// gradingSchema constrains the grading response to the GradingResult shape.
func gradingSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":           {Type: genai.TypeNumber},
			"totalPoints":     {Type: genai.TypeNumber},
			"overallFeedback": {Type: genai.TypeString},
			"details": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"questionNumber": {Type: genai.TypeInteger},
						"isCorrect":      {Type: genai.TypeBoolean},
						"feedback":       {Type: genai.TypeString},
						"correction":     {Type: genai.TypeString},
					},
					Required: []string{"questionNumber", "isCorrect", "feedback"},
				},
			},
		},
		Required: []string{"score", "totalPoints", "overallFeedback", "details"},
	}
}
