package illustrate

import (
	"context"
	"encoding/base64"
	"log"
	"strings"

	"github.com/google/uuid"
)

// ImageGenerator renders an illustration for a prompt, returned as a data
// URI. The empty string means no illustration could be produced.
type ImageGenerator interface {
	GenerateQuestionImage(ctx context.Context, imagePrompt string) string
}

// Uploader stores finished illustrations and returns a public URL.
// Implemented by the R2 client.
type Uploader interface {
	UploadIllustration(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service resolves question image prompts. When an uploader is configured
// the rendered image is offloaded to object storage and the card gets a
// plain URL; otherwise the data URI is handed through unchanged. Failures
// on the offload path fall back to the data URI.
type Service struct {
	gen   ImageGenerator
	store Uploader
}

// New creates a Service. store may be nil.
func New(gen ImageGenerator, store Uploader) *Service {
	return &Service{gen: gen, store: store}
}

// Illustrate renders the prompt and returns a displayable URL, or the
// empty string when no illustration is available. It never fails.
func (s *Service) Illustrate(ctx context.Context, imagePrompt string) string {
	uri := s.gen.GenerateQuestionImage(ctx, imagePrompt)
	if uri == "" || s.store == nil {
		return uri
	}

	data, contentType, ok := decodeDataURI(uri)
	if !ok {
		return uri
	}

	key := uuid.New().String() + ".png"
	url, err := s.store.UploadIllustration(ctx, key, data, contentType)
	if err != nil {
		log.Printf("WARN: illustration upload failed, serving inline: %v", err)
		return uri
	}
	return url
}

// decodeDataURI splits a data:<mime>;base64,<payload> URI into its bytes
// and content type.
func decodeDataURI(uri string) (data []byte, contentType string, ok bool) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, "", false
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return nil, "", false
	}
	meta := uri[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, "", false
	}
	return data, contentType, true
}
