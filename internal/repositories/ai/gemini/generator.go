package gemini

import (
	"context"
	"fmt"

	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	"google.golang.org/genai"
)

// Generator calls the Gemini API through the official client. Credentials and
// Vertex vs Gemini Dev selection come from the standard environment variables
// (GEMINI_API_KEY or GOOGLE_GENAI_USE_VERTEXAI plus project/location).
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a Gemini-backed content generator for the given model.
func NewGenerator(ctx context.Context, model string) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

var _ portsrepo.ContentGenerator = (*Generator)(nil)

// GenerateContent sends a single text prompt and returns the model's text
// response.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
