// Package gemini wraps the two model capabilities the pipeline consumes:
// role-tagged text generation and batch text embedding.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	generativeModel = "gemini-1.5-flash"
	embeddingModel  = "text-embedding-004"

	// Cap on user-payload size to keep prompts bounded.
	maxPromptChars = 6000
)

// Message is one role-tagged prompt message. Role is "system" or "user".
type Message struct {
	Role    string
	Content string
}

type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Generate runs the chat model over the messages at the given temperature
// and returns the generated text. System messages become the system
// instruction; user messages are concatenated into the prompt.
func (c *Client) Generate(ctx context.Context, msgs []Message, temperature float32) (string, error) {
	model := c.client.GenerativeModel(generativeModel)
	model.SetTemperature(temperature)

	var system, user []string
	for _, m := range msgs {
		switch m.Role {
		case "system":
			system = append(system, m.Content)
		default:
			user = append(user, m.Content)
		}
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(strings.Join(system, "\n"))},
		}
	}

	prompt := clampPrompt(strings.Join(user, "\n"))
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// Embed returns one embedding per input text, in input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	em := c.client.EmbeddingModel(embeddingModel)
	batch := em.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to embed contents: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Embeddings), len(texts))
	}

	out := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		out[i] = e.Values
	}
	return out, nil
}

func clampPrompt(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxPromptChars {
		return s
	}
	runes := []rune(s)
	trimmed := string(runes[:maxPromptChars])
	if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed + "\n[TRUNCATED]"
}
