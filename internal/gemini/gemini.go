// Package gemini wraps the Gemini backend behind the completion
// requester used for question generation.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/garyiyer/testqandas/internal/prompt"
)

const (
	// ModelName is the Gemini model to use.
	ModelName = "gemini-2.0-flash"

	// DefaultTemperature and DefaultMaxOutputTokens are the sampling
	// settings for question generation.
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 1000
)

// ErrMisconfigured indicates a missing backend credential. It is
// detected at construction, before any network call, so a deployment
// problem never surfaces as an opaque request failure.
var ErrMisconfigured = errors.New("model backend is not configured")

// ErrGenerationFailed wraps any backend call failure, including
// timeouts and cancellation. Requests are not retried automatically.
var ErrGenerationFailed = errors.New("question generation failed")

// Client wraps the Gemini client and model.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a Gemini client from an explicitly supplied API
// key. An empty key fails with ErrMisconfigured.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrMisconfigured)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  client.GenerativeModel(ModelName),
	}, nil
}

// Close closes the underlying Gemini client.
func (c *Client) Close() {
	c.client.Close()
}

// Complete sends the assembled messages in one blocking round-trip and
// returns the first candidate's text. System messages become the model
// system instruction; the remaining message contents are sent as parts.
// The caller's context governs cancellation and timeout; both surface
// as ErrGenerationFailed.
func (c *Client) Complete(ctx context.Context, messages []prompt.Message, temperature float32, maxOutputTokens int32) (string, error) {
	var parts []genai.Part
	var system []genai.Part
	for _, msg := range messages {
		if msg.Role == prompt.RoleSystem {
			system = append(system, genai.Text(msg.Content))
		} else {
			parts = append(parts, genai.Text(msg.Content))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: no user content to send", ErrGenerationFailed)
	}

	c.model.SetTemperature(temperature)
	c.model.SetMaxOutputTokens(maxOutputTokens)
	if len(system) > 0 {
		c.model.SystemInstruction = &genai.Content{Parts: system}
	}

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content generated", ErrGenerationFailed)
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGenerationFailed)
	}
	return text, nil
}

// GenerateQuestions assembles the prompt for the instruction and chunk
// texts and requests a completion with the default sampling settings.
func (c *Client) GenerateQuestions(ctx context.Context, instruction string, chunks []string) (string, error) {
	messages, err := prompt.Assemble(instruction, chunks)
	if err != nil {
		return "", err
	}
	return c.Complete(ctx, messages, DefaultTemperature, DefaultMaxOutputTokens)
}
