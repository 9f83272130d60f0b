// Package llm adapts chat-completion providers to domain.LLMClient. The
// adapter is the only place allowed to inspect provider-specific error
// shapes; everything it returns is a *domain.ModelError.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"interview-agent/internal/domain"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a Gemini-backed LLMClient. With an API key it
// talks to the Gemini API directly; with a project and location it uses the
// Vertex AI backend.
func NewGeminiClient(ctx context.Context, apiKey, projectID, location, modelName string) (*GeminiClient, error) {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	cc := &genai.ClientConfig{}
	switch {
	case apiKey != "":
		cc.APIKey = apiKey
		cc.Backend = genai.BackendGeminiAPI
	case projectID != "" && location != "":
		cc.Project = projectID
		cc.Location = location
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("either an API key or a GCP project and location are required")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Complete implements domain.LLMClient. The first system message becomes the
// system instruction; the rest of the history is sent as conversation
// contents.
func (g *GeminiClient) Complete(
	ctx context.Context,
	messages []domain.ChatMessage,
	opts domain.CompletionOptions,
) (string, error) {
	var system string
	var contents []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			if system == "" {
				system = m.Content
				continue
			}
			// A second system message has no slot in the API; fold it in.
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	temp := opts.Temperature
	presence := opts.PresencePenalty
	frequency := opts.FrequencyPenalty

	cfg := &genai.GenerateContentConfig{
		Temperature:      &temp,
		MaxOutputTokens:  opts.MaxOutputTokens,
		PresencePenalty:  &presence,
		FrequencyPenalty: &frequency,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", classifyError(err)
	}

	text := res.Text()
	if text == "" {
		return "", &domain.ModelError{
			Kind: domain.ModelErrOther,
			Err:  fmt.Errorf("model returned empty text"),
		}
	}

	return text, nil
}

// classifyError translates the provider error into the tagged domain error.
// Token-budget rejections arrive as INVALID_ARGUMENT with a message about
// token counts; there is no dedicated error code for them.
func classifyError(err error) error {
	kind := domain.ModelErrOther

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		msg := strings.ToLower(apiErr.Message)
		if strings.Contains(msg, "token count") ||
			strings.Contains(msg, "context length") ||
			strings.Contains(msg, "exceeds the maximum number of tokens") {
			kind = domain.ModelErrContextLength
		}
	}

	return &domain.ModelError{Kind: kind, Err: err}
}
