package analyzer

import (
	"context"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
	"github.com/aeo-snapshot/aeo-cli/pkg/claude"
	"github.com/aeo-snapshot/aeo-cli/pkg/gemini"
	"github.com/aeo-snapshot/aeo-cli/pkg/openai"
	"github.com/aeo-snapshot/aeo-cli/pkg/perplexity"
)

// NewOpenAI returns an analyzer backed by the given OpenAI client.
// A nil client means the credential is not configured; Analyze will
// return a CredentialError without touching the network.
func NewOpenAI(client openai.Client) Analyzer {
	a := &analyzer{provider: model.ProviderOpenAI}
	if client == nil {
		return a
	}
	a.complete = func(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
		resp, err := client.ChatCompletion(ctx, openai.ChatCompletionRequest{
			Messages: []openai.Message{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
			Temperature: &temperature,
			MaxTokens:   &maxTokens,
		})
		if err != nil {
			return "", err
		}
		return resp.Content(), nil
	}
	return a
}

// NewClaude returns an analyzer backed by the given Claude client.
// The messages API has no separate system role here, so the system
// prompt is folded into the user turn.
func NewClaude(client claude.Client) Analyzer {
	a := &analyzer{provider: model.ProviderClaude}
	if client == nil {
		return a
	}
	a.complete = func(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
		resp, err := client.CreateMessage(ctx, claude.MessageRequest{
			MaxTokens: int64(maxTokens),
			Messages: []claude.Message{
				{Role: "user", Content: system + "\n\n" + user},
			},
			Temperature: &temperature,
		})
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return a
}

// NewGemini returns an analyzer backed by the given Gemini client.
func NewGemini(client gemini.Client) Analyzer {
	a := &analyzer{provider: model.ProviderGemini}
	if client == nil {
		return a
	}
	a.complete = func(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
		resp, err := client.GenerateContent(ctx, gemini.GenerateContentRequest{
			Contents: []gemini.Content{
				{Role: "user", Parts: []gemini.Part{{Text: system + "\n\n" + user}}},
			},
			GenerationConfig: &gemini.GenerationConfig{
				Temperature:     &temperature,
				MaxOutputTokens: &maxTokens,
			},
		})
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return a
}

// NewPerplexity returns an analyzer backed by the given Perplexity
// client.
func NewPerplexity(client perplexity.Client) Analyzer {
	a := &analyzer{provider: model.ProviderPerplexity}
	if client == nil {
		return a
	}
	a.complete = func(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
		resp, err := client.ChatCompletion(ctx, perplexity.ChatCompletionRequest{
			Messages: []perplexity.Message{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
			Temperature: &temperature,
			MaxTokens:   &maxTokens,
		})
		if err != nil {
			return "", err
		}
		return resp.Content(), nil
	}
	return a
}
