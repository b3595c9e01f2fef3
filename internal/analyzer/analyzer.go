// Package analyzer runs the two-step visibility analysis against each
// AI provider: a natural-language answer to the user question first,
// then a structured classification of that answer.
package analyzer

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
	"github.com/aeo-snapshot/aeo-cli/internal/resilience"
	"github.com/aeo-snapshot/aeo-cli/internal/scrape"
)

// Analyzer produces a visibility result for a single question.
type Analyzer interface {
	Provider() model.Provider
	Analyze(ctx context.Context, question string, brand model.Brand) (*model.ProviderResult, error)
}

// completeFunc issues one completion and returns the text content.
// Each provider adapter maps its own wire types onto this shape.
type completeFunc func(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)

type analyzer struct {
	provider model.Provider
	complete completeFunc // nil when no credential is configured
}

func (a *analyzer) Provider() model.Provider { return a.provider }

func (a *analyzer) Analyze(ctx context.Context, question string, brand model.Brand) (*model.ProviderResult, error) {
	if a.complete == nil {
		return nil, &CredentialError{Provider: a.provider}
	}

	retryCfg := resilience.DefaultRetryConfig()

	answer, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (string, error) {
		return a.complete(ctx, answerSystemPrompt, question, answerTemperature, answerMaxTokens)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "analyzer: %s answer", a.provider)
	}

	raw, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (string, error) {
		return a.complete(ctx, classifySystemPrompt, classificationPrompt(brand, question, answer), classifyTemperature, classifyMaxTokens)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "analyzer: %s classification", a.provider)
	}

	res := newResult(a.provider, question, answer, parseClassification(raw))
	return &res, nil
}

// newResult assembles the final record for one provider, running the
// scraper passes over the raw answer text.
func newResult(provider model.Provider, question, answer string, cls classification) model.ProviderResult {
	return model.ProviderResult{
		Provider:       provider,
		Question:       question,
		Mentioned:      cls.Mentioned,
		Position:       cls.Position,
		Sentiment:      cls.Sentiment,
		Response:       scrape.CleanResponseContent(answer),
		SearchCriteria: scrape.ExtractSearchCriteria(answer, question),
		Sources:        scrape.ExtractSources(answer),
		AnalysisNotes:  cls.AnalysisNotes,
	}
}
