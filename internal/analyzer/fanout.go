package analyzer

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

// Orchestrator fans a single question out to every configured
// provider in parallel and joins the results.
type Orchestrator struct {
	analyzers []Analyzer
}

// NewOrchestrator builds an orchestrator over the given analyzers.
// Result order always matches the order analyzers were passed in.
func NewOrchestrator(analyzers ...Analyzer) *Orchestrator {
	return &Orchestrator{analyzers: analyzers}
}

// AnalyzeQuestion runs every provider concurrently. A provider
// failure never fails the question: the failed slot is filled with a
// placeholder record carrying the error text, so one slow or broken
// provider cannot mask the others. It errors only when there are no
// analyzers to run.
func (o *Orchestrator) AnalyzeQuestion(ctx context.Context, question string, brand model.Brand) (*model.MultiProviderQuestionResult, error) {
	if len(o.analyzers) == 0 {
		return nil, eris.New("analyzer: no providers configured")
	}

	results := make([]model.ProviderResult, len(o.analyzers))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range o.analyzers {
		g.Go(func() error {
			res, err := a.Analyze(gctx, question, brand)
			if err != nil {
				zap.L().Warn("provider analysis failed",
					zap.String("provider", string(a.Provider())),
					zap.String("question", question),
					zap.Error(err))
				results[i] = placeholderResult(a.Provider(), question, err)
				return nil
			}
			results[i] = *res
			return nil
		})
	}
	// goroutines absorb their own errors, Wait only joins
	_ = g.Wait()

	return &model.MultiProviderQuestionResult{
		ID:       uuid.NewString(),
		Question: question,
		Results:  results,
	}, nil
}

// placeholderResult records a provider failure as a neutral
// not-mentioned entry so aggregation stays total.
func placeholderResult(provider model.Provider, question string, err error) model.ProviderResult {
	return model.ProviderResult{
		Provider:       provider,
		Question:       question,
		Mentioned:      false,
		Position:       nil,
		Sentiment:      model.SentimentNeutral,
		Response:       "Error: " + err.Error(),
		SearchCriteria: []string{},
		Sources:        []string{},
		AnalysisNotes:  "provider error",
	}
}
