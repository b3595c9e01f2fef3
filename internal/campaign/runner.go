// Package campaign drives a full brand visibility run: question
// generation, sequential multi-provider analysis of every question,
// and the aggregation and enrichment steps that follow.
package campaign

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

// ErrNoQuestions aborts a campaign that has nothing to ask.
var ErrNoQuestions = eris.New("campaign: no questions to run")

// QuestionAnalyzer fans one question out to all providers.
type QuestionAnalyzer interface {
	AnalyzeQuestion(ctx context.Context, question string, brand model.Brand) (*model.MultiProviderQuestionResult, error)
}

// Runner walks a question list sequentially, pacing requests so the
// providers are not hammered.
type Runner struct {
	analyzer QuestionAnalyzer
	limiter  *rate.Limiter
}

// NewRunner builds a runner that waits delay between questions.
// Non-positive delays fall back to one second.
func NewRunner(qa QuestionAnalyzer, delay time.Duration) *Runner {
	if delay <= 0 {
		delay = time.Second
	}
	return &Runner{
		analyzer: qa,
		limiter:  rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Run analyzes every question in order. A question whose entire
// fan-out fails is recorded as a degraded single-entry result rather
// than dropped, so the output always has one entry per question.
// Cancelling ctx stops scheduling and returns the results gathered so
// far along with the context error.
func (r *Runner) Run(ctx context.Context, brand model.Brand, questions []string) ([]model.MultiProviderQuestionResult, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	out := make([]model.MultiProviderQuestionResult, 0, len(questions))
	for i, q := range questions {
		if err := r.limiter.Wait(ctx); err != nil {
			return out, eris.Wrap(err, "campaign: run interrupted")
		}

		zap.L().Info("analyzing question",
			zap.Int("index", i+1),
			zap.Int("total", len(questions)),
			zap.String("question", q))

		res, err := r.analyzer.AnalyzeQuestion(ctx, q, brand)
		if err != nil {
			zap.L().Error("question analysis failed",
				zap.String("question", q),
				zap.Error(err))
			out = append(out, degradedResult(q, err))
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

// degradedResult stands in for a question whose fan-out failed
// outright. It carries a single openai-tagged error entry so
// downstream aggregation still sees the question.
func degradedResult(question string, err error) model.MultiProviderQuestionResult {
	return model.MultiProviderQuestionResult{
		ID:       uuid.NewString(),
		Question: question,
		Results: []model.ProviderResult{{
			Provider:       model.ProviderOpenAI,
			Question:       question,
			Mentioned:      false,
			Position:       nil,
			Sentiment:      model.SentimentNeutral,
			Response:       "Error: " + err.Error(),
			SearchCriteria: []string{},
			Sources:        []string{},
			AnalysisNotes:  "question analysis failed",
		}},
	}
}
