package campaign

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
	"github.com/aeo-snapshot/aeo-cli/pkg/openai"
)

// Service runs complete campaigns end to end.
type Service struct {
	runner *Runner
	openai openai.Client // nil disables generation and enrichment
}

// NewService wires a runner with the OpenAI client used for question
// generation, suggestions, and competition analysis.
func NewService(runner *Runner, openaiClient openai.Client) *Service {
	return &Service{runner: runner, openai: openaiClient}
}

// Params describes one campaign request. Supplying Questions skips
// automatic generation.
type Params struct {
	Brand     model.Brand
	Questions []string
}

// Execute runs the whole campaign: resolve the question list, analyze
// every question across all providers, then derive the aggregates and
// enrichment. Suggestion and competition failures degrade to log
// warnings; the core analysis is still returned.
func (s *Service) Execute(ctx context.Context, params Params) (*model.Analysis, error) {
	if params.Brand.Name == "" {
		return nil, eris.New("campaign: brand name is required")
	}
	if params.Brand.Sector == "" {
		return nil, eris.New("campaign: brand sector is required")
	}

	questions := params.Questions
	custom := len(questions) > 0
	if custom {
		zap.L().Info("using custom questions", zap.Int("count", len(questions)))
	} else {
		var err error
		questions, err = GenerateQuestions(ctx, s.openai, params.Brand)
		if err != nil {
			return nil, eris.Wrap(err, "campaign: resolve questions")
		}
		zap.L().Info("generated questions", zap.Int("count", len(questions)))
	}

	questionResults, err := s.runner.Run(ctx, params.Brand, questions)
	if err != nil {
		return nil, err
	}

	analysis := &model.Analysis{
		ID:              uuid.NewString(),
		Brand:           params.Brand,
		Questions:       questions,
		QuestionResults: questionResults,
		CustomQuestions: custom,
		CreatedAt:       time.Now().UTC(),
	}
	// The overall score and the suggestion metrics are computed from
	// the openai result per question; the full multi-provider set only
	// feeds the per-provider comparison.
	baseline := openaiBaseline(questionResults)
	analysis.VisibilityScore = model.VisibilityScore(baseline)
	analysis.ProviderComparison = CompareProviders(questionResults)

	if s.openai != nil {
		if suggestions, err := GenerateSuggestions(ctx, s.openai, params.Brand, baseline); err != nil {
			zap.L().Warn("suggestion generation failed", zap.Error(err))
		} else {
			analysis.Suggestions = suggestions
		}
		if competitive, err := AnalyzeCompetition(ctx, s.openai, params.Brand, questionResults); err != nil {
			zap.L().Warn("competition analysis failed", zap.Error(err))
		} else {
			analysis.Competitive = competitive
		}
	}

	return analysis, nil
}
