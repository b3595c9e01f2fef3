package campaign

import (
	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

// openaiBaseline reduces each question to its openai-tagged result,
// the record the overall visibility score and the suggestion metrics
// are computed from. A question with no openai entry contributes an
// unmentioned stand-in so the denominator stays one per question.
func openaiBaseline(questionResults []model.MultiProviderQuestionResult) []model.ProviderResult {
	out := make([]model.ProviderResult, 0, len(questionResults))
	for _, qr := range questionResults {
		found := false
		for _, r := range qr.Results {
			if r.Provider == model.ProviderOpenAI {
				out = append(out, r)
				found = true
				break
			}
		}
		if !found {
			out = append(out, model.ProviderResult{
				Provider:       model.ProviderOpenAI,
				Question:       qr.Question,
				Mentioned:      false,
				Position:       nil,
				Sentiment:      model.SentimentNeutral,
				Response:       "Error al procesar con OpenAI",
				SearchCriteria: []string{},
				Sources:        []string{},
				AnalysisNotes:  "Error",
			})
		}
	}
	return out
}

// CompareProviders recomputes the per-provider aggregates for a whole
// campaign. Every provider in the fixed order gets an entry; a
// provider with no results keeps zero visibility and a nil average
// position rather than dividing by zero.
func CompareProviders(questionResults []model.MultiProviderQuestionResult) []model.ProviderComparison {
	byProvider := make(map[model.Provider][]model.ProviderResult)
	for _, qr := range questionResults {
		for _, r := range qr.Results {
			byProvider[r.Provider] = append(byProvider[r.Provider], r)
		}
	}

	providers := model.AllProviders()
	out := make([]model.ProviderComparison, 0, len(providers))
	for _, p := range providers {
		group := byProvider[p]
		cmp := model.ProviderComparison{Provider: p}
		if len(group) == 0 {
			out = append(out, cmp)
			continue
		}

		var posSum float64
		var posCount int
		for _, r := range group {
			if r.Mentioned {
				cmp.MentionCount++
				if r.Position != nil {
					posSum += float64(*r.Position)
					posCount++
				}
			}
			switch r.Sentiment {
			case model.SentimentPositive:
				cmp.SentimentDistribution.Positive++
			case model.SentimentNegative:
				cmp.SentimentDistribution.Negative++
			default:
				cmp.SentimentDistribution.Neutral++
			}
		}

		cmp.VisibilityScore = model.VisibilityScore(group)
		if posCount > 0 {
			avg := posSum / float64(posCount)
			cmp.AveragePosition = &avg
		}
		out = append(out, cmp)
	}
	return out
}
