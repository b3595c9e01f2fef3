package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

func intPtr(v int) *int { return &v }

func result(p model.Provider, mentioned bool, pos *int, sentiment model.Sentiment) model.ProviderResult {
	return model.ProviderResult{Provider: p, Mentioned: mentioned, Position: pos, Sentiment: sentiment}
}

func TestCompareProviders(t *testing.T) {
	questionResults := []model.MultiProviderQuestionResult{
		{Question: "q1", Results: []model.ProviderResult{
			result(model.ProviderOpenAI, true, intPtr(1), model.SentimentPositive),
			result(model.ProviderClaude, false, nil, model.SentimentNeutral),
		}},
		{Question: "q2", Results: []model.ProviderResult{
			result(model.ProviderOpenAI, true, intPtr(3), model.SentimentNegative),
			result(model.ProviderClaude, true, nil, model.SentimentPositive),
		}},
	}

	got := CompareProviders(questionResults)
	require.Len(t, got, 4)

	openai := got[0]
	assert.Equal(t, model.ProviderOpenAI, openai.Provider)
	assert.Equal(t, 100, openai.VisibilityScore)
	assert.Equal(t, 2, openai.MentionCount)
	require.NotNil(t, openai.AveragePosition)
	assert.InDelta(t, 2.0, *openai.AveragePosition, 0.001)
	assert.Equal(t, model.SentimentDistribution{Positive: 1, Negative: 1}, openai.SentimentDistribution)

	claude := got[1]
	assert.Equal(t, model.ProviderClaude, claude.Provider)
	assert.Equal(t, 50, claude.VisibilityScore)
	assert.Equal(t, 1, claude.MentionCount)
	// mentioned without a position contributes no average
	assert.Nil(t, claude.AveragePosition)
	assert.Equal(t, model.SentimentDistribution{Positive: 1, Neutral: 1}, claude.SentimentDistribution)

	// providers with no results stay zeroed instead of dividing by zero
	for _, cmp := range got[2:] {
		assert.Equal(t, 0, cmp.VisibilityScore)
		assert.Equal(t, 0, cmp.MentionCount)
		assert.Nil(t, cmp.AveragePosition)
	}
}

func TestOpenAIBaseline(t *testing.T) {
	questionResults := []model.MultiProviderQuestionResult{
		{Question: "q1", Results: []model.ProviderResult{
			result(model.ProviderClaude, true, intPtr(1), model.SentimentPositive),
			result(model.ProviderOpenAI, true, intPtr(2), model.SentimentPositive),
		}},
		// no openai entry at all
		{Question: "q2", Results: []model.ProviderResult{
			result(model.ProviderClaude, true, nil, model.SentimentPositive),
		}},
	}

	got := openaiBaseline(questionResults)
	require.Len(t, got, 2)

	assert.Equal(t, model.ProviderOpenAI, got[0].Provider)
	assert.True(t, got[0].Mentioned)
	require.NotNil(t, got[0].Position)
	assert.Equal(t, 2, *got[0].Position)

	standIn := got[1]
	assert.Equal(t, model.ProviderOpenAI, standIn.Provider)
	assert.Equal(t, "q2", standIn.Question)
	assert.False(t, standIn.Mentioned)
	assert.Nil(t, standIn.Position)
	assert.Equal(t, model.SentimentNeutral, standIn.Sentiment)
	assert.Equal(t, "Error al procesar con OpenAI", standIn.Response)
	assert.NotNil(t, standIn.SearchCriteria)
	assert.NotNil(t, standIn.Sources)

	// mentions by other providers never move the overall score
	assert.Equal(t, 50, model.VisibilityScore(got))
}

func TestCompareProvidersEmpty(t *testing.T) {
	got := CompareProviders(nil)
	require.Len(t, got, 4)
	for _, cmp := range got {
		assert.Equal(t, 0, cmp.VisibilityScore)
		assert.Nil(t, cmp.AveragePosition)
	}
}

func TestVisibilityScoreRounding(t *testing.T) {
	results := []model.ProviderResult{
		result(model.ProviderOpenAI, true, nil, model.SentimentNeutral),
		result(model.ProviderOpenAI, false, nil, model.SentimentNeutral),
		result(model.ProviderOpenAI, false, nil, model.SentimentNeutral),
	}
	// 1/3 rounds to 33
	assert.Equal(t, 33, model.VisibilityScore(results))
	assert.Equal(t, 0, model.VisibilityScore(nil))
}
