package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllProvidersOrder(t *testing.T) {
	assert.Equal(t, []Provider{ProviderOpenAI, ProviderClaude, ProviderGemini, ProviderPerplexity}, AllProviders())
}

func TestValidSentiment(t *testing.T) {
	assert.True(t, ValidSentiment(SentimentPositive))
	assert.True(t, ValidSentiment(SentimentNegative))
	assert.True(t, ValidSentiment(SentimentNeutral))
	assert.False(t, ValidSentiment("mixed"))
	assert.False(t, ValidSentiment(""))
}

func TestVisibilityScore(t *testing.T) {
	assert.Equal(t, 0, VisibilityScore(nil))
	assert.Equal(t, 0, VisibilityScore([]ProviderResult{{Mentioned: false}}))
	assert.Equal(t, 100, VisibilityScore([]ProviderResult{{Mentioned: true}}))
	assert.Equal(t, 50, VisibilityScore([]ProviderResult{{Mentioned: true}, {Mentioned: false}}))
	// 1/3 rounds to 33, 2/3 rounds to 67.
	assert.Equal(t, 33, VisibilityScore([]ProviderResult{{Mentioned: true}, {}, {}}))
	assert.Equal(t, 67, VisibilityScore([]ProviderResult{{Mentioned: true}, {Mentioned: true}, {}}))
}

func TestFlatResults(t *testing.T) {
	a := Analysis{
		QuestionResults: []MultiProviderQuestionResult{
			{Question: "q1", Results: []ProviderResult{{Provider: ProviderOpenAI}, {Provider: ProviderClaude}}},
			{Question: "q2", Results: []ProviderResult{{Provider: ProviderGemini}}},
		},
	}
	flat := a.FlatResults()
	assert.Len(t, flat, 3)
	assert.Equal(t, ProviderOpenAI, flat[0].Provider)
	assert.Equal(t, ProviderClaude, flat[1].Provider)
	assert.Equal(t, ProviderGemini, flat[2].Provider)
}
