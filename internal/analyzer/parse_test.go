package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

func intPtr(v int) *int { return &v }

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want classification
	}{
		{
			name: "plain json",
			raw:  `{"mentioned": true, "position": 2, "sentiment": "positive", "analysis_notes": "aparece segunda"}`,
			want: classification{Mentioned: true, Position: intPtr(2), Sentiment: model.SentimentPositive, AnalysisNotes: "aparece segunda"},
		},
		{
			name: "fenced json with language tag",
			raw:  "```json\n{\"mentioned\": false, \"position\": null, \"sentiment\": \"neutral\", \"analysis_notes\": \"no aparece\"}\n```",
			want: classification{Mentioned: false, Sentiment: model.SentimentNeutral, AnalysisNotes: "no aparece"},
		},
		{
			name: "fenced json without language tag",
			raw:  "```\n{\"mentioned\": true, \"sentiment\": \"negative\", \"analysis_notes\": \"mala imagen\"}\n```",
			want: classification{Mentioned: true, Sentiment: model.SentimentNegative, AnalysisNotes: "mala imagen"},
		},
		{
			name: "truncated json is repaired",
			raw:  `{"mentioned": true, "position": 1, "sentiment": "positive", "analysis_notes": "lidera",`,
			want: classification{Mentioned: true, Position: intPtr(1), Sentiment: model.SentimentPositive, AnalysisNotes: "lidera"},
		},
		{
			name: "garbage falls back to default",
			raw:  "La marca aparece mencionada en la respuesta.",
			want: defaultClassification(),
		},
		{
			name: "empty input falls back to default",
			raw:  "",
			want: defaultClassification(),
		},
		{
			name: "unknown sentiment becomes neutral",
			raw:  `{"mentioned": true, "sentiment": "muy positivo", "analysis_notes": "ok"}`,
			want: classification{Mentioned: true, Sentiment: model.SentimentNeutral, AnalysisNotes: "ok"},
		},
		{
			name: "position dropped when not mentioned",
			raw:  `{"mentioned": false, "position": 3, "sentiment": "neutral", "analysis_notes": "n/a"}`,
			want: classification{Mentioned: false, Sentiment: model.SentimentNeutral, AnalysisNotes: "n/a"},
		},
		{
			name: "out of range position dropped",
			raw:  `{"mentioned": true, "position": 42, "sentiment": "neutral", "analysis_notes": "lejos"}`,
			want: classification{Mentioned: true, Sentiment: model.SentimentNeutral, AnalysisNotes: "lejos"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseClassification(tt.raw))
		})
	}
}

func TestRepairJSON(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 1}}`, repairJSON(`{"a": {"b": 1}`))
	assert.Equal(t, `{"a": 1}`, repairJSON(`{"a": 1,`))
	assert.Equal(t, `{"a": 1}`, repairJSON(`{"a": 1}`))
}
