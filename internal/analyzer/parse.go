package analyzer

import (
	"encoding/json"
	"strings"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

type classification struct {
	Mentioned     bool            `json:"mentioned"`
	Position      *int            `json:"position"`
	Sentiment     model.Sentiment `json:"sentiment"`
	AnalysisNotes string          `json:"analysis_notes"`
}

func defaultClassification() classification {
	return classification{
		Mentioned:     false,
		Position:      nil,
		Sentiment:     model.SentimentNeutral,
		AnalysisNotes: "parse error",
	}
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a json language tag, from the provider output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// repairJSON makes a single attempt at fixing truncated provider
// output: it drops a dangling trailing comma and appends the closing
// braces the text is missing.
func repairJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	open := strings.Count(s, "{")
	closed := strings.Count(s, "}")
	if open > closed {
		s += strings.Repeat("}", open-closed)
	}
	return s
}

// parseClassification decodes the classification JSON a provider
// returned. It never fails: unparseable output, even after one repair
// attempt, yields a neutral not-mentioned record so a bad
// classification cannot sink the rest of the run.
func parseClassification(raw string) classification {
	text := stripCodeFences(raw)

	var cls classification
	if err := json.Unmarshal([]byte(text), &cls); err != nil {
		if err = json.Unmarshal([]byte(repairJSON(text)), &cls); err != nil {
			return defaultClassification()
		}
	}

	if !model.ValidSentiment(cls.Sentiment) {
		cls.Sentiment = model.SentimentNeutral
	}
	if !cls.Mentioned {
		cls.Position = nil
	} else if cls.Position != nil && (*cls.Position < 1 || *cls.Position > 10) {
		cls.Position = nil
	}
	return cls
}
