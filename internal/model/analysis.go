package model

import "time"

// Brand holds the brand context every provider call is evaluated against.
type Brand struct {
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Keywords string `json:"keywords,omitempty"`
}

// Suggestion is one actionable AEO recommendation generated after a campaign.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Impact      string `json:"impact,omitempty"`
}

// CompetitorMention aggregates how often a competitor surfaced across
// all provider answers in a campaign.
type CompetitorMention struct {
	Name              string    `json:"name"`
	Count             int       `json:"count"`
	Sentiment         Sentiment `json:"sentiment"`
	MarketShare       float64   `json:"market_share"`
	ProviderConsensus int       `json:"provider_consensus"`
}

// CompetitiveAnalysis summarizes the competitor landscape extracted from
// provider answers.
type CompetitiveAnalysis struct {
	TotalCompetitors    int                 `json:"total_competitors"`
	TopCompetitors      []CompetitorMention `json:"top_competitors"`
	MarketGaps          []string            `json:"market_gaps"`
	CompetitiveStrength string              `json:"competitive_strength"`
	Recommendations     []string            `json:"recommendations"`
}

// Analysis is one complete campaign outcome: all per-question
// per-provider results plus derived aggregates. Written once to the
// store after the campaign finishes.
type Analysis struct {
	ID                 string                        `json:"id,omitempty"`
	Brand              Brand                         `json:"brand"`
	Questions          []string                      `json:"questions"`
	QuestionResults    []MultiProviderQuestionResult `json:"question_results"`
	VisibilityScore    int                           `json:"visibility_score"`
	ProviderComparison []ProviderComparison          `json:"provider_comparison"`
	Suggestions        []Suggestion                  `json:"suggestions,omitempty"`
	Competitive        *CompetitiveAnalysis          `json:"competitive_analysis,omitempty"`
	CustomQuestions    bool                          `json:"custom_questions"`
	CreatedAt          time.Time                     `json:"created_at"`
}

// FlatResults returns every ProviderResult across all questions, in
// question order then provider order.
func (a *Analysis) FlatResults() []ProviderResult {
	var out []ProviderResult
	for _, qr := range a.QuestionResults {
		out = append(out, qr.Results...)
	}
	return out
}

// VisibilityScore computes round(100 * mentioned / total) over a result
// set, or 0 when the set is empty.
func VisibilityScore(results []ProviderResult) int {
	if len(results) == 0 {
		return 0
	}
	mentioned := 0
	for _, r := range results {
		if r.Mentioned {
			mentioned++
		}
	}
	return int(float64(mentioned)/float64(len(results))*100 + 0.5)
}
