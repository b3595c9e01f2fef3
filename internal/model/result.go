package model

// Provider identifies one of the AI answer engines queried per campaign.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderClaude     Provider = "claude"
	ProviderGemini     Provider = "gemini"
	ProviderPerplexity Provider = "perplexity"
)

// AllProviders returns the fixed query order used by the orchestrator.
// Output ordering at the provider level follows this slice.
func AllProviders() []Provider {
	return []Provider{ProviderOpenAI, ProviderClaude, ProviderGemini, ProviderPerplexity}
}

// Sentiment classifies the tone of a brand mention (or of the overall
// answer when the brand was not mentioned).
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ValidSentiment reports whether s is one of the three known values.
func ValidSentiment(s Sentiment) bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// ProviderResult is the normalized outcome of analyzing one question
// against one provider. It is immutable once built: Mentioned == false
// implies Position == nil.
type ProviderResult struct {
	Provider       Provider  `json:"provider"`
	Question       string    `json:"question"`
	Mentioned      bool      `json:"mentioned"`
	Position       *int      `json:"position"`
	Sentiment      Sentiment `json:"sentiment"`
	Response       string    `json:"response"`
	SearchCriteria []string  `json:"search_criteria"`
	Sources        []string  `json:"sources"`
	AnalysisNotes  string    `json:"analysis_notes,omitempty"`
}

// MultiProviderQuestionResult groups one ProviderResult per requested
// provider for a single question.
type MultiProviderQuestionResult struct {
	ID       string           `json:"id"`
	Question string           `json:"question"`
	Results  []ProviderResult `json:"results"`
}

// SentimentDistribution counts results per sentiment for one provider.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// ProviderComparison is a per-provider aggregate over a whole campaign.
// Derived data: recomputed in full from the ProviderResult set, never
// incrementally updated.
type ProviderComparison struct {
	Provider              Provider              `json:"provider"`
	VisibilityScore       int                   `json:"visibility_score"`
	MentionCount          int                   `json:"mention_count"`
	AveragePosition       *float64              `json:"average_position"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
}
