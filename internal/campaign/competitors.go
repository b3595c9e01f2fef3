package campaign

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
	"github.com/aeo-snapshot/aeo-cli/internal/scrape"
	"github.com/aeo-snapshot/aeo-cli/pkg/openai"
)

const competitionSystemPrompt = "Eres un experto en análisis competitivo. " +
	"Responde únicamente con el JSON solicitado."

const maxTopCompetitors = 10

// competitorCoverage is the heuristic pre-pass over all responses:
// per-competitor mention counts and how many distinct providers
// surfaced the name.
type competitorCoverage struct {
	name      string
	mentions  int
	providers map[model.Provider]struct{}
}

// competitionResponse is the JSON shape the model is asked for.
type competitionResponse struct {
	Competitors []struct {
		Name              string          `json:"name"`
		Mentions          int             `json:"mentions"`
		Sentiment         model.Sentiment `json:"sentiment"`
		Description       string          `json:"description"`
		ProviderConsensus int             `json:"provider_consensus"`
	} `json:"competitors"`
	MarketGaps          []string `json:"market_gaps"`
	CompetitiveStrength string   `json:"competitive_strength"`
	KeyInsights         []string `json:"key_insights"`
}

// AnalyzeCompetition identifies the competitors surfacing across all
// provider answers. A heuristic scan seeds the prompt with coverage
// counts; the model then evaluates the landscape. A response that
// cannot be parsed even after repair yields a minimal fallback
// structure instead of an error, so competition analysis never sinks
// a finished campaign.
func AnalyzeCompetition(ctx context.Context, client openai.Client, brand model.Brand, questionResults []model.MultiProviderQuestionResult) (*model.CompetitiveAnalysis, error) {
	if client == nil {
		return nil, eris.New("campaign: competition analysis requires an openai client")
	}

	temperature := 0.3
	maxTokens := 2500
	resp, err := client.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Messages: []openai.Message{
			{Role: "system", Content: competitionSystemPrompt},
			{Role: "user", Content: competitionPrompt(brand, questionResults)},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "campaign: analyze competition")
	}

	content := resp.Content()
	if content == "" {
		return nil, eris.New("campaign: empty competition response")
	}

	parsed, ok := parseCompetitionResponse(content)
	if !ok {
		zap.L().Error("unparseable competition analysis", zap.Int("content_length", len(content)))
		return fallbackCompetitiveAnalysis(), nil
	}

	totalQuestions := len(questionResults)
	top := make([]model.CompetitorMention, 0, len(parsed.Competitors))
	for _, c := range parsed.Competitors {
		name := c.Name
		if name == "" {
			name = "Unknown"
		}
		sentiment := c.Sentiment
		if !model.ValidSentiment(sentiment) {
			sentiment = model.SentimentNeutral
		}
		consensus := c.ProviderConsensus
		if consensus < 1 {
			consensus = 1
		}
		share := 0.0
		if totalQuestions > 0 {
			share = float64(c.Mentions) / float64(totalQuestions) * 100
		}
		top = append(top, model.CompetitorMention{
			Name:              name,
			Count:             c.Mentions,
			Sentiment:         sentiment,
			MarketShare:       share,
			ProviderConsensus: consensus,
		})
	}

	// provider consensus first, then raw mention count
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].ProviderConsensus != top[j].ProviderConsensus {
			return top[i].ProviderConsensus > top[j].ProviderConsensus
		}
		return top[i].Count > top[j].Count
	})
	total := len(top)
	if len(top) > maxTopCompetitors {
		top = top[:maxTopCompetitors]
	}

	strength := parsed.CompetitiveStrength
	switch strength {
	case "low", "medium", "high":
	default:
		strength = "medium"
	}

	return &model.CompetitiveAnalysis{
		TotalCompetitors:    total,
		TopCompetitors:      top,
		MarketGaps:          parsed.MarketGaps,
		CompetitiveStrength: strength,
		Recommendations:     parsed.KeyInsights,
	}, nil
}

func parseCompetitionResponse(content string) (*competitionResponse, bool) {
	text := stripFences(content)
	var parsed competitionResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		repaired := repairTruncatedJSON(text)
		if err = json.Unmarshal([]byte(repaired), &parsed); err != nil {
			return nil, false
		}
	}
	if parsed.Competitors == nil {
		return nil, false
	}
	return &parsed, true
}

// repairTruncatedJSON closes the brackets and braces a truncated
// response left open, dropping a dangling trailing comma first.
func repairTruncatedJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	if n := strings.Count(s, "[") - strings.Count(s, "]"); n > 0 {
		s += strings.Repeat("]", n)
	}
	if n := strings.Count(s, "{") - strings.Count(s, "}"); n > 0 {
		s += strings.Repeat("}", n)
	}
	return s
}

func fallbackCompetitiveAnalysis() *model.CompetitiveAnalysis {
	return &model.CompetitiveAnalysis{
		TotalCompetitors:    0,
		TopCompetitors:      []model.CompetitorMention{},
		MarketGaps:          []string{"Error al procesar análisis competitivo"},
		CompetitiveStrength: "medium",
		Recommendations:     []string{"Se requiere análisis manual debido a error en procesamiento"},
	}
}

// coverageSummary runs the heuristic extractor over every response and
// aggregates mention counts per competitor and per provider.
func coverageSummary(brand model.Brand, questionResults []model.MultiProviderQuestionResult) []competitorCoverage {
	byName := make(map[string]*competitorCoverage)
	var order []string
	for _, qr := range questionResults {
		for _, r := range qr.Results {
			for _, name := range scrape.ExtractCompanyMentions(r.Response) {
				if strings.EqualFold(name, brand.Name) {
					continue
				}
				cov, ok := byName[name]
				if !ok {
					cov = &competitorCoverage{name: name, providers: make(map[model.Provider]struct{})}
					byName[name] = cov
					order = append(order, name)
				}
				cov.mentions++
				cov.providers[r.Provider] = struct{}{}
			}
		}
	}

	out := make([]competitorCoverage, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

func competitionPrompt(brand model.Brand, questionResults []model.MultiProviderQuestionResult) string {
	var responses []string
	for _, qr := range questionResults {
		for _, r := range qr.Results {
			if r.Response != "" {
				responses = append(responses, r.Response)
			}
		}
	}
	allResponses := strings.Join(responses, "\n\n")

	if coverage := coverageSummary(brand, questionResults); len(coverage) > 0 {
		var lines []string
		for _, c := range coverage {
			lines = append(lines, fmt.Sprintf("%s: %d menciones en %d proveedores", c.name, c.mentions, len(c.providers)))
		}
		allResponses += "\n\nRESUMEN DE COBERTURA POR PROVEEDOR:\n" + strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString("Actúa como un experto en análisis competitivo y marketing digital. " +
		"Analiza las siguientes respuestas de IA para identificar y evaluar la competencia mencionada.\n\n")
	b.WriteString("CONTEXTO:\n")
	fmt.Fprintf(&b, "- Marca objetivo: %q\n", brand.Name)
	fmt.Fprintf(&b, "- Sector: %q\n", brand.Sector)
	fmt.Fprintf(&b, "- Palabras clave: %q\n\n", keywordsOrDefault(brand))
	fmt.Fprintf(&b, "RESPUESTAS A ANALIZAR (de múltiples proveedores de IA):\n%s\n\n", allResponses)
	b.WriteString(`INSTRUCCIONES:
1. Identifica TODAS las empresas, marcas o proveedores mencionados en las respuestas
2. Excluye herramientas genéricas a menos que sean específicamente relevantes al sector
3. Cuenta cuántas veces aparece cada competidor en todos los proveedores
4. Evalúa el sentimiento general hacia cada competidor
5. Identifica gaps de mercado donde no se mencionan competidores específicos
6. Prioriza competidores que aparecen en múltiples proveedores (mayor consenso)

Responde en formato JSON con esta estructura exacta:
{
  "competitors": [
    {
      "name": "Nombre de la empresa",
      "mentions": 0,
      "sentiment": "positive" | "negative" | "neutral",
      "description": "Breve descripción de cómo se presenta la empresa",
      "provider_consensus": 0
    }
  ],
  "market_gaps": ["Área específica donde no se mencionan competidores claros"],
  "competitive_strength": "low" | "medium" | "high",
  "key_insights": ["Insight importante sobre la competencia"]
}

IMPORTANTE:
- Responde únicamente con el JSON válido y completo
- Limita la descripción de cada competidor a máximo 100 caracteres
- Si hay muchos competidores, incluye solo los 20 más relevantes`)
	return b.String()
}
