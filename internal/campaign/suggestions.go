package campaign

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
	"github.com/aeo-snapshot/aeo-cli/pkg/openai"
)

const suggestionSystemPrompt = "Eres un experto en marketing digital y AEO. " +
	"Responde únicamente con el JSON solicitado."

// GenerateSuggestions asks OpenAI for four actionable AEO
// recommendations based on the campaign's results.
func GenerateSuggestions(ctx context.Context, client openai.Client, brand model.Brand, results []model.ProviderResult) ([]model.Suggestion, error) {
	if client == nil {
		return nil, eris.New("campaign: suggestion generation requires an openai client")
	}

	temperature := 0.7
	maxTokens := 1500
	resp, err := client.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Messages: []openai.Message{
			{Role: "system", Content: suggestionSystemPrompt},
			{Role: "user", Content: suggestionPrompt(brand, results)},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "campaign: generate suggestions")
	}

	content := resp.Content()
	if content == "" {
		return nil, eris.New("campaign: empty suggestion response")
	}

	var suggestions []model.Suggestion
	if err := json.Unmarshal([]byte(stripFences(content)), &suggestions); err != nil {
		zap.L().Error("unparseable suggestion list", zap.String("content", content))
		return nil, eris.Wrap(err, "campaign: parse suggestions")
	}
	return suggestions, nil
}

func suggestionPrompt(brand model.Brand, results []model.ProviderResult) string {
	mentioned := 0
	for _, r := range results {
		if r.Mentioned {
			mentioned++
		}
	}
	rate := 0.0
	if len(results) > 0 {
		rate = float64(mentioned) / float64(len(results)) * 100
	}

	resultsJSON, _ := json.MarshalIndent(results, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Actúa como un experto en marketing digital y optimización AEO (Answer Engine Optimization). "+
		"Analiza estos resultados de visibilidad de marca en respuestas de IA para la marca %q del sector %q.\n\n",
		brand.Name, brand.Sector)
	b.WriteString("DATOS DE LA MARCA:\n")
	fmt.Fprintf(&b, "- Marca: %q\n", brand.Name)
	fmt.Fprintf(&b, "- Sector: %q\n", brand.Sector)
	fmt.Fprintf(&b, "- Palabras clave: %q\n\n", keywordsOrDefault(brand))
	b.WriteString("MÉTRICAS DE VISIBILIDAD:\n")
	fmt.Fprintf(&b, "- Total de preguntas analizadas: %d\n", len(results))
	fmt.Fprintf(&b, "- Menciones obtenidas: %d\n", mentioned)
	fmt.Fprintf(&b, "- Tasa de visibilidad: %.1f%%\n\n", rate)
	fmt.Fprintf(&b, "RESULTADOS DETALLADOS:\n%s\n\n", resultsJSON)
	b.WriteString(`ANÁLISIS REQUERIDO:
Con base en estos datos, genera exactamente 4 sugerencias específicas y accionables para mejorar la visibilidad AEO de la marca.

ESTRUCTURA REQUERIDA:
Cada sugerencia debe tener:
- title: Título claro y específico
- description: Descripción detallada de la acción (mínimo 50 palabras)
- priority: "Alta", "Media" o "Baja" (basado en impacto vs esfuerzo)
- category: "Contenido", "Técnico", "Estrategia" o "Optimización"
- impact: Descripción del impacto esperado

CONSIDERACIONES ESPECIALES:
- Si la visibilidad es baja (<30%), prioriza estrategias de contenido y autoridad
- Si la visibilidad es media (30-70%), enfócate en optimización y posicionamiento
- Si la visibilidad es alta (>70%), sugiere estrategias de mantener y expandir
- Considera las preguntas donde NO aparece la marca como oportunidades principales

Responde ÚNICAMENTE con un array JSON de objetos, sin explicaciones adicionales.`)
	return b.String()
}

func keywordsOrDefault(brand model.Brand) string {
	if brand.Keywords == "" {
		return "No especificadas"
	}
	return brand.Keywords
}
