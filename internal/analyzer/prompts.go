package analyzer

import (
	"fmt"
	"strings"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

// keywordsOrDefault renders brand keywords for a prompt, with the
// literal placeholder the prompts expect when none were given.
func keywordsOrDefault(brand model.Brand) string {
	if brand.Keywords == "" {
		return "No especificadas"
	}
	return brand.Keywords
}

const (
	answerTemperature   = 0.7
	answerMaxTokens     = 600
	classifyTemperature = 0.2
	classifyMaxTokens   = 500
)

const answerSystemPrompt = "Eres un asistente de IA útil. Responde considerando que el usuario está en Chile " +
	"y busca información relevante para el mercado chileno."

const classifySystemPrompt = "Eres un experto en análisis de contenido y marketing digital. " +
	"Responde únicamente con el JSON solicitado, sin explicaciones adicionales."

// classificationPrompt asks the provider to evaluate its own earlier
// answer for brand visibility and return a strict JSON object.
func classificationPrompt(brand model.Brand, question, answer string) string {
	var b strings.Builder
	b.WriteString("Actúa como un experto en análisis de contenido y marketing digital. " +
		"Tu tarea es evaluar si una marca específica fue mencionada en una respuesta de IA.\n\n")
	b.WriteString("CONTEXTO DE LA MARCA A ANALIZAR:\n")
	fmt.Fprintf(&b, "- Dominio/Marca: %q\n", brand.Name)
	fmt.Fprintf(&b, "- Sector: %q\n", brand.Sector)
	fmt.Fprintf(&b, "- Palabras clave: %q\n\n", keywordsOrDefault(brand))
	fmt.Fprintf(&b, "PREGUNTA ORIGINAL: %q\n\n", question)
	fmt.Fprintf(&b, "RESPUESTA A ANALIZAR:\n%q\n\n", answer)
	fmt.Fprintf(&b, `INSTRUCCIONES DE ANÁLISIS:
1. Busca menciones directas de la marca %q o variaciones muy similares
2. Busca menciones indirectas que puedan referirse a la marca
3. Evalúa la relevancia de la marca en el contexto de la pregunta
4. Determina la posición aproximada de la mención (1-10, donde 1 es al principio)
5. Evalúa el sentimiento de la mención (positivo, negativo, neutral)

CONSIDERA:
- Solo marca como "mencionada" si hay una referencia clara y directa
- Las menciones genéricas del sector NO cuentan como menciones de la marca
- La posición debe reflejar dónde aparece la mención más prominente
- El sentimiento debe basarse en el contexto de la mención

Responde en formato JSON con esta estructura exacta:
{
  "mentioned": boolean,
  "position": number o null,
  "sentiment": "positive" | "negative" | "neutral",
  "analysis_notes": "breve explicación del análisis realizado"
}`, brand.Name)
	return b.String()
}
