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

const questionCount = 5

const questionSystemPrompt = "Eres un experto en intención de búsqueda y comportamiento del consumidor. " +
	"Genera preguntas que busquen recomendaciones específicas de proveedores, " +
	"sin mencionar marcas concretas en las preguntas."

// GenerateQuestions asks OpenAI for purchase-intent questions a
// potential customer of the brand's sector would pose to an AI
// assistant. Custom questions supplied by the caller bypass this
// entirely; see Runner.
func GenerateQuestions(ctx context.Context, client openai.Client, brand model.Brand) ([]string, error) {
	if client == nil {
		return nil, eris.New("campaign: question generation requires an openai client")
	}

	temperature := 0.7
	maxTokens := 1000
	resp, err := client.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Messages: []openai.Message{
			{Role: "system", Content: questionSystemPrompt},
			{Role: "user", Content: questionPrompt(brand)},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "campaign: generate questions")
	}

	content := resp.Content()
	if content == "" {
		return nil, eris.New("campaign: empty question generation response")
	}

	var questions []string
	if err := json.Unmarshal([]byte(stripFences(content)), &questions); err != nil {
		zap.L().Error("unparseable question list", zap.String("content", content))
		return nil, eris.Wrap(err, "campaign: parse generated questions")
	}
	if len(questions) == 0 {
		return nil, eris.New("campaign: question generation returned an empty list")
	}
	return questions, nil
}

func questionPrompt(brand model.Brand) string {
	keywordsPart := ""
	if brand.Keywords != "" {
		keywordsPart = fmt.Sprintf(" Palabras clave adicionales para considerar: %s.", brand.Keywords)
	}
	return fmt.Sprintf(`Actúa como experto en comportamiento del consumidor y búsquedas de usuarios. Necesito que generes preguntas que un cliente potencial haría cuando busca específicamente ENCONTRAR, ELEGIR o CONTRATAR servicios/productos del sector %q.%s

IMPORTANTE: Las preguntas deben tener INTENCIÓN DE BÚSQUEDA ESPECÍFICA, del tipo que naturalmente llevaría a recomendaciones de marcas o empresas concretas.

Las preguntas deben:
- Buscar recomendaciones concretas de empresas/marcas
- Usar términos como "mejor", "dónde encontrar", "cuál elegir", "me recomiendan"
- Ser del tipo que cualquier persona haría al buscar un proveedor
- NO mencionar marcas específicas en la pregunta
- Representar intención real de contratación/compra

Genera exactamente %d preguntas de este tipo para el sector %q.

Responde ÚNICAMENTE con un array JSON de strings, sin explicaciones adicionales.`,
		brand.Sector, keywordsPart, questionCount, brand.Sector)
}

// stripFences removes a surrounding markdown code fence from a JSON
// payload.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
