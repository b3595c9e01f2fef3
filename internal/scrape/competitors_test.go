package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompanyMentions(t *testing.T) {
	text := "Para cuentas corrientes destacan Banco Estado, Banco Falabella y tenpo.cl. También BCI ofrece buenas condiciones."
	got := ExtractCompanyMentions(text)
	assert.Contains(t, got, "Banco Estado")
	assert.Contains(t, got, "Banco Falabella")
	assert.Contains(t, got, "tenpo.cl")
	assert.Contains(t, got, "BCI")
}

func TestExtractCompanyMentions_SkipsGenericTokens(t *testing.T) {
	got := ExtractCompanyMentions("En Chile el IVA aplica a todo. FAQ disponible en USD y CLP.")
	assert.NotContains(t, got, "Chile")
	assert.NotContains(t, got, "IVA")
	assert.NotContains(t, got, "FAQ")
	assert.NotContains(t, got, "USD")
	assert.NotContains(t, got, "CLP")
}

func TestExtractCompanyMentions_CountsRepeats(t *testing.T) {
	got := ExtractCompanyMentions("Tenpo es popular. Tenpo no cobra comisiones.")
	count := 0
	for _, m := range got {
		if m == "Tenpo" {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestExtractCompanyMentions_Empty(t *testing.T) {
	assert.Empty(t, ExtractCompanyMentions("sin nombres propios aquí"))
}
