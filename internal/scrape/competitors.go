package scrape

import (
	"regexp"
	"strings"
)

// Company-name heuristics: capitalized proper names, bare domains, and
// acronyms. Deliberately loose; the caller filters and weighs matches.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+)*)\b`),
	regexp.MustCompile(`\b([a-z0-9-]+\.(?:com|cl|net|org|io))\b`),
	regexp.MustCompile(`\b([A-Z]{2,})\b`),
}

// genericTokens are capitalized words and acronyms that are never
// company names on their own.
var genericTokens = map[string]struct{}{
	"THE": {}, "AND": {}, "FOR": {}, "WITH": {}, "FROM": {}, "THIS": {}, "THAT": {},
	"LOS": {}, "LAS": {}, "UNA": {}, "PARA": {}, "POR": {}, "CON": {}, "SIN": {},
	"ADEMAS": {}, "TAMBIEN": {}, "ALGUNAS": {}, "ALGUNOS": {}, "OTRAS": {}, "OTROS": {},
	"CHILE": {}, "SANTIAGO": {}, "USD": {}, "CLP": {}, "IVA": {}, "FAQ": {},
}

// ExtractCompanyMentions returns every company-looking token in the
// text, one entry per occurrence, in match order. The regex heuristic
// sits behind this narrow function so a real NER pass can replace it
// without touching callers.
func ExtractCompanyMentions(text string) []string {
	var mentions []string
	for _, pattern := range companyPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if len([]rune(name)) <= 2 {
				continue
			}
			if _, ok := genericTokens[strings.ToUpper(fold(name))]; ok {
				continue
			}
			mentions = append(mentions, name)
		}
	}
	return mentions
}
