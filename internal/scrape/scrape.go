// Package scrape extracts auxiliary structure (search terms, cited
// sources, competitor names) from free-form provider answers and cleans
// the answer text for display. All functions are pure and total: they
// return empty results or the input unchanged rather than failing.
package scrape

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// criteriaHeaders are the marker lines that introduce an explicit
// search-term list. Matching is case- and accent-insensitive.
var criteriaHeaders = []string{
	"criterios de busqueda",
	"terminos de busqueda",
	"search criteria",
	"search terms used",
	"search terms",
}

// sourceHeaders introduce a trailing citation block. CleanResponseContent
// removes everything from the first header occurrence to the end of the
// text, even when legitimate content follows the block.
var sourceHeaders = []string{
	"fuentes consultadas",
	"fuentes:",
	"sources consulted",
	"sources:",
	"references:",
	"referencias",
}

// stopwords excluded from fallback criteria derivation. Covers the
// Spanish question openers plus common English fillers.
var stopwords = map[string]struct{}{
	"cual": {}, "cuales": {}, "donde": {}, "como": {}, "que": {},
	"quien": {}, "cuando": {}, "para": {}, "por": {}, "con": {},
	"las": {}, "los": {}, "una": {}, "unos": {}, "unas": {},
	"mejor": {}, "mejores": {}, "mas": {}, "menos": {},
	"what": {}, "which": {}, "where": {}, "when": {}, "best": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {},
	"this": {}, "that": {}, "recomiendan": {}, "recomienda": {},
}

var (
	bareURLRe      = regexp.MustCompile(`https?://[^\s<>()\[\]"']+`)
	markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)
	parenURLRe     = regexp.MustCompile(`\(([^()\s]+\.[^()\s]+)\)`)
	parenCiteRe    = regexp.MustCompile(`\s*\((?:https?://|www\.)[^)]*\)`)
	citationRe     = regexp.MustCompile(`\[\d+\]`)
	jsonFragmentRe = regexp.MustCompile(`\{[^{}]*"[^"]*"\s*:[^{}]*\}`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	multiSpaceRe   = regexp.MustCompile(`[ \t]{2,}`)
	tokenSplitRe   = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// foldTransformer strips combining marks so accented and unaccented
// spellings compare equal ("búsqueda" == "busqueda").
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// ExtractSearchCriteria returns the search terms a provider declared in
// its answer. When no marker line is present, it derives up to three
// criteria from the original question: tokens longer than three
// characters that are not stopwords, in original order.
func ExtractSearchCriteria(responseText, originalQuestion string) []string {
	for _, line := range strings.Split(responseText, "\n") {
		folded := fold(line)
		for _, header := range criteriaHeaders {
			idx := strings.Index(folded, header)
			if idx < 0 {
				continue
			}
			// Slice by rune count: folding collapses each accented rune
			// to one rune, so rune offsets line up while byte offsets
			// drift.
			end := utf8.RuneCountInString(folded[:idx]) + utf8.RuneCountInString(header)
			orig := []rune(line)
			if end > len(orig) {
				continue
			}
			rest := strings.TrimLeft(string(orig[end:]), ":- \t")
			var terms []string
			for _, part := range strings.Split(rest, ",") {
				if t := strings.TrimSpace(part); t != "" {
					terms = append(terms, t)
				}
			}
			if len(terms) > 0 {
				return terms
			}
		}
	}

	// Fallback: derive from the question itself. Always non-nil so the
	// field marshals as [] rather than null.
	criteria := []string{}
	for _, tok := range tokenSplitRe.Split(originalQuestion, -1) {
		if len([]rune(tok)) <= 3 {
			continue
		}
		if _, ok := stopwords[fold(tok)]; ok {
			continue
		}
		criteria = append(criteria, tok)
		if len(criteria) == 3 {
			break
		}
	}
	return criteria
}

// ExtractSources collects cited URLs from an answer: bare URLs, URLs
// inside a labeled sources block, markdown link targets, and
// parenthesized URLs. Candidates are trimmed of trailing punctuation,
// deduplicated on exact string, and dropped when shorter than ten
// characters or missing a dot.
func ExtractSources(responseText string) []string {
	var candidates []string

	candidates = append(candidates, bareURLRe.FindAllString(responseText, -1)...)

	if block := sourcesBlock(responseText); block != "" {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•0123456789. "))
			if line == "" {
				continue
			}
			if urls := bareURLRe.FindAllString(line, -1); len(urls) > 0 {
				candidates = append(candidates, urls...)
			} else if strings.Contains(line, ".") && !strings.Contains(line, " ") {
				candidates = append(candidates, line)
			}
		}
	}

	for _, m := range markdownLinkRe.FindAllStringSubmatch(responseText, -1) {
		candidates = append(candidates, m[2])
	}
	for _, m := range parenURLRe.FindAllStringSubmatch(responseText, -1) {
		candidates = append(candidates, m[1])
	}

	seen := make(map[string]struct{})
	sources := []string{}
	for _, c := range candidates {
		c = strings.TrimRight(c, ".,;:!?)")
		if len(c) < 10 || !strings.Contains(c, ".") {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		sources = append(sources, c)
	}
	return sources
}

// sourcesBlock returns the text from the first source header to the end
// of the input, or "" when no header is present.
func sourcesBlock(text string) string {
	folded := fold(text)
	best := -1
	for _, header := range sourceHeaders {
		if idx := strings.Index(folded, header); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	if best < 0 {
		return ""
	}
	// Offsets into the folded text line up with the original because
	// folding only removes combining marks after NFD; realign by line
	// count to stay safe with multi-byte input.
	foldedPrefix := folded[:best]
	line := strings.Count(foldedPrefix, "\n")
	lines := strings.Split(text, "\n")
	if line >= len(lines) {
		return ""
	}
	return strings.Join(lines[line:], "\n")
}

// CleanResponseContent strips citation apparatus from an answer: the
// trailing sources block (from its header to the end of the text),
// parenthesized URL citations, markdown link syntax, standalone URLs,
// numeric citation markers, and embedded JSON fragments. Whitespace is
// then collapsed and trimmed.
func CleanResponseContent(responseText string) string {
	text := responseText

	folded := fold(text)
	cut := -1
	for _, header := range sourceHeaders {
		if idx := strings.Index(folded, header); idx >= 0 && (cut < 0 || idx < cut) {
			cut = idx
		}
	}
	if cut >= 0 {
		// Cut at the marker itself, not its line, so text preceding the
		// header on the same line survives. Rune offsets line up between
		// folded and original text because folding collapses each
		// accented rune to one rune.
		orig := []rune(text)
		if idx := utf8.RuneCountInString(folded[:cut]); idx <= len(orig) {
			text = string(orig[:idx])
		}
	}

	text = parenCiteRe.ReplaceAllString(text, "")
	text = markdownLinkRe.ReplaceAllString(text, "$1")
	text = bareURLRe.ReplaceAllString(text, "")
	text = citationRe.ReplaceAllString(text, "")
	text = jsonFragmentRe.ReplaceAllString(text, "")

	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
