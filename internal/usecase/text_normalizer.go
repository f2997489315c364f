package usecase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var (
	// Parenthetical asides like "(about 2 cups)" or "[optional]"
	parentheticalRegex = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)

	// Food names keep Latin letters, digits and Hangul syllables only
	nonFoodNameRegex = regexp.MustCompile(`[^a-z0-9가-힣\s]`)

	// Titles and recipe names keep letters and digits of any script
	nonWordRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// stripDiacritics folds "jalapeño" to "jalapeno". Hangul syllables decompose
// under NFD and are recomposed by the trailing NFC.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// NormalizeFoodName prepares an ingredient name for alias lookup.
// Lowercases, drops parenthetical asides, strips diacritics and anything
// outside Latin letters, digits and Hangul, then collapses whitespace.
func NormalizeFoodName(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = parentheticalRegex.ReplaceAllString(result, " ")
	result = stripDiacritics(result)
	result = nonFoodNameRegex.ReplaceAllString(result, " ")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// NormalizeText prepares free text (video titles, recipe names) for keyword matching
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	result := stripDiacritics(strings.ToLower(s))
	result = nonWordRegex.ReplaceAllString(result, " ")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// ExtractKeywords returns the whitespace-delimited words of the normalized
// text that are longer than one character, in order of appearance. Repeated
// words are kept; each occurrence counts when scoring.
func ExtractKeywords(text string) []string {
	var keywords []string
	for _, word := range strings.Fields(NormalizeText(text)) {
		if utf8.RuneCountInString(word) <= 1 {
			continue
		}
		keywords = append(keywords, word)
	}

	return keywords
}
