package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fridgechef/backend/internal/domain"
)

// leadingQuantityRegex matches an integer or decimal amount at the start of a line
var leadingQuantityRegex = regexp.MustCompile(`^(\d+(?:\.\d+)?)`)

// unitAliases maps unit spellings (English and Korean) to a canonical unit name
var unitAliases = map[string]string{
	// Mass
	"g": "g", "gr": "g", "gram": "g", "grams": "g", "그램": "g",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg", "킬로그램": "kg",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",

	// Volume
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "밀리리터": "ml",
	"cup": "cup", "cups": "cup", "컵": "cup",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp", "큰술": "tbsp", "스푼": "tbsp",
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp", "작은술": "tsp",

	// Count and size
	"piece": "piece", "pieces": "piece", "pc": "piece", "pcs": "piece", "개": "piece",
	"slice": "slice", "slices": "slice", "장": "slice",
	"clove": "clove", "cloves": "clove", "쪽": "clove",
	"bowl": "bowl", "bowls": "bowl", "공기": "bowl",
	"fillet": "fillet", "fillets": "fillet",
	"stalk": "stalk", "stalks": "stalk", "대": "stalk",
	"block": "block", "blocks": "block", "모": "block",
	"small": "small", "medium": "medium", "large": "large",
	"serving": "serving", "servings": "serving", "인분": "serving",
}

// massUnitGrams converts mass units to grams; these apply to every food
var massUnitGrams = map[string]float64{
	"g":  1,
	"kg": 1000,
	"oz": 28.349523125,
	"lb": 453.59237,
}

// IngredientParser splits free-text ingredient lines into quantity, unit and food name
type IngredientParser struct {
	units map[string]string
}

// NewIngredientParser creates a parser that recognizes the built-in unit
// vocabulary plus any extra unit names (typically the reference table's units).
func NewIngredientParser(extraUnits ...string) *IngredientParser {
	units := make(map[string]string, len(unitAliases)+len(extraUnits))
	for alias, canonical := range unitAliases {
		units[alias] = canonical
	}
	for _, unit := range extraUnits {
		u := strings.ToLower(strings.TrimSpace(unit))
		if u == "" {
			continue
		}
		if _, exists := units[u]; !exists {
			units[u] = u
		}
	}
	return &IngredientParser{units: units}
}

// CanonicalUnit resolves a unit spelling to its canonical name.
// Unknown units are returned lowercased with ok=false.
func (p *IngredientParser) CanonicalUnit(unit string) (string, bool) {
	u := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), ".")
	canonical, ok := p.units[u]
	if !ok {
		return u, false
	}
	return canonical, true
}

// Parse extracts a leading quantity and adjacent unit from an ingredient line.
// Lines without a well-formed leading number are treated entirely as a food name.
// Trailing quantities such as "닭가슴살 150g" are not parsed.
func (p *IngredientParser) Parse(line string) domain.ParsedIngredientLine {
	parsed := domain.ParsedIngredientLine{RawText: line}
	text := strings.TrimSpace(line)

	match := leadingQuantityRegex.FindString(text)
	if match == "" {
		parsed.FoodName = NormalizeFoodName(text)
		return parsed
	}

	rest := text[len(match):]
	// "1.2.3 cups", "1,5 kg" or "1/2 cup" are not numbers this parser understands
	if rest != "" && strings.ContainsAny(rest[:1], ".,/") {
		parsed.FoodName = NormalizeFoodName(text)
		return parsed
	}

	quantity, err := strconv.ParseFloat(match, 64)
	if err != nil {
		parsed.FoodName = NormalizeFoodName(text)
		return parsed
	}
	parsed.Quantity = &quantity

	rest = strings.TrimSpace(rest)
	token, remainder := splitFirstToken(rest)
	if unit, ok := p.CanonicalUnit(token); ok {
		parsed.Unit = unit
		rest = remainder
	}

	// "1 cup of rice"
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(strings.ToLower(rest), "of ") {
		rest = rest[3:]
	}

	parsed.FoodName = NormalizeFoodName(rest)
	return parsed
}

// splitFirstToken returns the first whitespace-delimited token and the remainder
func splitFirstToken(s string) (string, string) {
	idx := strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n'
	})
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+1:]
}

// SanitizeIngredients trims raw ingredient strings, drops empties and removes
// case-insensitive duplicates while keeping the first occurrence order.
func SanitizeIngredients(lines []string) []string {
	result := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))

	for _, line := range lines {
		cleaned := multipleSpacesRegex.ReplaceAllString(strings.TrimSpace(line), " ")
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, cleaned)
	}

	return result
}
