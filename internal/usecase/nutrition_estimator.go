package usecase

import (
	"math"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/fridgechef/backend/internal/observability/metrics"
	"go.uber.org/zap"
)

// NutritionEstimator maps free-text ingredient lines to macro-nutrient estimates
// using an injected reference table. Only exact alias matches count; unknown
// foods are reported as missing and contribute nothing to the total.
//
// The estimator is safe for concurrent use: after construction it only reads
// its own copy of the table.
type NutritionEstimator struct {
	entries []domain.FoodReferenceEntry
	index   map[string]*domain.FoodReferenceEntry
	parser  *IngredientParser
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewNutritionEstimator copies the reference entries and indexes them by
// normalized alias. When two entries share an alias the first one wins.
func NewNutritionEstimator(entries []domain.FoodReferenceEntry, log *zap.Logger, m *metrics.Metrics) *NutritionEstimator {
	if log == nil {
		log = zap.NewNop()
	}

	// The parser must know every unit the table defines
	var tableUnits []string
	for _, entry := range entries {
		for unit := range entry.PortionUnitGrams {
			tableUnits = append(tableUnits, unit)
		}
	}
	parser := NewIngredientParser(tableUnits...)

	table := make([]domain.FoodReferenceEntry, len(entries))
	for i, entry := range entries {
		table[i] = cloneEntry(entry, parser)
	}

	index := make(map[string]*domain.FoodReferenceEntry)
	for i := range table {
		names := append([]string{}, table[i].Aliases...)
		if table[i].Name != "" {
			names = append(names, table[i].Name)
		}
		for _, alias := range names {
			key := NormalizeFoodName(alias)
			if key == "" {
				continue
			}
			if _, exists := index[key]; !exists {
				index[key] = &table[i]
			}
		}
	}

	return &NutritionEstimator{
		entries: table,
		index:   index,
		parser:  parser,
		log:     log.Named("estimator"),
		metrics: m,
	}
}

// cloneEntry deep-copies an entry and canonicalizes its unit names
func cloneEntry(entry domain.FoodReferenceEntry, parser *IngredientParser) domain.FoodReferenceEntry {
	clone := entry
	clone.Aliases = append([]string(nil), entry.Aliases...)
	if entry.PortionUnitGrams != nil {
		clone.PortionUnitGrams = make(map[string]float64, len(entry.PortionUnitGrams))
		for unit, grams := range entry.PortionUnitGrams {
			canonical, _ := parser.CanonicalUnit(unit)
			clone.PortionUnitGrams[canonical] = grams
		}
	}
	return clone
}

// Size returns the number of reference entries
func (e *NutritionEstimator) Size() int {
	return len(e.entries)
}

// Lookup returns the reference entry for a food name, if any
func (e *NutritionEstimator) Lookup(foodName string) (domain.FoodReferenceEntry, bool) {
	entry, ok := e.index[NormalizeFoodName(foodName)]
	if !ok {
		return domain.FoodReferenceEntry{}, false
	}
	return cloneEntry(*entry, e.parser), true
}

// Estimate computes the nutrition summary for the given ingredient lines.
// It never fails: empty input yields a zero summary and unknown foods are
// marked missing. The breakdown follows the input order exactly.
func (e *NutritionEstimator) Estimate(lines []string) domain.NutritionSummary {
	summary := domain.NutritionSummary{
		Breakdown:     make([]domain.NutritionBreakdownEntry, 0, len(lines)),
		DetectedCount: len(lines),
	}

	var total domain.Nutrients
	for _, line := range lines {
		entry := e.estimateLine(line)
		if entry.Profile != nil {
			total = total.Add(*entry.Profile)
		}
		summary.Breakdown = append(summary.Breakdown, entry)
		e.metrics.ObserveIngredient(string(entry.DataQuality))
	}
	summary.Total = roundNutrients(total)

	e.log.Debug("estimated nutrition",
		zap.Int("ingredients", len(lines)),
		zap.Float64("calories", summary.Total.Calories),
	)

	return summary
}

// estimateLine parses, matches and scales a single ingredient line
func (e *NutritionEstimator) estimateLine(line string) domain.NutritionBreakdownEntry {
	parsed := e.parser.Parse(line)

	ref, ok := e.index[parsed.FoodName]
	if !ok {
		e.log.Debug("no reference match",
			zap.String("ingredient", line),
			zap.String("food_name", parsed.FoodName),
		)
		return domain.NutritionBreakdownEntry{
			Ingredient:  line,
			DataQuality: domain.DataQualityMissing,
		}
	}

	grams := resolvePortionGrams(parsed, ref)
	profile := scaleNutrients(ref.NutrientsPer100g, grams)
	matched := cloneEntry(*ref, e.parser)

	e.log.Debug("reference match",
		zap.String("ingredient", line),
		zap.String("entry", ref.Name),
		zap.String("unit", parsed.Unit),
		zap.Float64("grams", grams),
	)

	return domain.NutritionBreakdownEntry{
		Ingredient:   line,
		MatchedEntry: &matched,
		PortionGrams: &grams,
		Profile:      &profile,
		DataQuality:  domain.DataQualityAuthoritative,
	}
}

// resolvePortionGrams picks the portion mass for a matched line:
// a food-specific unit first, then a mass unit, then the default portion.
func resolvePortionGrams(parsed domain.ParsedIngredientLine, ref *domain.FoodReferenceEntry) float64 {
	quantity := 1.0
	if parsed.Quantity != nil {
		quantity = *parsed.Quantity
	}

	if parsed.Unit != "" {
		if unitGrams, ok := ref.PortionUnitGrams[parsed.Unit]; ok {
			return unitGrams * quantity
		}
	}

	if parsed.Quantity != nil {
		if factor, ok := massUnitGrams[parsed.Unit]; ok {
			return quantity * factor
		}
	}

	return ref.DefaultPortionGrams * quantity
}

// scaleNutrients scales per-100g values to the given portion, rounded to one decimal
func scaleNutrients(per100g domain.Nutrients, grams float64) domain.Nutrients {
	return domain.Nutrients{
		Calories:      roundOneDecimal(per100g.Calories * grams / 100),
		Protein:       roundOneDecimal(per100g.Protein * grams / 100),
		Carbohydrates: roundOneDecimal(per100g.Carbohydrates * grams / 100),
		TotalFat:      roundOneDecimal(per100g.TotalFat * grams / 100),
	}
}

func roundNutrients(n domain.Nutrients) domain.Nutrients {
	return domain.Nutrients{
		Calories:      roundOneDecimal(n.Calories),
		Protein:       roundOneDecimal(n.Protein),
		Carbohydrates: roundOneDecimal(n.Carbohydrates),
		TotalFat:      roundOneDecimal(n.TotalFat),
	}
}

// roundOneDecimal rounds half away from zero
func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
