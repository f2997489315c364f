package domain

// DataQuality labels how a breakdown entry was resolved
type DataQuality string

const (
	// DataQualityAuthoritative means an alias matched and a portion mass was resolved
	DataQualityAuthoritative DataQuality = "authoritative"
	// DataQualityMissing means no reference entry matched; no values are invented
	DataQualityMissing DataQuality = "missing"
)

// Nutrients contains the key macronutrients. Calories are kcal, the rest grams.
type Nutrients struct {
	Calories      float64 `json:"calories" yaml:"calories" bson:"calories"`
	Protein       float64 `json:"protein" yaml:"protein" bson:"protein"`
	Carbohydrates float64 `json:"carbohydrates" yaml:"carbohydrates" bson:"carbohydrates"`
	TotalFat      float64 `json:"totalFat" yaml:"totalFat" bson:"totalFat"`
}

// Add returns the field-wise sum of two nutrient profiles
func (n Nutrients) Add(other Nutrients) Nutrients {
	return Nutrients{
		Calories:      n.Calories + other.Calories,
		Protein:       n.Protein + other.Protein,
		Carbohydrates: n.Carbohydrates + other.Carbohydrates,
		TotalFat:      n.TotalFat + other.TotalFat,
	}
}

// FoodReferenceEntry is one read-only record of the food reference table.
// Unit conversions are food-specific: a "cup" of rice and a "cup" of milk
// weigh different amounts.
type FoodReferenceEntry struct {
	Name                string             `json:"name" yaml:"name" bson:"name"`
	Aliases             []string           `json:"aliases" yaml:"aliases" bson:"aliases"`
	NutrientsPer100g    Nutrients          `json:"nutrientsPer100g" yaml:"per100g" bson:"nutrientsPer100g"`
	DefaultPortionGrams float64            `json:"defaultPortionGrams" yaml:"defaultPortionGrams" bson:"defaultPortionGrams"`
	PortionUnitGrams    map[string]float64 `json:"portionUnitGrams,omitempty" yaml:"units,omitempty" bson:"portionUnitGrams,omitempty"`
	Source              string             `json:"source,omitempty" yaml:"source,omitempty" bson:"source,omitempty"`
}

// ParsedIngredientLine is the transient result of parsing one ingredient string
type ParsedIngredientLine struct {
	RawText  string
	Quantity *float64
	Unit     string
	FoodName string
}

// NutritionBreakdownEntry describes the estimate for a single input ingredient
type NutritionBreakdownEntry struct {
	Ingredient   string              `json:"ingredient" bson:"ingredient"`
	MatchedEntry *FoodReferenceEntry `json:"matchedEntry,omitempty" bson:"matchedEntry,omitempty"`
	PortionGrams *float64            `json:"portionGrams,omitempty" bson:"portionGrams,omitempty"`
	Profile      *Nutrients          `json:"profile,omitempty" bson:"profile,omitempty"`
	DataQuality  DataQuality         `json:"dataQuality" bson:"dataQuality"`
}

// NutritionSummary is the aggregate estimate for a list of ingredients
type NutritionSummary struct {
	Total         Nutrients                 `json:"total" bson:"total"`
	Breakdown     []NutritionBreakdownEntry `json:"breakdown" bson:"breakdown"`
	DetectedCount int                       `json:"detectedCount" bson:"detectedCount"`
}

// EstimateRequest represents a nutrition estimate request
type EstimateRequest struct {
	Ingredients []string `json:"ingredients"`
}
