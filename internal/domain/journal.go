package domain

import "time"

// JournalEntry is one cooked recipe recorded by the user, with the nutrition
// estimate captured at the time it was recorded.
type JournalEntry struct {
	ID          string           `json:"id" bson:"_id"`
	RecipeName  string           `json:"recipeName" bson:"recipe_name"`
	Ingredients []string         `json:"ingredients" bson:"ingredients"`
	Notes       string           `json:"notes,omitempty" bson:"notes,omitempty"`
	CookedAt    time.Time        `json:"cookedAt" bson:"cooked_at"`
	CreatedAt   time.Time        `json:"createdAt" bson:"created_at"`
	Nutrition   NutritionSummary `json:"nutrition" bson:"nutrition"`
}

// RecordRequest represents a request to add a journal entry
type RecordRequest struct {
	RecipeName  string     `json:"recipeName"`
	Ingredients []string   `json:"ingredients"`
	Notes       string     `json:"notes,omitempty"`
	CookedAt    *time.Time `json:"cookedAt,omitempty"`
}
