package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/fridgechef/backend/internal/domain"
)

// MemoryJournal is an in-process journal store used when no database is configured
type MemoryJournal struct {
	mu      sync.RWMutex
	entries map[string]domain.JournalEntry
}

// NewMemoryJournal creates an empty in-memory journal
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{entries: make(map[string]domain.JournalEntry)}
}

// Save inserts or replaces an entry
func (j *MemoryJournal) Save(ctx context.Context, entry *domain.JournalEntry) error {
	if entry == nil || entry.ID == "" {
		return domain.ErrInvalidRequest
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[entry.ID] = copyEntry(*entry)
	return nil
}

// GetByID returns a copy of the stored entry
func (j *MemoryJournal) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	entry, ok := j.entries[id]
	if !ok {
		return nil, domain.ErrJournalEntryNotFound
	}
	result := copyEntry(entry)
	return &result, nil
}

// List returns up to limit entries, most recently cooked first
func (j *MemoryJournal) List(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	j.mu.RLock()
	result := make([]domain.JournalEntry, 0, len(j.entries))
	for _, entry := range j.entries {
		result = append(result, copyEntry(entry))
	}
	j.mu.RUnlock()

	sort.Slice(result, func(a, b int) bool {
		if !result[a].CookedAt.Equal(result[b].CookedAt) {
			return result[a].CookedAt.After(result[b].CookedAt)
		}
		return result[a].ID < result[b].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete removes an entry
func (j *MemoryJournal) Delete(ctx context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.entries[id]; !ok {
		return domain.ErrJournalEntryNotFound
	}
	delete(j.entries, id)
	return nil
}

// copyEntry detaches an entry, including the breakdown's pointer fields, from the caller
func copyEntry(entry domain.JournalEntry) domain.JournalEntry {
	entry.Ingredients = append([]string(nil), entry.Ingredients...)
	if entry.Nutrition.Breakdown != nil {
		breakdown := make([]domain.NutritionBreakdownEntry, len(entry.Nutrition.Breakdown))
		for i, item := range entry.Nutrition.Breakdown {
			breakdown[i] = copyBreakdownEntry(item)
		}
		entry.Nutrition.Breakdown = breakdown
	}
	return entry
}

func copyBreakdownEntry(item domain.NutritionBreakdownEntry) domain.NutritionBreakdownEntry {
	if item.MatchedEntry != nil {
		matched := *item.MatchedEntry
		matched.Aliases = append([]string(nil), item.MatchedEntry.Aliases...)
		if item.MatchedEntry.PortionUnitGrams != nil {
			matched.PortionUnitGrams = make(map[string]float64, len(item.MatchedEntry.PortionUnitGrams))
			for unit, grams := range item.MatchedEntry.PortionUnitGrams {
				matched.PortionUnitGrams[unit] = grams
			}
		}
		item.MatchedEntry = &matched
	}
	if item.PortionGrams != nil {
		grams := *item.PortionGrams
		item.PortionGrams = &grams
	}
	if item.Profile != nil {
		profile := *item.Profile
		item.Profile = &profile
	}
	return item
}
