// Package fooddb loads and validates the food reference table used for
// nutrition estimates.
package fooddb

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fridgechef/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed foods.yaml
var defaultTable []byte

// tableFile is the on-disk layout of a reference table
type tableFile struct {
	Foods []domain.FoodReferenceEntry `yaml:"foods"`
}

// DefaultEntries returns a fresh copy of the bundled reference table
func DefaultEntries() ([]domain.FoodReferenceEntry, error) {
	return Parse(bytes.NewReader(defaultTable))
}

// Load reads the reference table at path, or the bundled table when path is empty
func Load(path string) ([]domain.FoodReferenceEntry, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultEntries()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference table: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes and validates a YAML reference table
func Parse(r io.Reader) ([]domain.FoodReferenceEntry, error) {
	var table tableFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidReferenceTable)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidReferenceTable, err)
	}

	if err := Validate(table.Foods); err != nil {
		return nil, err
	}
	return table.Foods, nil
}

// Validate checks that every entry can produce an estimate
func Validate(entries []domain.FoodReferenceEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no foods defined", domain.ErrInvalidReferenceTable)
	}

	for i, entry := range entries {
		label := entry.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		if strings.TrimSpace(entry.Name) == "" && len(entry.Aliases) == 0 {
			return fmt.Errorf("%w: entry %s has no name or aliases", domain.ErrInvalidReferenceTable, label)
		}

		n := entry.NutrientsPer100g
		if n.Calories < 0 || n.Protein < 0 || n.Carbohydrates < 0 || n.TotalFat < 0 {
			return fmt.Errorf("%w: entry %s has negative nutrients", domain.ErrInvalidReferenceTable, label)
		}

		if entry.DefaultPortionGrams <= 0 {
			return fmt.Errorf("%w: entry %s needs a positive default portion", domain.ErrInvalidReferenceTable, label)
		}

		for unit, grams := range entry.PortionUnitGrams {
			if grams <= 0 {
				return fmt.Errorf("%w: entry %s unit %q must weigh more than zero", domain.ErrInvalidReferenceTable, label, unit)
			}
		}
	}

	return nil
}
