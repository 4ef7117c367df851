// Package region resolves postcodes to regional cost categories and their
// base-loan ceilings.
package region

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedRegion is returned for postcodes outside the funding area.
var ErrUnsupportedRegion = errors.New("unsupported region")

// CostCategory is the resolved regional category with its two loan
// ceilings.
type CostCategory struct {
	Category     int             `yaml:"category" json:"category"`
	TierACeiling decimal.Decimal `yaml:"tier_a_ceiling" json:"tier_a_ceiling"`
	TierBCeiling decimal.Decimal `yaml:"tier_b_ceiling" json:"tier_b_ceiling"`
}

// Lookup resolves a postcode to its cost category. Implementations are
// pure; the same postcode always resolves identically within a run.
type Lookup interface {
	Resolve(postcode string) (CostCategory, error)
}

// TableLookup resolves postcodes by longest-prefix match over a static
// table.
type TableLookup struct {
	categories map[int]CostCategory
	prefixes   map[string]int
}

// NewTableLookup builds a lookup from a category table and a
// prefix-to-category map.
func NewTableLookup(categories map[int]CostCategory, prefixes map[string]int) *TableLookup {
	return &TableLookup{categories: categories, prefixes: prefixes}
}

// DefaultLookup returns the built-in cost-category table.
func DefaultLookup() *TableLookup {
	return NewTableLookup(
		map[int]CostCategory{
			1: {Category: 1, TierACeiling: decimal.NewFromInt(110000), TierBCeiling: decimal.NewFromInt(90000)},
			2: {Category: 2, TierACeiling: decimal.NewFromInt(125000), TierBCeiling: decimal.NewFromInt(100000)},
			3: {Category: 3, TierACeiling: decimal.NewFromInt(145000), TierBCeiling: decimal.NewFromInt(115000)},
		},
		map[string]int{
			"0": 2, "1": 3, "2": 2, "3": 1, "4": 2,
			"5": 2, "6": 3, "7": 3, "8": 3, "9": 2,
		},
	)
}

// Resolve finds the cost category for a postcode by longest-prefix match.
func (t *TableLookup) Resolve(postcode string) (CostCategory, error) {
	code := strings.TrimSpace(postcode)
	if len(code) != 5 {
		return CostCategory{}, fmt.Errorf("postcode %q: %w", postcode, ErrUnsupportedRegion)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return CostCategory{}, fmt.Errorf("postcode %q: %w", postcode, ErrUnsupportedRegion)
		}
	}

	for l := len(code); l > 0; l-- {
		if cat, ok := t.prefixes[code[:l]]; ok {
			cc, ok := t.categories[cat]
			if !ok {
				return CostCategory{}, fmt.Errorf("postcode %q maps to unknown category %d: %w", postcode, cat, ErrUnsupportedRegion)
			}
			return cc, nil
		}
	}
	return CostCategory{}, fmt.Errorf("postcode %q: %w", postcode, ErrUnsupportedRegion)
}

// tableFile is the YAML shape of a cost-category table file.
type tableFile struct {
	Categories []CostCategory `yaml:"categories"`
	Prefixes   map[string]int `yaml:"prefixes"`
}

// LoadTable reads a cost-category table from a YAML file.
func LoadTable(path string) (*TableLookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read region table %s: %w", path, err)
	}

	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse region table %s: %w", path, err)
	}

	categories := make(map[int]CostCategory, len(tf.Categories))
	for _, c := range tf.Categories {
		if c.Category <= 0 {
			return nil, fmt.Errorf("region table %s: category must be positive, got %d", path, c.Category)
		}
		categories[c.Category] = c
	}
	return NewTableLookup(categories, tf.Prefixes), nil
}
