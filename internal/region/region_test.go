package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultTable(t *testing.T) {
	lookup := DefaultLookup()

	cc, err := lookup.Resolve("30159")
	require.NoError(t, err)
	assert.Equal(t, 1, cc.Category)
	assert.True(t, cc.TierACeiling.Equal(decimal.NewFromInt(110000)))

	cc, err = lookup.Resolve("80331")
	require.NoError(t, err)
	assert.Equal(t, 3, cc.Category)
}

func TestResolveLongestPrefixWins(t *testing.T) {
	lookup := NewTableLookup(
		map[int]CostCategory{
			1: {Category: 1},
			3: {Category: 3},
		},
		map[string]int{"8": 1, "80331": 3},
	)

	cc, err := lookup.Resolve("80331")
	require.NoError(t, err)
	assert.Equal(t, 3, cc.Category)

	cc, err = lookup.Resolve("86150")
	require.NoError(t, err)
	assert.Equal(t, 1, cc.Category)
}

func TestResolveUnsupported(t *testing.T) {
	lookup := DefaultLookup()

	for _, code := range []string{"", "1234", "123456", "ABCDE", " 1 23"} {
		_, err := lookup.Resolve(code)
		assert.ErrorIs(t, err, ErrUnsupportedRegion, "postcode %q", code)
	}

	empty := NewTableLookup(map[int]CostCategory{}, map[string]int{})
	_, err := empty.Resolve("12345")
	assert.ErrorIs(t, err, ErrUnsupportedRegion)
}

func TestLoadTable(t *testing.T) {
	content := `
categories:
  - category: 1
    tier_a_ceiling: 100000
    tier_b_ceiling: 80000
prefixes:
  "1": 1
`
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lookup, err := LoadTable(path)
	require.NoError(t, err)

	cc, err := lookup.Resolve("10115")
	require.NoError(t, err)
	assert.True(t, cc.TierBCeiling.Equal(decimal.NewFromInt(80000)))

	_, err = lookup.Resolve("20095")
	assert.ErrorIs(t, err, ErrUnsupportedRegion)
}
