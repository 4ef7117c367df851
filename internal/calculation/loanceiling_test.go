package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/region"
)

func TestCheckLoanCeiling_SupplementaryOnlySkips(t *testing.T) {
	main := &domain.MainApplicationForm{
		SupplementaryLoanOnly: true,
		RequestedBaseLoan:     decimal.NewFromInt(999999),
	}

	check := CheckLoanCeiling(main, domain.EligibilityResult{Tier: domain.TierA}, region.DefaultLookup())
	assert.True(t, check.Skipped)
	require.Len(t, check.Notes, 1)
	assert.Equal(t, domain.CodeLoanSupplementarySkip, check.Notes[0].Code)
}

func TestCheckLoanCeiling_IneligibleWithRequest(t *testing.T) {
	main := &domain.MainApplicationForm{
		Postcode:          "80331",
		RequestedBaseLoan: decimal.NewFromInt(50000),
	}

	check := CheckLoanCeiling(main, domain.EligibilityResult{Tier: domain.TierNone}, region.DefaultLookup())
	require.Len(t, check.Notes, 1)
	assert.Equal(t, domain.CodeLoanIneligibleNonzero, check.Notes[0].Code)
	assert.Equal(t, domain.SeverityError, check.Notes[0].Severity)

	// No request, no finding.
	main.RequestedBaseLoan = decimal.Zero
	check = CheckLoanCeiling(main, domain.EligibilityResult{Tier: domain.TierNone}, region.DefaultLookup())
	assert.Empty(t, check.Notes)
}

func TestCheckLoanCeiling_TierSelectsCeiling(t *testing.T) {
	// Prefix 8 resolves to category 3: 145000 for tier A, 115000 for B.
	main := &domain.MainApplicationForm{
		Postcode:          "80331",
		RequestedBaseLoan: decimal.NewFromInt(120000),
	}

	checkA := CheckLoanCeiling(main, domain.EligibilityResult{Tier: domain.TierA}, region.DefaultLookup())
	require.Len(t, checkA.Notes, 1)
	assert.Equal(t, domain.CodeLoanWithinCeiling, checkA.Notes[0].Code)
	assert.True(t, checkA.Ceiling.Equal(decimal.NewFromInt(145000)))

	checkB := CheckLoanCeiling(main, domain.EligibilityResult{Tier: domain.TierB}, region.DefaultLookup())
	require.Len(t, checkB.Notes, 1)
	assert.Equal(t, domain.CodeLoanCeilingExceeded, checkB.Notes[0].Code)
	assert.True(t, checkB.Ceiling.Equal(decimal.NewFromInt(115000)))
}

func TestCheckLoanCeiling_UnsupportedRegion(t *testing.T) {
	main := &domain.MainApplicationForm{
		Postcode:          "ABCDE",
		RequestedBaseLoan: decimal.NewFromInt(10000),
	}

	check := CheckLoanCeiling(main, domain.EligibilityResult{Tier: domain.TierA}, region.DefaultLookup())
	require.Len(t, check.Notes, 1)
	assert.Equal(t, domain.CodeLoanRegionUnsupported, check.Notes[0].Code)
	assert.Equal(t, domain.SeverityWarning, check.Notes[0].Severity)
	assert.Nil(t, check.Category)
}

func TestCheckLoanCeiling_MissingForm(t *testing.T) {
	check := CheckLoanCeiling(nil, domain.EligibilityResult{Tier: domain.TierA}, region.DefaultLookup())
	assert.True(t, check.Skipped)
	assert.Empty(t, check.Notes)
}
