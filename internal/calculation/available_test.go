package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/regulatory"
)

func TestComputeAvailableIncome_SalaryFlagGatesSalaryLines(t *testing.T) {
	reg := regulatory.Default()
	comp := domain.HouseholdComposition{AdultCount: 1}

	person := domain.SelfDisclosurePerson{
		Name:                 "Anna",
		NetSalaryMonthly:     decimal.NewFromInt(2100),
		ChristmasBonusAnnual: decimal.NewFromInt(1200),
	}

	sd := &domain.SelfDisclosureForm{Persons: []domain.SelfDisclosurePerson{person}}
	res := ComputeAvailableIncome(sd, comp, reg)
	assert.True(t, res.TotalMonthly.IsZero(),
		"Salary lines without the salary flag count nothing, got %s", res.TotalMonthly)

	person.HasSalaryIncome = true
	sd = &domain.SelfDisclosureForm{Persons: []domain.SelfDisclosurePerson{person}}
	res = ComputeAvailableIncome(sd, comp, reg)
	assert.True(t, res.TotalMonthly.Equal(decimal.NewFromInt(2200)),
		"Expected 2100 plus 1200/12, got %s", res.TotalMonthly)
}

func TestComputeAvailableIncome_AnnualLinesConverted(t *testing.T) {
	reg := regulatory.Default()
	sd := &domain.SelfDisclosureForm{Persons: []domain.SelfDisclosurePerson{{
		Name:           "Jonas",
		BusinessAnnual: decimal.NewFromInt(12000),
		RentAnnual:     decimal.NewFromInt(6000),
		Pensions:       []decimal.Decimal{decimal.NewFromInt(400)},
		LoanPayments:   decimal.NewFromInt(300),
	}}}

	res := ComputeAvailableIncome(sd, domain.HouseholdComposition{AdultCount: 1}, reg)
	// 1000 + 500 + 400 income, 300 expenses.
	assert.True(t, res.TotalMonthly.Equal(decimal.NewFromInt(1600)),
		"Expected 1600, got %s", res.TotalMonthly)
	assert.Empty(t, res.Notes)
}

func TestComputeAvailableIncome_FloorBySize(t *testing.T) {
	reg := regulatory.Default()

	tests := []struct {
		size      int
		wantFloor int64
	}{
		{1, 990},
		{2, 1270},
		{3, 1590},
		{5, 2230},
	}

	for _, tt := range tests {
		comp := domain.HouseholdComposition{AdultCount: 1, ChildCount: tt.size - 1}
		res := ComputeAvailableIncome(&domain.SelfDisclosureForm{}, comp, reg)
		assert.True(t, res.Floor.Equal(decimal.NewFromInt(tt.wantFloor)),
			"Size %d: expected floor %d, got %s", tt.size, tt.wantFloor, res.Floor)
	}
}

func TestComputeAvailableIncome_BelowFloorFindings(t *testing.T) {
	reg := regulatory.Default()
	comp := domain.HouseholdComposition{AdultCount: 2}

	sd := &domain.SelfDisclosureForm{Persons: []domain.SelfDisclosurePerson{{
		Name:             "Anna",
		HasSalaryIncome:  true,
		NetSalaryMonthly: decimal.NewFromInt(1100),
	}}}

	res := ComputeAvailableIncome(sd, comp, reg)
	require.Len(t, res.Notes, 1)
	assert.Equal(t, domain.CodeAvailableBelowFloor, res.Notes[0].Code)
	assert.Equal(t, domain.SeverityError, res.Notes[0].Severity)
}

func TestComputeAvailableIncome_NegativeTotal(t *testing.T) {
	reg := regulatory.Default()
	sd := &domain.SelfDisclosureForm{Persons: []domain.SelfDisclosurePerson{{
		Name:         "Jonas",
		LoanPayments: decimal.NewFromInt(800),
	}}}

	res := ComputeAvailableIncome(sd, domain.HouseholdComposition{AdultCount: 1}, reg)
	codes := noteCodes(res.Notes)
	assert.Contains(t, codes, domain.CodeAvailableBelowFloor)
	assert.Contains(t, codes, domain.CodeAvailableNegative)
	assert.NotContains(t, codes, domain.CodeAvailableBelowSingleFloor)
}

func TestComputeAvailableIncome_SingleFloorWarningForLargerHousehold(t *testing.T) {
	reg := regulatory.Default()
	// Household of three with income above its own floor requirement is
	// fine; below the single floor it still warns.
	comp := domain.HouseholdComposition{AdultCount: 2, ChildCount: 1}
	sd := &domain.SelfDisclosureForm{Persons: []domain.SelfDisclosurePerson{{
		Name:     "Anna",
		Pensions: []decimal.Decimal{decimal.NewFromInt(900)},
	}}}

	res := ComputeAvailableIncome(sd, comp, reg)
	codes := noteCodes(res.Notes)
	assert.Contains(t, codes, domain.CodeAvailableBelowFloor)
	assert.Contains(t, codes, domain.CodeAvailableBelowSingleFloor)
}

func TestComputeAvailableIncome_NilForm(t *testing.T) {
	res := ComputeAvailableIncome(nil, domain.HouseholdComposition{AdultCount: 1}, regulatory.Default())
	assert.Empty(t, res.Persons)
	assert.True(t, res.Floor.Equal(decimal.NewFromInt(990)))
}

func noteCodes(notes []domain.Note) []string {
	codes := make([]string, 0, len(notes))
	for _, n := range notes {
		codes = append(codes, n.Code)
	}
	return codes
}
