package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/regulatory"
	"github.com/mkellner/wohnval/pkg/dateutil"
)

func TestCareAllowance_Cascade(t *testing.T) {
	ca := regulatory.Default().CareAllowances

	tests := []struct {
		name      string
		careLevel int
		gdb       int
		want      int64
		rule      int
	}{
		{"care level 5", 5, 0, 5830, 1},
		{"care level 4 with severe disability", 4, 85, 5830, 2},
		{"care level 4 alone", 4, 0, 4500, 3},
		{"full disability grade", 0, 100, 4500, 4},
		{"care level 3 with high grade", 3, 90, 4500, 5},
		{"care level 2 with moderate grade", 2, 60, 2100, 6},
		{"care level 1 with high grade", 1, 80, 2100, 7},
		{"grade 85 alone", 0, 85, 1330, 9},
		{"care level 1 with low grade", 1, 40, 1330, 10},
		{"grade 60 alone", 0, 60, 665, 12},
		{"care level 1 alone", 1, 0, 330, 13},
		{"no care no disability", 0, 0, 0, 0},
		{"grade 49 alone", 0, 49, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, rule := CareAllowance(tt.careLevel, tt.gdb, ca)
			assert.True(t, amount.Equal(decimal.NewFromInt(tt.want)),
				"Expected %d, got %s", tt.want, amount)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestCareAllowance_EarlierRulesShadowLaterOnes(t *testing.T) {
	ca := regulatory.Default().CareAllowances

	// Care level 3 without a grade hits the combined level-2/3 rule before
	// the standalone level-3 rule further down the cascade.
	amount, rule := CareAllowance(3, 0, ca)
	assert.True(t, amount.Equal(ca.Elevated))
	assert.Equal(t, 6, rule)

	// Same for care level 2 and the standalone level-2 rule.
	amount, rule = CareAllowance(2, 0, ca)
	assert.True(t, amount.Equal(ca.Elevated))
	assert.Equal(t, 6, rule)
}

func TestAggregateHousehold_MarriageBonus(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	reg := regulatory.Default()

	members := []domain.HouseholdMember{
		{ID: domain.MainApplicantID, Name: "Jonas", HasIncome: true, Finances: pensionOnly(2000)},
		{ID: "m2", Name: "Mara", HasIncome: false},
	}

	comp := domain.HouseholdComposition{AdultCount: 2, Married: true}
	h := AggregateHousehold(members, comp, reg, today)
	assert.True(t, h.Aggregate.MarriageBonus.Equal(decimal.NewFromInt(4000)))

	// Three-person households get no marriage bonus regardless of the flag.
	comp3 := domain.HouseholdComposition{AdultCount: 2, ChildCount: 1, Married: true}
	h3 := AggregateHousehold(members, comp3, reg, today)
	assert.True(t, h3.Aggregate.MarriageBonus.IsZero())
}

func TestAggregateHousehold_UnbornMemberNoAllowance(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	reg := regulatory.Default()
	futureBirth := dateutil.MustParse("2026-08-01")

	members := []domain.HouseholdMember{
		{ID: domain.MainApplicantID, HasIncome: true, CareLevel: 1, Finances: pensionOnly(1500)},
		{ID: "m2", BirthDate: &futureBirth, CareLevel: 5},
	}

	h := AggregateHousehold(members, domain.HouseholdComposition{AdultCount: 1}, reg, today)

	require.Len(t, h.Members, 2)
	assert.True(t, h.Members[1].CareAllowance.IsZero(),
		"Unborn members must not contribute an allowance")
	assert.True(t, h.Aggregate.Allowances.Equal(reg.CareAllowances.Minimal))
}

func TestAggregateHousehold_FinalAdjustedClamped(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	reg := regulatory.Default()

	// Allowances exceed the adjusted income.
	members := []domain.HouseholdMember{
		{ID: domain.MainApplicantID, HasIncome: true, CareLevel: 5, Finances: pensionOnly(100)},
	}

	h := AggregateHousehold(members, domain.HouseholdComposition{AdultCount: 1}, reg, today)
	assert.True(t, h.Aggregate.FinalAdjusted.Equal(decimal.Zero),
		"Final adjusted income never goes negative, got %s", h.Aggregate.FinalAdjusted)
}

func TestAggregateHousehold_SkipsNonEarners(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	reg := regulatory.Default()

	members := []domain.HouseholdMember{
		{ID: domain.MainApplicantID, HasIncome: true, Finances: pensionOnly(1000)},
		{ID: "m2", HasIncome: false, Finances: pensionOnly(9999)},
	}

	h := AggregateHousehold(members, domain.HouseholdComposition{AdultCount: 2}, reg, today)
	assert.True(t, h.Aggregate.Gross.Equal(decimal.NewFromInt(12000)),
		"Members without the income flag contribute nothing, got %s", h.Aggregate.Gross)
}

func pensionOnly(monthlyAmount int64) domain.FinancialRecord {
	return domain.FinancialRecord{
		Sources: map[domain.IncomeType]domain.IncomeSource{
			domain.IncomePension: {Declared: true, Amount: decimal.NewFromInt(monthlyAmount)},
		},
	}
}
