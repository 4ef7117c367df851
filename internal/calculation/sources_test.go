package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/pkg/dateutil"
)

func monthly(amount int64) []decimal.Decimal {
	figures := make([]decimal.Decimal, 12)
	for i := range figures {
		figures[i] = decimal.NewFromInt(amount)
	}
	return figures
}

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func turnusPtr(t domain.Turnus) *domain.Turnus { return &t }

func TestEmploymentContribution_PriorYearPreferred(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	rec := domain.FinancialRecord{
		Employment: domain.EmploymentIncome{
			Declared:       true,
			PriorYearTotal: decPtr(42000),
			PriorYear:      intPtr(2025),
			MonthlyFigures: monthly(3000),
			MonthlyAsOf:    today,
		},
	}

	c, ok := employmentContribution(rec, today)
	require.True(t, ok)
	assert.True(t, c.Counted)
	assert.True(t, c.Annual.Equal(decimal.NewFromInt(42000)),
		"Adjacent prior-year total wins over the monthly breakdown, got %s", c.Annual)
	assert.Empty(t, c.Notes)
}

func TestEmploymentContribution_NonAdjacentYearUsesMonthly(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	rec := domain.FinancialRecord{
		Employment: domain.EmploymentIncome{
			Declared:       true,
			PriorYearTotal: decPtr(42000),
			PriorYear:      intPtr(2023),
			MonthlyFigures: monthly(3000),
			MonthlyAsOf:    dateutil.MustParse("2026-02-01"),
		},
	}

	c, ok := employmentContribution(rec, today)
	require.True(t, ok)
	assert.True(t, c.Counted)
	assert.True(t, c.Annual.Equal(decimal.NewFromInt(36000)),
		"Expected the 12-month sum, got %s", c.Annual)
}

func TestEmploymentContribution_StaleMonthlyNotCounted(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	rec := domain.FinancialRecord{
		Employment: domain.EmploymentIncome{
			Declared:       true,
			MonthlyFigures: monthly(3000),
			MonthlyAsOf:    dateutil.MustParse("2025-09-15"),
		},
	}

	c, ok := employmentContribution(rec, today)
	require.True(t, ok)
	assert.False(t, c.Counted, "Stale breakdown must not enter the gross total")
	assert.True(t, c.RawAnnual.Equal(decimal.NewFromInt(36000)))
	require.Len(t, c.Notes, 1)
	assert.Equal(t, domain.CodeSourceStaleMonthly, c.Notes[0].Code)
	assert.Equal(t, domain.SeverityWarning, c.Notes[0].Severity)
}

func TestEmploymentContribution_ChangeCountsForwardBonuses(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	rec := domain.FinancialRecord{
		Employment: domain.EmploymentIncome{
			Declared:           true,
			MonthlyFigures:     monthly(3000),
			MonthlyAsOf:        dateutil.MustParse("2026-02-01"),
			ChristmasBonusPast: decimal.NewFromInt(2000),
			ChristmasBonusNext: decimal.NewFromInt(2500),
		},
		Changes: map[domain.ChangeKey]domain.DeclaredChange{
			domain.ChangeEmployment: {
				EffectiveDate: dateutil.MustParse("2024-01-01"),
				NewAmount:     decimal.NewFromInt(3500),
				NewTurnus:     domain.TurnusMonthly,
				Increases:     true,
			},
		},
	}

	c, ok := employmentContribution(rec, today)
	require.True(t, ok)
	require.True(t, c.Counted)
	// Long-past change: the projection is all new side, and only the
	// forward-looking bonus belongs there.
	assert.True(t, c.Annual.Equal(decimal.NewFromInt(44500)),
		"Expected 3500*12+2500, got %s", c.Annual)
}

func TestEmploymentContribution_Undeclared(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	_, ok := employmentContribution(domain.FinancialRecord{}, today)
	assert.False(t, ok)
}

func TestSourceContribution_DefaultTurnus(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	tests := []struct {
		name   string
		typ    domain.IncomeType
		amount int64
		want   int64
	}{
		{"pension defaults to monthly", domain.IncomePension, 800, 9600},
		{"unemployment defaults to monthly", domain.IncomeUnemployment, 300, 3600},
		{"rent defaults to yearly", domain.IncomeRent, 6000, 6000},
		{"maintenance defaults to monthly", domain.IncomeMaintenanceTaxFree, 400, 4800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := domain.FinancialRecord{
				Sources: map[domain.IncomeType]domain.IncomeSource{
					tt.typ: {Declared: true, Amount: decimal.NewFromInt(tt.amount)},
				},
			}
			c, ok := sourceContribution(rec, tt.typ, today)
			require.True(t, ok)
			assert.True(t, c.Counted)
			assert.True(t, c.Annual.Equal(decimal.NewFromInt(tt.want)),
				"Expected %d, got %s", tt.want, c.Annual)
		})
	}
}

func TestSourceContribution_ForeignRequiresTurnus(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	rec := domain.FinancialRecord{
		Sources: map[domain.IncomeType]domain.IncomeSource{
			domain.IncomeForeign: {Declared: true, Amount: decimal.NewFromInt(1200)},
		},
	}

	c, ok := sourceContribution(rec, domain.IncomeForeign, today)
	require.True(t, ok)
	assert.False(t, c.Counted, "Foreign income without a cadence must be excluded")
	require.Len(t, c.Notes, 1)
	assert.Equal(t, domain.CodeSourceMissingTurnus, c.Notes[0].Code)

	rec.Sources[domain.IncomeForeign] = domain.IncomeSource{
		Declared: true,
		Amount:   decimal.NewFromInt(1200),
		Turnus:   turnusPtr(domain.TurnusMonthly),
	}
	c, ok = sourceContribution(rec, domain.IncomeForeign, today)
	require.True(t, ok)
	assert.True(t, c.Counted)
	assert.True(t, c.Annual.Equal(decimal.NewFromInt(14400)))
}

func TestSourceContribution_MiniJobIgnoresStoredTurnus(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	rec := domain.FinancialRecord{
		Sources: map[domain.IncomeType]domain.IncomeSource{
			domain.IncomeMiniJob: {
				Declared: true,
				Amount:   decimal.NewFromInt(6240),
				Turnus:   turnusPtr(domain.TurnusMonthly),
			},
		},
	}

	c, ok := sourceContribution(rec, domain.IncomeMiniJob, today)
	require.True(t, ok)
	assert.True(t, c.Annual.Equal(decimal.NewFromInt(6240)),
		"Flat-taxed income is never monthly-eligible, got %s", c.Annual)
}

func TestSourceContribution_StaleYearTransparencyOnly(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	rec := domain.FinancialRecord{
		Sources: map[domain.IncomeType]domain.IncomeSource{
			domain.IncomeBusiness: {
				Declared: true,
				Amount:   decimal.NewFromInt(15000),
				Year:     intPtr(2023),
			},
		},
	}

	c, ok := sourceContribution(rec, domain.IncomeBusiness, today)
	require.True(t, ok)
	assert.False(t, c.Counted)
	assert.True(t, c.RawAnnual.Equal(decimal.NewFromInt(15000)))
	require.Len(t, c.Notes, 1)
	assert.Equal(t, domain.CodeSourceStaleYear, c.Notes[0].Code)
}

func TestSourceContribution_ZeroWithoutChangeOmitted(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	rec := domain.FinancialRecord{
		Sources: map[domain.IncomeType]domain.IncomeSource{
			domain.IncomeRent: {Declared: true, Amount: decimal.Zero},
		},
	}

	_, ok := sourceContribution(rec, domain.IncomeRent, today)
	assert.False(t, ok, "Zero sources without a change stay out of the narrative")
}

func TestSourceContribution_ZeroWithChangeProjected(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	rec := domain.FinancialRecord{
		Changes: map[domain.ChangeKey]domain.DeclaredChange{
			domain.ChangeKey(domain.IncomeRent): {
				EffectiveDate: dateutil.MustParse("2026-05-01"),
				NewAmount:     decimal.NewFromInt(7300),
				NewTurnus:     domain.TurnusYearly,
				Increases:     true,
			},
		},
	}

	c, ok := sourceContribution(rec, domain.IncomeRent, today)
	require.True(t, ok)
	assert.True(t, c.Counted)
	assert.True(t, c.Projection.ChangeApplied)
	assert.True(t, c.Annual.GreaterThan(decimal.Zero))
}

func TestAggregateSources_SumsCountedOnly(t *testing.T) {
	today := dateutil.MustParse("2026-03-01")
	m := domain.HouseholdMember{
		ID:        "m1",
		Name:      "Anna",
		HasIncome: true,
		Finances: domain.FinancialRecord{
			Employment: domain.EmploymentIncome{
				Declared:       true,
				PriorYearTotal: decPtr(30000),
				PriorYear:      intPtr(2025),
			},
			Sources: map[domain.IncomeType]domain.IncomeSource{
				domain.IncomePension: {Declared: true, Amount: decimal.NewFromInt(500)},
				// Missing cadence keeps this one out of the total.
				domain.IncomeForeign: {Declared: true, Amount: decimal.NewFromInt(1000)},
			},
		},
	}

	gross := AggregateSources(m, today)
	assert.True(t, gross.GrossAnnual.Equal(decimal.NewFromInt(36000)),
		"Expected 30000+6000, got %s", gross.GrossAnnual)
	assert.Len(t, gross.Contributions, 3)
}

func TestMonthsBetweenFreshness(t *testing.T) {
	// Boundary of the three-month freshness window.
	asOf := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, dateutil.MonthsBetween(asOf, today))
}
