package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Turnus is the reporting cadence of a monetary figure.
type Turnus string

const (
	TurnusDaily   Turnus = "daily"
	TurnusMonthly Turnus = "monthly"
	TurnusYearly  Turnus = "yearly"
)

// AnnualFactor returns the multiplier that converts a figure reported at
// this cadence into an annual value.
func (t Turnus) AnnualFactor() decimal.Decimal {
	switch t {
	case TurnusDaily:
		return decimal.NewFromInt(365)
	case TurnusMonthly:
		return decimal.NewFromInt(12)
	default:
		return decimal.NewFromInt(1)
	}
}

// IncomeType identifies one of the statutory income source categories.
type IncomeType string

const (
	IncomeEmployment         IncomeType = "employment"
	IncomeBusiness           IncomeType = "business"
	IncomeAgriculture        IncomeType = "agriculture"
	IncomeRent               IncomeType = "rent"
	IncomePension            IncomeType = "pension"
	IncomeUnemployment       IncomeType = "unemployment_benefit"
	IncomeForeign            IncomeType = "foreign"
	IncomeMaintenanceTaxFree IncomeType = "maintenance_tax_free"
	IncomeMaintenanceTaxable IncomeType = "maintenance_taxable"
	IncomeOther              IncomeType = "other"
	IncomeMiniJob            IncomeType = "mini_job"
)

// NonEmploymentTypes lists every source type handled by the generic
// per-source rules, in reporting order.
var NonEmploymentTypes = []IncomeType{
	IncomeBusiness,
	IncomeAgriculture,
	IncomeRent,
	IncomePension,
	IncomeUnemployment,
	IncomeForeign,
	IncomeMaintenanceTaxFree,
	IncomeMaintenanceTaxable,
	IncomeOther,
	IncomeMiniJob,
}

// DefaultTurnus returns the statutory default cadence for a source type.
// Foreign income has no default; it must be flagged explicitly.
func (t IncomeType) DefaultTurnus() (Turnus, bool) {
	switch t {
	case IncomeBusiness, IncomeAgriculture, IncomeRent, IncomeOther, IncomeMiniJob:
		return TurnusYearly, true
	case IncomePension, IncomeMaintenanceTaxFree, IncomeMaintenanceTaxable:
		return TurnusMonthly, true
	case IncomeUnemployment:
		// Stored per-record code decides daily vs monthly; monthly is the
		// fallback when no code is present.
		return TurnusMonthly, true
	case IncomeForeign:
		return "", false
	default:
		return TurnusYearly, true
	}
}

// AnnuallyReported reports whether the source carries a reporting-year
// field whose adjacency to the current year gates counting.
func (t IncomeType) AnnuallyReported() bool {
	switch t {
	case IncomeBusiness, IncomeAgriculture, IncomeRent, IncomeOther, IncomeMiniJob:
		return true
	default:
		return false
	}
}

// ChangeKey identifies the income source or deductible expense a declared
// change applies to. Income keys reuse the IncomeType values.
type ChangeKey string

const (
	ChangeEmployment         ChangeKey = ChangeKey(IncomeEmployment)
	ChangeBusiness           ChangeKey = ChangeKey(IncomeBusiness)
	ChangeAgriculture        ChangeKey = ChangeKey(IncomeAgriculture)
	ChangeRent               ChangeKey = ChangeKey(IncomeRent)
	ChangePension            ChangeKey = ChangeKey(IncomePension)
	ChangeUnemployment       ChangeKey = ChangeKey(IncomeUnemployment)
	ChangeForeign            ChangeKey = ChangeKey(IncomeForeign)
	ChangeMaintenanceTaxFree ChangeKey = ChangeKey(IncomeMaintenanceTaxFree)
	ChangeMaintenanceTaxable ChangeKey = ChangeKey(IncomeMaintenanceTaxable)
	ChangeOther              ChangeKey = ChangeKey(IncomeOther)
	ChangeMiniJob            ChangeKey = ChangeKey(IncomeMiniJob)

	ChangeWorkExpenses    ChangeKey = "work_expenses"
	ChangeChildcareCost   ChangeKey = "childcare_cost"
	ChangeMaintenancePaid ChangeKey = "maintenance_paid"
)

// DeclaredChange is an applicant-asserted future or recent modification to
// an income or expense figure.
type DeclaredChange struct {
	EffectiveDate time.Time       `yaml:"effective_date" json:"effective_date"`
	NewAmount     decimal.Decimal `yaml:"new_amount" json:"new_amount"`
	Increases     bool            `yaml:"increases" json:"increases"`
	NewTurnus     Turnus          `yaml:"new_turnus,omitempty" json:"new_turnus,omitempty"`
	Justification string          `yaml:"justification,omitempty" json:"justification,omitempty"`
}

// IncomeSource is the raw declaration of one non-employment income source.
type IncomeSource struct {
	Declared bool            `yaml:"declared" json:"declared"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Year     *int            `yaml:"year,omitempty" json:"year,omitempty"`
	Turnus   *Turnus         `yaml:"turnus,omitempty" json:"turnus,omitempty"`
}

// EmploymentIncome carries the detailed employment declaration: an optional
// prior-calendar-year total and the most recent 12-month breakdown with
// year-end bonus fields, reported separately for the past and the coming
// 12 months.
type EmploymentIncome struct {
	Declared       bool             `yaml:"declared" json:"declared"`
	PriorYearTotal *decimal.Decimal `yaml:"prior_year_total,omitempty" json:"prior_year_total,omitempty"`
	PriorYear      *int             `yaml:"prior_year,omitempty" json:"prior_year,omitempty"`

	MonthlyFigures []decimal.Decimal `yaml:"monthly_figures,omitempty" json:"monthly_figures,omitempty"`
	MonthlyAsOf    time.Time         `yaml:"monthly_as_of,omitempty" json:"monthly_as_of,omitempty"`

	ChristmasBonusPast decimal.Decimal `yaml:"christmas_bonus_past" json:"christmas_bonus_past"`
	ChristmasBonusNext decimal.Decimal `yaml:"christmas_bonus_next" json:"christmas_bonus_next"`
	VacationBonusPast  decimal.Decimal `yaml:"vacation_bonus_past" json:"vacation_bonus_past"`
	VacationBonusNext  decimal.Decimal `yaml:"vacation_bonus_next" json:"vacation_bonus_next"`
	OtherBonusPast     decimal.Decimal `yaml:"other_bonus_past" json:"other_bonus_past"`
	OtherBonusNext     decimal.Decimal `yaml:"other_bonus_next" json:"other_bonus_next"`
}

// MonthlySum returns the sum of the 12 monthly figures.
func (e EmploymentIncome) MonthlySum() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range e.MonthlyFigures {
		sum = sum.Add(m)
	}
	return sum
}

// PastBonuses returns the year-end bonuses reported for the past 12 months.
func (e EmploymentIncome) PastBonuses() decimal.Decimal {
	return e.ChristmasBonusPast.Add(e.VacationBonusPast).Add(e.OtherBonusPast)
}

// NextBonuses returns the year-end bonuses expected for the next 12 months.
func (e EmploymentIncome) NextBonuses() decimal.Decimal {
	return e.ChristmasBonusNext.Add(e.VacationBonusNext).Add(e.OtherBonusNext)
}

// MaintenancePayment is one entry of the maintenance-paid list.
type MaintenancePayment struct {
	Recipient     string          `yaml:"recipient" json:"recipient"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthly_amount"`
	MonthsPerYear int             `yaml:"months_per_year,omitempty" json:"months_per_year,omitempty"`
}

// Annual returns the yearly total of the entry. A missing duration counts
// as a full year.
func (m MaintenancePayment) Annual() decimal.Decimal {
	months := m.MonthsPerYear
	if months <= 0 || months > 12 {
		months = 12
	}
	return m.MonthlyAmount.Mul(decimal.NewFromInt(int64(months)))
}

// EmploymentStatusRetired is the explicit retirement declaration checked by
// the retired-household rule.
const EmploymentStatusRetired = "retired"

// FinancialRecord is the raw per-person income declaration.
type FinancialRecord struct {
	EmploymentStatus string `yaml:"employment_status,omitempty" json:"employment_status,omitempty"`

	PaysIncomeTax        bool `yaml:"pays_income_tax" json:"pays_income_tax"`
	PaysHealthInsurance  bool `yaml:"pays_health_insurance" json:"pays_health_insurance"`
	PaysPensionInsurance bool `yaml:"pays_pension_insurance" json:"pays_pension_insurance"`

	Employment EmploymentIncome            `yaml:"employment" json:"employment"`
	Sources    map[IncomeType]IncomeSource `yaml:"sources,omitempty" json:"sources,omitempty"`

	WorkExpensesAnnual  decimal.Decimal      `yaml:"work_expenses_annual" json:"work_expenses_annual"`
	ChildcareCostAnnual decimal.Decimal      `yaml:"childcare_cost_annual" json:"childcare_cost_annual"`
	MaintenancePaid     []MaintenancePayment `yaml:"maintenance_paid,omitempty" json:"maintenance_paid,omitempty"`

	Changes map[ChangeKey]DeclaredChange `yaml:"changes,omitempty" json:"changes,omitempty"`
}

// Source returns the declaration for a non-employment source type.
func (r FinancialRecord) Source(t IncomeType) IncomeSource {
	return r.Sources[t]
}

// Change returns the declared change for a key, nil when absent.
func (r FinancialRecord) Change(key ChangeKey) *DeclaredChange {
	c, ok := r.Changes[key]
	if !ok {
		return nil
	}
	return &c
}

// MaintenancePaidAnnual sums the maintenance-paid list into a yearly total.
func (r FinancialRecord) MaintenancePaidAnnual() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range r.MaintenancePaid {
		sum = sum.Add(p.Annual())
	}
	return sum
}

// HasRegularEmployment reports whether the person declares regular
// employment income.
func (r FinancialRecord) HasRegularEmployment() bool {
	return r.Employment.Declared
}
